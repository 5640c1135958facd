package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrudnyk/SafariConverterLib/internal/models"
)

func TestBuildDomainConstraints(t *testing.T) {
	tests := []struct {
		name         string
		permitted    []string
		restricted   []string
		wantIfDomain []string
		wantUnless   []string
		wantErr      error
	}{
		{
			name: "both empty yields neither field",
		},
		{
			name:         "permitted only",
			permitted:    []string{"example.com", "example.org"},
			wantIfDomain: []string{"example.com", "example.org"},
		},
		{
			name:       "restricted only",
			restricted: []string{"example.com"},
			wantUnless: []string{"example.com"},
		},
		{
			name:         "domains are lower-cased",
			permitted:    []string{"Example.COM", " example.org "},
			wantIfDomain: []string{"example.com", "example.org"},
		},
		{
			name:       "both present is rejected",
			permitted:  []string{"a.com"},
			restricted: []string{"b.com"},
			wantErr:    ErrConflictingDomains,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ifDomain, unlessDomain, err := BuildDomainConstraints(tt.permitted, tt.restricted)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, ifDomain)
				assert.Nil(t, unlessDomain)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantIfDomain, ifDomain)
			assert.Equal(t, tt.wantUnless, unlessDomain)
		})
	}
}

func TestAnyDomainWildcardExpansion(t *testing.T) {
	ifDomain, unlessDomain, err := BuildDomainConstraints([]string{models.AnyDomainWildcard}, nil)
	require.NoError(t, err)
	assert.Nil(t, unlessDomain)
	assert.GreaterOrEqual(t, len(ifDomain), 100)
	assert.Contains(t, ifDomain, "com")
	assert.Contains(t, ifDomain, "co.uk")
}

func TestAnyDomainWildcardOnlyWhenAlone(t *testing.T) {
	// The sentinel only expands when it is the entire permitted set
	ifDomain, _, err := BuildDomainConstraints([]string{models.AnyDomainWildcard, "example.com"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{models.AnyDomainWildcard, "example.com"}, ifDomain)
}

func TestExpandAnyDomainWildcardDeterministic(t *testing.T) {
	first := ExpandAnyDomainWildcard()
	second := ExpandAnyDomainWildcard()
	assert.Equal(t, first, second)
	assert.IsIncreasing(t, first)
}

func TestIsPopularSuffix(t *testing.T) {
	assert.True(t, IsPopularSuffix("com"))
	assert.True(t, IsPopularSuffix("co.jp"))
	assert.False(t, IsPopularSuffix("example.com"))
	assert.False(t, IsPopularSuffix(""))
}
