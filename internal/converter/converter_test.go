package converter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrudnyk/SafariConverterLib/internal/models"
	"github.com/nrudnyk/SafariConverterLib/internal/parser"
)

func networkRule(pattern string) models.Rule {
	return models.Rule{
		Type:    models.RuleTypeNetwork,
		Raw:     pattern,
		Pattern: pattern,
	}
}

func TestConvertCountsSkipReasons(t *testing.T) {
	rules := []models.Rule{
		networkRule("||example.com^"),
		{
			Type:        models.RuleTypeNetwork,
			Raw:         "/ads|banners/",
			RegexSource: "ads|banners",
		},
		{
			Type:              models.RuleTypeNetwork,
			Raw:               "||conflict.com^$domain=a.com",
			Pattern:           "||conflict.com^",
			PermittedDomains:  []string{"a.com"},
			RestrictedDomains: []string{"b.com"},
		},
		{
			Type:      models.RuleTypeCosmetic,
			Raw:       "example.com#%#//scriptlet('noop')",
			Kind:      models.KindScriptletInject,
			Scriptlet: "noop",
		},
	}

	c := New(models.ConversionConfig{})
	entries := c.Convert(rules)

	assert.Len(t, entries, 1)
	stats := c.Stats()
	assert.Equal(t, 1, stats.Converted)
	assert.Equal(t, 3, stats.Skipped)
	assert.Equal(t, 1, stats.SkipReasons[SkipUnsupportedRegex])
	assert.Equal(t, 1, stats.SkipReasons[SkipConflictingDomains])
	assert.Equal(t, 1, stats.SkipReasons[SkipAdvancedDisabled])
}

func TestConvertEnforcesEntryCap(t *testing.T) {
	rules := []models.Rule{
		networkRule("||a.example^"),
		networkRule("||b.example^"),
		networkRule("||c.example^"),
	}

	c := New(models.ConversionConfig{MaxEntries: 2})
	entries := c.Convert(rules)

	assert.Len(t, entries, 2)
	assert.Equal(t, 1, c.Stats().SkipReasons[SkipEntryLimit])
}

func TestSerializeEntryDeterministic(t *testing.T) {
	rule := models.Rule{
		Type:             models.RuleTypeNetwork,
		Pattern:          "||example.com^",
		PermittedDomains: []string{"test.com"},
	}

	c := New(models.ConversionConfig{})
	first := c.Convert([]models.Rule{rule})
	second := New(models.ConversionConfig{}).Convert([]models.Rule{rule})
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	s1, err := SerializeEntry(first[0])
	require.NoError(t, err)
	s2, err := SerializeEntry(second[0])
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

func TestSerializeOmitsAbsentFields(t *testing.T) {
	entry := models.BlockerEntry{
		Trigger: models.Trigger{URLFilter: ".*"},
		Action:  models.Action{Type: models.ActionBlock},
	}

	s, err := SerializeEntry(entry)
	require.NoError(t, err)
	assert.Equal(t, `{"trigger":{"url-filter":".*"},"action":{"type":"block"}}`, s)
	assert.NotContains(t, s, "null")
}

func TestSerializeEntries(t *testing.T) {
	entries := []models.BlockerEntry{
		{Trigger: models.Trigger{URLFilter: ".*"}, Action: models.Action{Type: models.ActionBlock}},
		{Trigger: models.Trigger{URLFilter: "a"}, Action: models.Action{Type: models.ActionBlock}},
	}

	s, err := SerializeEntries(entries)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s, "["))
	assert.True(t, strings.HasSuffix(s, "]"))
	assert.Equal(t, 1, strings.Count(s, `"url-filter":".*"`))

	empty, err := SerializeEntries(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}

func TestDeduplicate(t *testing.T) {
	entries := []models.BlockerEntry{
		{Trigger: models.Trigger{URLFilter: ".*"}, Action: models.Action{Type: models.ActionBlock}},
		{Trigger: models.Trigger{URLFilter: ".*"}, Action: models.Action{Type: models.ActionBlock}},
		{Trigger: models.Trigger{URLFilter: "other"}, Action: models.Action{Type: models.ActionBlock}},
	}

	result := Deduplicate(entries)
	assert.Len(t, result, 2)
}

func TestSplitter(t *testing.T) {
	entries := make([]models.BlockerEntry, 5)
	for i := range entries {
		entries[i] = models.BlockerEntry{
			Trigger: models.Trigger{URLFilter: ".*"},
			Action:  models.Action{Type: models.ActionBlock},
		}
	}

	s := NewSplitter(2)
	parts := s.Split(entries, "list")
	assert.Len(t, parts, 3)
	assert.Len(t, parts["list-part1"], 2)
	assert.Len(t, parts["list-part3"], 1)

	whole := NewSplitter(10).Split(entries, "list")
	assert.Len(t, whole, 1)
	assert.Len(t, whole["list"], 5)
}

func TestParserToConverterFlow(t *testing.T) {
	tests := []struct {
		name             string
		filterLine       string
		advancedBlocking bool
		expectSkipped    bool
		wantActionType   string
		wantURLFilter    string
	}{
		{
			name:           "hostname rule with domain option",
			filterLine:     "||example.com/path$domain=test.com",
			wantActionType: models.ActionBlock,
			wantURLFilter:  `^[htpsw]+:\/\/`,
		},
		{
			name:           "document allowlist",
			filterLine:     "@@||example.com^$document",
			wantActionType: models.ActionIgnorePreviousRules,
			wantURLFilter:  `^[htpsw]+:\/\/`,
		},
		{
			name:           "generic cosmetic rule",
			filterLine:     "###ad-banner",
			wantActionType: models.ActionCSSDisplayNone,
			wantURLFilter:  ".*",
		},
		{
			name:          "regex with alternation is skipped",
			filterLine:    "/ads|banners/$script",
			expectSkipped: true,
		},
		{
			name:          "conflicting domain scoping is skipped",
			filterLine:    "||example.com^$domain=a.com|~b.com",
			expectSkipped: true,
		},
		{
			name:          "scriptlet without advanced blocking is skipped",
			filterLine:    `example.com#%#//scriptlet("abort-on-property-read", "alert")`,
			expectSkipped: true,
		},
		{
			name:             "scriptlet with advanced blocking",
			filterLine:       `example.com#%#//scriptlet("abort-on-property-read", "alert")`,
			advancedBlocking: true,
			wantActionType:   models.ActionScriptlet,
			wantURLFilter:    ".*",
		},
		{
			name:          "unsafe selector is skipped",
			filterLine:    "example.com##div:style(background: url(http://x))",
			expectSkipped: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parser.New()
			rules, err := p.Parse(strings.NewReader(tt.filterLine))
			require.NoError(t, err)
			require.Len(t, rules, 1)

			c := New(models.ConversionConfig{AdvancedBlocking: tt.advancedBlocking})
			entries := c.Convert(rules)

			if tt.expectSkipped {
				assert.Empty(t, entries)
				assert.Equal(t, 1, c.Stats().Skipped)
				return
			}

			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantActionType, entries[0].Action.Type)
			assert.Equal(t, tt.wantURLFilter, entries[0].Trigger.URLFilter)
		})
	}
}
