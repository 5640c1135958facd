package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nrudnyk/SafariConverterLib/internal/models"
)

func TestIsSafeSelector(t *testing.T) {
	assert.True(t, IsSafeSelector(".banner"))
	assert.True(t, IsSafeSelector("div[class='ad'] > span"))
	assert.False(t, IsSafeSelector(`div { background: url(http://evil.example) }`))
	assert.False(t, IsSafeSelector(`.ad:style(background-image: url(data:...))`))
}

func TestBuildActionNetwork(t *testing.T) {
	tests := []struct {
		name     string
		rule     models.Rule
		wantType string
	}{
		{
			name:     "blocking rule",
			rule:     models.Rule{Type: models.RuleTypeNetwork},
			wantType: models.ActionBlock,
		},
		{
			name:     "allowlist rule",
			rule:     models.Rule{Type: models.RuleTypeNetwork, Allowlist: true},
			wantType: models.ActionIgnorePreviousRules,
		},
		{
			name:     "document allowlist rule",
			rule:     models.Rule{Type: models.RuleTypeNetwork, Allowlist: true, DocumentAllowlist: true},
			wantType: models.ActionIgnorePreviousRules,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := BuildAction(&tt.rule, false)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantType, action.Type)
		})
	}
}

func TestBuildActionCosmetic(t *testing.T) {
	tests := []struct {
		name             string
		rule             models.Rule
		advancedBlocking bool
		expected         models.Action
		wantErr          error
	}{
		{
			name: "css hide",
			rule: models.Rule{
				Type:     models.RuleTypeCosmetic,
				Kind:     models.KindCSSHide,
				Selector: ".banner",
			},
			expected: models.Action{Type: models.ActionCSSDisplayNone, Selector: ".banner"},
		},
		{
			name: "css hide with unsafe selector",
			rule: models.Rule{
				Type:     models.RuleTypeCosmetic,
				Kind:     models.KindCSSHide,
				Selector: `.ad { background: url(http://x) }`,
			},
			wantErr: ErrUnsafeSelector,
		},
		{
			name: "extended css hide",
			rule: models.Rule{
				Type:     models.RuleTypeCosmetic,
				Kind:     models.KindExtendedCSSHide,
				Selector: "div:has(.sponsor)",
			},
			expected: models.Action{Type: models.ActionCSS, CSS: "div:has(.sponsor)"},
		},
		{
			name: "extended css hide with unsafe selector",
			rule: models.Rule{
				Type:     models.RuleTypeCosmetic,
				Kind:     models.KindExtendedCSSHide,
				Selector: "div:has(url(x))",
			},
			wantErr: ErrUnsafeSelector,
		},
		{
			name: "css allowlist",
			rule: models.Rule{
				Type:      models.RuleTypeCosmetic,
				Kind:      models.KindCSSHide,
				Selector:  ".banner",
				Allowlist: true,
			},
			expected: models.Action{Type: models.ActionIgnorePreviousRules},
		},
		{
			name: "script inject with advanced blocking",
			rule: models.Rule{
				Type:   models.RuleTypeCosmetic,
				Kind:   models.KindScriptInject,
				Script: "window.adsDisabled=true;",
			},
			advancedBlocking: true,
			expected:         models.Action{Type: models.ActionScript, Script: "window.adsDisabled=true;"},
		},
		{
			name: "script inject without advanced blocking",
			rule: models.Rule{
				Type:   models.RuleTypeCosmetic,
				Kind:   models.KindScriptInject,
				Script: "window.adsDisabled=true;",
			},
			wantErr: ErrAdvancedBlockingDisabled,
		},
		{
			name: "script allowlist keeps payload",
			rule: models.Rule{
				Type:      models.RuleTypeCosmetic,
				Kind:      models.KindScriptInject,
				Script:    "window.adsDisabled=true;",
				Allowlist: true,
			},
			advancedBlocking: true,
			expected:         models.Action{Type: models.ActionIgnorePreviousRules, Script: "window.adsDisabled=true;"},
		},
		{
			name: "scriptlet inject with advanced blocking",
			rule: models.Rule{
				Type:           models.RuleTypeCosmetic,
				Kind:           models.KindScriptletInject,
				Scriptlet:      "abort-on-property-read",
				ScriptletParam: `"alert"`,
			},
			advancedBlocking: true,
			expected: models.Action{
				Type:           models.ActionScriptlet,
				Scriptlet:      "abort-on-property-read",
				ScriptletParam: `"alert"`,
			},
		},
		{
			name: "scriptlet inject without advanced blocking",
			rule: models.Rule{
				Type:      models.RuleTypeCosmetic,
				Kind:      models.KindScriptletInject,
				Scriptlet: "abort-on-property-read",
			},
			wantErr: ErrAdvancedBlockingDisabled,
		},
		{
			name: "scriptlet allowlist keeps payload",
			rule: models.Rule{
				Type:           models.RuleTypeCosmetic,
				Kind:           models.KindScriptletInject,
				Scriptlet:      "set-constant",
				ScriptletParam: `"ads", "false"`,
				Allowlist:      true,
			},
			advancedBlocking: true,
			expected: models.Action{
				Type:           models.ActionIgnorePreviousRules,
				Scriptlet:      "set-constant",
				ScriptletParam: `"ads", "false"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := BuildAction(&tt.rule, tt.advancedBlocking)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, action)
		})
	}
}
