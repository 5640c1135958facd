package compiler

import (
	"fmt"

	"github.com/nrudnyk/SafariConverterLib/internal/models"
)

// BuildAction assembles the action half of a blocker entry from the rule's
// kind and flags. Script and scriptlet injection are only available when
// advanced blocking is enabled; such rules are rejected otherwise.
func BuildAction(rule *models.Rule, advancedBlocking bool) (models.Action, error) {
	if rule.IsNetwork() {
		if rule.Allowlist || rule.DocumentAllowlist {
			return models.Action{Type: models.ActionIgnorePreviousRules}, nil
		}
		return models.Action{Type: models.ActionBlock}, nil
	}

	switch rule.Kind {
	case models.KindCSSHide:
		if rule.Allowlist {
			return models.Action{Type: models.ActionIgnorePreviousRules}, nil
		}
		if !IsSafeSelector(rule.Selector) {
			return models.Action{}, ErrUnsafeSelector
		}
		return models.Action{
			Type:     models.ActionCSSDisplayNone,
			Selector: rule.Selector,
		}, nil

	case models.KindExtendedCSSHide:
		if rule.Allowlist {
			return models.Action{Type: models.ActionIgnorePreviousRules}, nil
		}
		if !IsSafeSelector(rule.Selector) {
			return models.Action{}, ErrUnsafeSelector
		}
		return models.Action{
			Type: models.ActionCSS,
			CSS:  rule.Selector,
		}, nil

	case models.KindScriptInject:
		if !advancedBlocking {
			return models.Action{}, ErrAdvancedBlockingDisabled
		}
		if rule.Allowlist {
			return models.Action{
				Type:   models.ActionIgnorePreviousRules,
				Script: rule.Script,
			}, nil
		}
		return models.Action{
			Type:   models.ActionScript,
			Script: rule.Script,
		}, nil

	case models.KindScriptletInject:
		if !advancedBlocking {
			return models.Action{}, ErrAdvancedBlockingDisabled
		}
		if rule.Allowlist {
			return models.Action{
				Type:           models.ActionIgnorePreviousRules,
				Scriptlet:      rule.Scriptlet,
				ScriptletParam: rule.ScriptletParam,
			}, nil
		}
		return models.Action{
			Type:           models.ActionScriptlet,
			Scriptlet:      rule.Scriptlet,
			ScriptletParam: rule.ScriptletParam,
		}, nil

	default:
		return models.Action{}, fmt.Errorf("unknown cosmetic rule kind %d", rule.Kind)
	}
}
