package compiler

import (
	"github.com/nrudnyk/SafariConverterLib/internal/models"
)

// CreateBlockerEntry compiles one rule into one WebKit content blocker entry,
// or rejects the rule when the target format cannot represent it. The input
// rule is not mutated and no reference to it is retained; the returned entry
// is a fresh value. Safe for concurrent use.
func CreateBlockerEntry(rule *models.Rule, advancedBlocking bool) (*models.BlockerEntry, error) {
	// Authoritative gate for cross-cutting rejections; the same conditions are
	// also enforced where they naturally arise so each stage stays safe to use
	// on its own.
	if len(rule.PermittedDomains) > 0 && len(rule.RestrictedDomains) > 0 {
		return nil, ErrConflictingDomains
	}
	if rule.Replace && rule.HasContentTypes() {
		return nil, ErrReplaceModifier
	}

	trigger, err := BuildTrigger(rule)
	if err != nil {
		return nil, err
	}

	action, err := BuildAction(rule, advancedBlocking)
	if err != nil {
		return nil, err
	}

	return &models.BlockerEntry{
		Trigger: trigger,
		Action:  action,
	}, nil
}
