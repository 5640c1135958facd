package compiler

import (
	"github.com/nrudnyk/SafariConverterLib/internal/models"
)

// BuildTrigger assembles the trigger half of a blocker entry. Any stage
// failing rejects the whole rule; no partial trigger is ever returned.
func BuildTrigger(rule *models.Rule) (models.Trigger, error) {
	var trigger models.Trigger

	if rule.RegexSource != "" {
		if !ValidateRegex(rule.RegexSource) {
			return models.Trigger{}, ErrUnsupportedRegex
		}
		// A dialect-valid regex is used as written
		trigger.URLFilter = rule.RegexSource
	} else {
		trigger.URLFilter = PatternToURLFilter(rule.Pattern)
	}

	ifDomain, unlessDomain, err := BuildDomainConstraints(rule.PermittedDomains, rule.RestrictedDomains)
	if err != nil {
		return models.Trigger{}, err
	}
	trigger.IfDomain = ifDomain
	trigger.UnlessDomain = unlessDomain

	if rule.IsNetwork() {
		resourceTypes, err := BuildResourceTypes(rule)
		if err != nil {
			return models.Trigger{}, err
		}
		trigger.ResourceType = resourceTypes

		if rule.CheckThirdParty {
			if rule.ThirdParty {
				trigger.LoadType = []string{models.LoadThirdParty}
			} else {
				trigger.LoadType = []string{models.LoadFirstParty}
			}
		}

		if rule.MatchCase {
			t := true
			trigger.URLFilterIsCaseSensitive = &t
		}
	}

	return trigger, nil
}
