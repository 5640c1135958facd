package compiler

import (
	"strings"

	"github.com/nrudnyk/SafariConverterLib/internal/models"
)

// BuildDomainConstraints converts a rule's permitted and restricted domain
// sets into the trigger's if-domain/unless-domain fields. The two fields are
// mutually exclusive in the WebKit format; a rule supplying both directions
// is ambiguous and rejected rather than merged.
func BuildDomainConstraints(permitted, restricted []string) (ifDomain, unlessDomain []string, err error) {
	switch {
	case len(permitted) > 0 && len(restricted) > 0:
		return nil, nil, ErrConflictingDomains

	case len(restricted) > 0:
		return nil, normalizeDomains(restricted), nil

	case len(permitted) == 1 && permitted[0] == models.AnyDomainWildcard:
		return ExpandAnyDomainWildcard(), nil, nil

	case len(permitted) > 0:
		return normalizeDomains(permitted), nil, nil
	}

	return nil, nil, nil
}

// normalizeDomains lower-cases and trims every domain
func normalizeDomains(domains []string) []string {
	result := make([]string, len(domains))
	for i, d := range domains {
		result[i] = strings.ToLower(strings.TrimSpace(d))
	}
	return result
}
