package compiler

import "strings"

// IsSafeSelector reports whether a cosmetic selector is safe to inject.
// Selectors containing url( could load remote resources or exfiltrate data
// through the injected style sheet and are rejected outright.
func IsSafeSelector(selector string) bool {
	return !strings.Contains(selector, "url(")
}
