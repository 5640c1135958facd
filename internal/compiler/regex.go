package compiler

import (
	"regexp"
	"strings"
)

// WebKit compiles url-filter patterns into finite state machines and supports
// only a strict subset of regular expression syntax. Patterns using anything
// outside that subset must be rejected, not approximated.
const (
	// URLFilterAnyURL matches any URL
	URLFilterAnyURL = ".*"
	// URLFilterWebScheme matches any http/https/ws/wss prefix. Hostname-anchored
	// patterns compile to this exact string and rely on the domain constraint to
	// narrow the match; downstream consumers depend on the literal form.
	URLFilterWebScheme = `^[htpsw]+:\/\/`

	// restrSeparator stands in for the filter grammar's ^ separator
	restrSeparator = `[^%.0-9a-z_-]`
)

var (
	// Numeric quantifiers {m}, {m,}, {m,n}
	reNumericQuantifier = regexp.MustCompile(`\{[0-9]+(,[0-9]*)?\}`)
	// Word boundary assertions \b, \B
	reWordBoundary = regexp.MustCompile(`\\[bB]`)

	// Characters to escape when deriving a regex from a plain pattern
	// (* and ^ carry filter-grammar meaning and are handled separately)
	rePlainChars = regexp.MustCompile(`[.+?${}()|[\]\\]`)
	// Dangling asterisks at start/end are redundant
	reDanglingAsterisks = regexp.MustCompile(`^\*+|\*+$`)
	// Asterisk runs inside the pattern
	reAsterisks = regexp.MustCompile(`\*+`)
	// Separator placeholder
	reSeparators = regexp.MustCompile(`\^`)
)

// lookaround group prefixes the dialect forbids
var unsupportedGroups = []string{`(?=`, `(?!`, `(?<=`, `(?<!`}

// ValidateRegex reports whether a regex, as written in the source rule, is
// expressible in the WebKit content blocker dialect. The check is a syntactic
// scan: any pattern containing a forbidden token sequence is rejected even if
// a semantically equivalent safe rewrite exists. Pure and concurrency-safe.
func ValidateRegex(pattern string) bool {
	for _, g := range unsupportedGroups {
		if strings.Contains(pattern, g) {
			return false
		}
	}

	if reNumericQuantifier.MatchString(pattern) {
		return false
	}

	if reWordBoundary.MatchString(pattern) {
		return false
	}

	// Alternation outside character classes
	if containsDisjunction(pattern) {
		return false
	}

	return true
}

// containsDisjunction checks if a regex contains | outside of character classes
func containsDisjunction(pattern string) bool {
	inCharClass := false
	escaped := false

	for _, ch := range pattern {
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if ch == '[' && !inCharClass {
			inCharClass = true
			continue
		}
		if ch == ']' && inCharClass {
			inCharClass = false
			continue
		}
		if ch == '|' && !inCharClass {
			return true
		}
	}
	return false
}

// PatternToURLFilter derives a url-filter regex from a rule's URL pattern.
//
// Wildcard-only patterns match any URL. Hostname-anchored patterns (||)
// collapse to the web-scheme prefix: the dialect has no domain-boundary
// anchor, so the scheme prefix combined with the trigger's domain constraint
// reproduces the intended scope. Everything else is escaped into a
// literal/regex hybrid following the grammar's wildcard conventions.
func PatternToURLFilter(pattern string) string {
	if reDanglingAsterisks.ReplaceAllString(pattern, "") == "" {
		return URLFilterAnyURL
	}

	if strings.HasPrefix(pattern, "||") {
		return URLFilterWebScheme
	}

	s := pattern
	leftAnchor := false
	rightAnchor := false

	if strings.HasPrefix(s, "|") {
		leftAnchor = true
		s = s[1:]
	}
	if strings.HasSuffix(s, "|") {
		rightAnchor = true
		s = s[:len(s)-1]
	}

	// Escape special regex characters (except * and ^)
	reStr := rePlainChars.ReplaceAllString(s, `\$0`)

	// Convert ^ to the separator class
	reStr = reSeparators.ReplaceAllString(reStr, restrSeparator)

	// Remove dangling asterisks, convert the rest to .*
	reStr = reDanglingAsterisks.ReplaceAllString(reStr, "")
	reStr = reAsterisks.ReplaceAllString(reStr, `.*`)

	if leftAnchor {
		reStr = "^" + reStr
	}
	if rightAnchor {
		reStr = reStr + "$"
	}

	return reStr
}
