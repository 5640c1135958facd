package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/nrudnyk/SafariConverterLib/internal/models"
)

// Parser parses ABP/AdGuard filter lists into rule values for the compiler
type Parser struct {
	stats Stats
}

// Stats tracks parsing statistics
type Stats struct {
	Total       int
	Network     int
	Cosmetic    int
	Allowlist   int
	Comments    int
	Unsupported int
	SkipReasons map[string]int
}

// SkipReason constants
const (
	SkipHTMLFilter     = "html-filter (##^)"
	SkipUnsupportedOpt = "unsupported-option (redirect, csp, etc)"
	SkipEmptySelector  = "empty-selector"
	SkipEmptyPattern   = "empty-pattern"
)

// New creates a new parser
func New() *Parser {
	return &Parser{
		stats: Stats{
			SkipReasons: make(map[string]int),
		},
	}
}

// Stats returns parsing statistics
func (p *Parser) Stats() Stats {
	return p.stats
}

// skip records a skipped line with reason
func (p *Parser) skip(reason string) *models.Rule {
	p.stats.Unsupported++
	p.stats.SkipReasons[reason]++
	return nil
}

// Parse reads filter content and returns parsed rules
func (p *Parser) Parse(r io.Reader) ([]models.Rule, error) {
	var rules []models.Rule
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		p.stats.Total++

		// Comments and list headers
		if strings.HasPrefix(line, "!") || strings.HasPrefix(line, "[") {
			p.stats.Comments++
			continue
		}

		rule := p.parseLine(line)
		if rule == nil {
			continue
		}

		switch rule.Type {
		case models.RuleTypeNetwork:
			p.stats.Network++
		case models.RuleTypeCosmetic:
			p.stats.Cosmetic++
		}
		if rule.Allowlist {
			p.stats.Allowlist++
		}

		rules = append(rules, *rule)
	}

	return rules, scanner.Err()
}

// cosmeticMarkers in match order: longest first so #@# never shadows #@?#
var cosmeticMarkers = []struct {
	marker    string
	kind      models.CosmeticKind
	allowlist bool
}{
	{"#@%#", models.KindScriptInject, true},
	{"#@?#", models.KindExtendedCSSHide, true},
	{"#@#", models.KindCSSHide, true},
	{"#%#", models.KindScriptInject, false},
	{"#?#", models.KindExtendedCSSHide, false},
	{"##", models.KindCSSHide, false},
}

// parseLine parses a single filter line
func (p *Parser) parseLine(line string) *models.Rule {
	// HTML filtering has no WebKit equivalent
	if strings.Contains(line, "##^") || strings.Contains(line, "#@#^") {
		return p.skip(SkipHTMLFilter)
	}

	for _, m := range cosmeticMarkers {
		if idx := strings.Index(line, m.marker); idx != -1 {
			return p.parseCosmetic(line, idx, m.marker, m.kind, m.allowlist)
		}
	}

	if strings.HasPrefix(line, "@@") {
		return p.parseNetwork(line, line[2:], true)
	}
	return p.parseNetwork(line, line, false)
}

// extendedPseudoClasses are selector constructs requiring the non-native css
// action instead of css-display-none
var extendedPseudoClasses = []string{
	":has(", ":has-text(", ":contains(", ":matches-css(",
	":matches-attr(", ":min-text-length(", ":upward(", ":xpath(",
}

// parseCosmetic parses a cosmetic (CSS/script/scriptlet) rule
func (p *Parser) parseCosmetic(line string, sepIdx int, marker string, kind models.CosmeticKind, allowlist bool) *models.Rule {
	body := line[sepIdx+len(marker):]
	if strings.TrimSpace(body) == "" {
		return p.skip(SkipEmptySelector)
	}

	rule := &models.Rule{
		Type:      models.RuleTypeCosmetic,
		Raw:       line,
		Kind:      kind,
		Allowlist: allowlist,
	}

	if sepIdx > 0 {
		rule.PermittedDomains, rule.RestrictedDomains = parseDomainList(line[:sepIdx], ",")
	}

	switch kind {
	case models.KindScriptInject:
		if name, param, ok := parseScriptlet(body); ok {
			rule.Kind = models.KindScriptletInject
			rule.Scriptlet = name
			rule.ScriptletParam = param
		} else {
			rule.Script = body
		}
	case models.KindCSSHide:
		if hasExtendedPseudo(body) {
			rule.Kind = models.KindExtendedCSSHide
		}
		rule.Selector = body
	case models.KindExtendedCSSHide:
		rule.Selector = body
	}

	return rule
}

// parseScriptlet recognizes //scriptlet("name", "args"...) bodies and splits
// the scriptlet name from its parameter text
func parseScriptlet(body string) (name, param string, ok bool) {
	const prefix = "//scriptlet("
	if !strings.HasPrefix(body, prefix) || !strings.HasSuffix(body, ")") {
		return "", "", false
	}

	args := body[len(prefix) : len(body)-1]
	name = args
	if idx := strings.Index(args, ","); idx != -1 {
		name = args[:idx]
		param = strings.TrimSpace(args[idx+1:])
	}
	name = strings.Trim(strings.TrimSpace(name), `'"`)
	if name == "" {
		return "", "", false
	}
	return name, param, true
}

func hasExtendedPseudo(selector string) bool {
	for _, pseudo := range extendedPseudoClasses {
		if strings.Contains(selector, pseudo) {
			return true
		}
	}
	return false
}

// parseNetwork parses a network rule
func (p *Parser) parseNetwork(raw, line string, allowlist bool) *models.Rule {
	rule := &models.Rule{
		Type:      models.RuleTypeNetwork,
		Raw:       raw,
		Allowlist: allowlist,
	}

	pattern := line

	// Split pattern and options on the last unescaped $, unless it belongs to
	// a regex body
	if idx := strings.LastIndex(line, "$"); idx > 0 && line[idx-1] != '\\' {
		optPart := line[idx+1:]
		if !strings.HasPrefix(optPart, "/") {
			if hasUnsupportedOptions(optPart) {
				return p.skip(SkipUnsupportedOpt)
			}
			pattern = line[:idx]
			p.applyOptions(rule, optPart)
		}
	}

	if pattern == "" {
		return p.skip(SkipEmptyPattern)
	}

	// Explicit regex rules keep their source verbatim; the compiler decides
	// whether the dialect can express it
	if strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") && len(pattern) > 2 {
		rule.RegexSource = pattern[1 : len(pattern)-1]
	} else {
		rule.Pattern = pattern
	}

	// A document allowlist scopes to its own hostname: the compiled trigger
	// matches any web-scheme URL and the domain constraint does the narrowing
	if rule.DocumentAllowlist && len(rule.PermittedDomains) == 0 {
		if host := hostnameFromPattern(rule.Pattern); host != "" {
			rule.PermittedDomains = []string{host}
		}
	}

	return rule
}

// hostnameFromPattern extracts the bare hostname from an anchored pattern,
// or returns "" when the pattern is not hostname-shaped
func hostnameFromPattern(pattern string) string {
	s := strings.TrimPrefix(pattern, "||")
	if i := strings.Index(s, "://"); i != -1 {
		s = s[i+3:]
	}
	s = strings.TrimPrefix(s, "|")

	if i := strings.IndexAny(s, "/^:?*|"); i != -1 {
		s = s[:i]
	}
	if s == "" {
		return ""
	}
	for _, ch := range s {
		if ch >= 'a' && ch <= 'z' || ch >= '0' && ch <= '9' || ch == '.' || ch == '-' {
			continue
		}
		return ""
	}
	return s
}

// applyOptions parses the $option list into the rule
func (p *Parser) applyOptions(rule *models.Rule, s string) {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		switch {
		case part == "third-party" || part == "3p":
			rule.CheckThirdParty = true
			rule.ThirdParty = true
		case part == "~third-party" || part == "~3p" || part == "first-party" || part == "1p":
			rule.CheckThirdParty = true
			rule.ThirdParty = false
		case part == "match-case":
			rule.MatchCase = true
		case part == "document" || part == "doc":
			if rule.Allowlist {
				rule.DocumentAllowlist = true
			} else {
				rule.PermittedContentTypes = append(rule.PermittedContentTypes, models.TypeDocument)
			}
		case part == "important":
			// no WebKit equivalent; dropped
		case strings.HasPrefix(part, "replace="):
			rule.Replace = true
		case strings.HasPrefix(part, "domain="):
			rule.PermittedDomains, rule.RestrictedDomains = parseDomainList(part[len("domain="):], "|")
		default:
			negated := strings.HasPrefix(part, "~")
			name := strings.TrimPrefix(part, "~")
			if ct, ok := contentTypeFor(name); ok {
				if negated {
					rule.RestrictedContentTypes = append(rule.RestrictedContentTypes, ct)
				} else {
					rule.PermittedContentTypes = append(rule.PermittedContentTypes, ct)
				}
			}
		}
	}
}

// parseDomainList splits a domain list on sep, routing ~domains to the
// restricted set. A bare * becomes the any-TLD wildcard marker.
func parseDomainList(s, sep string) (permitted, restricted []string) {
	for _, d := range strings.Split(s, sep) {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if strings.HasPrefix(d, "~") {
			restricted = append(restricted, d[1:])
		} else if d == models.AnyDomainWildcard {
			permitted = append(permitted, models.AnyDomainWildcard)
		} else {
			permitted = append(permitted, d)
		}
	}
	return permitted, restricted
}

// contentTypeFor maps an option name to a content-type flag. Types the
// compiler cannot represent are still parsed so rejection happens there with
// the right cause.
func contentTypeFor(s string) (models.ContentType, bool) {
	switch s {
	case "script":
		return models.TypeScript, true
	case "image", "img":
		return models.TypeImage, true
	case "stylesheet", "css":
		return models.TypeStylesheet, true
	case "font":
		return models.TypeFont, true
	case "media":
		return models.TypeMedia, true
	case "xmlhttprequest", "xhr":
		return models.TypeXMLHTTPRequest, true
	case "subdocument", "frame":
		return models.TypeSubdocument, true
	case "websocket":
		return models.TypeWebSocket, true
	case "ping", "beacon":
		return models.TypePing, true
	case "other":
		return models.TypeOther, true
	case "popup":
		return models.TypePopup, true
	case "object":
		return models.TypeObject, true
	case "object-subrequest":
		return models.TypeObjectSubrequest, true
	case "webrtc":
		return models.TypeWebRTC, true
	case "all":
		return models.TypeAll, true
	}
	return "", false
}

// hasUnsupportedOptions checks for options that cannot be converted at all
func hasUnsupportedOptions(s string) bool {
	unsupported := []string{
		"redirect=", "redirect-rule=",
		"csp=", "removeparam=",
		"header=", "method=", "to=",
		"permissions=", "uritransform=",
	}
	for _, u := range unsupported {
		if strings.Contains(s, u) {
			return true
		}
	}
	return false
}
