package models

// RuleType distinguishes the two rule families of the filter grammar
type RuleType int

const (
	RuleTypeNetwork RuleType = iota
	RuleTypeCosmetic
)

// CosmeticKind identifies the sub-kind of a cosmetic rule
type CosmeticKind int

const (
	KindCSSHide CosmeticKind = iota
	KindExtendedCSSHide
	KindScriptInject
	KindScriptletInject
)

// ContentType is a network rule content-type flag as written in filter lists
type ContentType string

const (
	TypeImage          ContentType = "image"
	TypeFont           ContentType = "font"
	TypeScript         ContentType = "script"
	TypeStylesheet     ContentType = "stylesheet"
	TypeDocument       ContentType = "document"
	TypeSubdocument    ContentType = "subdocument"
	TypeXMLHTTPRequest ContentType = "xmlhttprequest"
	TypeWebSocket      ContentType = "websocket"
	TypeMedia          ContentType = "media"
	TypePing           ContentType = "ping"
	TypeOther          ContentType = "other"
	TypePopup          ContentType = "popup"
	TypeAll            ContentType = "all"

	// Types the WebKit format cannot express at all
	TypeObject           ContentType = "object"
	TypeObjectSubrequest ContentType = "object-subrequest"
	TypeWebRTC           ContentType = "webrtc"
)

// AnyDomainWildcard is the permitted-domain sentinel meaning "match on any
// top-level domain". It has no direct WebKit equivalent and is expanded into
// an enumerated suffix list by the compiler.
const AnyDomainWildcard = "*"

// Rule is a parsed filter-list rule, fully populated by the parser. Network
// and cosmetic rules share the domain/allowlist fields; the remaining fields
// belong to one family only and are zero for the other.
type Rule struct {
	Type RuleType
	Raw  string // original filter line

	PermittedDomains  []string // rule applies only on these domains
	RestrictedDomains []string // rule never applies on these domains
	Allowlist         bool     // @@ or #@# rule

	// Network rule fields
	Pattern                string        // URL pattern (|| anchor, * wildcards, ^ separators)
	RegexSource            string        // explicit /regex/ source, slashes stripped
	PermittedContentTypes  []ContentType // in declaration order
	RestrictedContentTypes []ContentType // ~type values
	CheckThirdParty        bool          // third-party/~third-party option present
	ThirdParty             bool          // valid only when CheckThirdParty is set
	MatchCase              bool
	DocumentAllowlist      bool // @@...$document
	Replace                bool // $replace= rewrites response body

	// Cosmetic rule fields
	Kind           CosmeticKind
	Selector       string
	Script         string
	Scriptlet      string
	ScriptletParam string
}

// IsNetwork reports whether the rule is a network rule
func (r *Rule) IsNetwork() bool {
	return r.Type == RuleTypeNetwork
}

// HasContentTypes reports whether the rule carries any content-type restriction
func (r *Rule) HasContentTypes() bool {
	return len(r.PermittedContentTypes) > 0 || len(r.RestrictedContentTypes) > 0
}
