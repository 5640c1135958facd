package models

// BlockerEntry represents a single WebKit content blocker rule
type BlockerEntry struct {
	Trigger Trigger `json:"trigger"`
	Action  Action  `json:"action"`
}

// Trigger defines when an entry should activate. Optional fields are omitted
// from the serialized form entirely, never emitted as null.
type Trigger struct {
	URLFilter                string   `json:"url-filter"`
	URLFilterIsCaseSensitive *bool    `json:"url-filter-is-case-sensitive,omitempty"`
	IfDomain                 []string `json:"if-domain,omitempty"`
	UnlessDomain             []string `json:"unless-domain,omitempty"`
	ResourceType             []string `json:"resource-type,omitempty"`
	LoadType                 []string `json:"load-type,omitempty"`

	// Reserved for optimizer use; the compiler never sets it
	Regex string `json:"regex,omitempty"`
}

// Action defines what happens when a trigger matches. Exactly the fields
// relevant to Type are populated.
type Action struct {
	Type           string `json:"type"`
	Selector       string `json:"selector,omitempty"`
	CSS            string `json:"css,omitempty"`
	Script         string `json:"script,omitempty"`
	Scriptlet      string `json:"scriptlet,omitempty"`
	ScriptletParam string `json:"scriptletParam,omitempty"`
}

// Action type constants
const (
	ActionBlock               = "block"
	ActionCSSDisplayNone      = "css-display-none"
	ActionCSS                 = "css"
	ActionScript              = "script"
	ActionScriptlet           = "scriptlet"
	ActionIgnorePreviousRules = "ignore-previous-rules"
)

// Resource type constants (WebKit names)
const (
	ResourceDocument   = "document"
	ResourceImage      = "image"
	ResourceStyleSheet = "style-sheet"
	ResourceScript     = "script"
	ResourceFont       = "font"
	ResourceRaw        = "raw"
	ResourceSVG        = "svg-document"
	ResourceMedia      = "media"
	ResourcePopup      = "popup"
)

// Load type constants
const (
	LoadFirstParty = "first-party"
	LoadThirdParty = "third-party"
)
