package compiler

import "errors"

// Rejection causes. Compilation of a rule either succeeds or fails with one
// of these; callers skip the offending rule and continue. Each cause is a
// distinct sentinel so tests and statistics can tell them apart, but no cause
// is fatal to a conversion run.
var (
	// ErrUnsupportedRegex means the rule's regex uses a construct the WebKit
	// content blocker dialect forbids.
	ErrUnsupportedRegex = errors.New("regex not expressible in webkit dialect")

	// ErrConflictingDomains means the rule sets both permitted and restricted
	// domains; if-domain and unless-domain are mutually exclusive.
	ErrConflictingDomains = errors.New("both permitted and restricted domains present")

	// ErrUnsupportedContentType means a permitted content type has no WebKit
	// resource-type equivalent.
	ErrUnsupportedContentType = errors.New("content type has no webkit equivalent")

	// ErrReplaceModifier means the rule rewrites response bodies, which the
	// WebKit format has no action for.
	ErrReplaceModifier = errors.New("replace rules cannot be represented")

	// ErrUnsafeSelector means the cosmetic selector contains a construct
	// unsafe for CSS injection.
	ErrUnsafeSelector = errors.New("selector contains unsafe construct")

	// ErrAdvancedBlockingDisabled means the rule needs script or scriptlet
	// injection while advanced blocking is turned off.
	ErrAdvancedBlockingDisabled = errors.New("advanced blocking features are disabled")
)
