package compiler

import (
	"github.com/nrudnyk/SafariConverterLib/internal/models"
)

// contentTypeOrder is the canonical declaration order used when a rule
// restricts types only by exclusion (base set "all" minus ~types).
var contentTypeOrder = []models.ContentType{
	models.TypeImage,
	models.TypeFont,
	models.TypeScript,
	models.TypeStylesheet,
	models.TypeDocument,
	models.TypeSubdocument,
	models.TypeXMLHTTPRequest,
	models.TypeWebSocket,
	models.TypeMedia,
	models.TypePing,
	models.TypeOther,
	models.TypePopup,
}

// resourceTypeFor maps source content types to WebKit resource-type strings.
// Types absent from the map (object, object-subrequest, webrtc) have no
// WebKit equivalent and make the whole rule unrepresentable.
var resourceTypeFor = map[models.ContentType]string{
	models.TypeImage:          models.ResourceImage,
	models.TypeFont:           models.ResourceFont,
	models.TypeScript:         models.ResourceScript,
	models.TypeStylesheet:     models.ResourceStyleSheet,
	models.TypeDocument:       models.ResourceDocument,
	models.TypeSubdocument:    models.ResourceDocument,
	models.TypeXMLHTTPRequest: models.ResourceRaw,
	models.TypeWebSocket:      models.ResourceRaw,
	models.TypeMedia:          models.ResourceMedia,
	models.TypePing:           models.ResourceRaw,
	models.TypeOther:          models.ResourceRaw,
	models.TypePopup:          models.ResourcePopup,
}

// BuildResourceTypes maps a rule's content-type flags to the trigger's
// resource-type set, preserving declaration order. An unrestricted rule (no
// types, or the full set after exclusion) yields nil so the trigger matches
// all resources.
func BuildResourceTypes(rule *models.Rule) ([]string, error) {
	// The format has no body-rewrite action, so a replace rule can never be
	// represented no matter which types it would otherwise match.
	if rule.Replace {
		return nil, ErrReplaceModifier
	}

	permitted := rule.PermittedContentTypes
	if len(permitted) == 0 || containsType(permitted, models.TypeAll) {
		permitted = contentTypeOrder
	}

	excluded := make(map[models.ContentType]bool, len(rule.RestrictedContentTypes))
	for _, t := range rule.RestrictedContentTypes {
		excluded[t] = true
	}

	var remaining []models.ContentType
	for _, t := range permitted {
		if !excluded[t] {
			remaining = append(remaining, t)
		}
	}

	if coversAllTypes(remaining) {
		return nil, nil
	}
	if len(remaining) == 0 {
		return nil, ErrUnsupportedContentType
	}

	types := make([]string, 0, len(remaining))
	seen := make(map[string]bool, len(remaining))
	for _, t := range remaining {
		mapped, ok := resourceTypeFor[t]
		if !ok {
			return nil, ErrUnsupportedContentType
		}
		// subdocument and document both map to "document"
		if seen[mapped] {
			continue
		}
		seen[mapped] = true
		types = append(types, mapped)
	}

	return types, nil
}

func containsType(types []models.ContentType, want models.ContentType) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

// coversAllTypes reports whether the set covers every mappable content type
func coversAllTypes(types []models.ContentType) bool {
	set := make(map[models.ContentType]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	for _, t := range contentTypeOrder {
		if !set[t] {
			return false
		}
	}
	return true
}
