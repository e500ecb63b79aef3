package draft

import "strings"

const (
	suggestionsMarker = "### suggestions"
	rewrittenMarker   = "### rewritten"
)

// ParseEditorResponse extracts the SUGGESTIONS and REWRITTEN sections from an
// editor response. Marker search is case-insensitive, first occurrence only.
//
// When either marker is missing the whole trimmed response is returned as
// suggestions with an empty rewrite. When the markers appear in reverse order
// each field still takes the content after its own marker.
func ParseEditorResponse(text string) (suggestions, rewritten string) {
	lower := strings.ToLower(text)
	suggIdx := strings.Index(lower, suggestionsMarker)
	rewIdx := strings.Index(lower, rewrittenMarker)

	if suggIdx == -1 || rewIdx == -1 {
		return strings.TrimSpace(text), ""
	}

	if suggIdx < rewIdx {
		suggestions = text[suggIdx+len(suggestionsMarker) : rewIdx]
		rewritten = text[rewIdx+len(rewrittenMarker):]
	} else {
		rewritten = text[rewIdx+len(rewrittenMarker) : suggIdx]
		suggestions = text[suggIdx+len(suggestionsMarker):]
	}

	return trimSection(suggestions, suggestionsMarker), trimSection(rewritten, rewrittenMarker)
}

// trimSection trims whitespace and strips a leading header token that
// survived slicing.
func trimSection(section, marker string) string {
	section = strings.TrimSpace(section)
	if len(section) >= len(marker) && strings.EqualFold(section[:len(marker)], marker) {
		section = strings.TrimSpace(section[len(marker):])
	}

	return section
}
