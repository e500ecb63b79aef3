package draft

import "unicode/utf8"

// Preview truncates text to at most limit bytes for display, backing up to
// the previous rune boundary so a multi-byte character is never split, and
// appends an ellipsis when anything was cut.
func Preview(text string, limit int) string {
	if len(text) <= limit {
		return text
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}

	return text[:cut] + "..."
}
