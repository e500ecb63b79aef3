// Package draft holds the working draft state and the pure text utilities
// that operate on it: editor-response parsing, diff rendering, and saving.
package draft

// State is the working state of one drafting session.
//
// Each turn replaces the state wholesale rather than mutating it in place;
// a State is never shared between sessions.
type State struct {
	// Content is the current working draft.
	Content string
	// Suggestions is the editor's critique from the most recent review.
	Suggestions string
	// Rewritten is the editor's proposed replacement draft from the most
	// recent review. Empty when the editor response could not be parsed.
	Rewritten string
	// Iteration counts completed creator turns.
	Iteration int
	// Done is set only by an explicit finish action.
	Done bool
}
