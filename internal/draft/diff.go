package draft

import "github.com/aymanbagabas/go-udiff"

// Diff labels identifying each side of the comparison.
const (
	DiffLabelCurrent = "current"
	DiffLabelEditor  = "editor"
)

// UnifiedDiff renders a unified line diff between the current draft and the
// editor's proposed rewrite. Identical inputs produce an empty string.
func UnifiedDiff(current, proposed string) string {
	return udiff.Unified(DiffLabelCurrent, DiffLabelEditor, current, proposed)
}
