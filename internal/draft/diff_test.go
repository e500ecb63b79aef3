package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnifiedDiff_IdenticalInputs(t *testing.T) {
	text := "line one\nline two\n"

	assert.Empty(t, UnifiedDiff(text, text))
}

func TestUnifiedDiff_DisjointInputs(t *testing.T) {
	diff := UnifiedDiff("old only\n", "new only\n")

	assert.Contains(t, diff, "--- "+DiffLabelCurrent)
	assert.Contains(t, diff, "+++ "+DiffLabelEditor)
	assert.Contains(t, diff, "-old only")
	assert.Contains(t, diff, "+new only")
}

func TestUnifiedDiff_ChangedLine(t *testing.T) {
	current := "keep this\nchange me\nkeep that\n"
	proposed := "keep this\nchanged\nkeep that\n"

	diff := UnifiedDiff(current, proposed)

	assert.Contains(t, diff, "-change me")
	assert.Contains(t, diff, "+changed")
	assert.Contains(t, diff, " keep this")
}
