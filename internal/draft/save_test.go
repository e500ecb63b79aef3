package draft

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "draft_2025-03-14_0930.md", DefaultFilename(now))
}

func TestSaveMarkdown_AppendsTrailingNewline(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveMarkdown(dir, "final", "Final text")
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "final.md", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Final text\n", string(data))
}

func TestSaveMarkdown_KeepsExistingSuffix(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveMarkdown(dir, "story.md", "content")
	require.NoError(t, err)

	assert.Equal(t, "story.md", filepath.Base(path))
}

func TestSaveMarkdown_DefaultName(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveMarkdown(dir, "", "content")
	require.NoError(t, err)

	base := filepath.Base(path)
	assert.Regexp(t, `^draft_\d{4}-\d{2}-\d{2}_\d{4}\.md$`, base)
}

func TestSaveMarkdown_BadDirectory(t *testing.T) {
	_, err := SaveMarkdown(filepath.Join(t.TempDir(), "missing"), "x", "content")

	assert.Error(t, err)
}
