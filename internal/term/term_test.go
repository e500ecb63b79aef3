package term

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alkime/author/internal/roles"
	"github.com/alkime/author/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCreator implements session.Creator for testing.
type mockCreator struct {
	generateResult string
	reviseResult   string
}

func (m *mockCreator) Generate(_ context.Context, _ string) (string, error) {
	return m.generateResult, nil
}

func (m *mockCreator) Revise(_ context.Context, _, _ string) (string, error) {
	return m.reviseResult, nil
}

// mockEditor implements session.Editor for testing.
type mockEditor struct {
	review roles.Review
}

func (m *mockEditor) Review(_ context.Context, _ string) (roles.Review, error) {
	return m.review, nil
}

func runSession(t *testing.T, dir, input string, creator *mockCreator, editor *mockEditor) (string, error) {
	t.Helper()

	ctrl := session.New(creator, editor)
	out := &bytes.Buffer{}
	s := New(ctrl, strings.NewReader(input), out, dir)
	err := s.Run(context.Background())

	return out.String(), err
}

func TestRun_AcceptThenFinish(t *testing.T) {
	dir := t.TempDir()
	input := strings.Join([]string{
		"a lighthouse keeper",
		"/done",
		"1", // accept rewrite
		"5", // finish
		"story.md",
	}, "\n") + "\n"

	creator := &mockCreator{generateResult: "D1"}
	editor := &mockEditor{review: roles.Review{Suggestions: "- tighten opening", Rewritten: "D1-improved"}}

	out, err := runSession(t, dir, input, creator, editor)
	require.NoError(t, err)

	assert.Contains(t, out, "WELCOME")
	assert.Contains(t, out, "- tighten opening")
	assert.Contains(t, out, "Saved")

	data, err := os.ReadFile(filepath.Join(dir, "story.md"))
	require.NoError(t, err)
	assert.Equal(t, "D1-improved\n", string(data))
}

func TestRun_DefaultFilename(t *testing.T) {
	dir := t.TempDir()
	input := "idea\n/done\n5\n\n"

	creator := &mockCreator{generateResult: "Final text"}
	editor := &mockEditor{review: roles.Review{Suggestions: "s", Rewritten: "r"}}

	out, err := runSession(t, dir, input, creator, editor)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^draft_\d{4}-\d{2}-\d{2}_\d{4}\.md$`, entries[0].Name())
}

func TestRun_EmptyIdeaSkipsSave(t *testing.T) {
	dir := t.TempDir()
	input := "/done\n"

	out, err := runSession(t, dir, input, &mockCreator{}, &mockEditor{})
	require.NoError(t, err)

	assert.Contains(t, out, "Nothing to save")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file should be created")
}

func TestRun_DiffRepresentsMenuWithoutTransition(t *testing.T) {
	dir := t.TempDir()
	input := strings.Join([]string{
		"idea",
		"/done",
		"4", // show diff
		"5", // finish
		"",
	}, "\n") + "\n"

	creator := &mockCreator{generateResult: "old line\n"}
	editor := &mockEditor{review: roles.Review{Suggestions: "s", Rewritten: "new line\n"}}

	out, err := runSession(t, dir, input, creator, editor)
	require.NoError(t, err)

	assert.Contains(t, out, "DIFF: Current vs Editor Rewritten")
	assert.Contains(t, out, "-old line")
	assert.Contains(t, out, "+new line")
	// The menu is shown again after the diff.
	assert.Equal(t, 2, strings.Count(out, "Enter 1/2/3/4/5:"))
}

func TestRun_ManualEditTriggersNewReview(t *testing.T) {
	dir := t.TempDir()
	input := strings.Join([]string{
		"idea",
		"/done",
		"2", // manual edit
		"New full draft.",
		"/done",
		"5", // finish
		"",
	}, "\n") + "\n"

	creator := &mockCreator{generateResult: "D1"}
	editor := &mockEditor{review: roles.Review{Suggestions: "s", Rewritten: "r"}}

	out, err := runSession(t, dir, input, creator, editor)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "New full draft.\n", string(data))
}

func TestRun_InputEOFExitsWithoutSaving(t *testing.T) {
	dir := t.TempDir()
	// Input ends right after the idea; no menu choice ever arrives.
	input := "idea\n/done\n"

	creator := &mockCreator{generateResult: "D1"}
	editor := &mockEditor{review: roles.Review{Suggestions: "s", Rewritten: "r"}}

	out, err := runSession(t, dir, input, creator, editor)
	require.NoError(t, err)

	assert.Contains(t, out, "Input closed. Exiting without saving.")
	// The menu is printed exactly once; exhausted input must not loop.
	assert.Equal(t, 1, strings.Count(out, "Enter 1/2/3/4/5:"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file should be created")
}

func TestRun_EOFAtFilenamePromptUsesDefault(t *testing.T) {
	dir := t.TempDir()
	// Finish is chosen explicitly but input ends before the filename line.
	input := "idea\n/done\n5\n"

	creator := &mockCreator{generateResult: "Final text"}
	editor := &mockEditor{review: roles.Review{Suggestions: "s", Rewritten: "r"}}

	out, err := runSession(t, dir, input, creator, editor)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^draft_\d{4}-\d{2}-\d{2}_\d{4}\.md$`, entries[0].Name())
}
