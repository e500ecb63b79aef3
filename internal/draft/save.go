package draft

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultFilename returns the timestamp-derived default output filename,
// e.g. "draft_2025-03-14_0930.md".
func DefaultFilename(now time.Time) string {
	return now.Format("draft_2006-01-02_1504.md")
}

// SaveMarkdown writes content plus a trailing newline to a markdown file
// under dir and returns the absolute path. An empty name falls back to the
// timestamp default; a name without the .md suffix gets it appended.
func SaveMarkdown(dir, name, content string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFilename(time.Now())
	}

	if !strings.HasSuffix(strings.ToLower(name), ".md") {
		name += ".md"
	}

	path := filepath.Join(dir, name)

	//nolint:gosec // Drafts need to be readable
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("failed to save draft: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, nil //nolint:nilerr // Relative path is still a usable result
	}

	return absPath, nil
}
