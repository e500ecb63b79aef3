package roles

import (
	"context"
	"fmt"

	"github.com/alkime/author/internal/draft"
	"github.com/alkime/author/internal/llm"
)

// Review is the parsed result of one editor pass.
type Review struct {
	// Suggestions is the bullet-point critique.
	Suggestions string
	// Rewritten is the proposed replacement draft; empty when the response
	// did not contain a parseable rewrite.
	Rewritten string
}

// Editor critiques a draft and proposes a rewrite.
type Editor struct {
	client      llm.Client
	temperature float64
}

// NewEditor creates an editor role over the given client. A temperature of
// zero selects the default.
func NewEditor(client llm.Client, temperature float64) *Editor {
	if temperature == 0 {
		temperature = DefaultEditorTemperature
	}

	return &Editor{client: client, temperature: temperature}
}

// Review asks the editor for suggestions and a rewrite of the draft.
func (e *Editor) Review(ctx context.Context, content string) (Review, error) {
	user := fmt.Sprintf("Here is the DRAFT between <draft> tags.\n\n<draft>\n%s\n</draft>\n", content)

	text, err := e.client.Complete(ctx, EditorSystemPrompt, user, e.temperature)
	if err != nil {
		return Review{}, fmt.Errorf("failed to review draft: %w", err)
	}

	suggestions, rewritten := draft.ParseEditorResponse(text)

	return Review{Suggestions: suggestions, Rewritten: rewritten}, nil
}
