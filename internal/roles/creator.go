// Package roles wraps the two language-model roles of the drafting loop:
// a creator that writes and revises, and an editor that critiques.
package roles

import (
	"context"
	"fmt"

	"github.com/alkime/author/internal/llm"
)

// Creator generates and revises drafts from user instructions.
type Creator struct {
	client      llm.Client
	temperature float64
}

// NewCreator creates a creator role over the given client. A temperature of
// zero selects the default.
func NewCreator(client llm.Client, temperature float64) *Creator {
	if temperature == 0 {
		temperature = DefaultCreatorTemperature
	}

	return &Creator{client: client, temperature: temperature}
}

// Generate writes an initial draft from the user's idea.
func (c *Creator) Generate(ctx context.Context, idea string) (string, error) {
	user := fmt.Sprintf(
		"Here is the user's suggestion: %s\n\nPlease write a story based on this suggestion.",
		idea,
	)

	text, err := c.client.Complete(ctx, CreatorSystemPrompt, user, c.temperature)
	if err != nil {
		return "", fmt.Errorf("failed to generate initial draft: %w", err)
	}

	return text, nil
}

// Revise rewrites the current draft per the user's instructions.
func (c *Creator) Revise(ctx context.Context, content, instructions string) (string, error) {
	user := fmt.Sprintf(
		"Here is the current draft between <draft> tags. Revise it per the user instructions.\n\n"+
			"<draft>\n%s\n</draft>\n\n"+
			"User instructions: %s\n\n"+
			"Return only the revised draft.",
		content, instructions,
	)

	text, err := c.client.Complete(ctx, CreatorSystemPrompt, user, c.temperature)
	if err != nil {
		return "", fmt.Errorf("failed to revise draft: %w", err)
	}

	return text, nil
}
