package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openaiClient implements Client using the OpenAI chat completions API.
type openaiClient struct {
	apiKey string
	model  string
}

func (c *openaiClient) Complete(
	ctx context.Context,
	system, user string,
	temperature float64,
) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("API key required: set OPENAI_API_KEY or run 'author config set-key openai'")
	}

	client := openai.NewClient(option.WithAPIKey(c.apiKey))

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai generation failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("empty choices from OpenAI API")
	}

	return resp.Choices[0].Message.Content, nil
}
