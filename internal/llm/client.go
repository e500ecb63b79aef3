// Package llm wraps the hosted text-generation providers behind a single
// client interface so roles can be tested without network access.
package llm

import (
	"context"
	"fmt"
)

// Client is a text-generation collaborator: one prompt in, generated text out.
type Client interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

// Provider selects which hosted backend serves generation requests.
type Provider string

const (
	// ProviderAnthropic uses the Anthropic Messages API (default).
	ProviderAnthropic Provider = "anthropic"
	// ProviderOpenAI uses the OpenAI chat completions API.
	ProviderOpenAI Provider = "openai"
)

// Default model names per provider, overridable via AUTHOR_MODEL.
const (
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
	DefaultOpenAIModel    = "gpt-4o"
)

// New creates a client for the given provider. An empty model selects the
// provider default. A missing API key is not an error here; calls will fail
// with a descriptive message instead, so a session can still start.
func New(provider Provider, model, apiKey string) (Client, error) {
	switch provider {
	case ProviderAnthropic, "":
		if model == "" {
			model = DefaultAnthropicModel
		}

		return &anthropicClient{apiKey: apiKey, model: model}, nil
	case ProviderOpenAI:
		if model == "" {
			model = DefaultOpenAIModel
		}

		return &openaiClient{apiKey: apiKey, model: model}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q: must be 'anthropic' or 'openai'", provider)
	}
}
