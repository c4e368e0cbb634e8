package llm

import (
	"context"
	"fmt"
)

// Provider constants for LLM provider selection.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds LLM client configuration.
type Config struct {
	Provider string // "openai" or "anthropic"
	APIKey   string // Required: API key for the provider
	BaseURL  string // Optional: custom API endpoint
	Model    string // Optional: provider default when empty
}

// Completer turns a single prompt into raw generated text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Model() string
}

// CompletionRequest is one prompt with its sampling limits.
type CompletionRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature *float64 // nil = model default, explicit 0 = deterministic
}

// CompletionResponse carries the generated text verbatim.
type CompletionResponse struct {
	Text             string
	FinishReason     string // "stop", "length", ...
	PromptTokens     int
	CompletionTokens int
}

// NewCompleter creates a Completer for cfg.Provider. Defaults to OpenAI.
func NewCompleter(cfg Config) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}

	switch provider {
	case ProviderOpenAI:
		return newOpenAIClient(cfg), nil
	case ProviderAnthropic:
		return newAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

func Temp(t float64) *float64 {
	return &t
}
