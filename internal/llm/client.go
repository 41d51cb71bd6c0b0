package llm

import (
	"context"
)

// Message roles accepted by chat-completion endpoints
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is an abstraction over generative text providers
type Client interface {
	// Complete issues exactly one request and returns the raw reply text.
	// An empty model selects the configured default.
	Complete(ctx context.Context, messages []Message, model string) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a client for cfg.Provider. A missing API key is not an
// error here; it surfaces as a ConfigurationError from Complete.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	cfg = cfg.WithDefaults()

	switch cfg.Provider {
	case ProviderGemini:
		c, err := NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	default:
		return nil, &ConfigurationError{Message: "unknown provider " + string(cfg.Provider)}
	}
}
