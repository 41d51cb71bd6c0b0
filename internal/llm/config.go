// Package llm provides generative-service configuration and client abstractions.
// The roadmap pipeline talks to providers only through the Client interface.
package llm

import (
	"strings"
	"time"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is any OpenAI-compatible chat-completions endpoint
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Default request parameters
const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4"
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultMaxTokens     = 4096
	DefaultTemperature   = 0.7
	DefaultTimeout       = 60 * time.Second
)

// Config holds the immutable client configuration, read once at construction
type Config struct {
	Provider    Provider
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	// Temperature is nil when unset; zero is a valid deterministic setting
	Temperature *float64
	Timeout     time.Duration
}

// Float returns a pointer to v, for optional settings such as Temperature
func Float(v float64) *float64 {
	return &v
}

// DefaultConfig returns the default configuration (OpenAI-compatible endpoint)
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderOpenAI,
		BaseURL:     DefaultOpenAIBaseURL,
		Model:       DefaultOpenAIModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: Float(DefaultTemperature),
		Timeout:     DefaultTimeout,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() Config {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	cfg.BaseURL = ""
	cfg.Model = DefaultGeminiModel
	return cfg
}

// WithModel returns a copy of the config using model
func (c Config) WithModel(model string) Config {
	c.Model = model
	return c
}

// WithDefaults fills zero-valued fields from the provider defaults
func (c Config) WithDefaults() Config {
	defaults := DefaultConfig()
	if c.Provider == ProviderGemini {
		defaults = DefaultGeminiConfig()
	}
	if c.Provider == "" {
		c.Provider = defaults.Provider
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = defaults.BaseURL
	}
	if strings.TrimSpace(c.Model) == "" {
		c.Model = defaults.Model
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaults.MaxTokens
	}
	if c.Temperature == nil {
		c.Temperature = defaults.Temperature
	}
	if c.Timeout <= 0 {
		c.Timeout = defaults.Timeout
	}
	return c
}

// temperature returns the sampling temperature, falling back to the default when unset
func (c Config) temperature() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

// Validate reports a ConfigurationError when the credential is missing or the provider is unknown
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return &ConfigurationError{Message: "API key not configured"}
	}
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini, "":
		return nil
	default:
		return &ConfigurationError{Message: "unknown provider " + string(c.Provider)}
	}
}
