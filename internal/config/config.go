// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/roadmap-planner/internal/llm"
)

// Default values applied by MergeWithDefaults and Default
const (
	DefaultLogMode = "dev"
	DefaultPort    = 8080
)

// Config holds process-wide settings. It can be loaded from a JSON file and
// from the environment; all fields are optional.
type Config struct {
	// Generative provider
	Provider       string   `json:"provider,omitempty"`        // "openai" or "gemini"
	APIKey         string   `json:"api_key,omitempty"`         // Provider credential
	BaseURL        string   `json:"base_url,omitempty"`        // OpenAI-compatible endpoint root
	Model          string   `json:"model,omitempty"`           // Model override
	MaxTokens      int      `json:"max_tokens,omitempty"`      // Completion budget
	Temperature    *float64 `json:"temperature,omitempty"`     // Sampling temperature; nil when unset
	TimeoutSeconds int      `json:"timeout_seconds,omitempty"` // Per-request timeout

	// Runtime
	LogMode     string `json:"log_mode,omitempty"`     // "dev" or "prod"
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for run history
	Port        int    `json:"port,omitempty"`         // HTTP listen port
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Provider:       string(llm.ProviderOpenAI),
		MaxTokens:      llm.DefaultMaxTokens,
		Temperature:    llm.Float(llm.DefaultTemperature),
		TimeoutSeconds: int(llm.DefaultTimeout / time.Second),
		LogMode:        DefaultLogMode,
		Port:           DefaultPort,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. Unset or
// unparseable numeric variables are left at zero.
//
//	ROADMAP_PROVIDER, OPENAI_BASE_URL, ROADMAP_MODEL, ROADMAP_MAX_TOKENS,
//	ROADMAP_TEMPERATURE, ROADMAP_TIMEOUT_SECONDS, LOG_MODE, DATABASE_URL, PORT
//
// The API key is not read here: it depends on the provider, which flags or
// the config file may still change. Resolve picks it with EnvAPIKey.
func FromEnv() Config {
	cfg := Config{
		Provider:    strings.ToLower(strings.TrimSpace(os.Getenv("ROADMAP_PROVIDER"))),
		BaseURL:     os.Getenv("OPENAI_BASE_URL"),
		Model:       os.Getenv("ROADMAP_MODEL"),
		LogMode:     os.Getenv("LOG_MODE"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	cfg.MaxTokens = envInt("ROADMAP_MAX_TOKENS")
	cfg.TimeoutSeconds = envInt("ROADMAP_TIMEOUT_SECONDS")
	cfg.Port = envInt("PORT")
	if v := os.Getenv("ROADMAP_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = &f
		}
	}

	return cfg
}

// EnvAPIKey returns the credential for provider: GEMINI_API_KEY for gemini,
// OPENAI_API_KEY otherwise.
func EnvAPIKey(provider string) string {
	if llm.Provider(strings.ToLower(strings.TrimSpace(provider))) == llm.ProviderGemini {
		return os.Getenv("GEMINI_API_KEY")
	}
	return os.Getenv("OPENAI_API_KEY")
}

func envInt(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// Validate checks that the configuration has valid values. A missing API key
// is not an error: generation then always takes the fallback path.
func (c *Config) Validate() error {
	switch llm.Provider(strings.ToLower(c.Provider)) {
	case "", llm.ProviderOpenAI, llm.ProviderGemini:
	default:
		return fmt.Errorf("config error: unknown provider %q (want openai or gemini)", c.Provider)
	}

	if c.MaxTokens < 0 {
		return fmt.Errorf("config error: 'max_tokens' must be non-negative")
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2, got %g", *c.Temperature)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}

	switch strings.ToLower(c.LogMode) {
	case "", "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("config error: unknown log_mode %q", c.LogMode)
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// Callers layer sources by merging the higher-precedence config onto the lower one.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.LogMode == "" {
		result.LogMode = defaults.LogMode
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.MaxTokens == 0 {
		result.MaxTokens = defaults.MaxTokens
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Temperature == nil {
		result.Temperature = defaults.Temperature
	}

	return result
}

// Resolve layers flag-level overrides, the optional JSON file, the
// environment and the built-in defaults, in that order of precedence. An API
// key from the environment is chosen for the final provider.
func Resolve(overrides Config, path string) (Config, error) {
	base := FromEnv()
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		base = file.MergeWithDefaults(base)
	}
	base = base.MergeWithDefaults(Default())

	cfg := overrides.MergeWithDefaults(base)
	if cfg.APIKey == "" {
		cfg.APIKey = EnvAPIKey(cfg.Provider)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LLM builds the generative client configuration.
func (c Config) LLM() llm.Config {
	return llm.Config{
		Provider:    llm.Provider(strings.ToLower(c.Provider)),
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		Timeout:     c.Timeout(),
	}.WithDefaults()
}
