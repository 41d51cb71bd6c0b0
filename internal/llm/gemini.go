package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config Config
}

// NewGeminiClient creates a new Gemini client. Without an API key the
// returned client fails every Complete call with a ConfigurationError.
func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	cfg = cfg.WithDefaults()
	if strings.TrimSpace(cfg.APIKey) == "" {
		return &GeminiClient{config: cfg}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, &ConfigurationError{Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{
		client: client,
		config: cfg,
	}, nil
}

// Complete maps system messages to the system instruction and sends the rest as parts
func (c *GeminiClient) Complete(ctx context.Context, messages []Message, model string) (string, error) {
	if c.client == nil {
		return "", &ConfigurationError{Message: "Gemini API key not configured"}
	}
	if model == "" {
		model = c.config.Model
	}

	gm := c.client.GenerativeModel(model)
	gm.SetTemperature(float32(c.config.temperature()))
	gm.SetMaxOutputTokens(int32(c.config.MaxTokens))

	system, parts, err := splitMessages(messages)
	if err != nil {
		return "", err
	}
	if len(system) > 0 {
		gm.SystemInstruction = &genai.Content{Parts: system}
	}

	resp, err := gm.GenerateContent(ctx, parts...)
	if err != nil {
		return "", classifyGeminiError(err)
	}

	return extractTextFromResponse(resp)
}

// splitMessages separates system instructions from the parts sent as content
func splitMessages(messages []Message) (system, parts []genai.Part, err error) {
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, genai.Text(m.Content))
			continue
		}
		parts = append(parts, genai.Text(m.Content))
	}
	if len(parts) == 0 {
		return nil, nil, &ConfigurationError{Message: "no user content to send"}
	}
	return system, parts, nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func classifyGeminiError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		if msg == "" {
			msg = "Unknown error"
		}
		return &APIError{StatusCode: gerr.Code, Message: msg}
	}
	return &TransportError{Message: "failed to generate content", Cause: err}
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &APIError{StatusCode: 200, Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &APIError{StatusCode: 200, Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &APIError{StatusCode: 200, Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
