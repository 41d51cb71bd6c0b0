package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const chatCompletionsPath = "/chat/completions"

// OpenAIClient implements Client for OpenAI-compatible chat-completion endpoints
type OpenAIClient struct {
	config     Config
	httpClient *http.Client
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewOpenAIClient creates a client with its own transport
func NewOpenAIClient(cfg Config) *OpenAIClient {
	cfg = cfg.WithDefaults()

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &OpenAIClient{
		config:     cfg,
		httpClient: &http.Client{Transport: tr, Timeout: cfg.Timeout},
	}
}

// NewOpenAIClientWithHTTPClient is intended for tests; it avoids network access by using a custom RoundTripper.
func NewOpenAIClientWithHTTPClient(cfg Config, httpClient *http.Client) *OpenAIClient {
	c := NewOpenAIClient(cfg)
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

// Complete sends one chat-completion request and returns choices[0].message.content
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message, model string) (string, error) {
	if strings.TrimSpace(c.config.APIKey) == "" {
		return "", &ConfigurationError{Message: "OpenAI API key not configured"}
	}
	if model == "" {
		model = c.config.Model
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(chatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.temperature(),
	}); err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + chatCompletionsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", &TransportError{Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", &TransportError{Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &APIError{StatusCode: resp.StatusCode, Message: "malformed response body: " + err.Error()}
	}
	if len(out.Choices) == 0 {
		return "", &APIError{StatusCode: resp.StatusCode, Message: "response contained no choices"}
	}
	return out.Choices[0].Message.Content, nil
}

// Close releases idle connections
func (c *OpenAIClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// errorMessage pulls error.message out of a failure body
func errorMessage(raw []byte) string {
	var body errorResponse
	if err := json.Unmarshal(raw, &body); err == nil && strings.TrimSpace(body.Error.Message) != "" {
		return body.Error.Message
	}
	return "Unknown error"
}
