package deep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	guard "github.com/khidma/guard"
)

const serviceName = "genai"

// TextGenerator is the external generative-text collaborator. It takes
// a prompt and returns the model's raw text output, which may or may
// not contain the JSON this package asked for.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorConfig configures the HTTP text-generation client.
type GeneratorConfig struct {
	// BaseURL is the API root, e.g. "https://api.openai.com/v1".
	BaseURL string

	// APIKey is sent as a bearer token.
	APIKey string

	// Model is the model identifier to request.
	Model string

	// Timeout bounds a single HTTP round trip.
	Timeout time.Duration
}

// DefaultGeneratorConfig returns sensible defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o-mini",
		Timeout: 15 * time.Second,
	}
}

// HTTPGenerator calls an OpenAI-compatible chat-completions endpoint.
type HTTPGenerator struct {
	config GeneratorConfig
	client *http.Client
}

// NewHTTPGenerator creates a generator client.
func NewHTTPGenerator(cfg GeneratorConfig) *HTTPGenerator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeneratorConfig().BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeneratorConfig().Model
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultGeneratorConfig().Timeout
	}
	return &HTTPGenerator{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt and returns the model's text output.
func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       g.config.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("genai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("genai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.config.APIKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", guard.WrapNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", guard.WrapNetworkError(err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(data)
		if len(msg) > 256 {
			msg = msg[:256]
		}
		return "", guard.NewUpstreamError(serviceName, fmt.Sprintf("http_%d", resp.StatusCode), msg).
			WithStatusCode(resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", guard.ErrMalformedResponse, err)
	}
	if parsed.Error != nil {
		return "", guard.NewUpstreamError(serviceName, parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", guard.ErrMalformedResponse)
	}

	return parsed.Choices[0].Message.Content, nil
}
