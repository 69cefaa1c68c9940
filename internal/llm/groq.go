// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm calls the text-generation engine used for drafting, editing
// and claim extraction. Unlike the search and image gateways, generation
// failures are returned to the caller.
package llm

import (
	"context"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pdiddy/contentforge/internal/httputil"
	"github.com/pdiddy/contentforge/pkg/types"
)

// groqChatURL is the OpenAI-compatible chat completions endpoint.
// Package-level var for test substitution.
var groqChatURL = "https://api.groq.com/openai/v1/chat/completions"

const (
	// DefaultModel is used when the configuration names no model.
	DefaultModel = "llama-3.3-70b-versatile"

	defaultMaxTokens = 6000
)

var (
	// ErrMissingAPIKey is returned when no generation key is configured.
	ErrMissingAPIKey = errors.New("generation API key not configured")

	// ErrEmptyCompletion is returned when the engine answers without text.
	ErrEmptyCompletion = errors.New("generation engine returned no completion")
)

// Engine completes a system/user prompt pair at the given temperature.
type Engine interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

// GroqClient is an Engine backed by the Groq chat completions API.
type GroqClient struct {
	apiKey    string
	model     string
	maxTokens int
	userAgent string
	client    *http.Client
	logger    *zap.SugaredLogger
}

// NewGroqClient creates a client from cfg. A nil logger is replaced by a
// no-op logger.
func NewGroqClient(cfg types.AIConfig, logger *zap.SugaredLogger) *GroqClient {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &GroqClient{
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		userAgent: cfg.UserAgent,
		client:    httputil.NewClient(cfg.Timeout),
		logger:    logger,
	}
}

// chatRequest is the request body of the chat completions endpoint.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Complete implements Engine.
func (c *GroqClient) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", errors.WithHint(ErrMissingAPIKey,
			"set ai.api_key, CONTENTFORGE_AI_API_KEY or .secrets/groq-api-key")
	}

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   c.maxTokens,
	}
	c.logger.Debugw("completion request", "model", c.model, "system_chars", len(system), "user_chars", len(user), "temperature", temperature)

	req, err := httputil.NewJSONRequest(ctx, http.MethodPost, groqChatURL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	var resp chatResponse
	if err := httputil.DoJSON(c.client, req, &resp); err != nil {
		return "", errors.Wrap(err, "calling generation API")
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	c.logger.Debugw("completion received",
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)
	return text, nil
}
