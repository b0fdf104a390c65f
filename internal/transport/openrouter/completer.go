// Package openrouter talks to the OpenRouter chat-completion API. The
// API is OpenAI-compatible, so the client rides on go-openai with a
// swapped base URL.
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/fundedfolk/supportbot/internal/domain"
)

// DefaultBaseURL is the OpenRouter endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// defaultTimeout bounds a single completion attempt. Retries are the
// router's job; the transport fails fast instead of hanging.
const defaultTimeout = 30 * time.Second

// Completer is a chat-completion provider backed by OpenRouter.
type Completer struct {
	client *openai.Client
	logger *zap.Logger
}

// Config holds the completion provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewCompleter creates an OpenRouter-backed completion provider.
func NewCompleter(cfg *Config) *Completer {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = baseURL
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Completer{
		client: openai.NewClientWithConfig(clientCfg),
		logger: logger,
	}
}

// Complete implements domain.Completer. The prompt is sent as a single
// user turn; throttling comes back wrapping domain.ErrThrottled so the
// router can bench the model.
func (c *Completer) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Prompt,
		}},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		TopP:        req.TopP,
	})
	if err != nil {
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response: %w", domain.ErrCompletionProviderError)
	}
	return resp.Choices[0].Message.Content, nil
}

// parseAPIError maps provider failures onto the domain sentinels: 429
// wraps ErrThrottled, everything else ErrCompletionProviderError. The
// HTTP status rides along for logs and retry decisions.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(reqErr.HTTPStatusCode, string(reqErr.Body))
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(apiErr.HTTPStatusCode, apiErr.Message)
	}

	return fmt.Errorf("completion request failed: %w", domain.ErrCompletionProviderError)
}

func statusError(status int, detail string) error {
	sentinel := domain.ErrCompletionProviderError
	if status == http.StatusTooManyRequests {
		sentinel = domain.ErrThrottled
	}
	return fmt.Errorf("completion API error: %s: %w",
		detail, domain.NewProviderStatusError(sentinel, status))
}
