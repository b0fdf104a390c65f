package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// Client is the supportbot API client.
type Client struct {
	baseURL   string
	hc        *http.Client
	userAgent string
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("supportbot: base URL required")
	}

	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		hc:        hc,
		userAgent: cfg.userAgent,
	}, nil
}

// Wire DTOs mirror the HTTP API bodies.
type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	Response  string `json:"response"`
	ModelUsed string `json:"model_used"`
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

type chatDetailedResponse struct {
	chatResponse
	Complexity         string `json:"complexity"`
	SearchResultsCount int    `json:"search_results_count"`
	ProcessingTimeMS   int64  `json:"processing_time_ms"`
}

type healthResponse struct {
	Status         string `json:"status"`
	IndexLoaded    bool   `json:"index_loaded"`
	DocumentsCount int    `json:"documents_count"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Ask sends one question and returns the answer.
func (c *Client) Ask(ctx context.Context, message string, opts ...AskOption) (Answer, error) {
	req := c.newChatRequest(message, opts)

	var resp chatResponse
	if err := c.post(ctx, "/chat", req, &resp); err != nil {
		return Answer{}, err
	}
	return Answer{
		Text:      resp.Response,
		Model:     resp.ModelUsed,
		SessionID: resp.SessionID,
		Status:    resp.Status,
	}, nil
}

// AskDetailed sends one question and returns the answer with routing
// diagnostics: the complexity verdict, how many knowledge base entries
// fed the prompt, and the server-side processing time.
func (c *Client) AskDetailed(ctx context.Context, message string, opts ...AskOption) (DetailedAnswer, error) {
	req := c.newChatRequest(message, opts)

	var resp chatDetailedResponse
	if err := c.post(ctx, "/chat/detailed", req, &resp); err != nil {
		return DetailedAnswer{}, err
	}
	return DetailedAnswer{
		Answer: Answer{
			Text:      resp.Response,
			Model:     resp.ModelUsed,
			SessionID: resp.SessionID,
			Status:    resp.Status,
		},
		Complexity:     resp.Complexity,
		SearchResults:  resp.SearchResultsCount,
		ProcessingTime: time.Duration(resp.ProcessingTimeMS) * time.Millisecond,
	}, nil
}

// Health returns the service health snapshot. The endpoint always
// answers 200; degradation shows up in the report fields.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var resp healthResponse
	if err := c.get(ctx, "/health", &resp); err != nil {
		return Health{}, err
	}
	return Health{
		Status:         resp.Status,
		IndexLoaded:    resp.IndexLoaded,
		DocumentsCount: resp.DocumentsCount,
	}, nil
}

func (c *Client) newChatRequest(message string, opts []AskOption) chatRequest {
	var cfg askConfig
	for _, o := range opts {
		o.applyAsk(&cfg)
	}
	return chatRequest{Message: message, SessionID: cfg.sessionID}
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("supportbot: encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("supportbot: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("supportbot: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("supportbot: decode response: %w", err)
	}
	return nil
}

// apiError turns a non-2xx response into an *APIError, keeping the
// server's detail message when the body parses.
func (c *Client) apiError(resp *http.Response) error {
	detail := http.StatusText(resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var body errorResponse
		if json.Unmarshal(raw, &body) == nil && body.Detail != "" {
			detail = body.Detail
		}
	}

	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}
