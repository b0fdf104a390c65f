// Package supportbot re-exports the API client from pkg/sdk so the
// module path works as a direct import:
//
//	client, _ := supportbot.New("http://localhost:8000")
//	answer, _ := client.Ask(ctx, "How do I get funded?")
package supportbot

import "github.com/fundedfolk/supportbot/pkg/sdk"

// Re-exported client types. See pkg/sdk for documentation.
type (
	Client         = sdk.Client
	Answer         = sdk.Answer
	DetailedAnswer = sdk.DetailedAnswer
	Health         = sdk.Health
	APIError       = sdk.APIError
	Option         = sdk.Option
	AskOption      = sdk.AskOption
)

// Re-exported sentinel errors.
var (
	ErrBadRequest         = sdk.ErrBadRequest
	ErrServiceUnavailable = sdk.ErrServiceUnavailable
)

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	return sdk.New(baseURL, opts...)
}

// Client options.
var (
	WithHTTPClient = sdk.WithHTTPClient
	WithTimeout    = sdk.WithTimeout
	WithUserAgent  = sdk.WithUserAgent
)

// Per-call options.
var (
	WithSession = sdk.WithSession
)
