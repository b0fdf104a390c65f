package sdk

import (
	"net/http"
	"time"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

// WithHTTPClient sets a custom HTTP client. Overrides WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithTimeout bounds one request end to end. Default: 60s, sized for
// a cold request that scrapes pages and walks the model fallbacks.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return optionFunc(func(c *clientConfig) {
		c.userAgent = ua
	})
}

// AskOption configures a single Ask or AskDetailed call.
type AskOption interface {
	applyAsk(*askConfig)
}

type askOptionFunc func(*askConfig)

func (f askOptionFunc) applyAsk(c *askConfig) { f(c) }

type askConfig struct {
	sessionID string
}

// WithSession pins the session id sent with the question. Without it
// the server generates a fresh id per request.
func WithSession(id string) AskOption {
	return askOptionFunc(func(c *askConfig) {
		c.sessionID = id
	})
}
