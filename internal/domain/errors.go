package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery signals a blank or whitespace-only query.
	ErrEmptyQuery = errors.New("empty query")
	// ErrIndexNotReady signals a query arriving before the index was built or loaded.
	ErrIndexNotReady = errors.New("index not ready")
	// ErrCorpusNotFound signals a missing conversation corpus file.
	ErrCorpusNotFound = errors.New("corpus file not found")

	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmbeddingQuotaExceeded signals an exhausted embedding token budget.
	ErrEmbeddingQuotaExceeded = errors.New("embedding quota exceeded")

	// ErrThrottled signals a 429 from the completion provider.
	ErrThrottled = errors.New("completion throttled")
	// ErrCompletionProviderError signals a non-throttling completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrAllModelsUnavailable signals that the primary and every fallback model failed.
	ErrAllModelsUnavailable = errors.New("all models unavailable")
)

// ProviderStatusError wraps a provider sentinel with the HTTP status the
// provider returned, for logs and retry decisions.
type ProviderStatusError struct {
	Sentinel error
	Status   int
}

func (e *ProviderStatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Sentinel.Error(), e.Status)
}

func (e *ProviderStatusError) Unwrap() error { return e.Sentinel }

// NewProviderStatusError wraps sentinel with an HTTP status code.
func NewProviderStatusError(sentinel error, status int) error {
	return &ProviderStatusError{Sentinel: sentinel, Status: status}
}
