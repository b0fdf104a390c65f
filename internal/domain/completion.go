package domain

import "context"

// CompletionRequest is a single-turn prompt sent to a chat-completion model.
type CompletionRequest struct {
	Model       string
	Prompt      string
	Temperature float32
	MaxTokens   int
	TopP        float32
}

// Completer is the chat-completion provider contract. Throttling is
// reported as an error wrapping ErrThrottled; every other failure wraps
// ErrCompletionProviderError.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
