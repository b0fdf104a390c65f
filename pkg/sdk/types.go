package sdk

import "time"

// Answer is one chat response.
type Answer struct {
	Text      string
	Model     string
	SessionID string
	Status    string
}

// DetailedAnswer extends Answer with routing diagnostics.
type DetailedAnswer struct {
	Answer
	Complexity     string
	SearchResults  int
	ProcessingTime time.Duration
}

// Health is the service health snapshot.
type Health struct {
	Status         string
	IndexLoaded    bool
	DocumentsCount int
}

// Healthy reports whether the service can answer from its knowledge base.
func (h Health) Healthy() bool {
	return h.Status == "healthy"
}
