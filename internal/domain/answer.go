package domain

import "time"

// Complexity is the classifier verdict for a query.
type Complexity string

const (
	// ComplexitySimple routes the query to the cheap model tier.
	ComplexitySimple Complexity = "simple"
	// ComplexityComplex routes the query to the stronger model tier.
	ComplexityComplex Complexity = "complex"
)

// FallbackModel is the model name reported when every provider model
// failed and the templated offline answer was served instead.
const FallbackModel = "offline-fallback"

// Answer is the structured outcome of one chat query.
type Answer struct {
	Text        string
	Model       string // model that produced Text, or FallbackModel
	Complexity  Complexity
	ResultCount int // retrieved examples fed into the prompt
	Degraded    bool
	Elapsed     time.Duration
}
