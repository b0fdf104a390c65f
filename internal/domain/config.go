package domain

// VectorConfig holds the embedding settings shared by the build and query paths.
type VectorConfig struct {
	Model         string
	Dimensions    int
	BatchSize     int
	MaxInputChars int // inputs longer than this are truncated before embedding
}

// DefaultVectorConfig returns the configuration tuned for text-embedding-3-small.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:         "text-embedding-3-small",
		Dimensions:    1536,
		BatchSize:     50,
		MaxInputChars: 30000,
	}
}

// ModelSet is the completion model selection per complexity tier. Fallbacks
// for a given query are every model in the tier order minus the primary.
type ModelSet struct {
	Simple  string
	Complex string
}

// DefaultModelSet returns the free OpenRouter model pair the service runs on.
func DefaultModelSet() ModelSet {
	return ModelSet{
		Simple:  "mistralai/mistral-7b-instruct:free",
		Complex: "google/gemma-3n-e2b-it:free",
	}
}

// Primary returns the model for a verdict.
func (m ModelSet) Primary(c Complexity) string {
	if c == ComplexityComplex {
		return m.Complex
	}
	return m.Simple
}

// All returns the tier order used for fallback iteration.
func (m ModelSet) All() []string {
	return []string{m.Complex, m.Simple}
}

// Fallbacks returns All minus the primary, preserving order.
func (m ModelSet) Fallbacks(primary string) []string {
	out := make([]string, 0, 1)
	for _, model := range m.All() {
		if model != primary {
			out = append(out, model)
		}
	}
	return out
}
