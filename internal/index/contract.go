package index

import "context"

// Embedder is the consumer contract the store needs at build time: one
// vector per input text, in input order. Implementations degrade
// per-item failures to zero vectors instead of failing the batch.
type Embedder interface {
	EmbedAll(ctx context.Context, texts []string) ([][]float32, error)
}
