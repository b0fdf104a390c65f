package retrieval

import (
	"context"

	"github.com/fundedfolk/supportbot/internal/domain"
)

// Index is the vector index surface retrieval reads from.
type Index interface {
	Search(query []float32, k int) ([]int, []float32, error)
	Document(id int) (domain.Document, bool)
}

// Embedder vectorizes queries for index lookups.
type Embedder interface {
	EmbedAll(ctx context.Context, texts []string) ([][]float32, error)
}
