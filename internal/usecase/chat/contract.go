package chat

import (
	"context"

	"github.com/fundedfolk/supportbot/internal/domain"
	"github.com/fundedfolk/supportbot/internal/usecase/generate"
)

// Retriever finds the QA examples most similar to a query.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]domain.RetrievalResult, error)
}

// Generator produces the answer text for a query and its retrieved
// examples.
type Generator interface {
	Respond(ctx context.Context, query string, results []domain.RetrievalResult) (generate.Response, error)
}
