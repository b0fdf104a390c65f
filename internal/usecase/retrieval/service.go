// Package retrieval finds the knowledge base entries most relevant to
// a user question via nearest-neighbor search over the vector index.
package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fundedfolk/supportbot/internal/domain"
	"github.com/fundedfolk/supportbot/internal/metrics"
)

const (
	// TopK is how many nearest chunks the index returns before dedup.
	TopK = 5
	// MaxUniqueResults caps how many distinct conversations reach the prompt.
	MaxUniqueResults = 3
)

// Service handles semantic retrieval over the flat index.
type Service struct {
	index Index
	embed Embedder
}

// New creates a retrieval service.
func New(index Index, embed Embedder) *Service {
	return &Service{index: index, embed: embed}
}

// Search returns up to MaxUniqueResults knowledge base entries nearest
// to query, closest first. k bounds the raw index hits walked (TopK
// when non-positive); chunks of the same source conversation are
// deduplicated, which can leave fewer entries. It never searches
// deeper to backfill.
func (s *Service) Search(ctx context.Context, query string, k int) ([]domain.RetrievalResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	if k <= 0 {
		k = TopK
	}

	start := time.Now()

	vecs, err := s.embed.EmbedAll(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("embed query: no vector returned")
	}

	ids, _, err := s.index.Search(vecs[0], k)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}

	seen := make(map[int]struct{}, len(ids))
	results := make([]domain.RetrievalResult, 0, MaxUniqueResults)
	for _, id := range ids {
		doc, ok := s.index.Document(id)
		if !ok {
			continue
		}
		if _, dup := seen[doc.OriginalID]; dup {
			continue
		}
		seen[doc.OriginalID] = struct{}{}
		results = append(results, doc.Result())
		if len(results) == MaxUniqueResults {
			break
		}
	}

	metrics.RetrievalDuration.Observe(time.Since(start).Seconds())
	metrics.RetrievalResults.Observe(float64(len(results)))
	return results, nil
}
