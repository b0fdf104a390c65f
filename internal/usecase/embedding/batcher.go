package embedding

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fundedfolk/supportbot/internal/domain"
	"github.com/fundedfolk/supportbot/internal/metrics"
)

// DefaultBatchSize is the number of texts sent per embedding API call.
const DefaultBatchSize = 50

// BatchedEmbedder turns a per-request embedder into a total function
// over text sets: every input yields a vector. Failed batches are
// retried one text at a time; texts that still fail get the zero
// vector, so an index build survives a flaky provider and a query
// embedding never aborts a chat request.
type BatchedEmbedder struct {
	inner      domain.Embedder
	batchSize  int
	dimensions int
	provider   string
	model      string
	logger     *zap.Logger
}

// NewBatchedEmbedder wraps inner. dimensions sets the width of
// substituted zero vectors and must match the provider's output.
func NewBatchedEmbedder(
	inner domain.Embedder, batchSize, dimensions int,
	provider, model string, logger *zap.Logger,
) *BatchedEmbedder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchedEmbedder{
		inner:      inner,
		batchSize:  batchSize,
		dimensions: dimensions,
		provider:   provider,
		model:      model,
		logger:     logger,
	}
}

// EmbedAll embeds texts in batches. The returned slice always has
// len(texts) vectors in input order; the only error is a canceled
// context.
func (b *BatchedEmbedder) EmbedAll(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += b.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("embed all: %w", err)
		}

		end := start + b.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]

		batchVectors, err := b.embedBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batchVectors...)
	}
	return vectors, nil
}

// embedBatch tries the whole batch in one call, then falls over to
// per-item requests, then to zero vectors.
func (b *BatchedEmbedder) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	if be, ok := b.inner.(domain.BatchEmbedder); ok {
		res, err := be.BatchEmbed(ctx, batch)
		if err == nil && len(res.Embeddings) == len(batch) {
			return res.Embeddings, nil
		}
		if err != nil {
			b.logger.Warn("Batch embedding failed, retrying per item",
				zap.String("provider", b.provider),
				zap.Int("batch_size", len(batch)),
				zap.Error(err),
			)
		}
	}

	vectors := make([][]float32, 0, len(batch))
	for _, text := range batch {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("embed batch: %w", err)
		}

		res, err := b.inner.Embed(ctx, text)
		if err != nil {
			b.logger.Warn("Embedding failed, substituting zero vector",
				zap.String("provider", b.provider),
				zap.Int("text_len", len(text)),
				zap.Error(err),
			)
			metrics.EmbeddingZeroVectorsTotal.WithLabelValues(b.provider, b.model).Inc()
			vectors = append(vectors, make([]float32, b.dimensions))
			continue
		}
		vectors = append(vectors, res.Embedding)
	}
	return vectors, nil
}
