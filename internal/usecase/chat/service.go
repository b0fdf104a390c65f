// Package chat orchestrates one support query end to end: retrieve
// similar QA examples, then generate the reply.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fundedfolk/supportbot/internal/domain"
	logpkg "github.com/fundedfolk/supportbot/internal/logger"
	"github.com/fundedfolk/supportbot/internal/metrics"
	"github.com/fundedfolk/supportbot/internal/usecase/retrieval"
)

// Service answers support queries.
type Service struct {
	retriever Retriever
	generator Generator
	logger    *zap.Logger
}

// New creates a chat service.
func New(retriever Retriever, generator Generator, logger *zap.Logger) *Service {
	return &Service{retriever: retriever, generator: generator, logger: logger}
}

// Ask answers one support query. A degraded offline answer is still a
// success; an unready index is not and propagates to the caller.
func (s *Service) Ask(ctx context.Context, query string) (domain.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return domain.Answer{}, domain.ErrEmptyQuery
	}
	start := time.Now()

	results, err := s.retriever.Search(ctx, query, retrieval.TopK)
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("unknown", "error").Inc()
		return domain.Answer{}, fmt.Errorf("retrieve: %w", err)
	}

	resp, err := s.generator.Respond(ctx, query, results)
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("unknown", "error").Inc()
		return domain.Answer{}, err
	}

	answer := domain.Answer{
		Text:        resp.Text,
		Model:       resp.Model,
		Complexity:  resp.Complexity,
		ResultCount: len(results),
		Degraded:    resp.Degraded,
		Elapsed:     time.Since(start),
	}

	status := "success"
	if answer.Degraded {
		status = "degraded"
	}
	metrics.ChatRequestsTotal.WithLabelValues(string(answer.Complexity), status).Inc()
	metrics.ChatRequestDuration.WithLabelValues(string(answer.Complexity)).Observe(answer.Elapsed.Seconds())

	// Request-scoped logger carries the request id on the HTTP path.
	logpkg.FromContext(ctx, s.logger).Info("chat answered",
		zap.String("complexity", string(answer.Complexity)),
		zap.String("model", answer.Model),
		zap.Int("results", answer.ResultCount),
		zap.Bool("degraded", answer.Degraded),
		zap.Duration("elapsed", answer.Elapsed))

	return answer, nil
}
