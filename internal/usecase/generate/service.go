// Package generate assembles the support prompt from live site
// context and retrieved examples and produces the final answer text,
// degrading to a templated offline answer when every model is down.
package generate

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fundedfolk/supportbot/internal/domain"
	"github.com/fundedfolk/supportbot/internal/metrics"
	"github.com/fundedfolk/supportbot/internal/usecase/complexity"
)

// Service turns a query plus retrieved examples into an answer.
type Service struct {
	pages  PageFetcher
	router Router
	logger *zap.Logger
}

// New creates a generation service.
func New(pages PageFetcher, router Router, logger *zap.Logger) *Service {
	return &Service{pages: pages, router: router, logger: logger}
}

// Response is the outcome of one generation.
type Response struct {
	Text       string
	Model      string // serving model, or domain.FallbackModel
	Complexity domain.Complexity
	Degraded   bool
}

// Respond classifies the query, assembles the prompt, and asks the
// model router for a completion. When every model is unavailable the
// response degrades to the offline answer instead of failing; context
// cancellation still propagates as an error.
func (s *Service) Respond(ctx context.Context, query string, results []domain.RetrievalResult) (Response, error) {
	verdict := complexity.Classify(query)
	webContext := s.webContext(ctx, query)
	prompt := buildPrompt(query, webContext, renderExamples(results))

	text, model, err := s.router.Generate(ctx, prompt, verdict)
	if err != nil {
		if !errors.Is(err, domain.ErrAllModelsUnavailable) {
			return Response{}, err
		}
		metrics.ChatFallbacksTotal.Inc()
		s.logger.Warn("all completion models unavailable, serving offline answer",
			zap.String("complexity", string(verdict)))
		return Response{
			Text:       fallbackText(query, webContext, results),
			Model:      domain.FallbackModel,
			Complexity: verdict,
			Degraded:   true,
		}, nil
	}

	return Response{Text: text, Model: model, Complexity: verdict}, nil
}
