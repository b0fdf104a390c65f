// Package router drives completion generation across a primary model
// and ordered fallbacks. Each candidate gets the full retry protocol
// with exponential backoff; models on cooldown or benched by a rate
// limit are skipped without spending retries on them.
package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fundedfolk/supportbot/internal/domain"
	"github.com/fundedfolk/supportbot/internal/metrics"
)

// Completion request parameters shared by every model call. Low
// temperature keeps support answers close to the source material.
const (
	completionTemperature = 0.2
	completionMaxTokens   = 250
	completionTopP        = 1
)

// Router selects and drives completion models for one deployment.
type Router struct {
	completer domain.Completer
	models    domain.ModelSet
	state     *State
	logger    *zap.Logger
	sleep     func(ctx context.Context, d time.Duration) error
}

// New creates a router over completer using the given model set and
// cooldown state.
func New(completer domain.Completer, models domain.ModelSet, state *State, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		completer: completer,
		models:    models,
		state:     state,
		logger:    logger,
		sleep:     sleepCtx,
	}
}

// Generate produces text for prompt, trying the tier picked by verdict
// first and then the fallback order. It returns the generated text and
// the model that produced it. When every candidate is ineligible or
// exhausted it returns ErrAllModelsUnavailable; raw provider errors
// never escape this method.
func (r *Router) Generate(ctx context.Context, prompt string, verdict domain.Complexity) (string, string, error) {
	primary := r.models.Primary(verdict)
	candidates := append([]string{primary}, r.models.Fallbacks(primary)...)

	for _, model := range candidates {
		if !r.state.Eligible(model) {
			r.logger.Debug("model on cooldown, skipping", zap.String("model", model))
			continue
		}

		text, err := r.callModel(ctx, model, prompt)
		if err == nil {
			return text, model, nil
		}
		if ctx.Err() != nil {
			return "", "", fmt.Errorf("generate: %w", ctx.Err())
		}
		r.logger.Warn("model exhausted, trying next",
			zap.String("model", model),
			zap.Error(err))
	}

	return "", "", domain.ErrAllModelsUnavailable
}

// callModel runs the per-model retry protocol: up to MaxRetries
// attempts with exponential backoff between them. A success records a
// usage cooldown. A throttle on the final attempt benches the model;
// transient failures never do.
func (r *Router) callModel(ctx context.Context, model, prompt string) (string, error) {
	req := domain.CompletionRequest{
		Model:       model,
		Prompt:      prompt,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
		TopP:        completionTopP,
	}

	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.CompletionRetriesTotal.WithLabelValues(model).Inc()
			if err := r.sleep(ctx, backoffDelay(attempt-1)); err != nil {
				return "", err
			}
		}

		text, err := r.completer.Complete(ctx, req)
		if err == nil {
			r.state.MarkUsed(model)
			metrics.CompletionRequestsTotal.WithLabelValues(model, "success").Inc()
			return text, nil
		}

		lastErr = err
		status := "error"
		if errors.Is(err, domain.ErrThrottled) {
			status = "throttled"
		}
		metrics.CompletionRequestsTotal.WithLabelValues(model, status).Inc()
		r.logger.Warn("completion attempt failed",
			zap.String("model", model),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	// Only a throttle on the last attempt benches the model; anything
	// else leaves it eligible for the next request.
	if errors.Is(lastErr, domain.ErrThrottled) {
		r.state.MarkRateLimited(model)
	}
	return "", lastErr
}
