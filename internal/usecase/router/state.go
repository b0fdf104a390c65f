package router

import (
	"sync"
	"time"

	"github.com/fundedfolk/supportbot/internal/metrics"
)

const (
	// UsageCooldown spaces successive calls to the same free-tier model.
	UsageCooldown = 300 * time.Second
	// RateLimitCooldown benches a model after the provider throttled it.
	RateLimitCooldown = 600 * time.Second
)

// State tracks per-model usage and throttle timestamps. A fresh State
// considers every model eligible. Safe for concurrent use.
type State struct {
	mu          sync.Mutex
	lastUsed    map[string]time.Time
	rateLimited map[string]time.Time
	now         func() time.Time
}

// NewState creates an empty cooldown ledger.
func NewState() *State {
	return &State{
		lastUsed:    make(map[string]time.Time),
		rateLimited: make(map[string]time.Time),
		now:         time.Now,
	}
}

// MarkUsed records a successful call to model, starting its usage cooldown.
func (s *State) MarkUsed(model string) {
	s.mu.Lock()
	s.lastUsed[model] = s.now()
	s.mu.Unlock()
	metrics.ModelCooldownsTotal.WithLabelValues(model, "usage").Inc()
}

// MarkRateLimited records a provider throttle signal for model.
func (s *State) MarkRateLimited(model string) {
	s.mu.Lock()
	s.rateLimited[model] = s.now()
	s.mu.Unlock()
	metrics.ModelCooldownsTotal.WithLabelValues(model, "rate_limit").Inc()
}

// Eligible reports whether model may be tried now: outside its usage
// cooldown and past any rate-limit bench. A model marked at time T
// becomes eligible again exactly at T plus the cooldown.
func (s *State) Eligible(model string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if used, ok := s.lastUsed[model]; ok && now.Sub(used) < UsageCooldown {
		return false
	}
	if limited, ok := s.rateLimited[model]; ok && now.Sub(limited) < RateLimitCooldown {
		return false
	}
	return true
}
