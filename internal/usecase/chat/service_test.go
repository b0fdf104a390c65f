package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fundedfolk/supportbot/internal/domain"
	"github.com/fundedfolk/supportbot/internal/usecase/generate"
	"github.com/fundedfolk/supportbot/internal/usecase/retrieval"
)

// --- Mocks ---

type mockRetriever struct {
	results []domain.RetrievalResult
	err     error

	calls     int
	lastQuery string
	lastK     int
}

func (m *mockRetriever) Search(_ context.Context, query string, k int) ([]domain.RetrievalResult, error) {
	m.calls++
	m.lastQuery = query
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

type mockGenerator struct {
	resp  generate.Response
	err   error
	delay time.Duration

	calls       int
	lastQuery   string
	lastResults []domain.RetrievalResult
}

func (m *mockGenerator) Respond(_ context.Context, query string, results []domain.RetrievalResult) (generate.Response, error) {
	m.calls++
	m.lastQuery = query
	m.lastResults = results
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.err != nil {
		return generate.Response{}, m.err
	}
	return m.resp, nil
}

func newTestService(r *mockRetriever, g *mockGenerator) *Service {
	return New(r, g, zap.NewNop())
}

// --- Tests ---

func TestAsk_AnswersQuery(t *testing.T) {
	results := []domain.RetrievalResult{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
	}
	r := &mockRetriever{results: results}
	g := &mockGenerator{resp: generate.Response{
		Text:       "Here you go.",
		Model:      "mistralai/mistral-7b-instruct:free",
		Complexity: domain.ComplexitySimple,
	}}
	s := newTestService(r, g)

	answer, err := s.Ask(context.Background(), "what is the price?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer.Text != "Here you go." {
		t.Errorf("unexpected text: %q", answer.Text)
	}
	if answer.Model != "mistralai/mistral-7b-instruct:free" {
		t.Errorf("unexpected model: %q", answer.Model)
	}
	if answer.Complexity != domain.ComplexitySimple {
		t.Errorf("unexpected complexity: %q", answer.Complexity)
	}
	if answer.ResultCount != 2 {
		t.Errorf("expected 2 results, got %d", answer.ResultCount)
	}
	if answer.Degraded {
		t.Error("healthy answer marked degraded")
	}

	if r.lastQuery != "what is the price?" || r.lastK != retrieval.TopK {
		t.Errorf("unexpected retrieval call: query=%q k=%d", r.lastQuery, r.lastK)
	}
	if len(g.lastResults) != 2 {
		t.Errorf("generator got %d results", len(g.lastResults))
	}
}

func TestAsk_BlankQuery(t *testing.T) {
	r := &mockRetriever{}
	s := newTestService(r, &mockGenerator{})

	for _, query := range []string{"", "   ", "\n\t"} {
		if _, err := s.Ask(context.Background(), query); !errors.Is(err, domain.ErrEmptyQuery) {
			t.Errorf("query %q: expected ErrEmptyQuery, got %v", query, err)
		}
	}
	if r.calls != 0 {
		t.Errorf("retriever called %d times for blank queries", r.calls)
	}
}

func TestAsk_IndexNotReadyPropagates(t *testing.T) {
	r := &mockRetriever{err: fmt.Errorf("index search: %w", domain.ErrIndexNotReady)}
	g := &mockGenerator{}
	s := newTestService(r, g)

	_, err := s.Ask(context.Background(), "hello")
	if !errors.Is(err, domain.ErrIndexNotReady) {
		t.Fatalf("expected ErrIndexNotReady, got %v", err)
	}
	if g.calls != 0 {
		t.Error("generator called despite retrieval failure")
	}
}

func TestAsk_DegradedAnswerIsSuccess(t *testing.T) {
	r := &mockRetriever{results: []domain.RetrievalResult{{Question: "Q", Answer: "A"}}}
	g := &mockGenerator{resp: generate.Response{
		Text:       "offline text",
		Model:      domain.FallbackModel,
		Complexity: domain.ComplexityComplex,
		Degraded:   true,
	}}
	s := newTestService(r, g)

	answer, err := s.Ask(context.Background(), "hello")
	if err != nil {
		t.Fatalf("degraded answer should not error: %v", err)
	}
	if !answer.Degraded {
		t.Error("answer not marked degraded")
	}
	if answer.Model != domain.FallbackModel {
		t.Errorf("unexpected model: %q", answer.Model)
	}
}

func TestAsk_GeneratorErrorPropagates(t *testing.T) {
	r := &mockRetriever{}
	g := &mockGenerator{err: fmt.Errorf("generate: %w", context.Canceled)}
	s := newTestService(r, g)

	_, err := s.Ask(context.Background(), "hello")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAsk_MeasuresElapsed(t *testing.T) {
	r := &mockRetriever{}
	g := &mockGenerator{delay: 5 * time.Millisecond, resp: generate.Response{Text: "ok"}}
	s := newTestService(r, g)

	answer, err := s.Ask(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer.Elapsed < 5*time.Millisecond {
		t.Errorf("elapsed %v shorter than the generation took", answer.Elapsed)
	}
}
