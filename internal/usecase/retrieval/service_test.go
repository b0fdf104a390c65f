package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/fundedfolk/supportbot/internal/domain"
)

// --- Mocks ---

type mockIndex struct {
	docs      []domain.Document
	searchIDs []int
	searchErr error
	lastK     int
}

func (m *mockIndex) Search(_ []float32, k int) ([]int, []float32, error) {
	m.lastK = k
	if m.searchErr != nil {
		return nil, nil, m.searchErr
	}
	dists := make([]float32, len(m.searchIDs))
	for i := range dists {
		dists[i] = float32(i)
	}
	return m.searchIDs, dists, nil
}

func (m *mockIndex) Document(id int) (domain.Document, bool) {
	if id < 0 || id >= len(m.docs) {
		return domain.Document{}, false
	}
	return m.docs[id], true
}

type mockEmbedder struct {
	err    error
	called bool
}

func (m *mockEmbedder) EmbedAll(_ context.Context, texts []string) ([][]float32, error) {
	m.called = true
	if m.err != nil {
		return nil, m.err
	}
	vecs := make([][]float32, len(texts))
	for i := range vecs {
		vecs[i] = []float32{0.1, 0.2}
	}
	return vecs, nil
}

func doc(originalID int, question string) domain.Document {
	return domain.Document{
		OriginalID:   originalID,
		Question:     question,
		Answer:       "answer for " + question,
		CombinedText: "Question: " + question,
	}
}

// --- Tests ---

func TestSearch_ReturnsNearestDocuments(t *testing.T) {
	idx := &mockIndex{
		docs:      []domain.Document{doc(10, "first"), doc(11, "second"), doc(12, "third")},
		searchIDs: []int{1, 0, 2},
	}
	embed := &mockEmbedder{}
	svc := New(idx, embed)

	results, err := svc.Search(context.Background(), "how do refunds work?", TopK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !embed.called {
		t.Error("expected query to be embedded")
	}
	if idx.lastK != TopK {
		t.Errorf("expected index searched with k=%d, got %d", TopK, idx.lastK)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Question != "second" || results[1].Question != "first" {
		t.Errorf("results not in index order: %+v", results)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := New(&mockIndex{}, &mockEmbedder{})

	for _, query := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Search(context.Background(), query, TopK); !errors.Is(err, domain.ErrEmptyQuery) {
			t.Errorf("query %q: expected ErrEmptyQuery, got %v", query, err)
		}
	}
}

func TestSearch_DedupesChunksOfSameConversation(t *testing.T) {
	idx := &mockIndex{
		docs: []domain.Document{
			doc(7, "chunk one"),
			doc(7, "chunk two"),
			doc(8, "different"),
		},
		searchIDs: []int{0, 1, 2},
	}
	svc := New(idx, &mockEmbedder{})

	results, err := svc.Search(context.Background(), "query", TopK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 deduplicated results, got %d", len(results))
	}
	if results[0].Question != "chunk one" {
		t.Errorf("expected first chunk kept, got %q", results[0].Question)
	}
	if results[1].Question != "different" {
		t.Errorf("expected distinct document second, got %q", results[1].Question)
	}
}

func TestSearch_CapsAtMaxUniqueResults(t *testing.T) {
	idx := &mockIndex{
		docs: []domain.Document{
			doc(0, "q0"), doc(1, "q1"), doc(2, "q2"), doc(3, "q3"), doc(4, "q4"),
		},
		searchIDs: []int{0, 1, 2, 3, 4},
	}
	svc := New(idx, &mockEmbedder{})

	results, err := svc.Search(context.Background(), "query", TopK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != MaxUniqueResults {
		t.Fatalf("expected %d results, got %d", MaxUniqueResults, len(results))
	}
}

func TestSearch_DedupDoesNotBackfill(t *testing.T) {
	// Five hits collapse to two documents; retrieval must not search
	// again to fill the remaining slot.
	idx := &mockIndex{
		docs: []domain.Document{
			doc(1, "a0"), doc(1, "a1"), doc(1, "a2"), doc(2, "b0"), doc(2, "b1"),
		},
		searchIDs: []int{0, 1, 2, 3, 4},
	}
	svc := New(idx, &mockEmbedder{})

	results, err := svc.Search(context.Background(), "query", TopK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestSearch_IndexNotReady(t *testing.T) {
	idx := &mockIndex{searchErr: domain.ErrIndexNotReady}
	svc := New(idx, &mockEmbedder{})

	_, err := svc.Search(context.Background(), "query", TopK)
	if !errors.Is(err, domain.ErrIndexNotReady) {
		t.Fatalf("expected ErrIndexNotReady, got %v", err)
	}
}

func TestSearch_EmbedErrorPropagates(t *testing.T) {
	embedErr := errors.New("provider down")
	svc := New(&mockIndex{}, &mockEmbedder{err: embedErr})

	_, err := svc.Search(context.Background(), "query", TopK)
	if !errors.Is(err, embedErr) {
		t.Fatalf("expected embed error, got %v", err)
	}
}
