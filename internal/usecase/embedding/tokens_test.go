package embedding

import "testing"

func TestTokenEstimator_CountsNonZero(t *testing.T) {
	est := NewTokenEstimator()

	if got := est.Count("how do I withdraw my funds?"); got == 0 {
		t.Error("expected non-zero token estimate")
	}
	if got := est.Count(""); got != 0 {
		t.Errorf("expected 0 tokens for empty text, got %d", got)
	}
}

func TestTokenEstimator_HeuristicFallback(t *testing.T) {
	// Zero-value estimator has no encoding and must use chars/4.
	est := &TokenEstimator{}

	text := make([]byte, 400)
	for i := range text {
		text[i] = 'a'
	}
	if got := est.Count(string(text)); got != 100 {
		t.Errorf("expected 100 from chars/4 heuristic, got %d", got)
	}
}

func TestTokenEstimator_CountAllSums(t *testing.T) {
	est := &TokenEstimator{}

	texts := []string{"aaaa", "bbbbbbbb"} // 1 + 2 under chars/4
	if got := est.CountAll(texts); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}
