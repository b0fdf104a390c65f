package corpus

import (
	"strings"
	"testing"
)

func TestSplitText_FitsInOneChunk(t *testing.T) {
	text := "short question about account setup"
	chunks := SplitText(text, 100)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("expected text unchanged, got %q", chunks[0])
	}
}

func TestSplitText_ExactBudgetIsSingleChunk(t *testing.T) {
	text := strings.Repeat("a", 50)
	chunks := SplitText(text, 50)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for text at exactly the budget, got %d", len(chunks))
	}
}

func TestSplitText_EveryChunkWithinBudget(t *testing.T) {
	words := make([]string, 200)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ")

	chunks := SplitText(text, 50)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 50 {
			t.Errorf("chunk %d exceeds budget: len=%d", i, len(c))
		}
	}
}

func TestSplitText_JoinReconstructsWordSequence(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog again and again and again"
	chunks := SplitText(text, 20)

	joined := strings.Join(chunks, " ")
	if joined != text {
		t.Errorf("joined chunks diverge from input:\ngot:  %q\nwant: %q", joined, text)
	}
}

func TestSplitText_OversizedWordStandsAlone(t *testing.T) {
	long := strings.Repeat("x", 40)
	text := "aa " + long + " bb"

	chunks := SplitText(text, 10)
	found := false
	for i, c := range chunks {
		if c == long {
			found = true
			continue
		}
		if len(c) > 10 {
			t.Errorf("chunk %d exceeds budget without being a lone oversized word: %q", i, c)
		}
	}
	if !found {
		t.Errorf("oversized word not preserved as its own chunk: %v", chunks)
	}
}

func TestSplitText_NormalizesInternalWhitespace(t *testing.T) {
	text := "alpha   beta\t\tgamma\ndelta " + strings.Repeat("e", 30)
	chunks := SplitText(text, 20)

	joined := strings.Join(chunks, " ")
	want := strings.Join(strings.Fields(text), " ")
	if joined != want {
		t.Errorf("whitespace not collapsed to single spaces:\ngot:  %q\nwant: %q", joined, want)
	}
}
