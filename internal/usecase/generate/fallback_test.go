package generate

import (
	"strings"
	"testing"

	"github.com/fundedfolk/supportbot/internal/domain"
)

func TestFallbackText_WebAndBestResult(t *testing.T) {
	web := strings.Repeat("w", 80)
	results := []domain.RetrievalResult{
		{Question: "How do I reset my password?", Answer: "Use the reset link."},
		{Question: "second result", Answer: "must not appear"},
	}

	got := fallbackText("reset help", web, results)

	wantPrefix := "Based on the available information:\n\n**Latest Website Information:**\n" + web + "..."
	if !strings.HasPrefix(got, wantPrefix) {
		t.Errorf("unexpected opening:\n%s", got)
	}
	if !strings.Contains(got, "**Related Information:**\nQ: How do I reset my password?...\nA: Use the reset link....") {
		t.Errorf("missing best example:\n%s", got)
	}
	if strings.Contains(got, "second result") {
		t.Error("fallback leaked a non-best result")
	}
	if !strings.Contains(got, "knowledge base above. \n\nFor the most up-to-date") {
		t.Error("response paragraph break malformed")
	}
	if !strings.HasSuffix(got, "contact our support team directly.") {
		t.Errorf("unexpected closing:\n%s", got)
	}
}

func TestFallbackText_WebExcerptCutAt500(t *testing.T) {
	web := strings.Repeat("w", 600)

	got := fallbackText("q", web, nil)

	if !strings.Contains(got, strings.Repeat("w", 500)+"...") {
		t.Error("web excerpt not cut at 500 characters")
	}
	if strings.Contains(got, strings.Repeat("w", 501)) {
		t.Error("web excerpt too long")
	}
}

func TestFallbackText_ShortWebIgnored(t *testing.T) {
	got := fallbackText("billing", "tiny page", nil)

	if !strings.HasPrefix(got, "I understand you're asking about: \"billing\". \n\nI'm currently experiencing technical difficulties") {
		t.Errorf("expected generic answer, got:\n%s", got)
	}
	if !strings.Contains(got, "1. Visit our website: https://fundedfolk.co") {
		t.Error("generic answer missing website pointer")
	}
	if !strings.HasSuffix(got, "Thank you for your patience!") {
		t.Errorf("unexpected closing:\n%s", got)
	}
}

func TestFallbackText_WhitespaceWebIgnored(t *testing.T) {
	web := strings.Repeat(" ", 100) + "\n\n"

	got := fallbackText("q", web, nil)

	if strings.Contains(got, "**Latest Website Information:**") {
		t.Error("whitespace-only web context surfaced")
	}
}

func TestFallbackText_ResultOnly(t *testing.T) {
	results := []domain.RetrievalResult{{Question: "Q1", Answer: "A1"}}

	got := fallbackText("q", "", results)

	if !strings.HasPrefix(got, "Based on the available information:\n\n**Related Information:**") {
		t.Errorf("unexpected opening:\n%s", got)
	}
	if strings.Contains(got, "**Latest Website Information:**") {
		t.Error("empty web context surfaced")
	}
}
