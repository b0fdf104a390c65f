// Package complexity scores queries as simple or complex to pick the
// model tier. The heuristic counts indicator phrases plus shape
// signals (length, question marks, sentence count) on each side and
// lets the higher score win, biased toward the cheap tier on ties.
package complexity

import (
	"strings"
	"unicode/utf8"

	"github.com/fundedfolk/supportbot/internal/domain"
)

// complexIndicators mark queries that need the stronger model:
// explanations, comparisons, multi-part questions, and legal or
// policy detail.
var complexIndicators = []string{
	"how to", "explain", "what is the difference", "compare",
	"analysis", "detailed", "step by step", "process", "procedure",
	"requirements", "documentation", "specification", "technical", "advanced",
	"and also", "in addition", "furthermore", "moreover", "additionally",
	"if", "when", "unless", "depending on", "in case", "provided that",
	"regulation", "compliance", "legal", "contract", "agreement",
	"policy details", "terms and conditions", "refund policy",
}

// simpleIndicators mark greetings and short factual lookups.
var simpleIndicators = []string{
	"hello", "hi", "thanks", "thank you", "yes", "no", "ok", "okay",
	"what is", "where is", "when is", "who is", "which",
	"cost", "price", "how much", "contact", "phone", "email",
	"hours", "time", "location", "address",
}

// Classify scores query against both indicator sets and returns the
// winning tier. Ties go to simple so ambiguous queries stay on the
// cheap model.
func Classify(query string) domain.Complexity {
	lower := strings.ToLower(query)

	var complexScore, simpleScore int
	for _, ind := range complexIndicators {
		if strings.Contains(lower, ind) {
			complexScore++
		}
	}
	for _, ind := range simpleIndicators {
		if strings.Contains(lower, ind) {
			simpleScore++
		}
	}

	length := utf8.RuneCountInString(query)
	if length > 100 {
		complexScore++
	}
	if strings.Count(query, "?") > 1 {
		complexScore++
	}
	if strings.Count(query, ".") > 2 {
		complexScore++
	}

	if length < 50 {
		simpleScore++
	}
	if len(strings.Fields(query)) <= 3 {
		simpleScore++
	}

	if complexScore > simpleScore {
		return domain.ComplexityComplex
	}
	return domain.ComplexitySimple
}
