package embedding

import "github.com/pkoukk/tiktoken-go"

// cl100k_base covers the text-embedding-3 model family.
const tokenEncoding = "cl100k_base"

// TokenEstimator approximates provider-side token counts before or
// without a usage report from the API. When the encoding cannot be
// loaded, estimates degrade to a chars/4 heuristic.
type TokenEstimator struct {
	encoding *tiktoken.Tiktoken
}

// NewTokenEstimator loads the tokenizer. Never fails; a load error just
// leaves the estimator on the heuristic path.
func NewTokenEstimator() *TokenEstimator {
	encoding, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		return &TokenEstimator{}
	}
	return &TokenEstimator{encoding: encoding}
}

// Count returns the estimated token count for one text.
func (e *TokenEstimator) Count(text string) int {
	if e.encoding == nil {
		return len(text) / 4
	}
	return len(e.encoding.Encode(text, nil, nil))
}

// CountAll sums estimated token counts over texts.
func (e *TokenEstimator) CountAll(texts []string) int {
	total := 0
	for _, text := range texts {
		total += e.Count(text)
	}
	return total
}
