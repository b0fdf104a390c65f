// Package corpus turns raw support conversations into indexable documents.
package corpus

import "strings"

// MaxChunkChars is the default character budget for a single document chunk.
const MaxChunkChars = 30000

// SplitText splits text into chunks of at most maxChars characters,
// breaking only on whitespace. Words are packed greedily: a chunk is
// flushed when the next word would push it over the budget. A single
// word longer than the budget is kept alone in its own chunk rather
// than dropped or split. Joining the chunks with single spaces
// reproduces the original word sequence.
func SplitText(text string, maxChars int) []string {
	if len(text) <= maxChars {
		return []string{text}
	}

	var chunks []string
	var current []string
	length := 0

	for _, word := range strings.Fields(text) {
		wordLen := len(word) + 1 // account for the joining space
		if length+wordLen > maxChars && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			length = 0
		}
		current = append(current, word)
		length += wordLen
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
