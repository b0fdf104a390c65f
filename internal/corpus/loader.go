package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fundedfolk/supportbot/internal/domain"
)

const (
	// ContinuationPrefix marks the question of every chunk after the first.
	ContinuationPrefix = "[Continued] "

	answerMarker = "Answer: "

	roleUser      = "user"
	roleAssistant = "assistant"
)

// Message is one turn of a recorded conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Record is one raw conversation from the corpus file.
type Record struct {
	Messages []Message `json:"messages"`
}

// ReadRecords parses the corpus JSON file: an ordered array of records,
// each holding a messages list.
func ReadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCorpusNotFound, path)
		}
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	return records, nil
}

// PrepareDocuments flattens records into indexable documents. Per record
// only the last user message and the last assistant message survive;
// records missing either role (or carrying empty content) are skipped.
// Oversized Q/A pairs are chunked, all pieces sharing the record's
// original id with chunk_index counting up from 0. Document ids are
// dense across the whole corpus.
func PrepareDocuments(records []Record, maxChars int) []domain.Document {
	if maxChars <= 0 {
		maxChars = MaxChunkChars
	}

	var documents []domain.Document
	docID := 0

	for originalID, record := range records {
		question, answer := lastPair(record.Messages)
		if question == "" || answer == "" {
			continue
		}

		combined := combine(question, answer)
		if len(combined) <= maxChars {
			documents = append(documents, domain.Document{
				ID:           docID,
				OriginalID:   originalID,
				ChunkIndex:   0,
				Question:     question,
				Answer:       answer,
				CombinedText: combined,
			})
			docID++
			continue
		}

		for chunkIndex, chunk := range SplitText(combined, maxChars) {
			chunkQuestion := question
			if chunkIndex > 0 {
				chunkQuestion = ContinuationPrefix + question
			}
			chunkAnswer := answerOf(chunk)
			documents = append(documents, domain.Document{
				ID:           docID,
				OriginalID:   originalID,
				ChunkIndex:   chunkIndex,
				Question:     chunkQuestion,
				Answer:       chunkAnswer,
				CombinedText: combine(chunkQuestion, chunkAnswer),
			})
			docID++
		}
	}

	return documents
}

// lastPair extracts the last user and assistant contents from a record.
// Earlier turns are discarded.
func lastPair(messages []Message) (question, answer string) {
	for _, msg := range messages {
		switch msg.Role {
		case roleUser:
			question = msg.Content
		case roleAssistant:
			answer = msg.Content
		}
	}
	return question, answer
}

func combine(question, answer string) string {
	return "Question: " + question + "\nAnswer: " + answer
}

// answerOf returns the text after the first answer marker, or the whole
// chunk when the marker fell into an earlier chunk.
func answerOf(chunk string) string {
	if idx := strings.Index(chunk, answerMarker); idx >= 0 {
		return chunk[idx+len(answerMarker):]
	}
	return chunk
}
