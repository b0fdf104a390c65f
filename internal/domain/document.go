package domain

// Document is the indexed unit: one chunk's worth of Q/A text plus the
// metadata linking it back to its source conversation.
type Document struct {
	ID           int    `json:"id"`
	OriginalID   int    `json:"original_id"`
	ChunkIndex   int    `json:"chunk_index"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	CombinedText string `json:"combined_text"`
}

// RetrievalResult is a read-only projection of a Document returned to
// callers, stripped of indexing metadata.
type RetrievalResult struct {
	Question     string
	Answer       string
	CombinedText string
}

// Result projects the document into its retrieval view.
func (d Document) Result() RetrievalResult {
	return RetrievalResult{
		Question:     d.Question,
		Answer:       d.Answer,
		CombinedText: d.CombinedText,
	}
}

// KeyPrefix namespaces every key this service writes to the KV store.
const KeyPrefix = "supportbot:"
