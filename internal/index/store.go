package index

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/fundedfolk/supportbot/internal/corpus"
	"github.com/fundedfolk/supportbot/internal/domain"
)

// Store owns the persisted (vectors, documents) pair and the in-memory
// flat index built from it. The two artifacts live side by side in one
// directory and are only ever trusted together.
type Store struct {
	dir           string
	corpusPath    string
	dim           int
	maxChunkChars int
	embedder      Embedder
	logger        *zap.Logger

	mu    sync.RWMutex
	flat  *Flat
	docs  []domain.Document
	ready bool
}

// New creates a store rooted at dir. Nothing is loaded until
// LoadOrBuild or Rebuild runs.
func New(dir, corpusPath string, dim, maxChunkChars int, embedder Embedder, logger *zap.Logger) *Store {
	return &Store{
		dir:           dir,
		corpusPath:    corpusPath,
		dim:           dim,
		maxChunkChars: maxChunkChars,
		embedder:      embedder,
		logger:        logger,
	}
}

// LoadOrBuild loads the persisted artifacts when both are present and
// consistent, otherwise runs the full build pipeline. Rebuilding is the
// only way to pick up new corpus data; there is no incremental path.
func (s *Store) LoadOrBuild(ctx context.Context) error {
	err := s.load()
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("Persisted index unusable, rebuilding", zap.Error(err))
	}
	return s.Rebuild(ctx)
}

// Rebuild runs the full pipeline: read corpus, prepare documents, embed
// every combined text, construct the index, persist both artifacts.
func (s *Store) Rebuild(ctx context.Context) error {
	records, err := corpus.ReadRecords(s.corpusPath)
	if err != nil {
		return err
	}

	docs := corpus.PrepareDocuments(records, s.maxChunkChars)
	s.logger.Info("Prepared documents from corpus",
		zap.Int("records", len(records)),
		zap.Int("documents", len(docs)),
	)

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.CombinedText
	}

	vectors, err := s.embedder.EmbedAll(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed corpus: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(docs))
	}

	flat := NewFlat(s.dim)
	if err := flat.Add(vectors); err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	if err := s.persist(flat, docs); err != nil {
		return err
	}

	s.mu.Lock()
	s.flat = flat
	s.docs = docs
	s.ready = true
	s.mu.Unlock()

	s.logger.Info("Index built and persisted",
		zap.Int("documents", len(docs)),
		zap.String("dir", s.dir),
	)
	return nil
}

func (s *Store) persist(flat *Flat, docs []domain.Document) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create index dir %s: %w", s.dir, err)
	}
	if err := writeVectors(filepath.Join(s.dir, VectorsFile), flat.Dim(), flat.Vectors()); err != nil {
		return err
	}
	if err := writeDocuments(filepath.Join(s.dir, DocumentsFile), docs); err != nil {
		return err
	}
	return nil
}

// load reads both artifacts and installs them. Any inconsistency is an
// error so the caller falls through to a rebuild.
func (s *Store) load() error {
	dim, vectors, err := readVectors(filepath.Join(s.dir, VectorsFile))
	if err != nil {
		return err
	}
	docs, err := readDocuments(filepath.Join(s.dir, DocumentsFile))
	if err != nil {
		return err
	}

	if len(vectors) != len(docs) {
		return fmt.Errorf("artifact mismatch: %d vectors, %d documents", len(vectors), len(docs))
	}
	if dim != s.dim {
		return fmt.Errorf("artifact dimension %d, configured %d", dim, s.dim)
	}

	flat := NewFlat(dim)
	if err := flat.Add(vectors); err != nil {
		return fmt.Errorf("restore index: %w", err)
	}

	s.mu.Lock()
	s.flat = flat
	s.docs = docs
	s.ready = true
	s.mu.Unlock()

	s.logger.Info("Index loaded from disk",
		zap.Int("documents", len(docs)),
		zap.String("dir", s.dir),
	)
	return nil
}

// Search returns the ids and ascending squared L2 distances of the k
// nearest documents.
func (s *Store) Search(query []float32, k int) ([]int, []float32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return nil, nil, domain.ErrIndexNotReady
	}
	ids, dists := s.flat.Search(query, k)
	return ids, dists, nil
}

// Document returns the document at index position id.
func (s *Store) Document(id int) (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 0 || id >= len(s.docs) {
		return domain.Document{}, false
	}
	return s.docs[id], true
}

// Len returns the number of indexed documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Ready reports whether the index has been built or loaded.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}
