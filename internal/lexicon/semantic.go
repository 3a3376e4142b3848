package lexicon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/vector"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

const embedBatchSize = 32

// SemanticIndex finds corpus technologies whose embeddings are close to a
// term. The vocabulary is embedded once, at construction.
type SemanticIndex struct {
	embedder embedding.Embedder
	index    *vector.MemoryIndex
	topK     int
	floor    float64
	workers  int
	logger   *zap.Logger
}

// SemanticOption configures a SemanticIndex.
type SemanticOption func(*SemanticIndex)

// WithTopK sets how many similar terms Similar returns at most.
func WithTopK(k int) SemanticOption {
	return func(s *SemanticIndex) { s.topK = k }
}

// WithFloor sets the minimum cosine similarity for a term to count.
func WithFloor(f float64) SemanticOption {
	return func(s *SemanticIndex) { s.floor = f }
}

// WithWorkers bounds concurrent embedding requests during construction.
func WithWorkers(n int) SemanticOption {
	return func(s *SemanticIndex) { s.workers = n }
}

// WithSemanticLogger sets the logger.
func WithSemanticLogger(logger *zap.Logger) SemanticOption {
	return func(s *SemanticIndex) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSemanticIndex embeds vocabulary with embedder and indexes it.
func NewSemanticIndex(ctx context.Context, embedder embedding.Embedder, vocabulary []string, opts ...SemanticOption) (*SemanticIndex, error) {
	if embedder == nil {
		return nil, errors.New("semantic index requires an embedder")
	}
	s := &SemanticIndex{
		embedder: embedder,
		topK:     3,
		floor:    0.3,
		workers:  4,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	idx, err := vector.NewMemoryIndex(embedder.Dimensions())
	if err != nil {
		return nil, err
	}
	s.index = idx

	var batches [][]string
	for start := 0; start < len(vocabulary); start += embedBatchSize {
		end := min(start+embedBatchSize, len(vocabulary))
		batches = append(batches, vocabulary[start:end])
	}
	vecs, err := s.embedAll(ctx, batches)
	if err != nil {
		return nil, err
	}
	for i, batch := range batches {
		if err := s.index.Add(ctx, batch, vecs[i]); err != nil {
			return nil, fmt.Errorf("index vocabulary: %w", err)
		}
	}
	s.logger.Debug("semantic index built", zap.Int("terms", s.index.Size()))
	return s, nil
}

func (s *SemanticIndex) embedAll(ctx context.Context, batches [][]string) ([][][]float32, error) {
	pool, err := ants.NewPool(max(s.workers, 1))
	if err != nil {
		return nil, fmt.Errorf("create embedding pool: %w", err)
	}
	defer pool.Release()

	out := make([][][]float32, len(batches))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	for i, batch := range batches {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			v, err := s.embedder.EmbedBatch(ctx, batch)
			if err != nil {
				record(fmt.Errorf("embed vocabulary: %w", err))
				return
			}
			out[i] = v
		})
		if submitErr != nil {
			wg.Done()
			record(fmt.Errorf("submit embedding task: %w", submitErr))
		}
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// Similar returns up to topK indexed terms with cosine similarity above the floor, best first.
func (s *SemanticIndex) Similar(ctx context.Context, term string) ([]string, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	q, err := s.embedder.Embed(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("embed %q: %w", term, err)
	}
	hits, err := s.index.Search(ctx, q, s.topK+1)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, h := range hits {
		if h.ID == term || h.Score <= s.floor {
			continue
		}
		out = append(out, h.ID)
		if len(out) == s.topK {
			break
		}
	}
	return out, nil
}
