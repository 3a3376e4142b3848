// Package vector provides a small in-memory cosine index.
package vector

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Result is one search hit.
type Result struct {
	ID    string
	Score float64
}

// MemoryIndex is a brute-force inner-product index. Callers store
// unit-length vectors so the score is cosine similarity.
type MemoryIndex struct {
	dimensions int
	ids        []string
	vectors    [][]float32
	mu         sync.RWMutex
}

// NewMemoryIndex creates an empty index of the given dimension.
func NewMemoryIndex(dimensions int) (*MemoryIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &MemoryIndex{dimensions: dimensions}, nil
}

// Add appends vectors under the given IDs.
func (m *MemoryIndex) Add(_ context.Context, ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("ids and vectors length mismatch")
	}
	for i, v := range vectors {
		if len(v) != m.dimensions {
			return fmt.Errorf("vector %q has dimension %d, expected %d", ids[i], len(v), m.dimensions)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, id := range ids {
		vec := make([]float32, m.dimensions)
		copy(vec, vectors[i])
		m.ids = append(m.ids, id)
		m.vectors = append(m.vectors, vec)
	}
	return nil
}

// Search returns the k best matches, highest score first. Equal scores keep insertion order.
func (m *MemoryIndex) Search(ctx context.Context, query []float32, k int) ([]Result, error) {
	if len(query) != m.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(query), m.dimensions)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if k <= 0 || len(m.ids) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scored := make([]Result, len(m.ids))
	for i, vec := range m.vectors {
		scored[i] = Result{ID: m.ids[i], Score: InnerProduct(query, vec)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Size returns the number of stored vectors.
func (m *MemoryIndex) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ids)
}
