package embedding

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/hyperjump/kotae/pkg/utils"
)

// HashEmbedder is an offline embedder that feature-hashes character
// trigrams. Spellings that share trigrams ("postgres", "postgresql") land
// close together; unrelated words do not. Output is deterministic.
type HashEmbedder struct {
	dimensions int
}

// NewHashEmbedder returns a hash embedder of the given dimension.
func NewHashEmbedder(dimensions int) *HashEmbedder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &HashEmbedder{dimensions: dimensions}
}

// Embed returns the unit-length trigram histogram of text.
func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	emb := make([]float32, e.dimensions)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		padded := []rune("^" + word + "$")
		for i := 0; i+3 <= len(padded); i++ {
			emb[bucket(string(padded[i:i+3]), e.dimensions)]++
		}
	}
	utils.NormalizeL2(emb)
	return emb, nil
}

// EmbedBatch calls Embed for each text.
func (e *HashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return embedEach(ctx, e, texts)
}

// Dimensions returns the embedding dimension.
func (e *HashEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op.
func (e *HashEmbedder) Close() error {
	return nil
}

func bucket(s string, n int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return int(h.Sum32() % uint32(n))
}
