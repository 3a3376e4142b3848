package embedding

import (
	"context"
	"errors"
	"testing"
)

func TestCache_GetPut(t *testing.T) {
	c := NewCache(2)
	c.Put("a", []float32{1})
	c.Put("b", []float32{2})
	if v, ok := c.Get("a"); !ok || v[0] != 1 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	// "b" is now least recently used.
	c.Put("c", []float32{3})
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should still be cached")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

type countingEmbedder struct {
	HashEmbedder
	batches int
	texts   int
	fail    bool
}

func (c *countingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if c.fail {
		return nil, errors.New("boom")
	}
	c.batches++
	c.texts += len(texts)
	return c.HashEmbedder.EmbedBatch(ctx, texts)
}

func TestCached_EmbedBatchOnlyMisses(t *testing.T) {
	inner := &countingEmbedder{HashEmbedder: *NewHashEmbedder(16)}
	c := NewCached(inner, 10)
	ctx := context.Background()

	if _, err := c.EmbedBatch(ctx, []string{"python", "go"}); err != nil {
		t.Fatal(err)
	}
	out, err := c.EmbedBatch(ctx, []string{"go", "rust"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0] == nil || out[1] == nil {
		t.Fatalf("unexpected output %v", out)
	}
	if inner.texts != 3 {
		t.Errorf("inner embedded %d texts, want 3", inner.texts)
	}

	inner.fail = true
	if _, err := c.EmbedBatch(ctx, []string{"zig"}); err == nil {
		t.Error("expected error from inner embedder")
	}
}
