package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperjump/kotae/internal/config"
)

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i] * b[i])
	}
	return s
}

func TestHashEmbedder_SimilarSpellingsAreClose(t *testing.T) {
	e := NewHashEmbedder(256)
	ctx := context.Background()
	pg, _ := e.Embed(ctx, "postgres")
	pgsql, _ := e.Embed(ctx, "postgresql")
	matlab, _ := e.Embed(ctx, "matlab")

	if near, far := dot(pg, pgsql), dot(pg, matlab); near <= far {
		t.Errorf("postgres~postgresql = %.3f, postgres~matlab = %.3f", near, far)
	}
	again, _ := e.Embed(ctx, "postgres")
	for i := range pg {
		if pg[i] != again[i] {
			t.Fatal("embedding is not deterministic")
		}
	}
}

func TestHashEmbedder_Dimensions(t *testing.T) {
	if NewHashEmbedder(0).Dimensions() != 384 {
		t.Error("zero dimension should default to 384")
	}
	v, _ := NewHashEmbedder(8).Embed(context.Background(), "")
	if len(v) != 8 {
		t.Errorf("len = %d, want 8", len(v))
	}
}

type fakeLangchain struct {
	vecs [][]float32
	err  error
}

func (f *fakeLangchain) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vecs[:len(texts)], nil
}

func (f *fakeLangchain) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vecs, err := f.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func TestOpenAI_EmbedBatch(t *testing.T) {
	tests := []struct {
		name    string
		fake    *fakeLangchain
		dims    int
		wantErr bool
	}{
		{"normalises", &fakeLangchain{vecs: [][]float32{{3, 4}}}, 2, false},
		{"dimension mismatch", &fakeLangchain{vecs: [][]float32{{1, 2, 3}}}, 2, true},
		{"upstream error", &fakeLangchain{err: errors.New("down")}, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOpenAIFrom(tt.fake, tt.dims)
			v, err := o.Embed(context.Background(), "x")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Embed() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (v[0] < 0.59 || v[0] > 0.61) {
				t.Errorf("expected normalised vector, got %v", v)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.EmbeddingConfig
		wantNil bool
		wantErr bool
	}{
		{"none", config.EmbeddingConfig{Provider: config.ProviderNone}, true, false},
		{"mock", config.EmbeddingConfig{Provider: config.ProviderMock, Dimensions: 32}, false, false},
		{"unknown", config.EmbeddingConfig{Provider: "bogus"}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if (e == nil) != tt.wantNil {
				t.Errorf("New() = %v, wantNil %v", e, tt.wantNil)
			}
		})
	}
}
