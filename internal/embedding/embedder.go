// Package embedding turns technology names into vectors for the semantic tag fallback.
package embedding

import (
	"context"
	"fmt"

	"github.com/hyperjump/kotae/internal/config"
	"go.uber.org/zap"
)

// Embedder produces vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// New builds the embedder selected by cfg.Provider. The "none" provider
// returns a nil Embedder and no error.
func New(cfg config.EmbeddingConfig, logger *zap.Logger) (Embedder, error) {
	switch cfg.Provider {
	case config.ProviderNone, "":
		return nil, nil
	case config.ProviderMock:
		return NewHashEmbedder(cfg.Dimensions), nil
	case config.ProviderONNX:
		e, err := NewONNX(cfg.ModelPath, cfg.Dimensions, cfg.MaxTokens, cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("onnx embedder: %w", err)
		}
		return e, nil
	case config.ProviderOpenAI:
		e, err := NewOpenAI(cfg.Host, cfg.Model, cfg.Dimensions)
		if err != nil {
			return nil, fmt.Errorf("openai embedder: %w", err)
		}
		if logger != nil {
			logger.Debug("openai embedder ready", zap.String("host", cfg.Host), zap.String("model", cfg.Model))
		}
		return NewCached(e, cfg.CacheSize), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// embedEach is the EmbedBatch implementation for embedders without a native batch call.
func embedEach(ctx context.Context, e Embedder, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		emb, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = emb
	}
	return out, nil
}
