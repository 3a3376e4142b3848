package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperjump/kotae/pkg/utils"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAI embeds through any OpenAI-compatible embeddings endpoint.
type OpenAI struct {
	embedder   embeddings.Embedder
	dimensions int
}

// NewOpenAI connects to host using model. Local servers that need no key are
// supported; the token is a placeholder.
func NewOpenAI(host, model string, dimensions int) (*OpenAI, error) {
	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, err
	}
	e, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}
	return newOpenAIFrom(e, dimensions), nil
}

func newOpenAIFrom(e embeddings.Embedder, dimensions int) *OpenAI {
	return &OpenAI{embedder: e, dimensions: dimensions}
}

// Embed returns the normalised embedding of text.
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := o.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EmbedBatch embeds texts in one request.
func (o *OpenAI) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := o.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, errors.New("embedding count does not match input count")
	}
	for i, v := range vecs {
		if len(v) != o.dimensions {
			return nil, fmt.Errorf("embedding %d has dimension %d, expected %d", i, len(v), o.dimensions)
		}
		utils.NormalizeL2(v)
	}
	return vecs, nil
}

// Dimensions returns the configured embedding dimension.
func (o *OpenAI) Dimensions() int {
	return o.dimensions
}

// Close is a no-op; the HTTP client holds no resources.
func (o *OpenAI) Close() error {
	return nil
}
