//go:build cgo

package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/hyperjump/kotae/pkg/utils"
	ort "github.com/yalue/onnxruntime_go"
)

var onnxInputs = []string{"input_ids", "attention_mask", "token_type_ids"}

// ONNX runs a sentence-embedding model through ONNX Runtime. Inference is
// serialised because the session reuses one set of tensors.
type ONNX struct {
	session   *ort.AdvancedSession
	inputs    []*ort.Tensor[int64]
	output    *ort.Tensor[float32]
	tokenizer Tokenizer
	maxTokens int
	dims      int
	cache     *Cache
	mu        sync.Mutex
}

// NewONNX loads the model at modelPath.
func NewONNX(modelPath string, dimensions, maxTokens, cacheSize int) (*ONNX, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("initialize onnx runtime: %w", err)
	}
	e := &ONNX{
		tokenizer: NewWordTokenizer(),
		maxTokens: maxTokens,
		dims:      dimensions,
		cache:     NewCache(cacheSize),
	}
	shape := ort.NewShape(1, int64(maxTokens))
	for _, name := range onnxInputs {
		t, err := ort.NewTensor(shape, make([]int64, maxTokens))
		if err != nil {
			e.destroy()
			return nil, fmt.Errorf("create %s tensor: %w", name, err)
		}
		e.inputs = append(e.inputs, t)
	}
	out, err := ort.NewTensor(ort.NewShape(1, int64(dimensions)), make([]float32, dimensions))
	if err != nil {
		e.destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}
	e.output = out

	in := make([]ort.ArbitraryTensor, len(e.inputs))
	for i, t := range e.inputs {
		in[i] = t
	}
	session, err := ort.NewAdvancedSession(modelPath, onnxInputs, []string{"output"}, in, []ort.ArbitraryTensor{out}, nil)
	if err != nil {
		e.destroy()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}
	e.session = session
	return e, nil
}

// Embed runs the model on text, serving repeats from the cache.
func (e *ONNX) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := e.cache.Get(text); ok {
		return v, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	enc := e.tokenizer.Tokenize(text, e.maxTokens)
	copy(e.inputs[0].GetData(), enc.InputIDs)
	copy(e.inputs[1].GetData(), enc.AttentionMask)
	copy(e.inputs[2].GetData(), enc.TokenTypeIDs)
	if err := e.session.Run(); err != nil {
		return nil, fmt.Errorf("onnx inference: %w", err)
	}
	v := make([]float32, e.dims)
	copy(v, e.output.GetData())
	utils.NormalizeL2(v)
	e.cache.Put(text, v)
	return v, nil
}

// EmbedBatch calls Embed for each text.
func (e *ONNX) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return embedEach(ctx, e, texts)
}

// Dimensions returns the embedding dimension.
func (e *ONNX) Dimensions() int {
	return e.dims
}

// Close releases the session and tensors.
func (e *ONNX) Close() error {
	var err error
	if e.session != nil {
		err = e.session.Destroy()
		e.session = nil
	}
	e.destroy()
	return err
}

func (e *ONNX) destroy() {
	for _, t := range e.inputs {
		_ = t.Destroy()
	}
	e.inputs = nil
	if e.output != nil {
		_ = e.output.Destroy()
		e.output = nil
	}
}
