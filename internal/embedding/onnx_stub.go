//go:build !cgo

package embedding

import (
	"context"
	"errors"
)

// ErrONNXUnavailable is returned by NewONNX in builds without cgo.
var ErrONNXUnavailable = errors.New("onnx embedder requires cgo and the onnxruntime library")

// ONNX is unavailable without cgo.
type ONNX struct{}

// NewONNX always fails without cgo.
func NewONNX(_ string, _, _, _ int) (*ONNX, error) {
	return nil, ErrONNXUnavailable
}

func (e *ONNX) Embed(context.Context, string) ([]float32, error) { return nil, ErrONNXUnavailable }

func (e *ONNX) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, ErrONNXUnavailable
}

func (e *ONNX) Dimensions() int { return 0 }

func (e *ONNX) Close() error { return nil }
