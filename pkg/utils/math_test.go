package utils

import (
	"math"
	"testing"
)

func TestNormalizeL2(t *testing.T) {
	x := []float32{3, 4}
	if !NormalizeL2(x) {
		t.Fatal("expected a non-zero vector to be normalised")
	}
	if math.Abs(float64(x[0])-0.6) > 1e-6 || math.Abs(float64(x[1])-0.8) > 1e-6 {
		t.Errorf("got %v, want [0.6 0.8]", x)
	}

	zero := []float32{0, 0, 0}
	if NormalizeL2(zero) {
		t.Error("zero vector should be reported as unchanged")
	}
	for _, v := range zero {
		if v != 0 {
			t.Errorf("zero vector changed: %v", zero)
		}
	}
}
