package domain

import (
	"math"
	"testing"
)

func TestCosineSimilarityIdenticalVectors(t *testing.T) {
	v := []float32{0.5, -0.25, 1.0, 0.1}
	got := CosineSimilarity(v, v)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected self-similarity 1, got %f", got)
	}
}

func TestCosineSimilarityOrthogonalVectors(t *testing.T) {
	got := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
	if got != 0 {
		t.Fatalf("expected 0 for orthogonal vectors, got %f", got)
	}
}

func TestCosineSimilarityZeroNormOperand(t *testing.T) {
	if got := CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3}); got != 0 {
		t.Fatalf("expected 0 for zero-norm operand, got %f", got)
	}
	if got := CosineSimilarity(nil, []float32{1}); got != 0 {
		t.Fatalf("expected 0 for nil operand, got %f", got)
	}
}

func TestCosineSimilarityMismatchedLengths(t *testing.T) {
	a := []float32{1, 1}
	b := []float32{1, 1, 1, 1}
	got := CosineSimilarity(a, b)
	want := 2.0 / (math.Sqrt(2) * math.Sqrt(4))
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected common-prefix similarity %f, got %f", want, got)
	}
}

func TestNormalizeL2UnitLength(t *testing.T) {
	v := NormalizeL2([]float32{3, 4})
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if math.Abs(math.Sqrt(sum)-1.0) > 1e-6 {
		t.Fatalf("expected unit norm, got %f", math.Sqrt(sum))
	}
}

func TestNormalizeL2ZeroVectorUnchanged(t *testing.T) {
	v := NormalizeL2([]float32{0, 0, 0})
	for i, x := range v {
		if x != 0 {
			t.Fatalf("expected zero vector unchanged, got %f at %d", x, i)
		}
	}
}
