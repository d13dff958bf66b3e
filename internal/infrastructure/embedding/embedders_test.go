package embedding

import (
	"context"
	"math"
	"testing"
)

func vectorNorm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func TestHashedEmbedderDeterministic(t *testing.T) {
	e := NewHashed()

	a, err := e.EmbedQuery(context.Background(), "the same text")
	if err != nil {
		t.Fatalf("EmbedQuery() error = %v", err)
	}
	b, err := e.EmbedQuery(context.Background(), "the same text")
	if err != nil {
		t.Fatalf("EmbedQuery() error = %v", err)
	}

	if len(a) != 384 {
		t.Fatalf("expected 384 dimensions, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("identical inputs produced different vectors at dim %d", i)
		}
	}
}

func TestHashedEmbedderUnitNorm(t *testing.T) {
	e := NewHashed()
	v, err := e.EmbedQuery(context.Background(), "normalize me")
	if err != nil {
		t.Fatalf("EmbedQuery() error = %v", err)
	}
	if norm := vectorNorm(v); math.Abs(norm-1.0) > 1e-4 {
		t.Fatalf("expected unit norm, got %f", norm)
	}
}

func TestHashedEmbedderDistinguishesTexts(t *testing.T) {
	e := NewHashed()
	a, _ := e.EmbedQuery(context.Background(), "first document")
	b, _ := e.EmbedQuery(context.Background(), "second document")

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different inputs produced identical vectors")
	}
}

func TestHashedEmbedderBatchMatchesSingle(t *testing.T) {
	e := NewHashed()
	batch, err := e.Embed(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(batch))
	}
	single, _ := e.EmbedQuery(context.Background(), "two")
	for i := range single {
		if batch[1][i] != single[i] {
			t.Fatalf("batch vector diverges from single at dim %d", i)
		}
	}
}

func TestLocalEmbedderDeterministicAndNormalized(t *testing.T) {
	e := NewLocal()

	a, err := e.EmbedQuery(context.Background(), "statistics of this text")
	if err != nil {
		t.Fatalf("EmbedQuery() error = %v", err)
	}
	b, _ := e.EmbedQuery(context.Background(), "statistics of this text")

	if len(a) != 384 {
		t.Fatalf("expected 384 dimensions, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("identical inputs produced different vectors at dim %d", i)
		}
	}
	if norm := vectorNorm(a); math.Abs(norm-1.0) > 1e-4 {
		t.Fatalf("expected unit norm, got %f", norm)
	}
}

func TestDimensionsReported(t *testing.T) {
	if got := NewHashed().Dimensions(); got != 384 {
		t.Fatalf("expected hashed dimensions 384, got %d", got)
	}
	if got := NewLocal().Dimensions(); got != 384 {
		t.Fatalf("expected local dimensions 384, got %d", got)
	}
}
