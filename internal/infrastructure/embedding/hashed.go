package embedding

import (
	"context"
	"crypto/sha256"
	"math"

	"ragdesk/internal/core/domain"
)

const hashedDimensions = 384

// HashedEmbedder derives a deterministic unit vector from the SHA-256
// digest of the text. Identical inputs always map to identical vectors,
// which keeps retrieval reproducible without any model runtime.
type HashedEmbedder struct{}

func NewHashed() *HashedEmbedder {
	return &HashedEmbedder{}
}

func (e *HashedEmbedder) Dimensions() int {
	return hashedDimensions
}

func (e *HashedEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.embed(text)
	}
	return out, nil
}

func (e *HashedEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return e.embed(text), nil
}

func (e *HashedEmbedder) embed(text string) []float32 {
	digest := sha256.Sum256([]byte(text))

	// The first 24 digest bytes cycle across all dimensions; a slow
	// sine sweep over the index decorrelates repeated byte values.
	vec := make([]float32, hashedDimensions)
	for i := range vec {
		b := digest[i%24]
		v := (float64(b)/255.0)*2.0 - 1.0
		vec[i] = float32(v * math.Sin(float64(i)*0.01))
	}

	domain.NormalizeL2(vec)
	return vec
}
