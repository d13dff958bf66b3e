package embedding

import (
	"context"
	"math"
	"strings"

	"ragdesk/internal/core/domain"
)

const localDimensions = 384

// LocalEmbedder builds vectors from surface statistics of the text:
// overall length, word count, per-byte frequency for the low 256
// dimensions and a positional sine encoding on top. It is cheap,
// deterministic and needs no external service.
type LocalEmbedder struct{}

func NewLocal() *LocalEmbedder {
	return &LocalEmbedder{}
}

func (e *LocalEmbedder) Dimensions() int {
	return localDimensions
}

func (e *LocalEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.embed(text)
	}
	return out, nil
}

func (e *LocalEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return e.embed(text), nil
}

func (e *LocalEmbedder) embed(text string) []float32 {
	length := float64(len(text))
	words := float64(len(strings.Fields(text)))

	var freq [256]float64
	for _, b := range []byte(text) {
		freq[b]++
	}

	vec := make([]float32, localDimensions)
	for i := range vec {
		v := math.Sin(length/1000.0) + math.Cos(words/100.0)
		if i < 256 {
			v += math.Sin(freq[i] / 10.0)
		}
		v += math.Sin(float64(i)/float64(localDimensions)*math.Pi) * 0.1
		vec[i] = float32(v)
	}

	domain.NormalizeL2(vec)
	return vec
}
