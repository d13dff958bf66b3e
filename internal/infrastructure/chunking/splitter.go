package chunking

import (
	"fmt"
	"strings"

	"ragdesk/internal/core/domain"
)

// Splitter slides a fixed-size word window over whitespace-delimited text.
// Adjacent windows share exactly the configured overlap; the final window is
// clipped to the end of the text rather than padded.
type Splitter struct{}

func NewSplitter() *Splitter {
	return &Splitter{}
}

func (s *Splitter) Chunk(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "chunk text", fmt.Errorf("chunk size must be positive, got %d", chunkSize))
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, domain.WrapError(domain.ErrInvalidInput, "chunk text", fmt.Errorf("overlap %d must be in [0, %d)", overlap, chunkSize))
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}
	if len(words) <= chunkSize {
		return []string{strings.TrimSpace(text)}, nil
	}

	step := chunkSize - overlap
	out := make([]string, 0, len(words)/step+1)
	for start := 0; start < len(words); start += step {
		end := start + chunkSize
		if end > len(words) {
			end = len(words)
		}
		out = append(out, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return out, nil
}
