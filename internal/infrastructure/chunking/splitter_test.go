package chunking

import (
	"fmt"
	"strings"
	"testing"

	"ragdesk/internal/core/domain"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestChunkSlidingWindow(t *testing.T) {
	s := NewSplitter()
	chunks, err := s.Chunk(words(450), 200, 50)
	if err != nil {
		t.Fatalf("Chunk() error = %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks for 450 words at 200/50, got %d", len(chunks))
	}

	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	if len(first) != 200 {
		t.Fatalf("expected first chunk of 200 words, got %d", len(first))
	}
	// Windows step by chunk_size-overlap, so the second chunk starts at w150.
	if second[0] != "w150" {
		t.Fatalf("expected second chunk to start at w150, got %s", second[0])
	}
	last := strings.Fields(chunks[2])
	if last[len(last)-1] != "w449" {
		t.Fatalf("expected final chunk to end at w449, got %s", last[len(last)-1])
	}
}

func TestChunkShortTextSingleChunk(t *testing.T) {
	s := NewSplitter()
	chunks, err := s.Chunk("  just a few words  ", 200, 50)
	if err != nil {
		t.Fatalf("Chunk() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected one chunk, got %d", len(chunks))
	}
	if chunks[0] != "just a few words" {
		t.Fatalf("expected trimmed whole text, got %q", chunks[0])
	}
}

func TestChunkEmptyText(t *testing.T) {
	s := NewSplitter()
	chunks, err := s.Chunk("   \n\t ", 200, 50)
	if err != nil {
		t.Fatalf("Chunk() error = %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks for blank text, got %d", len(chunks))
	}
}

func TestChunkRejectsInvalidConfig(t *testing.T) {
	s := NewSplitter()

	if _, err := s.Chunk(words(10), 0, 0); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero chunk size, got %v", err)
	}
	if _, err := s.Chunk(words(10), 5, 5); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for overlap == chunk size, got %v", err)
	}
	if _, err := s.Chunk(words(10), 5, -1); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative overlap, got %v", err)
	}
}

func TestChunkAdjacentWindowsShareOverlap(t *testing.T) {
	s := NewSplitter()
	chunks, err := s.Chunk(words(30), 10, 4)
	if err != nil {
		t.Fatalf("Chunk() error = %v", err)
	}
	for i := 1; i < len(chunks); i++ {
		prev := strings.Fields(chunks[i-1])
		cur := strings.Fields(chunks[i])
		tail := prev[len(prev)-4:]
		head := cur[:4]
		for j := range tail {
			if tail[j] != head[j] {
				t.Fatalf("chunk %d does not share 4-word overlap: %v vs %v", i, tail, head)
			}
		}
	}
}
