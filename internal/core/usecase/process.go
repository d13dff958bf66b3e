package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ragdesk/internal/core/domain"
	"ragdesk/internal/core/ports"
)

// ProcessDocumentUseCase runs the chunk -> embed -> persist stage for a
// document whose row already exists in the store.
type ProcessDocumentUseCase struct {
	store    ports.DocumentStore
	chunker  ports.Chunker
	provider ports.EmbedderProvider
}

func NewProcessDocumentUseCase(
	store ports.DocumentStore,
	chunker ports.Chunker,
	provider ports.EmbedderProvider,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		store:    store,
		chunker:  chunker,
		provider: provider,
	}
}

// ProcessByID chunks the stored content, embeds every chunk, and persists the
// batch. Chunk ordinals follow document order regardless of how the backend
// schedules embedding calls.
func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string, cfg domain.RAGConfig) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	doc, err := uc.store.GetDocument(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("fetch document by id: %w", err)
	}

	chunks, err := uc.chunker.Chunk(doc.Content, cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return 0, fmt.Errorf("chunk document: %w", err)
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	embedder, err := uc.provider.Embedder(cfg.EmbeddingModel)
	if err != nil {
		return 0, fmt.Errorf("resolve embedder: %w", err)
	}

	vectors, err := embedder.Embed(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, domain.WrapError(
			domain.ErrInvalidInput,
			"embed chunks",
			fmt.Errorf("vectors/chunks mismatch: %d/%d", len(vectors), len(chunks)),
		)
	}

	now := time.Now().UTC()
	records := make([]domain.DocumentChunk, len(chunks))
	for i, content := range chunks {
		records[i] = domain.DocumentChunk{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			ChunkIndex: i,
			Content:    content,
			Embedding:  vectors[i],
			CreatedAt:  now,
		}
	}

	if err := uc.store.InsertChunks(ctx, records); err != nil {
		return 0, fmt.Errorf("persist chunk batch: %w", err)
	}
	return len(records), nil
}
