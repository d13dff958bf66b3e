package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"ragdesk/internal/core/domain"
	"ragdesk/internal/core/ports"
)

// RetrieveUseCase ranks every stored chunk against a query by cosine
// similarity. The scan is O(total chunks); an ANN index can replace the store
// scan behind the same contract.
type RetrieveUseCase struct {
	store    ports.DocumentStore
	provider ports.EmbedderProvider
}

func NewRetrieveUseCase(store ports.DocumentStore, provider ports.EmbedderProvider) *RetrieveUseCase {
	return &RetrieveUseCase{store: store, provider: provider}
}

// Retrieve embeds the query with the configured backend, scans the chunk
// corpus, keeps scores strictly above the threshold, and returns at most
// top_k results in descending score order.
func (uc *RetrieveUseCase) Retrieve(ctx context.Context, query string, cfg domain.RAGConfig) ([]domain.RetrievalResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "retrieve", errors.New("empty query"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	embedder, err := uc.provider.Embedder(cfg.EmbeddingModel)
	if err != nil {
		return nil, fmt.Errorf("resolve embedder: %w", err)
	}
	queryVector, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	var results []domain.RetrievalResult
	err = uc.store.ScanChunks(ctx, func(chunk domain.StoredChunk) error {
		score := domain.CosineSimilarity(queryVector, chunk.Embedding)
		if score <= cfg.SimilarityThreshold {
			return nil
		}
		source := chunk.DocumentPath
		if source == "" {
			source = "Unknown source"
		}
		results = append(results, domain.RetrievalResult{
			ChunkID:         chunk.ChunkID,
			Content:         chunk.Content,
			DocumentTitle:   chunk.DocumentTitle,
			SimilarityScore: score,
			SourceInfo:      source,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan chunks: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})
	if len(results) > cfg.TopK {
		results = results[:cfg.TopK]
	}
	return results, nil
}
