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

const (
	searchRelevanceFloor = 0.3
	searchMaxResults     = 10
)

// SearchDocumentsUseCase groups chunk hits by parent document and ranks the
// documents by their best chunk similarity.
type SearchDocumentsUseCase struct {
	store    ports.DocumentStore
	provider ports.EmbedderProvider
}

func NewSearchDocumentsUseCase(store ports.DocumentStore, provider ports.EmbedderProvider) *SearchDocumentsUseCase {
	return &SearchDocumentsUseCase{store: store, provider: provider}
}

func (uc *SearchDocumentsUseCase) Search(ctx context.Context, query string, cfg domain.RAGConfig) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "search documents", errors.New("empty query"))
	}

	embedder, err := uc.provider.Embedder(cfg.EmbeddingModel)
	if err != nil {
		return nil, fmt.Errorf("resolve embedder: %w", err)
	}
	queryVector, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	grouped := make(map[string]*domain.SearchResult)
	err = uc.store.ScanChunks(ctx, func(chunk domain.StoredChunk) error {
		score := domain.CosineSimilarity(queryVector, chunk.Embedding)
		if score <= searchRelevanceFloor {
			return nil
		}
		hit, ok := grouped[chunk.DocumentID]
		if !ok {
			grouped[chunk.DocumentID] = &domain.SearchResult{
				Document: domain.Document{
					ID:       chunk.DocumentID,
					Title:    chunk.DocumentTitle,
					FilePath: chunk.DocumentPath,
				},
				RelevantChunks:  []string{chunk.Content},
				SimilarityScore: score,
			}
			return nil
		}
		hit.RelevantChunks = append(hit.RelevantChunks, chunk.Content)
		if score > hit.SimilarityScore {
			hit.SimilarityScore = score
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan chunks: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(grouped))
	for _, hit := range grouped {
		results = append(results, *hit)
	}
	// Tie-break on document id so map iteration order cannot leak through.
	sort.Slice(results, func(i, j int) bool {
		if results[i].SimilarityScore != results[j].SimilarityScore {
			return results[i].SimilarityScore > results[j].SimilarityScore
		}
		return results[i].Document.ID < results[j].Document.ID
	})
	if len(results) > searchMaxResults {
		results = results[:searchMaxResults]
	}
	return results, nil
}
