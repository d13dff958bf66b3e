package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ragdesk/internal/core/domain"
)

// ContextRetriever is the retrieval dependency of the query flow.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string, cfg domain.RAGConfig) ([]domain.RetrievalResult, error)
}

// QueryUseCase answers questions under one of the three answer modes.
type QueryUseCase struct {
	retriever ContextRetriever
}

func NewQueryUseCase(retriever ContextRetriever) *QueryUseCase {
	return &QueryUseCase{retriever: retriever}
}

// Query skips retrieval entirely for fine_tuned_only; the other two modes
// retrieve context and feed it to the composer.
func (uc *QueryUseCase) Query(ctx context.Context, question string, mode domain.RAGMode, cfg domain.RAGConfig) (*domain.RAGResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "query", errors.New("empty question"))
	}
	start := time.Now()

	cfg.Mode = mode
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	retrieved := []domain.RetrievalResult{}
	if mode != domain.ModeFineTunedOnly {
		results, err := uc.retriever.Retrieve(ctx, question, cfg)
		if err != nil {
			return nil, fmt.Errorf("retrieve context: %w", err)
		}
		if results != nil {
			retrieved = results
		}
	}

	return &domain.RAGResponse{
		Answer:           ComposeAnswer(question, retrieved, mode),
		RetrievedContext: retrieved,
		ModeUsed:         mode,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	}, nil
}
