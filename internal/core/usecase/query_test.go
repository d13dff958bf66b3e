package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ragdesk/internal/core/domain"
)

type retrieverFake struct {
	results []domain.RetrievalResult
	err     error
	calls   int
}

func (f *retrieverFake) Retrieve(context.Context, string, domain.RAGConfig) ([]domain.RetrievalResult, error) {
	f.calls++
	return f.results, f.err
}

func TestQueryFineTunedOnlySkipsRetrieval(t *testing.T) {
	retriever := &retrieverFake{results: []domain.RetrievalResult{{Content: "never used"}}}
	uc := NewQueryUseCase(retriever)

	resp, err := uc.Query(context.Background(), "what is up", domain.ModeFineTunedOnly, domain.DefaultRAGConfig())
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if retriever.calls != 0 {
		t.Fatalf("expected retriever untouched, got %d calls", retriever.calls)
	}
	if resp.ModeUsed != domain.ModeFineTunedOnly {
		t.Fatalf("unexpected mode %s", resp.ModeUsed)
	}
	if len(resp.RetrievedContext) != 0 {
		t.Fatalf("expected empty context, got %d", len(resp.RetrievedContext))
	}
	if resp.RetrievedContext == nil {
		t.Fatal("expected non-nil context slice")
	}
}

func TestQueryBaseRAGUsesRetrievedContext(t *testing.T) {
	retriever := &retrieverFake{results: []domain.RetrievalResult{
		{Content: "fact one", DocumentTitle: "Doc A", SimilarityScore: 0.9},
	}}
	uc := NewQueryUseCase(retriever)

	resp, err := uc.Query(context.Background(), "question", domain.ModeBaseWithRAG, domain.DefaultRAGConfig())
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if retriever.calls != 1 {
		t.Fatalf("expected one retrieval, got %d", retriever.calls)
	}
	if !strings.Contains(resp.Answer, "fact one") || !strings.Contains(resp.Answer, "Sources: Doc A") {
		t.Fatalf("answer missing context or sources: %q", resp.Answer)
	}
}

func TestQueryEmptyQuestion(t *testing.T) {
	uc := NewQueryUseCase(&retrieverFake{})
	_, err := uc.Query(context.Background(), "   ", domain.ModeBaseWithRAG, domain.DefaultRAGConfig())
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestQueryRetrievalFailure(t *testing.T) {
	uc := NewQueryUseCase(&retrieverFake{err: errors.New("store offline")})
	if _, err := uc.Query(context.Background(), "q", domain.ModeBaseWithRAG, domain.DefaultRAGConfig()); err == nil {
		t.Fatal("expected retrieval error to surface")
	}
}

func TestQueryNilRetrievalBecomesEmptySlice(t *testing.T) {
	uc := NewQueryUseCase(&retrieverFake{results: nil})
	resp, err := uc.Query(context.Background(), "q", domain.ModeFineTunedWithRAG, domain.DefaultRAGConfig())
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if resp.RetrievedContext == nil || len(resp.RetrievedContext) != 0 {
		t.Fatalf("expected empty non-nil context, got %v", resp.RetrievedContext)
	}
}
