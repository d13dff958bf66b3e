package ports

import (
	"context"

	"ragdesk/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document ingestion. Ingest runs
// the whole pipeline and reports chunk counts; Upload returns as soon as the
// document row exists and leaves chunk processing to the queue.
type DocumentIngestor interface {
	Ingest(ctx context.Context, path, title string, cfg domain.RAGConfig) (*domain.ProcessingResult, error)
	Upload(ctx context.Context, path, title string, cfg domain.RAGConfig) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous chunk processing.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string, cfg domain.RAGConfig) (int, error)
}

// RAGQueryService answers questions under one of the three answer modes.
type RAGQueryService interface {
	Query(ctx context.Context, question string, mode domain.RAGMode, cfg domain.RAGConfig) (*domain.RAGResponse, error)
}

// DocumentSearcher ranks whole documents by their best chunk hit.
type DocumentSearcher interface {
	Search(ctx context.Context, query string, cfg domain.RAGConfig) ([]domain.SearchResult, error)
}

// ChatService drives the persisted chat-with-documents flow.
type ChatService interface {
	Send(ctx context.Context, message string, cfg domain.RAGConfig) (*domain.ChatResponse, error)
	History(ctx context.Context) ([]domain.ChatMessage, error)
}

// DocumentManager is the inbound read/delete model for documents.
type DocumentManager interface {
	List(ctx context.Context) ([]domain.Document, error)
	Delete(ctx context.Context, id string) error
}
