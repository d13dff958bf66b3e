package ports

import (
	"context"

	"ragdesk/internal/core/domain"
)

// TextExtractor converts a source file into plain text. Recoverable parse
// failures degrade to placeholder text instead of failing the call.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Embedder maps text to fixed-length vectors under one backend configuration.
// Dimensions is backend-defined; callers must not assume it is uniform across
// backends.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// EmbedderProvider resolves the embedder for a tagged backend selection.
type EmbedderProvider interface {
	Embedder(model domain.EmbeddingModel) (Embedder, error)
}

// Chunker splits plain text into overlapping, size-bounded word windows.
type Chunker interface {
	Chunk(text string, chunkSize, overlap int) ([]string, error)
}

// DocumentStore persists documents with their chunks and serves the
// full-corpus similarity scan.
type DocumentStore interface {
	InsertDocument(ctx context.Context, doc *domain.Document) error
	GetDocument(ctx context.Context, id string) (*domain.Document, error)
	ListDocuments(ctx context.Context) ([]domain.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	InsertChunks(ctx context.Context, chunks []domain.DocumentChunk) error
	CountChunks(ctx context.Context, documentID string) (int, error)
	ScanChunks(ctx context.Context, fn func(domain.StoredChunk) error) error
}

// MessageStore persists the chat-with-documents history.
type MessageStore interface {
	AppendMessage(ctx context.Context, msg domain.ChatMessage) error
	ListMessages(ctx context.Context) ([]domain.ChatMessage, error)
}

// JobQueue hands ingested documents to the chunk-processing worker.
type JobQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// EventEmitter notifies the shell about pipeline progress.
type EventEmitter interface {
	DocumentProcessed(ctx context.Context, documentID string) error
	TokenUsage(ctx context.Context, usage domain.TokenUsage) error
}
