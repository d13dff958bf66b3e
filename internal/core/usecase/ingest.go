package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"ragdesk/internal/core/domain"
	"ragdesk/internal/core/ports"
)

// IngestDocumentUseCase orchestrates extraction and persistence of source
// documents. Upload hands chunk processing to the queue; Ingest runs it to
// completion and reports the outcome.
type IngestDocumentUseCase struct {
	extractor ports.TextExtractor
	store     ports.DocumentStore
	queue     ports.JobQueue
	processor ports.DocumentProcessor
	emitter   ports.EventEmitter
	logger    *slog.Logger
}

func NewIngestDocumentUseCase(
	extractor ports.TextExtractor,
	store ports.DocumentStore,
	queue ports.JobQueue,
	processor ports.DocumentProcessor,
	emitter ports.EventEmitter,
	logger *slog.Logger,
) *IngestDocumentUseCase {
	return &IngestDocumentUseCase{
		extractor: extractor,
		store:     store,
		queue:     queue,
		processor: processor,
		emitter:   emitter,
		logger:    logger,
	}
}

// Upload persists the extracted document and returns it immediately; chunk
// processing happens asynchronously and is observable via the
// document_processed event or by polling chunk counts.
func (uc *IngestDocumentUseCase) Upload(ctx context.Context, path, title string, cfg domain.RAGConfig) (*domain.Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	doc, err := uc.extractAndPersist(ctx, path, title)
	if err != nil {
		return nil, err
	}

	if err := uc.queue.PublishDocumentIngested(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("publish ingestion job: %w", err)
	}
	return doc, nil
}

// Ingest runs the full pipeline synchronously. A chunk-stage failure is
// returned to the caller while the document row stays visible, so callers can
// detect partial state through chunks_created.
func (uc *IngestDocumentUseCase) Ingest(ctx context.Context, path, title string, cfg domain.RAGConfig) (*domain.ProcessingResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	doc, err := uc.extractAndPersist(ctx, path, title)
	if err != nil {
		return nil, err
	}

	chunksCreated, err := uc.processor.ProcessByID(ctx, doc.ID, cfg)
	if err != nil {
		return nil, fmt.Errorf("process document %s: %w", doc.ID, err)
	}

	if emitErr := uc.emitter.DocumentProcessed(ctx, doc.ID); emitErr != nil {
		uc.logger.Warn("document_processed emit failed", "document_id", doc.ID, "error", emitErr)
	}

	return &domain.ProcessingResult{
		Success:          true,
		Message:          fmt.Sprintf("Successfully processed document: %s", doc.Title),
		ChunksCreated:    chunksCreated,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	}, nil
}

func (uc *IngestDocumentUseCase) extractAndPersist(ctx context.Context, path, title string) (*domain.Document, error) {
	content, err := uc.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	if title == "" {
		title = filepath.Base(path)
	}
	now := time.Now().UTC()

	doc := &domain.Document{
		ID:          uuid.NewString(),
		Title:       title,
		Content:     content,
		FilePath:    path,
		FileType:    fileType(path),
		ContentHash: contentHash(content),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.store.InsertDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("persist document: %w", err)
	}
	return doc, nil
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func fileType(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}
