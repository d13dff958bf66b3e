package inproc

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"ragdesk/internal/core/domain"
)

// Queue is the single-process stand-in for the message broker: publish
// enqueues onto a buffered channel and a subscriber drains it. It lets
// the API binary run the full upload path without a NATS server.
type Queue struct {
	jobs   chan string
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
}

func NewQueue(buffer int, logger *slog.Logger) *Queue {
	if buffer <= 0 {
		buffer = 64
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		jobs:   make(chan string, buffer),
		logger: logger,
	}
}

func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.jobs)
}

// PublishDocumentIngested holds the read lock across the send so Close
// cannot close the channel underneath an in-flight publish.
func (q *Queue) PublishDocumentIngested(ctx context.Context, documentID string) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return domain.WrapError(domain.ErrTemporary, "enqueue document", fmt.Errorf("queue is shut down"))
	}

	select {
	case q.jobs <- documentID:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return domain.WrapError(domain.ErrTemporary, "enqueue document", fmt.Errorf("job queue full"))
	}
}

func (q *Queue) SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case documentID, ok := <-q.jobs:
			if !ok {
				return nil
			}
			if err := handler(ctx, documentID); err != nil {
				q.logger.Error("worker_handler_failed", "document_id", documentID, "error", err)
			}
		}
	}
}

// LogEmitter reports pipeline events to the log when no broker is
// configured.
type LogEmitter struct {
	logger *slog.Logger
}

func NewLogEmitter(logger *slog.Logger) *LogEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEmitter{logger: logger}
}

func (e *LogEmitter) DocumentProcessed(_ context.Context, documentID string) error {
	e.logger.Info("document_processed", "document_id", documentID)
	return nil
}

func (e *LogEmitter) TokenUsage(_ context.Context, usage domain.TokenUsage) error {
	e.logger.Info("token_usage",
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
		"total_tokens", usage.TotalTokens,
	)
	return nil
}
