package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ragdesk/internal/core/domain"
)

const (
	SubjectDocumentProcessed = "ragdesk.documents.processed"
	SubjectTokenUsage        = "ragdesk.tokens.usage"
)

// Emitter broadcasts pipeline progress events. Subscribers are optional;
// publishing to a subject nobody listens on is not an error.
type Emitter struct {
	queue *Queue
}

func NewEmitter(queue *Queue) *Emitter {
	return &Emitter{queue: queue}
}

func (e *Emitter) DocumentProcessed(ctx context.Context, documentID string) error {
	payload := map[string]any{
		"document_id": documentID,
		"emitted_at":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	return e.publishJSON(ctx, SubjectDocumentProcessed, payload)
}

func (e *Emitter) TokenUsage(ctx context.Context, usage domain.TokenUsage) error {
	return e.publishJSON(ctx, SubjectTokenUsage, usage)
}

func (e *Emitter) publishJSON(ctx context.Context, subject string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	call := func(_ context.Context) error {
		if err := e.queue.conn.Publish(subject, body); err != nil {
			return fmt.Errorf("nats publish event: %w", err)
		}
		return nil
	}

	if e.queue.executor != nil {
		err = e.queue.executor.Execute(ctx, "nats.publish_event", call, classifyNATSError)
	} else {
		err = call(ctx)
	}
	return wrapTemporaryIfNeeded(err)
}
