package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ragdesk/internal/core/domain"
)

type searcherFake struct {
	results []domain.SearchResult
	err     error
}

func (f *searcherFake) Search(context.Context, string, domain.RAGConfig) ([]domain.SearchResult, error) {
	return f.results, f.err
}

type messageStoreFake struct {
	appended []domain.ChatMessage
	err      error
}

func (f *messageStoreFake) AppendMessage(_ context.Context, msg domain.ChatMessage) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, msg)
	return nil
}

func (f *messageStoreFake) ListMessages(context.Context) ([]domain.ChatMessage, error) {
	return f.appended, nil
}

func TestChatSendPersistsBothSides(t *testing.T) {
	sources := []domain.SearchResult{{
		Document:       domain.Document{ID: "doc-1", Title: "Guide"},
		RelevantChunks: []string{"useful text"},
	}}
	messages := &messageStoreFake{}
	uc := NewChatUseCase(&searcherFake{results: sources}, messages)

	resp, err := uc.Send(context.Background(), "what does the guide say?", domain.DefaultRAGConfig())
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(messages.appended) != 2 {
		t.Fatalf("expected user and assistant messages persisted, got %d", len(messages.appended))
	}
	if messages.appended[0].Role != "user" || messages.appended[1].Role != "assistant" {
		t.Fatalf("unexpected roles %s,%s", messages.appended[0].Role, messages.appended[1].Role)
	}
	for _, msg := range messages.appended {
		if len(msg.DocumentReferences) != 1 || msg.DocumentReferences[0] != "doc-1" {
			t.Fatalf("expected doc-1 reference, got %v", msg.DocumentReferences)
		}
	}
	if !strings.Contains(resp.Message.Content, "useful text") {
		t.Fatalf("reply missing chunk text: %q", resp.Message.Content)
	}
	if !strings.Contains(resp.Message.Content, "1 document(s)") {
		t.Fatalf("reply missing source count: %q", resp.Message.Content)
	}
}

func TestChatSendNoDocuments(t *testing.T) {
	messages := &messageStoreFake{}
	uc := NewChatUseCase(&searcherFake{}, messages)

	resp, err := uc.Send(context.Background(), "anything?", domain.DefaultRAGConfig())
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	want := "I don't have any relevant documents to answer your question. Please upload some documents first."
	if resp.Message.Content != want {
		t.Fatalf("unexpected reply %q", resp.Message.Content)
	}
	if len(resp.Sources) != 0 {
		t.Fatalf("expected no sources, got %d", len(resp.Sources))
	}
}

func TestChatSendEmptyMessage(t *testing.T) {
	uc := NewChatUseCase(&searcherFake{}, &messageStoreFake{})
	if _, err := uc.Send(context.Background(), "  ", domain.DefaultRAGConfig()); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestChatSendSearchFailure(t *testing.T) {
	uc := NewChatUseCase(&searcherFake{err: errors.New("backend down")}, &messageStoreFake{})
	if _, err := uc.Send(context.Background(), "q", domain.DefaultRAGConfig()); err == nil {
		t.Fatal("expected search error to surface")
	}
}

func TestChatHistoryPassesThrough(t *testing.T) {
	messages := &messageStoreFake{appended: []domain.ChatMessage{{ID: "m1"}, {ID: "m2"}}}
	uc := NewChatUseCase(&searcherFake{}, messages)

	history, err := uc.History(context.Background())
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
}
