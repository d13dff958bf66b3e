package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ragdesk/internal/core/domain"
	"ragdesk/internal/core/ports"
)

// DocumentSearch is the search dependency of the chat flow.
type DocumentSearch interface {
	Search(ctx context.Context, query string, cfg domain.RAGConfig) ([]domain.SearchResult, error)
}

// ChatUseCase answers a chat message from the document corpus and persists
// both sides of the exchange.
type ChatUseCase struct {
	searcher DocumentSearch
	messages ports.MessageStore
}

func NewChatUseCase(searcher DocumentSearch, messages ports.MessageStore) *ChatUseCase {
	return &ChatUseCase{searcher: searcher, messages: messages}
}

func (uc *ChatUseCase) Send(ctx context.Context, message string, cfg domain.RAGConfig) (*domain.ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "chat", errors.New("empty message"))
	}

	sources, err := uc.searcher.Search(ctx, message, cfg)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	references := make([]string, 0, len(sources))
	for _, s := range sources {
		references = append(references, s.Document.ID)
	}

	userMsg := domain.ChatMessage{
		ID:                 uuid.NewString(),
		Content:            message,
		Role:               "user",
		DocumentReferences: references,
		CreatedAt:          time.Now().UTC(),
	}
	assistantMsg := domain.ChatMessage{
		ID:                 uuid.NewString(),
		Content:            chatReply(sources),
		Role:               "assistant",
		DocumentReferences: references,
		CreatedAt:          time.Now().UTC(),
	}

	for _, msg := range []domain.ChatMessage{userMsg, assistantMsg} {
		if err := uc.messages.AppendMessage(ctx, msg); err != nil {
			return nil, fmt.Errorf("persist chat message: %w", err)
		}
	}

	return &domain.ChatResponse{
		Message: assistantMsg,
		Sources: sources,
	}, nil
}

func (uc *ChatUseCase) History(ctx context.Context) ([]domain.ChatMessage, error) {
	messages, err := uc.messages.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chat history: %w", err)
	}
	return messages, nil
}

func chatReply(sources []domain.SearchResult) string {
	if len(sources) == 0 {
		return "I don't have any relevant documents to answer your question. Please upload some documents first."
	}
	var chunks []string
	for _, s := range sources {
		chunks = append(chunks, s.RelevantChunks...)
	}
	return fmt.Sprintf(
		"Based on the uploaded documents, here's what I found:\n\n%s\n\nThis information comes from %d document(s) in your knowledge base.",
		strings.Join(chunks, "\n\n"), len(sources),
	)
}
