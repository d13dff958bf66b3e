package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"ragdesk/internal/core/domain"
)

func (s *Store) AppendMessage(ctx context.Context, msg domain.ChatMessage) error {
	refs, err := json.Marshal(msg.DocumentReferences)
	if err != nil {
		return fmt.Errorf("marshal document references: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO chat_messages (id, content, role, document_references, created_at)
VALUES (?, ?, ?, ?, ?)
`, msg.ID, msg.Content, msg.Role, string(refs), formatTime(msg.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context) ([]domain.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, content, role, document_references, created_at
FROM chat_messages
ORDER BY created_at ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.ChatMessage{}
	for rows.Next() {
		var msg domain.ChatMessage
		var refs, createdAt string
		if err := rows.Scan(&msg.ID, &msg.Content, &msg.Role, &refs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		if err := json.Unmarshal([]byte(refs), &msg.DocumentReferences); err != nil {
			return nil, fmt.Errorf("unmarshal document references: %w", err)
		}
		if msg.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat messages: %w", err)
	}
	return messages, nil
}
