package usecase

import (
	"context"
	"fmt"

	"ragdesk/internal/core/domain"
	"ragdesk/internal/core/ports"
)

// ManageDocumentsUseCase is the read/delete surface over the document store.
type ManageDocumentsUseCase struct {
	store ports.DocumentStore
}

func NewManageDocumentsUseCase(store ports.DocumentStore) *ManageDocumentsUseCase {
	return &ManageDocumentsUseCase{store: store}
}

// List returns documents in reverse creation order.
func (uc *ManageDocumentsUseCase) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := uc.store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Delete removes a document; the store cascades to its chunks.
func (uc *ManageDocumentsUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.store.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
