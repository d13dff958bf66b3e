package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"ragdesk/internal/core/domain"
)

func TestListDocumentsQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, title").WillReturnError(errors.New("disk I/O error"))

	store := NewStore(db)
	if _, err := store.ListDocuments(context.Background()); err == nil {
		t.Fatal("expected list error to propagate")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertChunksRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO document_chunks").
		ExpectExec().
		WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	store := NewStore(db)
	chunks := []domain.DocumentChunk{{
		ID:         "c0",
		DocumentID: "doc-1",
		ChunkIndex: 0,
		Content:    "text",
		Embedding:  []float32{1},
		CreatedAt:  time.Now().UTC(),
	}}
	if err := store.InsertChunks(context.Background(), chunks); err == nil {
		t.Fatal("expected insert error to propagate")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
