package domain

import "time"

// Document is an ingested source file after text extraction. Rows are
// immutable once written, except updated_at on re-ingestion.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	FilePath    string    `json:"file_path,omitempty"`
	FileType    string    `json:"file_type"`
	ContentHash string    `json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DocumentChunk is a contiguous word-range slice of a document's text, the
// atomic unit of embedding and retrieval. ChunkIndex ordinals are contiguous
// from 0 within a document.
type DocumentChunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	ChunkIndex int       `json:"chunk_index"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"embedding"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatMessage is one turn of the chat-with-documents history.
type ChatMessage struct {
	ID                 string    `json:"id"`
	Content            string    `json:"content"`
	Role               string    `json:"role"`
	DocumentReferences []string  `json:"document_references"`
	CreatedAt          time.Time `json:"created_at"`
}
