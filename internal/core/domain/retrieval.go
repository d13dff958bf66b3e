package domain

// RetrievalResult is one ranked chunk hit, produced fresh per query and never
// persisted.
type RetrievalResult struct {
	ChunkID         string  `json:"chunk_id"`
	Content         string  `json:"content"`
	DocumentTitle   string  `json:"document_title"`
	SimilarityScore float64 `json:"similarity_score"`
	SourceInfo      string  `json:"source_info"`
}

// StoredChunk is one row of the chunk/document join streamed out of the store
// during a similarity scan.
type StoredChunk struct {
	ChunkID       string
	DocumentID    string
	Content       string
	Embedding     []float32
	DocumentTitle string
	DocumentPath  string
}

type RAGResponse struct {
	Answer           string            `json:"answer"`
	RetrievedContext []RetrievalResult `json:"retrieved_context"`
	ModeUsed         RAGMode           `json:"mode_used"`
	ProcessingTimeMS int64             `json:"processing_time_ms"`
}

type ProcessingResult struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	ChunksCreated    int    `json:"chunks_created"`
	ProcessingTimeMS int64  `json:"processing_time_ms"`
}

// SearchResult groups the matching chunks of a single document; the score is
// the best chunk similarity for that document.
type SearchResult struct {
	Document        Document `json:"document"`
	RelevantChunks  []string `json:"relevant_chunks"`
	SimilarityScore float64  `json:"similarity_score"`
}

type ChatResponse struct {
	Message ChatMessage    `json:"message"`
	Sources []SearchResult `json:"sources"`
}

// TokenUsage is forwarded to the shell as a telemetry event; the core never
// computes it.
type TokenUsage struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	CostEstimate float64 `json:"cost_estimate"`
	Timestamp    string  `json:"timestamp"`
}
