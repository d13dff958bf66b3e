package domain

import (
	"errors"
	"fmt"
)

type RAGMode string

const (
	ModeFineTunedOnly    RAGMode = "fine_tuned_only"
	ModeFineTunedWithRAG RAGMode = "fine_tuned_rag"
	ModeBaseWithRAG      RAGMode = "base_rag"
)

func ParseRAGMode(s string) (RAGMode, error) {
	switch RAGMode(s) {
	case ModeFineTunedOnly, ModeFineTunedWithRAG, ModeBaseWithRAG:
		return RAGMode(s), nil
	}
	return "", WrapError(ErrInvalidInput, "parse rag mode", fmt.Errorf("unknown mode %q", s))
}

type EmbeddingBackend string

const (
	BackendHuggingFace EmbeddingBackend = "huggingface"
	BackendOpenAI      EmbeddingBackend = "openai"
	BackendLocal       EmbeddingBackend = "local"
)

// EmbeddingModel is the tagged backend selection. Only the fields relevant to
// the chosen backend are meaningful.
type EmbeddingModel struct {
	Backend   EmbeddingBackend `json:"backend" yaml:"backend"`
	ModelName string           `json:"model_name,omitempty" yaml:"model_name,omitempty"`
	APIKey    string           `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	ModelPath string           `json:"model_path,omitempty" yaml:"model_path,omitempty"`
}

// RAGConfig carries the full pipeline configuration and is passed explicitly
// through every call boundary, so one operation observes one config.
type RAGConfig struct {
	EmbeddingModel      EmbeddingModel `json:"embedding_model" yaml:"embedding_model"`
	Mode                RAGMode        `json:"mode" yaml:"mode"`
	ChunkSize           int            `json:"chunk_size" yaml:"chunk_size"`
	ChunkOverlap        int            `json:"chunk_overlap" yaml:"chunk_overlap"`
	TopK                int            `json:"top_k" yaml:"top_k"`
	SimilarityThreshold float64        `json:"similarity_threshold" yaml:"similarity_threshold"`
}

func DefaultRAGConfig() RAGConfig {
	return RAGConfig{
		EmbeddingModel: EmbeddingModel{
			Backend:   BackendHuggingFace,
			ModelName: "sentence-transformers/all-MiniLM-L6-v2",
		},
		Mode:                ModeBaseWithRAG,
		ChunkSize:           200,
		ChunkOverlap:        50,
		TopK:                5,
		SimilarityThreshold: 0.3,
	}
}

func (c RAGConfig) Validate() error {
	if c.ChunkSize <= 0 {
		return WrapError(ErrInvalidInput, "validate rag config", fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize))
	}
	if c.ChunkOverlap < 0 {
		return WrapError(ErrInvalidInput, "validate rag config", fmt.Errorf("chunk_overlap must be non-negative, got %d", c.ChunkOverlap))
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return WrapError(ErrInvalidInput, "validate rag config", fmt.Errorf("chunk_overlap %d must be smaller than chunk_size %d", c.ChunkOverlap, c.ChunkSize))
	}
	if c.TopK <= 0 {
		return WrapError(ErrInvalidInput, "validate rag config", fmt.Errorf("top_k must be positive, got %d", c.TopK))
	}
	switch c.Mode {
	case ModeFineTunedOnly, ModeFineTunedWithRAG, ModeBaseWithRAG:
	default:
		return WrapError(ErrInvalidInput, "validate rag config", fmt.Errorf("unknown mode %q", c.Mode))
	}
	switch c.EmbeddingModel.Backend {
	case BackendHuggingFace, BackendLocal:
	case BackendOpenAI:
		if c.EmbeddingModel.APIKey == "" {
			return WrapError(ErrInvalidInput, "validate rag config", errors.New("openai backend requires an api key"))
		}
	default:
		return WrapError(ErrInvalidInput, "validate rag config", fmt.Errorf("unknown embedding backend %q", c.EmbeddingModel.Backend))
	}
	return nil
}
