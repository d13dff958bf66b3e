package usecase

import (
	"sync/atomic"

	"ragdesk/internal/core/domain"
)

// RAGConfigStore holds the active pipeline configuration as an atomically
// swapped snapshot. Readers get one immutable value; writers replace the whole
// config (last writer wins). In-flight operations keep the snapshot they read.
type RAGConfigStore struct {
	current atomic.Pointer[domain.RAGConfig]
}

func NewRAGConfigStore(initial domain.RAGConfig) *RAGConfigStore {
	s := &RAGConfigStore{}
	s.current.Store(&initial)
	return s
}

func (s *RAGConfigStore) Get() domain.RAGConfig {
	return *s.current.Load()
}

func (s *RAGConfigStore) Set(cfg domain.RAGConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.current.Store(&cfg)
	return nil
}
