package embedding

import (
	"fmt"

	"ragdesk/internal/core/domain"
	"ragdesk/internal/core/ports"
	"ragdesk/internal/infrastructure/resilience"
)

const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// Provider selects an embedding backend per request, so two documents
// processed with different configurations never share a backend by
// accident.
type Provider struct {
	openAIBaseURL string
	executor      *resilience.Executor
}

func NewProvider(openAIBaseURL string, executor *resilience.Executor) *Provider {
	if openAIBaseURL == "" {
		openAIBaseURL = DefaultOpenAIBaseURL
	}
	return &Provider{openAIBaseURL: openAIBaseURL, executor: executor}
}

func (p *Provider) Embedder(model domain.EmbeddingModel) (ports.Embedder, error) {
	switch model.Backend {
	case domain.BackendHuggingFace:
		return NewHashed(), nil
	case domain.BackendLocal:
		return NewLocal(), nil
	case domain.BackendOpenAI:
		if model.APIKey == "" {
			return nil, domain.WrapError(domain.ErrInvalidInput, "select embedder", fmt.Errorf("openai backend requires an api key"))
		}
		return NewOpenAI(p.openAIBaseURL, model.APIKey, model.ModelName, p.executor), nil
	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "select embedder", fmt.Errorf("unknown embedding backend %q", model.Backend))
	}
}
