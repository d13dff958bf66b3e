package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ragdesk/internal/infrastructure/resilience"
)

const defaultEmbedConcurrency = 4

// OpenAIEmbedder calls an OpenAI-compatible embeddings endpoint. Each
// text is a separate request; batches fan out over a bounded worker
// group and results are reassembled in input order.
type OpenAIEmbedder struct {
	baseURL     string
	apiKey      string
	model       string
	httpClient  *http.Client
	executor    *resilience.Executor
	concurrency int
}

func NewOpenAI(baseURL, apiKey, model string, executor *resilience.Executor) *OpenAIEmbedder {
	return &OpenAIEmbedder{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		executor:    executor,
		concurrency: defaultEmbedConcurrency,
	}
}

// Dimensions reports 0: the vector width is whatever the remote model
// returns and is not known until the first response.
func (e *OpenAIEmbedder) Dimensions() int {
	return 0
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, len(texts))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.concurrency)

	for i, text := range texts {
		group.Go(func() error {
			vec, err := e.EmbedQuery(groupCtx, text)
			if err != nil {
				return err
			}
			out[i] = vec
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *OpenAIEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	var vec []float32
	err := e.executor.Execute(ctx, "openai.embeddings", func(ctx context.Context) error {
		v, err := e.requestEmbedding(ctx, text)
		if err != nil {
			return err
		}
		vec = v
		return nil
	}, classifyRemoteError)
	if err != nil {
		return nil, wrapTemporaryIfNeeded("create embedding", err)
	}
	return vec, nil
}

func (e *OpenAIEmbedder) requestEmbedding(ctx context.Context, text string) ([]float32, error) {
	payload := map[string]any{
		"input": text,
		"model": e.model,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal embeddings request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create embeddings request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai embeddings request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &HTTPStatusError{
			Operation:  "embeddings",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	var response struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode embeddings response: %w", err)
	}
	if len(response.Data) == 0 || len(response.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("embeddings response contained no vector")
	}
	return response.Data[0].Embedding, nil
}
