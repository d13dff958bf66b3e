package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ragdesk/internal/infrastructure/resilience"
)

func newTestExecutor() *resilience.Executor {
	cfg := resilience.DefaultConfig()
	cfg.BreakerEnabled = false
	return resilience.NewExecutor(cfg)
}

func TestOpenAIEmbedQuerySuccess(t *testing.T) {
	var gotAuth, gotModel, gotInput string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotModel = req["model"]
		gotInput = req["input"]

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{0.1, 0.2, 0.3}}},
		})
	}))
	defer server.Close()

	e := NewOpenAI(server.URL, "sk-test", "text-embedding-3-small", newTestExecutor())
	vec, err := e.EmbedQuery(context.Background(), "hello")
	if err != nil {
		t.Fatalf("EmbedQuery() error = %v", err)
	}
	if len(vec) != 3 || vec[0] != 0.1 {
		t.Fatalf("unexpected vector %v", vec)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("expected bearer auth header, got %q", gotAuth)
	}
	if gotModel != "text-embedding-3-small" || gotInput != "hello" {
		t.Fatalf("unexpected request fields model=%q input=%q", gotModel, gotInput)
	}
}

func TestOpenAIEmbedQueryHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	e := NewOpenAI(server.URL, "bad-key", "text-embedding-3-small", newTestExecutor())
	_, err := e.EmbedQuery(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestOpenAIEmbedQueryMissingVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer server.Close()

	e := NewOpenAI(server.URL, "sk-test", "m", newTestExecutor())
	_, err := e.EmbedQuery(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "no vector") {
		t.Fatalf("expected missing-vector error, got %v", err)
	}
}

func TestOpenAIEmbedPreservesInputOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)

		// Encode the input ordinal into the vector so reordering is visible.
		var ordinal float32
		_, _ = fmt.Sscanf(req["input"], "text-%f", &ordinal)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{ordinal}}},
		})
	}))
	defer server.Close()

	texts := make([]string, 16)
	for i := range texts {
		texts[i] = fmt.Sprintf("text-%d", i)
	}

	e := NewOpenAI(server.URL, "sk-test", "m", newTestExecutor())
	vectors, err := e.Embed(context.Background(), texts)
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vectors) != len(texts) {
		t.Fatalf("expected %d vectors, got %d", len(texts), len(vectors))
	}
	for i, vec := range vectors {
		if len(vec) != 1 || vec[0] != float32(i) {
			t.Fatalf("vector %d out of order: %v", i, vec)
		}
	}
}

func TestOpenAIEmbedEmptyBatch(t *testing.T) {
	e := NewOpenAI("http://unused", "sk-test", "m", newTestExecutor())
	vectors, err := e.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if vectors != nil {
		t.Fatalf("expected nil for empty batch, got %v", vectors)
	}
}
