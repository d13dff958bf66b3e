package httpadapter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"ragdesk/internal/core/domain"
	"ragdesk/internal/core/ports"
	"ragdesk/internal/core/usecase"
	"ragdesk/internal/observability/metrics"
)

const serviceName = "api"

// Router exposes the pipeline over REST. Every operation resolves the
// active RAGConfig snapshot once at the start of the request.
type Router struct {
	ingestor  ports.DocumentIngestor
	query     ports.RAGQueryService
	searcher  ports.DocumentSearcher
	chat      ports.ChatService
	documents ports.DocumentManager
	configs   *usecase.RAGConfigStore

	uploadDir string
	metrics   *metrics.HTTPServerMetrics
}

func NewRouter(
	ingestor ports.DocumentIngestor,
	query ports.RAGQueryService,
	searcher ports.DocumentSearcher,
	chat ports.ChatService,
	documents ports.DocumentManager,
	configs *usecase.RAGConfigStore,
	uploadDir string,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		ingestor:  ingestor,
		query:     query,
		searcher:  searcher,
		chat:      chat,
		documents: documents,
		configs:   configs,
		uploadDir: uploadDir,
		metrics:   httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.documentsCollection)
	mux.HandleFunc("/v1/documents/", rt.documentByID)
	mux.HandleFunc("/v1/documents/ingest", rt.ingestDocument)
	mux.HandleFunc("/v1/rag/query", rt.queryRAG)
	mux.HandleFunc("/v1/rag/config", rt.ragConfig)
	mux.HandleFunc("/v1/search", rt.searchDocuments)
	mux.HandleFunc("/v1/chat", rt.sendChat)
	mux.HandleFunc("/v1/chat/history", rt.chatHistory)

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return loggingMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) documentsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		docs, err := rt.documents.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, docs)
	case http.MethodPost:
		rt.uploadDocument(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

// uploadDocument accepts a multipart file, stores it and returns once
// the document row exists. Chunk processing continues on the queue.
func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	path, title, err := rt.saveUpload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	doc, err := rt.ingestor.Upload(r.Context(), path, title, rt.configs.Get())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, doc)
}

// ingestDocument runs the full pipeline synchronously and reports the
// chunk count.
func (rt *Router) ingestDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	path, title, err := rt.saveUpload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := rt.ingestor.Ingest(r.Context(), path, title, rt.configs.Get())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) documentByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if r.Method != http.MethodDelete {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if err := rt.documents.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

func (rt *Router) queryRAG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Question string `json:"question"`
		Mode     string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	cfg := rt.configs.Get()
	mode := cfg.Mode
	if req.Mode != "" {
		parsed, err := domain.ParseRAGMode(req.Mode)
		if err != nil {
			writeError(w, err)
			return
		}
		mode = parsed
	}

	start := time.Now()
	response, err := rt.query.Query(r.Context(), req.Question, mode, cfg)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordRAGObservation(serviceName, "query", len(response.RetrievedContext), time.Since(start))
		rt.metrics.RecordRAGModeRequest(serviceName, "query", string(response.ModeUsed))
	}
	writeJSON(w, http.StatusOK, response)
}

func (rt *Router) ragConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, rt.configs.Get())
	case http.MethodPut:
		var cfg domain.RAGConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
		if err := rt.configs.Set(cfg); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rt.configs.Get())
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) searchDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return
	}

	results, err := rt.searcher.Search(r.Context(), req.Query, rt.configs.Get())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (rt *Router) sendChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	response, err := rt.chat.Send(r.Context(), req.Message, rt.configs.Get())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (rt *Router) chatHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	messages, err := rt.chat.History(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// saveUpload copies the multipart 'file' field into the upload
// directory under a unique name and returns its path and display title.
func (rt *Router) saveUpload(r *http.Request) (path string, title string, err error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", fmt.Errorf("multipart field 'file' is required")
	}
	defer file.Close()

	if err := os.MkdirAll(rt.uploadDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + "_" + filepath.Base(header.Filename)
	path = filepath.Join(rt.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", "", fmt.Errorf("write upload file: %w", err)
	}

	title = r.FormValue("title")
	if title == "" {
		title = header.Filename
	}
	return path, title, nil
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
