package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"ragdesk/internal/config"
	"ragdesk/internal/core/domain"
	"ragdesk/internal/core/ports"
	"ragdesk/internal/core/usecase"
	"ragdesk/internal/infrastructure/chunking"
	"ragdesk/internal/infrastructure/embedding"
	"ragdesk/internal/infrastructure/extractor"
	"ragdesk/internal/infrastructure/queue/inproc"
	"ragdesk/internal/infrastructure/queue/nats"
	"ragdesk/internal/infrastructure/repository/sqlite"
	"ragdesk/internal/infrastructure/resilience"
)

// App wires the pipeline. With NATS disabled the queue is in-process
// and the API binary must also run RunWorker to drain it.
type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue   ports.JobQueue
	Emitter ports.EventEmitter

	IngestUC    ports.DocumentIngestor
	ProcessUC   ports.DocumentProcessor
	QueryUC     ports.RAGQueryService
	SearchUC    ports.DocumentSearcher
	ChatUC      ports.ChatService
	DocumentsUC ports.DocumentManager
	Configs     *usecase.RAGConfigStore

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	ragCfg := buildRAGConfig(cfg)
	if err := ragCfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate rag config: %w", err)
	}
	configs := usecase.NewRAGConfigStore(ragCfg)

	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := sqlite.NewStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	provider := embedding.NewProvider(cfg.OpenAIBaseURL, executor)
	chunker := chunking.NewSplitter()
	extract := extractor.New()

	var queue ports.JobQueue
	var emitter ports.EventEmitter
	closeQueue := func() {}
	if cfg.NATSEnabled {
		nq, err := nats.New(cfg.NATSURL, nats.Options{
			Executor: executor,
			Logger:   logger,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		queue = nq
		emitter = nats.NewEmitter(nq)
		closeQueue = nq.Close
	} else {
		iq := inproc.NewQueue(0, logger)
		queue = iq
		emitter = inproc.NewLogEmitter(logger)
		closeQueue = iq.Close
	}

	processUC := usecase.NewProcessDocumentUseCase(store, chunker, provider)
	ingestUC := usecase.NewIngestDocumentUseCase(extract, store, queue, processUC, emitter, logger)
	retrieveUC := usecase.NewRetrieveUseCase(store, provider)
	queryUC := usecase.NewQueryUseCase(retrieveUC)
	searchUC := usecase.NewSearchDocumentsUseCase(store, provider)
	chatUC := usecase.NewChatUseCase(searchUC, store)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:   queue,
		Emitter: emitter,

		IngestUC:    ingestUC,
		ProcessUC:   processUC,
		QueryUC:     queryUC,
		SearchUC:    searchUC,
		ChatUC:      chatUC,
		DocumentsUC: usecase.NewManageDocumentsUseCase(store),
		Configs:     configs,

		closeFn: func() {
			closeQueue()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// UploadDir is where the HTTP layer stages incoming files before
// extraction, next to the database file.
func (a *App) UploadDir() string {
	return filepath.Join(filepath.Dir(a.Config.SQLitePath), "uploads")
}

// RunWorker drains the job queue until ctx is cancelled, processing
// each document with the config snapshot active at dequeue time and
// emitting document_processed on success.
func (a *App) RunWorker(ctx context.Context) error {
	return a.Queue.SubscribeDocumentIngested(ctx, func(handlerCtx context.Context, documentID string) error {
		_, err := a.ProcessUC.ProcessByID(handlerCtx, documentID, a.Configs.Get())
		if err != nil {
			return err
		}
		if emitErr := a.Emitter.DocumentProcessed(handlerCtx, documentID); emitErr != nil {
			a.Logger.Warn("document_processed emit failed", "document_id", documentID, "error", emitErr)
		}
		return nil
	})
}

func buildRAGConfig(cfg config.Config) domain.RAGConfig {
	return domain.RAGConfig{
		EmbeddingModel: domain.EmbeddingModel{
			Backend:   domain.EmbeddingBackend(cfg.EmbeddingBackend),
			ModelName: cfg.EmbeddingModelName,
			APIKey:    cfg.OpenAIAPIKey,
		},
		Mode:                domain.RAGMode(cfg.RAGMode),
		ChunkSize:           cfg.ChunkSize,
		ChunkOverlap:        cfg.ChunkOverlap,
		TopK:                cfg.RAGTopK,
		SimilarityThreshold: cfg.SimilarityThreshold,
	}
}
