package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is resolved in three layers: built-in defaults, then an
// optional YAML file named by CONFIG_FILE, then environment variables.
// Later layers win.
type Config struct {
	APIPort  string `yaml:"api_port"`
	LogLevel string `yaml:"log_level"`

	SQLitePath string `yaml:"sqlite_path"`

	NATSURL     string `yaml:"nats_url"`
	NATSEnabled bool   `yaml:"nats_enabled"`

	OpenAIBaseURL string `yaml:"openai_base_url"`
	OpenAIAPIKey  string `yaml:"openai_api_key"`

	EmbeddingBackend   string `yaml:"embedding_backend"`
	EmbeddingModelName string `yaml:"embedding_model_name"`

	RAGMode             string  `yaml:"rag_mode"`
	ChunkSize           int     `yaml:"chunk_size"`
	ChunkOverlap        int     `yaml:"chunk_overlap"`
	RAGTopK             int     `yaml:"rag_top_k"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`

	WorkerMetricsPort string `yaml:"worker_metrics_port"`
}

func defaults() Config {
	return Config{
		APIPort:  "8080",
		LogLevel: "info",

		SQLitePath: "./data/ragdesk.db",

		NATSURL:     "nats://localhost:4222",
		NATSEnabled: false,

		OpenAIBaseURL: "https://api.openai.com/v1",

		EmbeddingBackend:   "huggingface",
		EmbeddingModelName: "sentence-transformers/all-MiniLM-L6-v2",

		RAGMode:             "base_rag",
		ChunkSize:           200,
		ChunkOverlap:        50,
		RAGTopK:             5,
		SimilarityThreshold: 0.3,

		WorkerMetricsPort: "9090",
	}
}

func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	envStr("API_PORT", &cfg.APIPort)
	envStr("LOG_LEVEL", &cfg.LogLevel)

	envStr("SQLITE_PATH", &cfg.SQLitePath)

	envStr("NATS_URL", &cfg.NATSURL)
	envBool("NATS_ENABLED", &cfg.NATSEnabled)

	envStr("OPENAI_BASE_URL", &cfg.OpenAIBaseURL)
	envStr("OPENAI_API_KEY", &cfg.OpenAIAPIKey)

	envStr("EMBEDDING_BACKEND", &cfg.EmbeddingBackend)
	envStr("EMBEDDING_MODEL_NAME", &cfg.EmbeddingModelName)

	envStr("RAG_MODE", &cfg.RAGMode)
	envInt("CHUNK_SIZE", &cfg.ChunkSize)
	envInt("CHUNK_OVERLAP", &cfg.ChunkOverlap)
	envInt("RAG_TOP_K", &cfg.RAGTopK)
	envFloat("SIMILARITY_THRESHOLD", &cfg.SimilarityThreshold)

	envStr("WORKER_METRICS_PORT", &cfg.WorkerMetricsPort)
}

func envStr(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envFloat(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
