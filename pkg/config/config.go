package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for insights-engine.
// Configuration can come from a YAML file (config.yaml) or environment
// variables; environment variables override YAML values. Secrets (passwords,
// API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Embedding model endpoint (OpenAI-compatible)
	Embedding EmbeddingConfig `yaml:"embedding"`

	// NLP engine tuning
	NLP NLPConfig `yaml:"nlp"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"postgres"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"domrock"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// URL builds a connection string for pgx.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// EmbeddingConfig holds the sentence-embedding endpoint configuration.
// Any OpenAI-compatible embeddings API works (OpenAI, vLLM, Ollama, etc.).
type EmbeddingConfig struct {
	Endpoint string `yaml:"endpoint" env:"EMBEDDING_ENDPOINT" env-default:"https://api.openai.com/v1"`
	Model    string `yaml:"model" env:"EMBEDDING_MODEL" env-default:"text-embedding-3-small"`
	APIKey   string `yaml:"-" env:"EMBEDDING_API_KEY"` // Secret - not in YAML
}

// NLPConfig holds the classifier's tunable constants and the corpus location.
// The similarity weights and thresholds are heuristic ensemble settings, not
// learned values; they are exposed here for tuning.
type NLPConfig struct {
	CorpusPath          string  `yaml:"corpus_path" env:"NLP_CORPUS_PATH" env-default:"data/perguntas.csv"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold" env:"NLP_CONFIDENCE_THRESHOLD" env-default:"0.68"`
	FallbackThreshold   float64 `yaml:"fallback_threshold" env:"NLP_FALLBACK_THRESHOLD" env-default:"0.58"`
	SemanticWeight      float64 `yaml:"semantic_weight" env:"NLP_SEMANTIC_WEIGHT" env-default:"0.8"`
}

// Load reads configuration from config.yaml (if present) and the environment,
// then validates it.
func Load(version string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	cfg.Version = version

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.NLP.SemanticWeight < 0 || c.NLP.SemanticWeight > 1 {
		return fmt.Errorf("nlp.semantic_weight must be in [0,1], got %v", c.NLP.SemanticWeight)
	}
	if c.NLP.FallbackThreshold > c.NLP.ConfidenceThreshold {
		return fmt.Errorf("nlp.fallback_threshold (%v) must not exceed nlp.confidence_threshold (%v)",
			c.NLP.FallbackThreshold, c.NLP.ConfidenceThreshold)
	}
	return nil
}
