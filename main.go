package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/BananaScripts/insights-engine/pkg/config"
	"github.com/BananaScripts/insights-engine/pkg/database"
	"github.com/BananaScripts/insights-engine/pkg/handlers"
	"github.com/BananaScripts/insights-engine/pkg/llm"
	"github.com/BananaScripts/insights-engine/pkg/logging"
	"github.com/BananaScripts/insights-engine/pkg/middleware"
	"github.com/BananaScripts/insights-engine/pkg/nlp"
	"github.com/BananaScripts/insights-engine/pkg/query"
	"github.com/BananaScripts/insights-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", cfg.Database.Database),
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.String("corpus", cfg.NLP.CorpusPath))

	// Every business intent must have a query template before we serve.
	if err := query.ValidateTemplates(); err != nil {
		logger.Fatal("Query template table is inconsistent", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("cause", logging.SanitizeError(err)))
	}
	defer db.Close()

	// Migrations run over database/sql; golang-migrate does not speak the
	// pgx pool interface.
	migrationDB, err := sql.Open("pgx", cfg.Database.URL())
	if err != nil {
		logger.Fatal("Failed to open migration connection",
			zap.String("cause", logging.SanitizeError(err)))
	}
	if err := database.RunMigrations(migrationDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations",
			zap.String("cause", logging.SanitizeError(err)))
	}
	_ = migrationDB.Close()

	embedder, err := llm.NewClient(&llm.Config{
		Endpoint: cfg.Embedding.Endpoint,
		Model:    cfg.Embedding.Model,
		APIKey:   cfg.Embedding.APIKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create embedding client", zap.Error(err))
	}

	// Corpus loading tolerates a missing file or an embedding outage; the
	// classifier degrades rather than blocking startup.
	corpus := nlp.LoadCorpus(ctx, cfg.NLP.CorpusPath, embedder, logger)

	classifier := nlp.NewClassifier(corpus, embedder, nlp.ClassifierConfig{
		SemanticWeight:      cfg.NLP.SemanticWeight,
		ConfidenceThreshold: cfg.NLP.ConfidenceThreshold,
		FallbackThreshold:   cfg.NLP.FallbackThreshold,
	}, logger)

	resolver := services.NewResolver(classifier, nlp.NewExtractor(), logger)
	executor := query.NewExecutor(db, logger)
	chat := services.NewChatService(resolver, executor, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewChatHandler(chat, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting insights-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
