package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/matiasleandrokruk/unitai/internal/domain/conversion"
	"github.com/matiasleandrokruk/unitai/internal/domain/history"
	"github.com/matiasleandrokruk/unitai/internal/domain/units"
	"github.com/matiasleandrokruk/unitai/internal/infra/config"
	"github.com/matiasleandrokruk/unitai/internal/infra/llm"
	"github.com/matiasleandrokruk/unitai/internal/infra/sqlite"
)

// buildProvider registers every provider the configuration allows and
// routes to the one named by LLM_PROVIDER.
func buildProvider(cfg config.Config) llm.LLMProvider {
	router := llm.NewRouter(nil, cfg.LLMProvider)
	if cfg.GeminiAPIKey != "" {
		router.Register(config.ProviderGemini, llm.NewGeminiProvider(llm.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
			Timeout: cfg.LLMTimeout,
		}))
	}
	router.Register(config.ProviderOllama, llm.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaChatModel, cfg.LLMTimeout))
	return router
}

// openHistoryDB opens the SQLite file and applies pending migrations.
func openHistoryDB(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sqlite.NewDB(ctx, path)
	if err != nil {
		return nil, err
	}
	applied, err := sqlite.MigrateUp(ctx, db)
	if err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	if applied > 0 {
		logger.Info("applied migrations", "count", applied, "path", path)
	}
	return db, nil
}

// historyWriter persists conversion events synchronously. One-shot commands
// use it instead of the event bus so nothing is lost when the process exits.
type historyWriter struct {
	store  *history.Store
	logger *slog.Logger
}

func (h historyWriter) Publish(_ string, payload any) {
	evt, ok := payload.(conversion.Event)
	if !ok {
		return
	}
	if _, err := h.store.Insert(context.Background(), history.FromEvent(evt)); err != nil {
		h.logger.Error("history: persist conversion", "error", err)
	}
}

// newStandaloneService builds a Service for the convert and mcp commands,
// persisting history synchronously when it is enabled. release closes the
// database and must be called when the service is no longer used.
func newStandaloneService(ctx context.Context, cfg config.Config, logger *slog.Logger) (svc *conversion.Service, catalog *units.Catalog, release func(), err error) {
	catalog, err = units.Load(cfg.UnitsCatalogPath)
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []conversion.Option{conversion.WithLogger(logger)}
	release = func() {}
	if cfg.HistoryEnabled() {
		db, err := openHistoryDB(ctx, cfg.DatabasePath, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, conversion.WithPublisher(historyWriter{store: history.NewStore(db), logger: logger}))
		release = func() { db.Close() } //nolint:errcheck
	}
	return conversion.NewService(buildProvider(cfg), catalog, opts...), catalog, release, nil
}
