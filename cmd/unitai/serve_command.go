package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/unitai/internal/api"
	"github.com/matiasleandrokruk/unitai/internal/domain/conversion"
	"github.com/matiasleandrokruk/unitai/internal/domain/history"
	"github.com/matiasleandrokruk/unitai/internal/domain/metrics"
	"github.com/matiasleandrokruk/unitai/internal/domain/units"
	"github.com/matiasleandrokruk/unitai/internal/infra/eventbus"
	"github.com/matiasleandrokruk/unitai/internal/mcpserver"
	"github.com/matiasleandrokruk/unitai/internal/server"
	"github.com/matiasleandrokruk/unitai/internal/version"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter form, JSON API and MCP endpoint over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), ctx)
		},
	}
}

func runServe(ctx context.Context, app *commandContext) error {
	cfg, err := app.requireConfig()
	if err != nil {
		return err
	}
	logger := app.logger()

	catalog, err := units.Load(cfg.UnitsCatalogPath)
	if err != nil {
		return err
	}

	provider := buildProvider(cfg)
	meta := provider.ModelInfo()
	m := metrics.New()
	bus := eventbus.New()

	deps := api.Deps{
		Catalog:           catalog,
		ModelName:         meta.ID,
		Model:             provider,
		Metrics:           m.Handler(),
		Logger:            logger,
		JWTSecret:         cfg.JWTSecret,
		JWTExpiry:         cfg.JWTExpiry,
		AdminPasswordHash: cfg.AdminPasswordHash,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
	}

	// Teardown order: HTTP shutdown (deferred funcs run after it returns),
	// then bus close, recorder drain, database close.
	var db *sql.DB
	recorderDone := make(chan struct{})
	defer func() {
		bus.Close()
		<-recorderDone
		if db != nil {
			db.Close() //nolint:errcheck
		}
		if n := bus.Dropped(); n > 0 {
			logger.Warn("conversion events dropped", "count", n)
		}
	}()

	if cfg.HistoryEnabled() {
		db, err = openHistoryDB(ctx, cfg.DatabasePath, logger)
		if err != nil {
			close(recorderDone)
			return err
		}

		store := history.NewStore(db)
		deps.History = store
		go func() {
			defer close(recorderDone)
			history.NewRecorder(store, logger).Start(ctx, bus)
		}()
	} else {
		close(recorderDone)
		logger.Info("conversion history disabled")
	}

	svc := conversion.NewService(provider, catalog,
		conversion.WithPublisher(bus),
		conversion.WithObserver(m),
		conversion.WithLogger(logger),
	)
	deps.Converter = svc
	deps.MCP = mcpserver.HTTPHandler(mcpserver.New(svc, catalog, version.Version))

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.HTTPHost
	srvCfg.Port = cfg.HTTPPort
	srvCfg.WriteTimeout = max(srvCfg.WriteTimeout, cfg.LLMTimeout+15*time.Second)
	srv := server.NewServer(api.NewRouter(deps), srvCfg, logger)

	logger.Info("starting unitai", "version", version.Version, "provider", meta.Provider, "model", meta.ID)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
