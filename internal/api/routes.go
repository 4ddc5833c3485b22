// Package api assembles the chi router: the HTML converter form, the JSON
// API, admin auth, metrics, and the MCP endpoint.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matiasleandrokruk/unitai/internal/api/handlers"
	apmiddleware "github.com/matiasleandrokruk/unitai/internal/api/middleware"
	"github.com/matiasleandrokruk/unitai/internal/domain/units"
)

// Deps are the collaborators the router wires into handlers. Optional
// fields left nil switch their routes off (or to 404 for history).
type Deps struct {
	Converter handlers.Converter
	Catalog   *units.Catalog
	ModelName string

	// Model backs GET /health/model.
	Model handlers.HealthChecker
	// History is nil when DATABASE_PATH=off.
	History handlers.HistoryLister
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	// MCP is mounted at /mcp when set.
	MCP http.Handler

	Logger *slog.Logger

	JWTSecret         string
	JWTExpiry         time.Duration
	AdminPasswordHash string

	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates and configures the chi router with all routes.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apmiddleware.AccessLog(deps.Logger))
	r.Use(middleware.Recoverer)

	limiter := apmiddleware.NewRateLimiter(deps.RateLimitRPS, deps.RateLimitBurst)

	// ===== PUBLIC ROUTES =====

	health := handlers.NewHealthHandler(deps.Model)
	r.Get("/health", health.Live)
	r.Get("/health/model", health.Model)

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	web := handlers.NewWebHandler(deps.Converter, deps.Catalog, deps.ModelName, deps.Logger)
	r.Get("/", web.Index)
	r.With(limiter.Middleware).Post("/convert", web.Submit)

	authHandler := handlers.NewAuthHandler(deps.JWTSecret, deps.AdminPasswordHash, deps.JWTExpiry)
	r.Post("/auth/token", authHandler.Token)

	if deps.MCP != nil {
		r.With(limiter.Middleware).Handle("/mcp", deps.MCP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		unitsHandler := handlers.NewUnitsHandler(deps.Catalog)
		convertHandler := handlers.NewConvertHandler(deps.Converter)
		r.Get("/units", unitsHandler.List)
		r.With(limiter.Middleware).Post("/convert", convertHandler.Convert)

		// ===== ADMIN ROUTES (JWT required when JWT_SECRET is set) =====
		r.Group(func(r chi.Router) {
			r.Use(apmiddleware.Auth(deps.JWTSecret))
			historyHandler := handlers.NewHistoryHandler(deps.History)
			r.Get("/history", historyHandler.List) // GET /api/v1/history
		})
	})

	return r
}
