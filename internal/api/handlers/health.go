package handlers

import (
	"context"
	"net/http"
	"time"
)

// modelCheckTimeout bounds the upstream probe behind /health/model.
const modelCheckTimeout = 5 * time.Second

// HealthChecker is satisfied by every llm.LLMProvider.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler reports process and model reachability.
type HealthHandler struct {
	model HealthChecker
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(model HealthChecker) *HealthHandler {
	return &HealthHandler{model: model}
}

// Live handles GET /health. It never touches the network.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Model handles GET /health/model by probing the configured provider.
func (h *HealthHandler) Model(w http.ResponseWriter, r *http.Request) {
	if h.model == nil {
		writeError(w, http.StatusServiceUnavailable, "no model configured")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), modelCheckTimeout)
	defer cancel()

	if err := h.model.HealthCheck(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
