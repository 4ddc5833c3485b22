package handlers

import (
	"context"
	"net/http"

	"github.com/matiasleandrokruk/unitai/internal/domain/history"
)

// HistoryLister is the read side of history.Store.
type HistoryLister interface {
	List(ctx context.Context, limit, offset int) ([]history.Record, error)
	Count(ctx context.Context) (int, error)
}

// HistoryHandler serves past conversions. A nil store means history is off.
type HistoryHandler struct {
	store HistoryLister
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(store HistoryLister) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// List handles GET /api/v1/history?limit=&offset=.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	page := parsePaginationParams(r)
	records, err := h.store.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list history")
		return
	}
	total, err := h.store.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to count history")
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Data: records,
		Meta: Meta{Total: total, Limit: page.Limit, Offset: page.Offset},
	})
}
