package handlers

import (
	"net/http"

	"github.com/matiasleandrokruk/unitai/internal/domain/units"
)

// UnitsHandler exposes the unit catalog.
type UnitsHandler struct {
	catalog *units.Catalog
}

// NewUnitsHandler creates a UnitsHandler.
func NewUnitsHandler(catalog *units.Catalog) *UnitsHandler {
	return &UnitsHandler{catalog: catalog}
}

// List handles GET /api/v1/units.
func (h *UnitsHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, DataResponse{Data: h.catalog.Categories()})
}
