package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matiasleandrokruk/unitai/internal/domain/conversion"
)

// Converter is the conversion entry point; *conversion.Service satisfies it.
type Converter interface {
	Convert(ctx context.Context, req conversion.Request) (*conversion.Outcome, error)
}

// ConvertHandler serves the JSON conversion endpoint.
type ConvertHandler struct {
	converter Converter
}

// NewConvertHandler creates a ConvertHandler.
func NewConvertHandler(converter Converter) *ConvertHandler {
	return &ConvertHandler{converter: converter}
}

// ConvertRequest is the body for POST /api/v1/convert.
// Value is a pointer so a missing field is distinguishable from 0.
type ConvertRequest struct {
	Category string   `json:"category"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Value    *float64 `json:"value"`
}

// ConvertResponse is the success payload.
type ConvertResponse struct {
	Prompt     string `json:"prompt"`
	Result     string `json:"result"`
	Model      string `json:"model"`
	Provider   string `json:"provider"`
	DurationMS int64  `json:"durationMs"`
}

// Convert handles POST /api/v1/convert.
//
// Response codes:
//   - 200 OK: model text returned verbatim in data.result
//   - 400 Bad Request: malformed JSON or missing value
//   - 422 Unprocessable Entity: units or value rejected by validation
//   - 502 Bad Gateway: model call failed or returned no text
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	out, err := h.converter.Convert(r.Context(), conversion.Request{
		Category: req.Category,
		From:     req.From,
		To:       req.To,
		Value:    *req.Value,
		Source:   conversion.SourceAPI,
	})
	if err != nil {
		writeConvertError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DataResponse{Data: ConvertResponse{
		Prompt:     out.Prompt,
		Result:     out.Text,
		Model:      out.Model,
		Provider:   out.Provider,
		DurationMS: out.Duration.Milliseconds(),
	}})
}

func writeConvertError(w http.ResponseWriter, err error) {
	var ve *conversion.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusUnprocessableEntity, ve.Message)
	case errors.Is(err, conversion.ErrGenerationFailed), errors.Is(err, conversion.ErrEmptyResponse):
		writeError(w, http.StatusBadGateway, conversion.GenerationErrorMessage)
	default:
		writeError(w, http.StatusInternalServerError, "conversion failed")
	}
}
