package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/matiasleandrokruk/unitai/internal/domain/conversion"
	"github.com/matiasleandrokruk/unitai/internal/domain/units"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// WebHandler renders the converter form and handles its submissions.
type WebHandler struct {
	converter Converter
	catalog   *units.Catalog
	model     string
	logger    *slog.Logger
}

// NewWebHandler creates a WebHandler. model is only used for the page footer.
func NewWebHandler(converter Converter, catalog *units.Catalog, model string, logger *slog.Logger) *WebHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebHandler{converter: converter, catalog: catalog, model: model, logger: logger}
}

type formValues struct {
	From  string
	To    string
	Value string
}

type pageData struct {
	Categories []units.Category
	Active     units.Category
	Form       formValues
	Min        string
	Banner     *conversion.Banner
	Model      string
}

// Index handles GET /?category=. Unknown or missing categories fall back to
// the first tab.
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	active := h.activeCategory(r.URL.Query().Get("category"))
	h.render(w, active, defaultForm(active), nil)
}

// Submit handles POST /convert from the form. The page is always re-rendered
// with status 200; the outcome is carried by the banner.
func (h *WebHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	active := h.activeCategory(r.PostForm.Get("category"))
	form := formValues{
		From:  r.PostForm.Get("from"),
		To:    r.PostForm.Get("to"),
		Value: strings.TrimSpace(r.PostForm.Get("value")),
	}

	// Units are checked before the number so an untouched form asks for units first.
	if strings.TrimSpace(form.From) == "" || strings.TrimSpace(form.To) == "" {
		banner := conversion.Banner{Kind: conversion.BannerWarning, Message: conversion.MissingUnitsMessage}
		h.render(w, active, form, &banner)
		return
	}
	value, err := strconv.ParseFloat(form.Value, 64)
	if err != nil {
		banner := conversion.Banner{Kind: conversion.BannerWarning, Message: conversion.InvalidValueMessage}
		h.render(w, active, form, &banner)
		return
	}

	out, err := h.converter.Convert(r.Context(), conversion.Request{
		Category: active.Name,
		From:     form.From,
		To:       form.To,
		Value:    value,
		Source:   conversion.SourceWeb,
	})
	banner := conversion.NewBanner(out, err)
	h.render(w, active, form, &banner)
}

func (h *WebHandler) activeCategory(name string) units.Category {
	if name != "" {
		if cat, err := h.catalog.Category(name); err == nil {
			return cat
		}
	}
	return h.catalog.First()
}

func defaultForm(c units.Category) formValues {
	f := formValues{Value: "0"}
	if len(c.Units) > 0 {
		f.From = c.Units[0]
		f.To = c.Units[0]
	}
	if len(c.Units) > 1 {
		f.To = c.Units[1]
	}
	return f
}

func (h *WebHandler) render(w http.ResponseWriter, active units.Category, form formValues, banner *conversion.Banner) {
	data := pageData{
		Categories: h.catalog.Categories(),
		Active:     active,
		Form:       form,
		Banner:     banner,
		Model:      h.model,
	}
	if active.MinValue != nil {
		data.Min = conversion.FormatValue(*active.MinValue)
	}

	// Render into a buffer so a template error never leaves a half-written page.
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}
