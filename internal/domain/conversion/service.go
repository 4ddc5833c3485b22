package conversion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/matiasleandrokruk/unitai/internal/domain/units"
	"github.com/matiasleandrokruk/unitai/internal/infra/llm"
	"github.com/matiasleandrokruk/unitai/internal/infra/logging"
)

// Event topics published after every remote call.
const (
	TopicCompleted = "conversion.completed"
	TopicFailed    = "conversion.failed"
)

// Outcome labels used in events, metrics and history rows.
const (
	OutcomeSuccess  = "success"
	OutcomeEmpty    = "empty"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

// Metric category labels for requests that do not name a catalog category.
const (
	CategoryNone    = "none"
	CategoryUnknown = "unknown"
)

// Outcome is a successful conversion.
type Outcome struct {
	Request  Request       `json:"request"`
	Prompt   string        `json:"prompt"`
	Text     string        `json:"result"`
	Model    string        `json:"model"`
	Provider string        `json:"provider"`
	Duration time.Duration `json:"-"`
}

// Event is the payload published on TopicCompleted / TopicFailed.
type Event struct {
	Request  Request
	Prompt   string
	Text     string
	Error    string
	Outcome  string
	Model    string
	Provider string
	Duration time.Duration
	At       time.Time
}

// Publisher is satisfied by *eventbus.Bus.
type Publisher interface {
	Publish(topic string, payload any)
}

// Observer receives one call per Convert; satisfied by *metrics.Metrics.
type Observer interface {
	ObserveConversion(category, outcome string, d time.Duration)
	ObserveProviderError(provider string)
}

// Service runs conversions against a single provider.
type Service struct {
	provider llm.LLMProvider
	catalog  *units.Catalog
	bus      Publisher
	observer Observer
	logger   *slog.Logger
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithPublisher sends conversion events to p.
func WithPublisher(p Publisher) Option { return func(s *Service) { s.bus = p } }

// WithObserver records metrics through o.
func WithObserver(o Observer) Option { return func(s *Service) { s.observer = o } }

// WithLogger overrides slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now (tests).
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// NewService builds a Service. catalog may be nil to accept any unit labels.
func NewService(provider llm.LLMProvider, catalog *units.Catalog, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		catalog:  catalog,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the service validates against (may be nil).
func (s *Service) Catalog() *units.Catalog { return s.catalog }

// Model reports the provider/model pair requests are sent to.
func (s *Service) Model() llm.ModelMeta { return s.provider.ModelInfo() }

// Convert validates req, sends its prompt to the model once, and returns the
// model text verbatim. Errors are *ValidationError, ErrEmptyResponse, or wrap
// ErrGenerationFailed.
func (s *Service) Convert(ctx context.Context, req Request) (*Outcome, error) {
	req, err := Validate(req, s.catalog)
	log := logging.WithConversion(s.logger, req.Category, req.From, req.To)
	if err != nil {
		log.Info("conversion rejected", "reason", err.Error())
		s.observe(s.categoryLabel(req.Category), OutcomeRejected, 0)
		return nil, err
	}

	prompt := BuildPrompt(req)
	meta := s.provider.ModelInfo()
	start := s.now()
	resp, callErr := s.provider.ChatCompletion(ctx, llm.UserPrompt(prompt))
	elapsed := s.now().Sub(start)

	evt := Event{
		Request:  req,
		Prompt:   prompt,
		Model:    meta.ID,
		Provider: meta.Provider,
		Duration: elapsed,
		At:       start.UTC(),
	}
	if resp != nil && resp.Model != "" {
		evt.Model = resp.Model
	}

	switch {
	case callErr != nil:
		evt.Outcome = OutcomeFailed
		evt.Error = callErr.Error()
		log.Warn("model call failed", "provider", meta.Provider, "duration", elapsed, "error", callErr)
		if s.observer != nil {
			s.observer.ObserveProviderError(meta.Provider)
		}
		s.finish(TopicFailed, evt)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, callErr)

	case resp == nil || strings.TrimSpace(resp.Content) == "":
		evt.Outcome = OutcomeEmpty
		evt.Error = ErrEmptyResponse.Error()
		log.Warn("model returned empty text", "provider", meta.Provider, "duration", elapsed)
		s.finish(TopicFailed, evt)
		return nil, ErrEmptyResponse
	}

	evt.Outcome = OutcomeSuccess
	evt.Text = resp.Content
	log.Info("conversion completed", "model", evt.Model, "duration", elapsed, "tokens", resp.Tokens)
	s.finish(TopicCompleted, evt)

	return &Outcome{
		Request:  req,
		Prompt:   prompt,
		Text:     resp.Content,
		Model:    evt.Model,
		Provider: meta.Provider,
		Duration: elapsed,
	}, nil
}

func (s *Service) finish(topic string, evt Event) {
	s.observe(s.categoryLabel(evt.Request.Category), evt.Outcome, evt.Duration)
	if s.bus != nil {
		s.bus.Publish(topic, evt)
	}
}

func (s *Service) observe(category, outcome string, d time.Duration) {
	if s.observer != nil {
		s.observer.ObserveConversion(category, outcome, d)
	}
}

// categoryLabel bounds metric cardinality to the catalog's category names.
func (s *Service) categoryLabel(name string) string {
	if name == "" {
		return CategoryNone
	}
	if s.catalog == nil {
		return CategoryUnknown
	}
	cat, err := s.catalog.Category(name)
	if err != nil {
		return CategoryUnknown
	}
	return cat.Name
}
