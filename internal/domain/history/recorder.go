package history

import (
	"context"
	"log/slog"

	"github.com/matiasleandrokruk/unitai/internal/domain/conversion"
	"github.com/matiasleandrokruk/unitai/internal/infra/eventbus"
)

// Inserter is the subset of Store the recorder needs.
type Inserter interface {
	Insert(ctx context.Context, r Record) (string, error)
}

// Recorder persists conversion events published on the bus.
type Recorder struct {
	store  Inserter
	logger *slog.Logger
}

// NewRecorder builds a Recorder; a nil logger means slog.Default().
func NewRecorder(store Inserter, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, logger: logger}
}

// Start subscribes to both conversion topics and persists events until the
// bus is closed, draining whatever was buffered. Cancelling ctx does not stop
// the loop; inserts run on ctx without its cancellation. It blocks; run it in
// a goroutine.
func (r *Recorder) Start(ctx context.Context, bus eventbus.EventBus) {
	ctx = context.WithoutCancel(ctx)
	completed := bus.Subscribe(conversion.TopicCompleted)
	failed := bus.Subscribe(conversion.TopicFailed)

	for completed != nil || failed != nil {
		select {
		case evt, ok := <-completed:
			if !ok {
				completed = nil
				continue
			}
			r.handle(ctx, evt)
		case evt, ok := <-failed:
			if !ok {
				failed = nil
				continue
			}
			r.handle(ctx, evt)
		}
	}
}

func (r *Recorder) handle(ctx context.Context, evt eventbus.Event) {
	ce, ok := evt.Payload.(conversion.Event)
	if !ok {
		r.logger.Warn("history: unexpected event payload", "topic", evt.Topic)
		return
	}
	if _, err := r.store.Insert(ctx, FromEvent(ce)); err != nil {
		r.logger.Error("history: persist conversion", "error", err)
	}
}

// FromEvent maps a conversion event onto a history row.
func FromEvent(e conversion.Event) Record {
	return Record{
		Category:   e.Request.Category,
		FromUnit:   e.Request.From,
		ToUnit:     e.Request.To,
		Value:      e.Request.Value,
		Prompt:     e.Prompt,
		Response:   e.Text,
		Error:      e.Error,
		Outcome:    e.Outcome,
		Model:      e.Model,
		Provider:   e.Provider,
		DurationMS: e.Duration.Milliseconds(),
		Source:     e.Request.Source,
		CreatedAt:  e.At,
	}
}
