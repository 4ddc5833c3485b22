// Package history keeps a log of submitted conversions in SQLite.
// Rows are written after the fact and are never used to answer a request.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is one persisted conversion.
type Record struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	FromUnit   string    `json:"from"`
	ToUnit     string    `json:"to"`
	Value      float64   `json:"value"`
	Prompt     string    `json:"prompt"`
	Response   string    `json:"response"`
	Error      string    `json:"error,omitempty"`
	Outcome    string    `json:"outcome"`
	Model      string    `json:"model"`
	Provider   string    `json:"provider"`
	DurationMS int64     `json:"durationMs"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"createdAt"`
}

// timeLayout is fixed-width so created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store reads and writes the conversions table.
type Store struct {
	db *sql.DB
}

// NewStore wraps a migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Insert persists r, assigning a UUIDv7 when r.ID is empty. Returns the ID.
func (s *Store) Insert(ctx context.Context, r Record) (string, error) {
	if r.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("history: new id: %w", err)
		}
		r.ID = id.String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if r.Source == "" {
		r.Source = "web"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions
			(id, category, from_unit, to_unit, value, prompt, response, error,
			 outcome, model, provider, duration_ms, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Category, r.FromUnit, r.ToUnit, r.Value, r.Prompt, r.Response, r.Error,
		r.Outcome, r.Model, r.Provider, r.DurationMS, r.Source, r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("history: insert %s: %w", r.ID, err)
	}
	return r.ID, nil
}

// List returns records newest first.
func (s *Store) List(ctx context.Context, limit, offset int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, from_unit, to_unit, value, prompt, response, error,
		       outcome, model, provider, duration_ms, source, created_at
		FROM conversions
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		var created string
		if err := rows.Scan(&r.ID, &r.Category, &r.FromUnit, &r.ToUnit, &r.Value, &r.Prompt,
			&r.Response, &r.Error, &r.Outcome, &r.Model, &r.Provider, &r.DurationMS, &r.Source, &created); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("history: parse created_at %q: %w", created, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the total number of records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM conversions").Scan(&n); err != nil {
		return 0, fmt.Errorf("history: count: %w", err)
	}
	return n, nil
}
