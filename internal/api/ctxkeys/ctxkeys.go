// Package ctxkeys holds the typed context keys shared by the api middleware
// and handlers. It is a leaf package so neither side imports the other.
package ctxkeys

import "context"

// Key is the named type for all API context keys. context.Value compares
// type and value, so these never collide with plain string keys.
type Key string

const (
	// Subject is the admin subject taken from a verified bearer token.
	Subject Key = "subject"
)

// WithValue adds a string value under key.
func WithValue(ctx context.Context, key Key, value string) context.Context {
	return context.WithValue(ctx, key, value)
}
