// Package correlation tags each request with an ID and stamps it on every
// log record written with that request's context.
package correlation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Header carries the correlation ID on HTTP requests and responses.
const Header = "X-Request-ID"

// LogKey is the attribute name added to log records.
const LogKey = "correlation_id"

// maxIDLen caps client-supplied IDs before they reach the logs.
const maxIDLen = 64

type ctxKey struct{}

// NewID returns a fresh UUIDv7, so IDs sort by creation time.
func NewID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// FromHeader returns v when it is a usable ID: 1 to 64 characters drawn
// from letters, digits, '-', '_' and '.'. Anything else gets a new ID.
func FromHeader(v string) string {
	if v == "" || len(v) > maxIDLen {
		return NewID()
	}
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return NewID()
		}
	}
	return v
}

// WithID returns ctx carrying id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID returns the ID carried by ctx. An empty ID counts as absent.
func ID(ctx context.Context) (string, bool) {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id, id != ""
}

// Handler is a slog.Handler that adds LogKey to records whose context
// carries an ID.
type Handler struct {
	next slog.Handler
}

// NewHandler wraps next.
func NewHandler(next slog.Handler) *Handler {
	return &Handler{next: next}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	id, ok := ID(ctx)
	if !ok {
		return h.next.Handle(ctx, r)
	}
	r = r.Clone()
	r.AddAttrs(slog.String(LogKey, id))
	return h.next.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewHandler(h.next.WithAttrs(attrs))
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return NewHandler(h.next.WithGroup(name))
}
