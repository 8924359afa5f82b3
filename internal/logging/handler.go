// Package logging provides the service's slog setup and a handler wrapper
// that counts WARN and ERROR records in Prometheus.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/weyl-ai/weyl-website/internal/metrics"
)

// CountingHandler is a slog.Handler that wraps another handler and also
// counts records at or above its threshold in metrics.LogRecords.
type CountingHandler struct {
	inner slog.Handler
	level slog.Level // Minimum level to count (default: WARN)
}

// NewCountingHandler creates a CountingHandler that wraps the given handler.
// Records at WARN level and above are passed on and counted.
func NewCountingHandler(inner slog.Handler) *CountingHandler {
	return &CountingHandler{
		inner: inner,
		level: slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *CountingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *CountingHandler) Handle(ctx context.Context, r slog.Record) error {
	// Always forward to the inner handler first
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		metrics.LogRecords.WithLabelValues(levelLabel(r.Level)).Inc()
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *CountingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CountingHandler{
		inner: h.inner.WithAttrs(attrs),
		level: h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *CountingHandler) WithGroup(name string) slog.Handler {
	return &CountingHandler{
		inner: h.inner.WithGroup(name),
		level: h.level,
	}
}

// levelLabel converts a slog.Level to the metric label value.
func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}

// ParseLevel maps a config value (debug, info, warn, error) to a slog.Level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger writing to w at the given level, with WARN and
// ERROR records counted.
func New(w io.Writer, level slog.Level) *slog.Logger {
	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewCountingHandler(text))
}
