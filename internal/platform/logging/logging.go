// Package logging wraps log/slog with the handler selection the CLI
// needs (text for a terminal, JSON for anything piped or scripted). The
// gameplay core itself never imports this package: §5 forbids hidden I/O
// inside the deterministic engine, so logging is strictly a host concern.
package logging

import (
	"io"
	"log/slog"
)

// Format selects the slog handler used by New.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New builds a *slog.Logger writing to w at the given level and format.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
