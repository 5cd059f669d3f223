// Package logging builds the structured logger used by cuebridge.
//
// Records always go to stderr: when the MCP server runs over stdio,
// stdout carries protocol frames and must stay clean.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lydakis/cuebridge/internal/config"
)

// New creates a logger for the given configuration, writing to stderr.
func New(cfg config.LogConfig, version string) *slog.Logger {
	return NewWithWriter(os.Stderr, cfg, version)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(out io.Writer, cfg config.LogConfig, version string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", "cuebridge"),
		slog.String("version", version),
	})
	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
// Defaults to info if unrecognised.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Discard returns a logger that drops every record. Tests and library
// callers that do not configure logging use it.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
