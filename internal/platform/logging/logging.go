// Package logging builds the service's slog logger and carries it through
// request contexts.
//
//	logger := logging.New("info", "json", os.Stderr)
//
// The logging middleware stores a request-scoped child logger with
// logging.WithLogger; services pull it back out with logging.FromContext, so
// every entry inside a request carries its request_id and correlation_id.
//
// Services log failures with the operation name, the entity IDs involved, and
// the full error chain:
//
//	logger.ErrorContext(ctx, "failed to fetch project",
//	    slog.String("operation", "GetProject"),
//	    slog.Int64("project_id", id),
//	    slog.Any("error", err),
//	)
//
// Every handler built here runs attributes through the masq redaction layer
// (see newRedactAttr), so passwords and tokens never reach the sink even when
// logged by accident.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type contextKey struct{}

// New builds a logger writing to w. Level is one of "debug", "info", "warn",
// "error" (anything else means info); format "text" selects the text handler,
// anything else JSON. Debug level also turns on source locations.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// WithLogger stores a logger on the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the context's logger, or slog.Default() when the
// context never went through WithLogger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
