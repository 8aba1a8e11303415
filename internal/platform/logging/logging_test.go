package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"taskmanager-api/internal/platform/logging"
)

func capture(level, format string) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logging.New(level, format, buf), buf
}

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"json", "json", `"level":"INFO"`},
		{"text", "text", "level=INFO"},
		{"unknown format falls back to json", "xml", `"level":"INFO"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := capture("info", tt.format)
			logger.Info("hello")

			if out := buf.String(); !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want it to contain %q", out, tt.want)
			}
		})
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		log      func(*slog.Logger)
		wantDrop bool
	}{
		{"debug passes at debug", "debug", func(l *slog.Logger) { l.Debug("m") }, false},
		{"debug dropped at info", "info", func(l *slog.Logger) { l.Debug("m") }, true},
		{"warn dropped at error", "error", func(l *slog.Logger) { l.Warn("m") }, true},
		{"info passes at unknown level", "verbose", func(l *slog.Logger) { l.Info("m") }, false},
		{"debug dropped at unknown level", "verbose", func(l *slog.Logger) { l.Debug("m") }, true},
		{"level parsing ignores case", "DEBUG", func(l *slog.Logger) { l.Debug("m") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := capture(tt.level, "json")
			tt.log(logger)

			if dropped := buf.Len() == 0; dropped != tt.wantDrop {
				t.Errorf("dropped = %v, want %v (output %q)", dropped, tt.wantDrop, buf.String())
			}
		})
	}
}

func TestNew_SourceOnlyAtDebug(t *testing.T) {
	t.Parallel()

	logger, buf := capture("debug", "json")
	logger.Debug("with source")
	if !strings.Contains(buf.String(), `"source"`) {
		t.Errorf("output = %q, want source location at debug level", buf.String())
	}

	logger, buf = capture("info", "json")
	logger.Info("no source")
	if strings.Contains(buf.String(), `"source"`) {
		t.Errorf("output = %q, want no source location at info level", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	first, _ := capture("info", "json")
	second, _ := capture("debug", "json")

	ctx := logging.WithLogger(context.Background(), first)
	if logging.FromContext(ctx) != first {
		t.Error("FromContext did not return the stored logger")
	}

	ctx = logging.WithLogger(ctx, second)
	if logging.FromContext(ctx) != second {
		t.Error("FromContext did not return the most recently stored logger")
	}

	if logging.FromContext(context.Background()) != slog.Default() {
		t.Error("FromContext on a bare context should fall back to slog.Default()")
	}
}

func TestRedaction(t *testing.T) {
	t.Parallel()

	// Field names cover the credentials this service actually handles:
	// sign-in passwords, stored hashes, issued tokens, and the signing
	// secret. The regex case covers raw bearer values leaking through
	// arbitrary fields.
	tests := []struct {
		name   string
		attr   slog.Attr
		secret string
	}{
		{"authorization header", slog.String("authorization", "Bearer supersecret-token"), "supersecret-token"},
		{"password field", slog.String("password", "hunter2"), "hunter2"},
		{"password_hash field", slog.String("password_hash", "$2a$10$abcdefg"), "$2a$10$abcdefg"},
		{"jwt_secret field", slog.String("jwt_secret", "signing-key-value"), "signing-key-value"},
		{"bearer value by regex", slog.String("raw_header", "Bearer eyJhbGciOiJSUzI1NiJ9"), "eyJhbGciOiJSUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := capture("info", "json")
			logger.Info("event", tt.attr)

			out := buf.String()
			if strings.Contains(out, tt.secret) {
				t.Errorf("output %q contains the raw secret", out)
			}
			if !strings.Contains(out, "[REDACTED]") {
				t.Errorf("output %q missing the [REDACTED] marker", out)
			}
		})
	}
}

func TestRedaction_LeavesPlainFieldsAlone(t *testing.T) {
	t.Parallel()

	logger, buf := capture("info", "json")
	logger.Info("event",
		slog.String("username", "alice"),
		slog.String("path", "/api/v1/projects"),
	)

	out := buf.String()
	for _, want := range []string{"alice", "/api/v1/projects"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing non-sensitive value %q", out, want)
		}
	}
}
