// Package middleware provides HTTP middleware for the inbound request pipeline.
//
// The global chain wraps every route in this order:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging → Timeout → Handler
//
// Authenticate and RequireRoles are applied per route group by the router, so
// public endpoints (health probes, sign-in, sign-up) skip them entirely.
package middleware

import "net/http"

// responseWriter wraps http.ResponseWriter so the observability middleware
// (recovery, otel, logging) can read the status code and response size after
// the handler returns.
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	headerWritten bool
	written       int64
}

// newResponseWriter wraps w. The status defaults to 200 because handlers that
// never call WriteHeader get an implicit 200 from net/http.
func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader records the status code on first call; later calls are dropped,
// matching net/http's superfluous-WriteHeader behavior without the log noise.
func (rw *responseWriter) WriteHeader(code int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = code
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(code)
}

// Write counts response bytes and marks the header as written, since the
// first Write implies a 200 if no explicit status was set.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.headerWritten = true
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Unwrap exposes the underlying writer for http.ResponseController and for
// interface assertions like http.Flusher.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
