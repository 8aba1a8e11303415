package middleware

import (
	"context"
	"maps"
	"net/http"
	"sync"
	"time"
)

// timeoutBody is the problem document written when the deadline fires. It is
// prebuilt because the dto error mapping has no 504 case: a timeout is a
// middleware concern, not a domain error.
const timeoutBody = `{"type":"about:blank","title":"Gateway Timeout","status":504,"detail":"request deadline exceeded"}`

// Timeout enforces a per-request deadline. The handler runs in its own
// goroutine against a writer that buffers everything; whichever side wins the
// race decides what the client sees. A completed handler gets its buffered
// response flushed, an expired deadline gets a 504 problem document and the
// buffer is dropped. The deadline also lives on the request context, so
// repository calls that honor ctx get canceled rather than running past the
// response.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			dw := &deadlineWriter{dst: w}
			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(dw, r.WithContext(ctx))
			}()

			select {
			case <-done:
				dw.flush()
			case <-ctx.Done():
				dw.reject()
			}
		})
	}
}

// deadlineWriter buffers the handler's response so nothing reaches the real
// writer until the race against the deadline is decided. The mutex covers the
// handler goroutine on one side and flush/reject on the other.
type deadlineWriter struct {
	dst http.ResponseWriter

	mu       sync.Mutex
	header   http.Header
	body     []byte
	status   int
	timedOut bool
}

func (dw *deadlineWriter) Header() http.Header {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.header == nil {
		dw.header = make(http.Header)
	}
	return dw.header
}

func (dw *deadlineWriter) WriteHeader(code int) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.status == 0 {
		dw.status = code
	}
}

func (dw *deadlineWriter) Write(b []byte) (int, error) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.status == 0 {
		dw.status = http.StatusOK
	}
	dw.body = append(dw.body, b...)
	return len(b), nil
}

// flush replays the buffered response onto the real writer. Runs when the
// handler finished before the deadline.
func (dw *deadlineWriter) flush() {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.timedOut {
		return
	}
	if dw.header != nil {
		maps.Copy(dw.dst.Header(), dw.header)
	}
	if dw.status != 0 {
		dw.dst.WriteHeader(dw.status)
	}
	if len(dw.body) > 0 {
		_, _ = dw.dst.Write(dw.body)
	}
}

// reject discards whatever the handler buffered and answers with a 504. The
// handler goroutine may still be running; timedOut keeps any later flush from
// corrupting the response.
func (dw *deadlineWriter) reject() {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	dw.timedOut = true
	dw.dst.Header().Set("Content-Type", "application/problem+json")
	dw.dst.WriteHeader(http.StatusGatewayTimeout)
	_, _ = dw.dst.Write([]byte(timeoutBody))
}
