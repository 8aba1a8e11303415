package middleware

import "net/http"

// Chain folds a list of middleware into one, applied left to right: the first
// middleware sees the request first and the response last.
//
//	Chain(Recovery, RequestID, Timeout(10*time.Second))(h)
//
// expands to Recovery(RequestID(Timeout(10*time.Second)(h))).
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}
