package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"taskmanager-api/internal/platform/logging"
)

// RedactHeaders converts an http.Header map into slog attributes for the
// request log. Credential-bearing headers (the shared logging.SensitiveHeaders
// set, so this list cannot drift from the masq layer) are replaced with
// "[REDACTED]". Multi-value headers are joined with a comma.
func RedactHeaders(headers http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(headers))
	for key, vals := range headers {
		if logging.SensitiveHeaders[strings.ToLower(key)] {
			attrs = append(attrs, slog.String(key, "[REDACTED]"))
		} else {
			attrs = append(attrs, slog.String(key, strings.Join(vals, ",")))
		}
	}
	return attrs
}
