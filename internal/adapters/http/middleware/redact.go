package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
)

const redacted = "[REDACTED]"

// RedactHeaders converts request headers into slog attributes sorted by name.
// Headers listed in logging.SensitiveHeaders are replaced with a placeholder;
// multi-value headers are joined with a comma.
func RedactHeaders(headers http.Header) []slog.Attr {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		value := strings.Join(headers[key], ",")
		if logging.SensitiveHeaders[strings.ToLower(key)] {
			value = redacted
		}
		attrs = append(attrs, slog.String(key, value))
	}
	return attrs
}
