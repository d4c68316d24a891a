package middleware

import (
	"net/http"
	"time"

	"clova-router/internal/common/logging"
	"clova-router/internal/verify"
)

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Logging logs every request with method, path, status and duration. The
// level follows the status class: 5xx error, 4xx warn, otherwise info.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		fields := []logging.Field{
			{Key: "method", Value: r.Method},
			{Key: "path", Value: r.URL.Path},
			{Key: "status", Value: wrapped.statusCode},
			{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
			{Key: "remote_addr", Value: r.RemoteAddr},
			{Key: "signed", Value: r.Header.Get(verify.SignatureHeader) != ""},
		}

		switch {
		case wrapped.statusCode >= 500:
			logging.Error("request completed", nil, fields...)
		case wrapped.statusCode >= 400:
			logging.Warn("request completed", fields...)
		default:
			logging.Info("request completed", fields...)
		}
	})
}
