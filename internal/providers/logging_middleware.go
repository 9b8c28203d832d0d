package providers

import (
	"net/http"
	"time"
)

// LoggingMiddleware writes one access line per request to the channel of the
// request method.
func LoggingMiddleware(logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		logger.Infof(GetLogTypeByRequestType(r.Method), "%s %s %d %s rid=%s",
			r.Method, r.URL.Path, sw.status, time.Since(start), RequestID(r.Context()))
	})
}
