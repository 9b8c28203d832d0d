package providers

import (
	"net/http"
	"tarotstats/internal/structures"
)

// CorsMiddleware grants cross-origin access to exactly one allow-listed origin.
// Other origins get no Access-Control-Allow-Origin header at all.
type CorsMiddleware struct {
	allowedOrigin string
}

func NewCorsMiddleware(conf *structures.Config) *CorsMiddleware {
	return &CorsMiddleware{allowedOrigin: conf.Cors.AllowedOrigin}
}

func (m *CorsMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if m.allowedOrigin != "" && origin == m.allowedOrigin {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
