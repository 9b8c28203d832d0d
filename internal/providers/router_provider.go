package providers

import (
	"net/http"
	"tarotstats/internal/models"
	"tarotstats/internal/structures"

	json "github.com/goccy/go-json"
)

type RouterProviderInterface interface {
	Handle(method, pattern string, handler http.Handler)
	Routes() []structures.Route
	Patterns() []string
	Mount(mux *http.ServeMux)
}

// RouterProvider collects API routes before they are mounted. Each pattern
// answers exactly one method.
type RouterProvider struct {
	routes []structures.Route
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

func (rp *RouterProvider) Handle(method, pattern string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{Method: method, Pattern: pattern, Handler: handler})
}

func (rp *RouterProvider) Routes() []structures.Route {
	return rp.routes
}

// Patterns lists the registered paths in registration order.
func (rp *RouterProvider) Patterns() []string {
	out := make([]string, len(rp.routes))
	for i, r := range rp.routes {
		out[i] = r.Pattern
	}
	return out
}

func (rp *RouterProvider) Mount(mux *http.ServeMux) {
	for _, r := range rp.routes {
		mux.Handle(r.Pattern, allowOnly(r.Method, r.Handler))
	}
}

func allowOnly(method string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			WriteJSONError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WriteJSONError answers with {"error": msg}.
func WriteJSONError(w http.ResponseWriter, status int, msg string) {
	body, err := json.Marshal(models.ErrorResponse{Error: msg})
	if err != nil {
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
