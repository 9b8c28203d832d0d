package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
}

func mounted(rp RouterProviderInterface) *http.ServeMux {
	mux := http.NewServeMux()
	rp.Mount(mux)
	return mux
}

func TestRouterProvider_KeepsRegistrationOrder(t *testing.T) {
	rp := NewRouterProvider()
	rp.Handle(http.MethodPost, "/api/track", okHandler())
	rp.Handle(http.MethodGet, "/api/stats", okHandler())

	routes := rp.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, http.MethodPost, routes[0].Method)
	assert.Equal(t, []string{"/api/track", "/api/stats"}, rp.Patterns())
}

func TestRouterProvider_MountServesMatchingMethod(t *testing.T) {
	rp := NewRouterProvider()
	rp.Handle(http.MethodGet, "/api/stats", okHandler())

	rr := httptest.NewRecorder()
	mounted(rp).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stats?fid=1", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestRouterProvider_MountRejectsOtherMethods(t *testing.T) {
	rp := NewRouterProvider()
	rp.Handle(http.MethodPost, "/api/track", okHandler())

	rr := httptest.NewRecorder()
	mounted(rp).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/track", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, rr.Body.String())
}

func TestWriteJSONError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONError(rr, http.StatusForbidden, "Forbidden")

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Forbidden"}`, rr.Body.String())
}
