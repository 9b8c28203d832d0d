package providers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	mu    sync.Mutex
	lines []string
	types []TypeEnum
}

func (c *captureLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (c *captureLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (c *captureLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (c *captureLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (c *captureLogger) Close()                                        {}
func (c *captureLogger) Infof(t TypeEnum, format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types = append(c.types, t)
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
}

func TestLoggingMiddleware(t *testing.T) {
	logger := &captureLogger{}
	h := RequestIDMiddleware(LoggingMiddleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/track", nil)
	req.Header.Set(RequestIDHeader, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, logger.lines, 1)
	assert.Equal(t, TypePost, logger.types[0])
	assert.Contains(t, logger.lines[0], "POST /api/track 418")
	assert.Contains(t, logger.lines[0], "rid=abc")
}
