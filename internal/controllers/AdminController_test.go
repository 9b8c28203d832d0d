package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"tarotstats/internal/models"
	"tarotstats/internal/structures"
	"tarotstats/internal/testutil"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminController(wallet string, svc *testutil.MockTrackService) *AdminController {
	conf := &structures.Config{Admin: structures.AdminConfig{Wallet: wallet}}
	ac := NewAdminController(conf, &testutil.MockLogger{}, svc)
	ac.now = func() time.Time { return time.Date(2026, 2, 3, 10, 0, 0, 0, time.Local) }
	return ac
}

func TestAdminStats_Authorized(t *testing.T) {
	svc := &testutil.MockTrackService{ListRecords: []*models.RemoteRecord{{FID: 2, LastSeenTs: 9}, {FID: 1, LastSeenTs: 5}}}
	ac := newAdminController("0xAdMiN", svc)

	rr := httptest.NewRecorder()
	ac.Stats(rr, httptest.NewRequest(http.MethodGet, "/api/admin/stats?wallet=0xADMIN", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var rows []models.RemoteRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].FID)
}

func TestAdminStats_EmptyList(t *testing.T) {
	ac := newAdminController("0xadmin", &testutil.MockTrackService{})

	rr := httptest.NewRecorder()
	ac.Stats(rr, httptest.NewRequest(http.MethodGet, "/api/admin/stats?wallet=0xadmin", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestAdmin_Forbidden(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		query      string
	}{
		{"wrong wallet", "0xadmin", "?wallet=0xother"},
		{"missing wallet", "0xadmin", ""},
		{"no admin configured", "", "?wallet="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac := newAdminController(tt.configured, &testutil.MockTrackService{})

			for _, h := range []http.HandlerFunc{ac.Stats, ac.ExportCSV} {
				rr := httptest.NewRecorder()
				h(rr, httptest.NewRequest(http.MethodGet, "/api/admin/stats"+tt.query, nil))

				assert.Equal(t, http.StatusForbidden, rr.Code)
				assert.Equal(t, "Forbidden", errorBody(t, rr))
			}
		})
	}
}

func TestAdminExportCSV(t *testing.T) {
	svc := &testutil.MockTrackService{ListRecords: []*models.RemoteRecord{{FID: 2, Wallet: "0xab", Streak: 1, LastSeenTs: 9}}}
	ac := newAdminController("0xadmin", svc)

	rr := httptest.NewRecorder()
	ac.ExportCSV(rr, httptest.NewRequest(http.MethodGet, "/api/admin/export.csv?wallet=0xAdmin", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "tarot-stats-2026-02-03.csv")
	lines := strings.Split(strings.TrimSuffix(rr.Body.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "key,fid,wallet"))
	assert.Equal(t, `"fid:2",2,"0xab",0,0,0,0,1,"",9`, lines[1])
}
