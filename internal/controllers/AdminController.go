package controllers

import (
	"net/http"
	"tarotstats/internal/export"
	"tarotstats/internal/models"
	"tarotstats/internal/providers"
	"tarotstats/internal/services"
	"tarotstats/internal/structures"
	"time"
)

type AdminController struct {
	logger  providers.Logger
	service services.TrackServiceInterface
	wallet  string
	now     func() time.Time
}

func NewAdminController(conf *structures.Config, logger providers.Logger, service services.TrackServiceInterface) *AdminController {
	return &AdminController{
		logger:  logger,
		service: service,
		wallet:  models.NormalizeWallet(conf.Admin.Wallet),
		now:     time.Now,
	}
}

// authorized compares the wallet query parameter with the configured admin
// wallet, ignoring case. Without a configured wallet nobody is admin.
func (ac *AdminController) authorized(r *http.Request) bool {
	w := models.NormalizeWallet(r.URL.Query().Get("wallet"))
	return ac.wallet != "" && w == ac.wallet
}

func (ac *AdminController) list(w http.ResponseWriter, r *http.Request) ([]*models.RemoteRecord, bool) {
	if !ac.authorized(r) {
		ac.logger.Warnf(providers.TypeGet, "Admin access denied for %s", r.URL.Path)
		providers.WriteJSONError(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	rows, err := ac.service.List()
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Admin list error: %s", err)
		providers.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return rows, true
}

// Stats handles GET /api/admin/stats?wallet=.
func (ac *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	rows, ok := ac.list(w, r)
	if !ok {
		return
	}
	if rows == nil {
		rows = []*models.RemoteRecord{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// ExportCSV handles GET /api/admin/export.csv?wallet=.
func (ac *AdminController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	rows, ok := ac.list(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(ac.now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.RemoteRecords(rows)))
}
