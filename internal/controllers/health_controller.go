package controllers

import (
	"net/http"
	"tarotstats/internal/providers"
	"tarotstats/internal/services"
	"time"
)

type HealthController struct {
	service services.TrackServiceInterface
	started time.Time
	now     func() time.Time
}

type healthResponse struct {
	Status        string `json:"status"`
	StartedAt     int64  `json:"started_at"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Records       *int64 `json:"records,omitempty"`
}

func NewHealthController(service services.TrackServiceInterface) *HealthController {
	now := time.Now
	return &HealthController{service: service, started: now(), now: now}
}

// Health reports liveness and the size of the counter store. A store that
// cannot be counted makes the instance degraded.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		providers.WriteJSONError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	resp := healthResponse{
		Status:        "ok",
		StartedAt:     hc.started.UnixMilli(),
		UptimeSeconds: int64(hc.now().Sub(hc.started).Seconds()),
	}
	n, err := hc.service.Count()
	if err != nil {
		resp.Status = "degraded"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp.Records = &n
	writeJSON(w, http.StatusOK, resp)
}
