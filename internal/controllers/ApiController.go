package controllers

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"tarotstats/internal/models"
	"tarotstats/internal/providers"
	"tarotstats/internal/services"
	"tarotstats/internal/storage"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.TrackServiceInterface
	cache   providers.StatsCacheInterface
	guard   statsGuard
}

func NewApiController(logger providers.Logger, service services.TrackServiceInterface, cache providers.StatsCacheInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		providers.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// Track handles POST /api/track.
func (ac *ApiController) Track(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil || !gjson.ValidBytes(body) {
		providers.WriteJSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req, msg := parseTrackRequest(body)
	if msg != "" {
		providers.WriteJSONError(w, http.StatusBadRequest, msg)
		return
	}

	rec, err := ac.service.Track(req)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Track error: %s", err)
		providers.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	ac.guard.invalidate(req.FID, func() { ac.cache.Invalidate(req.FID) })

	writeJSON(w, http.StatusOK, rec)
}

// parseTrackRequest validates the loosely typed payload field by field and
// returns the message of the first failing check.
func parseTrackRequest(body []byte) (*models.TrackRequest, string) {
	doc := gjson.ParseBytes(body)

	fid := doc.Get("fid")
	if fid.Type != gjson.Number || fid.Num <= 0 || fid.Num != math.Trunc(fid.Num) || fid.Num > math.MaxInt64 {
		return nil, "Invalid fid"
	}

	event := doc.Get("event")
	kind := models.EventKind(event.Str)
	if event.Type != gjson.String || !kind.Valid() {
		return nil, "Invalid event"
	}

	req := &models.TrackRequest{FID: fid.Int(), Event: kind}
	if kind == models.EventReading {
		rt := doc.Get("readingType")
		req.ReadingType = models.ReadingType(rt.Str)
		if rt.Type != gjson.String || !req.ReadingType.Valid() {
			return nil, "Invalid readingType"
		}
	}

	if w := doc.Get("wallet"); w.Type == gjson.String {
		req.Wallet = w.Str
	}

	switch ts := doc.Get("clientTs"); ts.Type {
	case gjson.Number:
		req.ClientTs = ts.Int()
	case gjson.Null:
	default:
		return nil, "Invalid clientTs"
	}
	return req, ""
}

// GetStats handles GET /api/stats?fid=.
func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("fid")
	if raw == "" {
		providers.WriteJSONError(w, http.StatusBadRequest, "Missing fid parameter")
		return
	}
	fid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || fid <= 0 {
		providers.WriteJSONError(w, http.StatusBadRequest, "Invalid fid")
		return
	}

	if data, ok := ac.cache.Get(fid); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	gen := ac.guard.generation(fid)
	rec, err := ac.service.Get(fid)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		providers.WriteJSONError(w, http.StatusNotFound, "Not found")
		return
	case err != nil:
		ac.logger.Errorf(providers.TypeGet, "Get stats error: %s", err)
		providers.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	case rec == nil:
		providers.WriteJSONError(w, http.StatusNotFound, "Not found")
		return
	}

	gson, err := json.Marshal(rec)
	if err != nil {
		providers.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	ac.guard.fill(fid, gen, func() { ac.cache.Set(fid, gson) })

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}
