package services

import (
	"errors"
	"fmt"
	"tarotstats/internal/models"
	"tarotstats/internal/providers"
	"tarotstats/internal/storage"
	"tarotstats/internal/streak"
	"tarotstats/internal/structures"
	"time"
)

var ErrInvalidEvent = errors.New("invalid event")

type TrackServiceInterface interface {
	Track(req *models.TrackRequest) (*models.RemoteRecord, error)
	Get(fid int64) (*models.RemoteRecord, error)
	List() ([]*models.RemoteRecord, error)
	Count() (int64, error)
	Restore(rows []*models.RemoteRecord) (int, error)
}

type TrackService struct {
	repo    storage.RepositoryInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
	cutoff  int
	now     func() time.Time
}

func NewTrackService(conf *structures.Config, repo storage.RepositoryInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) TrackServiceInterface {
	return &TrackService{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		cutoff:  conf.Streak.CutoffHourUTC,
		now:     time.Now,
	}
}

// Track applies one event to the record of req.FID in a single transaction.
// The server clock decides the day key; req.ClientTs is informational.
func (ts *TrackService) Track(req *models.TrackRequest) (*models.RemoteRecord, error) {
	if req.FID <= 0 {
		return nil, fmt.Errorf("%w: fid %d", ErrInvalidEvent, req.FID)
	}
	if !req.Event.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEvent, req.Event)
	}
	if req.Event == models.EventReading && !req.ReadingType.Valid() {
		return nil, fmt.Errorf("%w: reading type %q", ErrInvalidEvent, req.ReadingType)
	}

	now := ts.now()
	nowMs := now.UnixMilli()
	rec, err := ts.repo.Upsert(req.FID, func(r *storage.UserStat, created bool) error {
		if created {
			r.Streak = 1
			r.LastVisitDayKey = streak.DayKey(now, ts.cutoff)
			r.FirstSeenTs = nowMs
		}
		if w := models.NormalizeWallet(req.Wallet); w != "" && w != r.Wallet {
			r.Wallet = w
		}

		switch req.Event {
		case models.EventVisit:
			res := streak.Next(r.Streak, r.LastVisitDayKey, now, ts.cutoff)
			r.Streak = res.Streak
			r.LastVisitDayKey = res.LastVisitDayKey
		case models.EventReading:
			switch req.ReadingType {
			case models.ReadingOne:
				r.OneCardCount++
			case models.ReadingThree:
				r.ThreeCardCount++
			case models.ReadingCustom:
				r.CustomCount++
			}
			r.TotalReadings++
		}
		r.LastSeenTs = nowMs
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("track fid %d: %w", req.FID, err)
	}

	ts.metrics.IncTrackEvents(string(req.Event), string(req.ReadingType))
	return rec, nil
}

func (ts *TrackService) Get(fid int64) (*models.RemoteRecord, error) {
	return ts.repo.Get(fid)
}

func (ts *TrackService) List() ([]*models.RemoteRecord, error) {
	return ts.repo.List()
}

func (ts *TrackService) Count() (int64, error) {
	return ts.repo.Count()
}

// Restore seeds an empty store from a snapshot.
func (ts *TrackService) Restore(rows []*models.RemoteRecord) (int, error) {
	n, err := ts.repo.ImportIfEmpty(rows)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		ts.logger.Infof(providers.TypeApp, "Restored %d records from snapshot", n)
	}
	return n, nil
}
