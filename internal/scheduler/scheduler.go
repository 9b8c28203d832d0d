// Package scheduler runs the periodic jobs of the counter service.
package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"tarotstats/internal/models"
	"tarotstats/internal/persistence"
	"tarotstats/internal/providers"
	"tarotstats/internal/services"
	"tarotstats/internal/structures"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	SnapshotVersion = 1
	limiterIdle     = 10 * time.Minute
)

type SchedulerInterface interface {
	Init() error
	Stop()
	Restore() error
	Persist() error
}

// Snapshot is the on-disk backup of every server record.
type Snapshot struct {
	Version int                    `json:"version"`
	TakenAt int64                  `json:"taken_at"`
	Records []*models.RemoteRecord `json:"records"`
}

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.TrackServiceInterface
	fileManager *persistence.FileManager
	metrics     providers.MetricsProviderInterface
	limiter     providers.RateLimiterInterface
	cron        *cron.Cron
	opsMu       sync.Mutex
	now         func() time.Time
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.TrackServiceInterface, fileManager *persistence.FileManager, metrics providers.MetricsProviderInterface, limiter providers.RateLimiterInterface) SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
		metrics:     metrics,
		limiter:     limiter,
		now:         time.Now,
	}
}

func every(d time.Duration) string {
	return "@every " + d.String()
}

func (s *Scheduler) Init() error {
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	if s.config.Snapshot.FilePath != "" && s.config.Snapshot.Interval > 0 {
		if _, err := s.cron.AddFunc(every(s.config.Snapshot.Interval), func() {
			if err := s.Persist(); err == nil {
				s.logger.Infof(providers.TypeApp, "Snapshot written to %s", s.config.Snapshot.FilePath)
			}
		}); err != nil {
			return fmt.Errorf("schedule snapshot: %w", err)
		}
	}

	if s.config.Metrics.Enabled && s.config.Metrics.RefreshInterval > 0 {
		if _, err := s.cron.AddFunc(every(s.config.Metrics.RefreshInterval), s.refreshRecordsGauge); err != nil {
			return fmt.Errorf("schedule metrics refresh: %w", err)
		}
	}

	if _, err := s.cron.AddFunc(every(limiterIdle), func() {
		if n := s.limiter.Cleanup(limiterIdle); n > 0 {
			s.logger.Debugf(providers.TypeApp, "Dropped %d idle rate limiters", n)
		}
	}); err != nil {
		return fmt.Errorf("schedule limiter cleanup: %w", err)
	}

	s.refreshRecordsGauge()
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Restore seeds an empty store from the snapshot file. A missing snapshot is
// not an error.
func (s *Scheduler) Restore() error {
	path := s.config.Snapshot.FilePath
	if path == "" {
		return nil
	}

	var snap Snapshot
	err := s.fileManager.LoadJSON(path, &snap)
	if errors.Is(err, persistence.ErrNoData) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", path, err)
	}
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("snapshot %s: unsupported version %d", path, snap.Version)
	}

	if _, err = s.service.Restore(snap.Records); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	return nil
}

func (s *Scheduler) Persist() error {
	path := s.config.Snapshot.FilePath
	if path == "" {
		return nil
	}

	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	rows, err := s.service.List()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while reading records: %s", err)
		return err
	}
	snap := &Snapshot{Version: SnapshotVersion, TakenAt: s.now().UnixMilli(), Records: rows}
	if err = s.fileManager.SaveJSON(path, snap); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting snapshot: %s", err)
		return err
	}
	s.metrics.ObserveSnapshotDuration(time.Since(start))
	s.metrics.SetRecordsTotal(len(rows))
	return nil
}

func (s *Scheduler) refreshRecordsGauge() {
	n, err := s.service.Count()
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Records count failed: %s", err)
		return
	}
	s.metrics.SetRecordsTotal(int(n))
}
