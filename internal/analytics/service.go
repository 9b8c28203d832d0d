// Package analytics records visits and readings in the local ledger and
// mirrors them to the remote counter service.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"tarotstats/internal/export"
	"tarotstats/internal/identity"
	"tarotstats/internal/ledger"
	"tarotstats/internal/models"
	"tarotstats/internal/providers"
	"tarotstats/internal/remote"
	"tarotstats/internal/streak"
	"tarotstats/internal/structures"
	"time"
)

var ErrInvalidReadingType = errors.New("invalid reading type")

// Outcome is the result of a tracked event. Local is already persisted.
// Remote yields the server record if the round-trip succeeds and is closed
// either way.
type Outcome struct {
	Identity models.Identity
	Local    models.CounterRecord
	Remote   <-chan models.CounterRecord
}

type ServiceInterface interface {
	Init(ctx context.Context) models.CounterRecord
	TrackVisit(ctx context.Context) Outcome
	TrackReading(ctx context.Context, t models.ReadingType) (Outcome, error)
	Record(ctx context.Context) models.CounterRecord
	RemoteStats(ctx context.Context) (models.CounterRecord, error)
	Export() string
	Close()
}

type Service struct {
	ledger   ledger.StoreInterface
	remote   remote.ClientInterface
	identity identity.Provider
	logger   providers.Logger
	cutoff   int
	now      func() time.Time

	mu       sync.Mutex
	resolved *models.Identity
	wg       sync.WaitGroup
}

func NewService(conf *structures.Config, store ledger.StoreInterface, client remote.ClientInterface, ident identity.Provider, logger providers.Logger) *Service {
	return &Service{
		ledger:   store,
		remote:   client,
		identity: ident,
		logger:   logger,
		cutoff:   conf.Streak.CutoffHourUTC,
		now:      time.Now,
	}
}

// Init resolves the identity and returns its current local record. An
// identity with a fid is pinned for later calls; anything less is resolved
// again on every event until the fid shows up.
func (s *Service) Init(ctx context.Context) models.CounterRecord {
	return *s.ledger.GetOrCreate(s.currentIdentity(ctx))
}

func (s *Service) TrackVisit(ctx context.Context) Outcome {
	id := s.currentIdentity(ctx)
	now := s.now()

	rec := s.ledger.Update(id, func(r *models.CounterRecord) {
		res := streak.ApplyVisit(r, now, s.cutoff)
		r.Touch(now.UnixMilli())
		s.logger.Debugf(providers.TypeApp, "Visit %s: %s, streak %d", r.Key, res.Transition, res.Streak)
	})

	return Outcome{
		Identity: id,
		Local:    *rec,
		Remote:   s.sync(ctx, id, &models.TrackRequest{Event: models.EventVisit}, now),
	}
}

func (s *Service) TrackReading(ctx context.Context, t models.ReadingType) (Outcome, error) {
	if !t.Valid() {
		return Outcome{}, fmt.Errorf("%w: %q", ErrInvalidReadingType, t)
	}
	id := s.currentIdentity(ctx)
	now := s.now()

	rec := s.ledger.Update(id, func(r *models.CounterRecord) {
		r.IncReading(t)
		r.Touch(now.UnixMilli())
	})

	return Outcome{
		Identity: id,
		Local:    *rec,
		Remote:   s.sync(ctx, id, &models.TrackRequest{Event: models.EventReading, ReadingType: t}, now),
	}, nil
}

// Record returns the local record of the current identity.
func (s *Service) Record(ctx context.Context) models.CounterRecord {
	return *s.ledger.GetOrCreate(s.currentIdentity(ctx))
}

// RemoteStats fetches the server record of the current identity and stores
// it locally.
func (s *Service) RemoteStats(ctx context.Context) (models.CounterRecord, error) {
	id := s.currentIdentity(ctx)
	if !id.HasFID() {
		return models.CounterRecord{}, fmt.Errorf("stats need a fid, have %s", id.Key())
	}
	rr, err := s.remote.Stats(ctx, id.FID)
	if err != nil {
		return models.CounterRecord{}, err
	}
	return *s.ledger.Put(rr.ToCounterRecord(id.Key())), nil
}

func (s *Service) Export() string {
	return export.CSV(s.ledger.Load())
}

// Close waits for in-flight remote calls.
func (s *Service) Close() {
	s.wg.Wait()
}

func (s *Service) currentIdentity(ctx context.Context) models.Identity {
	s.mu.Lock()
	pinned := s.resolved
	s.mu.Unlock()
	if pinned != nil {
		return *pinned
	}

	id := s.resolve(ctx)
	if id.HasFID() {
		s.mu.Lock()
		s.resolved = &id
		s.mu.Unlock()
	}
	return id
}

func (s *Service) resolve(ctx context.Context) models.Identity {
	if s.identity == nil {
		return models.Identity{}
	}
	id, err := s.identity.Resolve(ctx)
	if err != nil {
		s.logger.Debugf(providers.TypeApp, "Identity not resolved, tracking anonymously: %s", err)
		return models.Identity{}
	}
	return id
}

// sync sends req in the background. On success the server record replaces the
// local row of id.
func (s *Service) sync(ctx context.Context, id models.Identity, req *models.TrackRequest, now time.Time) <-chan models.CounterRecord {
	out := make(chan models.CounterRecord, 1)
	if !id.HasFID() || !s.remote.Configured() {
		close(out)
		return out
	}

	req.FID = id.FID
	req.Wallet = id.Wallet
	req.ClientTs = now.UnixMilli()
	ctx = context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(out)

		rr, err := s.remote.Track(ctx, req)
		if err != nil {
			s.logger.Debugf(providers.TypeApp, "Remote track failed for %s: %s", id.Key(), err)
			return
		}
		out <- *s.ledger.Put(rr.ToCounterRecord(id.Key()))
	}()
	return out
}
