// Package ledger keeps the local counter ledger: one JSON document mapping
// identity keys to counter records, rewritten as a whole on every change.
package ledger

import (
	"errors"
	"sync"
	"tarotstats/internal/models"
	"tarotstats/internal/persistence"
	"tarotstats/internal/persistence/interfaces"
	"tarotstats/internal/providers"
	"tarotstats/internal/structures"
	"time"
)

type StoreInterface interface {
	Load() *models.LedgerDocument
	Save(doc *models.LedgerDocument)
	GetOrCreate(id models.Identity) *models.CounterRecord
	Update(id models.Identity, fn func(rec *models.CounterRecord)) *models.CounterRecord
	Put(rec *models.CounterRecord) *models.CounterRecord
}

type Store struct {
	mu      sync.Mutex
	path    string
	files   *persistence.FileManager
	lock    *fileLock
	logger  providers.Logger
	maxRows int
	rowTTL  time.Duration
	now     func() time.Time
}

// NewStore builds the ledger on conf.Ledger.FilePath. An empty path behaves like
// disabled browser storage: every Load is empty and every Save is dropped.
func NewStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *Store {
	s := &Store{
		path:    conf.Ledger.FilePath,
		files:   persistence.NewFileManager(compressor),
		logger:  logger,
		maxRows: conf.Ledger.MaxRows,
		rowTTL:  conf.Ledger.RowTTL,
		now:     time.Now,
	}
	if s.path != "" {
		s.lock = newFileLock(s.path + ".lock")
	}
	return s
}

// Load never fails: a missing, unreadable or corrupt document reads as empty.
func (s *Store) Load() *models.LedgerDocument {
	if s.path == "" {
		return models.NewLedgerDocument()
	}

	var doc models.LedgerDocument
	err := s.files.LoadJSON(s.path, &doc)
	switch {
	case errors.Is(err, persistence.ErrNoData):
		return models.NewLedgerDocument()
	case err != nil:
		s.logger.Debugf(providers.TypeApp, "Discarding unreadable ledger %s: %s", s.path, err)
		return models.NewLedgerDocument()
	case doc.Version != models.LedgerVersion:
		s.logger.Debugf(providers.TypeApp, "Discarding ledger %s with unknown version %d", s.path, doc.Version)
		return models.NewLedgerDocument()
	}

	if doc.Rows == nil {
		doc.Rows = make(map[string]*models.CounterRecord)
	}
	for k, r := range doc.Rows {
		if r == nil {
			delete(doc.Rows, k)
			continue
		}
		r.Key = k
	}
	return &doc
}

// Save is best-effort; failures are logged and swallowed.
func (s *Store) Save(doc *models.LedgerDocument) {
	s.save(doc, "")
}

func (s *Store) save(doc *models.LedgerDocument, keep string) {
	if s.path == "" || doc == nil {
		return
	}
	doc.Version = models.LedgerVersion
	if evicted := evict(doc, keep, s.maxRows, s.rowTTL, s.now()); evicted > 0 {
		s.logger.Debugf(providers.TypeApp, "Evicted %d ledger rows", evicted)
	}
	if err := s.files.SaveJSON(s.path, doc); err != nil {
		s.logger.Debugf(providers.TypeApp, "Ledger save failed: %s", err)
	}
}

// GetOrCreate returns the stored record or a zero record for id. The zero
// record is not persisted.
func (s *Store) GetOrCreate(id models.Identity) *models.CounterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.Load().Rows[id.Key()]; ok {
		return rec
	}
	return models.NewCounterRecord(id)
}

// Update applies fn to the record of id under the ledger lock, persists the
// document and returns a copy of the updated record.
func (s *Store) Update(id models.Identity, fn func(rec *models.CounterRecord)) *models.CounterRecord {
	key := id.Key()
	return s.mutate(key, func(doc *models.LedgerDocument) *models.CounterRecord {
		rec, ok := doc.Rows[key]
		if !ok {
			rec = models.NewCounterRecord(id)
		}
		fn(rec)
		rec.Key = key
		doc.Rows[key] = rec
		return rec
	})
}

// Put replaces the row stored under rec.Key.
func (s *Store) Put(rec *models.CounterRecord) *models.CounterRecord {
	return s.mutate(rec.Key, func(doc *models.LedgerDocument) *models.CounterRecord {
		c := rec.Clone()
		doc.Rows[rec.Key] = c
		return c
	})
}

func (s *Store) mutate(key string, fn func(doc *models.LedgerDocument) *models.CounterRecord) *models.CounterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lock != nil {
		if err := s.lock.acquire(); err != nil {
			s.logger.Debugf(providers.TypeApp, "Ledger lock not acquired, writing anyway: %s", err)
		} else {
			defer s.lock.release()
		}
	}

	doc := s.Load()
	rec := fn(doc)
	s.save(doc, key)
	return rec.Clone()
}
