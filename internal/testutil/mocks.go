package testutil

import (
	"sync"
	"tarotstats/internal/models"
	"tarotstats/internal/providers"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

// Has reports whether at least one entry was logged at level.
func (m *MockLogger) Has(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Logs {
		if l.Level == level {
			return true
		}
	}
	return false
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockTrackService implements services.TrackServiceInterface.
type MockTrackService struct {
	mu          sync.Mutex
	TrackCalls  []*models.TrackRequest
	Records     map[int64]*models.RemoteRecord
	TrackErr    error
	GetErr      error
	ListErr     error
	GetCalls    int
	ListRecords []*models.RemoteRecord
	Restored    []*models.RemoteRecord
}

func (m *MockTrackService) Track(req *models.TrackRequest) (*models.RemoteRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TrackCalls = append(m.TrackCalls, req)
	if m.TrackErr != nil {
		return nil, m.TrackErr
	}
	rec := &models.RemoteRecord{FID: req.FID, Wallet: req.Wallet, Streak: 1}
	if m.Records != nil {
		if r, ok := m.Records[req.FID]; ok {
			rec = r
		}
	}
	return rec, nil
}

func (m *MockTrackService) Get(fid int64) (*models.RemoteRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Records[fid], nil
}

func (m *MockTrackService) List() ([]*models.RemoteRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListRecords, nil
}

func (m *MockTrackService) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.ListRecords)), m.ListErr
}

func (m *MockTrackService) Restore(rows []*models.RemoteRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Restored = append(m.Restored, rows...)
	return len(rows), nil
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu            sync.Mutex
	TrackEvents   []string
	RecordsTotal  int
	SnapshotCalls int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) IncTrackEvents(event, readingType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TrackEvents = append(m.TrackEvents, event+"/"+readingType)
}

func (m *MockMetrics) ObserveSnapshotDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotCalls++
}

func (m *MockMetrics) SetRecordsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsTotal = count
}

// MockStatsCache implements providers.StatsCacheInterface.
type MockStatsCache struct {
	mu   sync.Mutex
	Data map[int64][]byte
}

func NewMockStatsCache() *MockStatsCache {
	return &MockStatsCache{Data: make(map[int64][]byte)}
}

func (m *MockStatsCache) Get(fid int64) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[fid]
	return val, ok
}

func (m *MockStatsCache) Set(fid int64, body []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[fid] = body
}

func (m *MockStatsCache) Invalidate(fid int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, fid)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}
