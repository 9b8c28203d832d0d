package scheduler

import (
	"errors"
	"os"
	"path/filepath"
	"tarotstats/internal/models"
	"tarotstats/internal/persistence"
	"tarotstats/internal/providers"
	"tarotstats/internal/structures"
	"tarotstats/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(path string) *structures.Config {
	return &structures.Config{
		Snapshot: structures.SnapshotConfig{FilePath: path, Interval: time.Hour},
		Metrics:  structures.MetricsConfig{Enabled: true, RefreshInterval: time.Hour},
	}
}

func zstdFileManager(t *testing.T) *persistence.FileManager {
	t.Helper()
	compressor, err := persistence.NewZstdCompressor()
	require.NoError(t, err)
	return persistence.NewFileManager(compressor)
}

func newTestScheduler(t *testing.T, conf *structures.Config, svc *testutil.MockTrackService, metrics *testutil.MockMetrics) *Scheduler {
	logger := &testutil.MockLogger{}
	fm := zstdFileManager(t)
	limiter := providers.NewRateLimiter(conf, logger)
	return NewScheduler(conf, logger, svc, fm, metrics, limiter).(*Scheduler)
}

func TestScheduler_PersistThenRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap", "records.json.zst")
	rows := []*models.RemoteRecord{{FID: 1, Streak: 2}, {FID: 2, Wallet: "0xab"}}
	metrics := &testutil.MockMetrics{}

	src := newTestScheduler(t, testConfig(path), &testutil.MockTrackService{ListRecords: rows}, metrics)
	require.NoError(t, src.Persist())
	assert.Equal(t, 1, metrics.SnapshotCalls)
	assert.Equal(t, 2, metrics.RecordsTotal)

	dst := &testutil.MockTrackService{}
	require.NoError(t, newTestScheduler(t, testConfig(path), dst, &testutil.MockMetrics{}).Restore())
	require.Len(t, dst.Restored, 2)
	assert.Equal(t, 2, dst.Restored[0].Streak)
	assert.Equal(t, "0xab", dst.Restored[1].Wallet)
}

func TestScheduler_RestoreMissingSnapshot(t *testing.T) {
	svc := &testutil.MockTrackService{}
	s := newTestScheduler(t, testConfig(filepath.Join(t.TempDir(), "none.zst")), svc, &testutil.MockMetrics{})

	assert.NoError(t, s.Restore())
	assert.Empty(t, svc.Restored)
}

func TestScheduler_RestoreCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zst")
	require.NoError(t, os.WriteFile(path, []byte("not zstd"), 0o644))
	s := newTestScheduler(t, testConfig(path), &testutil.MockTrackService{}, &testutil.MockMetrics{})

	assert.Error(t, s.Restore())
}

func TestScheduler_RestoreUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v2.zst")
	fm := zstdFileManager(t)
	require.NoError(t, fm.SaveJSON(path, &Snapshot{Version: 2}))
	s := newTestScheduler(t, testConfig(path), &testutil.MockTrackService{}, &testutil.MockMetrics{})

	assert.ErrorContains(t, s.Restore(), "unsupported version")
}

func TestScheduler_DisabledSnapshot(t *testing.T) {
	s := newTestScheduler(t, testConfig(""), &testutil.MockTrackService{}, &testutil.MockMetrics{})

	assert.NoError(t, s.Persist())
	assert.NoError(t, s.Restore())
}

func TestScheduler_PersistListError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.zst")
	s := newTestScheduler(t, testConfig(path), &testutil.MockTrackService{ListErr: errors.New("closed")}, &testutil.MockMetrics{})

	assert.Error(t, s.Persist())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestScheduler_StopNilCron(t *testing.T) {
	s := newTestScheduler(t, testConfig(""), &testutil.MockTrackService{}, &testutil.MockMetrics{})

	assert.NotPanics(t, s.Stop)
}

func TestScheduler_InitRefreshesGauge(t *testing.T) {
	metrics := &testutil.MockMetrics{}
	svc := &testutil.MockTrackService{ListRecords: []*models.RemoteRecord{{FID: 1}, {FID: 2}, {FID: 3}}}
	s := newTestScheduler(t, testConfig(filepath.Join(t.TempDir(), "s.zst")), svc, metrics)

	require.NoError(t, s.Init())
	defer s.Stop()

	assert.Equal(t, 3, metrics.RecordsTotal)
	assert.Len(t, s.cron.Entries(), 3)
}

func TestEvery(t *testing.T) {
	assert.Equal(t, "@every 10m0s", every(10*time.Minute))
}
