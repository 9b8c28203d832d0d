package ledger

import (
	"fmt"
	"path/filepath"
	"tarotstats/internal/models"
	"tarotstats/internal/persistence"
	"tarotstats/internal/structures"
	"tarotstats/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func docWithRows(now time.Time, ages ...time.Duration) *models.LedgerDocument {
	doc := models.NewLedgerDocument()
	for i, age := range ages {
		key := fmt.Sprintf("fid:%d", i+1)
		doc.Rows[key] = &models.CounterRecord{Key: key, FID: int64(i + 1), LastSeenAt: now.Add(-age).UnixMilli()}
	}
	return doc
}

func TestEvict_TTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := docWithRows(now, time.Hour, 48*time.Hour, 72*time.Hour)

	removed := evict(doc, "", 0, 24*time.Hour, now)

	assert.Equal(t, 2, removed)
	assert.Contains(t, doc.Rows, "fid:1")
}

func TestEvict_MaxRowsDropsLeastRecent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := docWithRows(now, time.Minute, 2*time.Minute, 3*time.Minute, 4*time.Minute)

	removed := evict(doc, "", 2, 0, now)

	assert.Equal(t, 2, removed)
	assert.Contains(t, doc.Rows, "fid:1")
	assert.Contains(t, doc.Rows, "fid:2")
}

func TestEvict_KeepsTouchedRow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := docWithRows(now, time.Minute, 2*time.Minute, 1000*time.Hour)

	removed := evict(doc, "fid:3", 1, 24*time.Hour, now)

	assert.Equal(t, 2, removed)
	assert.Len(t, doc.Rows, 1)
	assert.Contains(t, doc.Rows, "fid:3")
}

func TestEvict_DisabledLimits(t *testing.T) {
	now := time.Now()
	doc := docWithRows(now, time.Hour, 10000*time.Hour)

	assert.Zero(t, evict(doc, "", 0, 0, now))
	assert.Len(t, doc.Rows, 2)
}

func TestStore_SaveAppliesEviction(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	conf := &structures.Config{Ledger: structures.LedgerConfig{
		FilePath: filepath.Join(t.TempDir(), "ledger.json"),
		MaxRows:  2,
	}}
	s := NewStore(conf, persistence.PlainCompression{}, &testutil.MockLogger{})
	s.now = func() time.Time { return now }

	s.Save(docWithRows(now, time.Minute, 2*time.Minute, 3*time.Minute))

	assert.Len(t, s.Load().Rows, 2)
}
