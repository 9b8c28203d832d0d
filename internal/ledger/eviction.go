package ledger

import (
	"tarotstats/internal/models"
	"time"
)

// evict drops rows not seen within ttl, then the least recently seen rows
// beyond maxRows. The row under keep is never dropped. Zero limits disable
// the corresponding rule.
func evict(doc *models.LedgerDocument, keep string, maxRows int, ttl time.Duration, now time.Time) int {
	removed := 0
	if ttl > 0 {
		cutoff := now.Add(-ttl).UnixMilli()
		for k, r := range doc.Rows {
			if k != keep && r.LastSeenAt < cutoff {
				delete(doc.Rows, k)
				removed++
			}
		}
	}

	if maxRows <= 0 || len(doc.Rows) <= maxRows {
		return removed
	}

	rows := doc.Sorted()
	excess := len(doc.Rows) - maxRows
	for i := len(rows) - 1; i >= 0 && excess > 0; i-- {
		if rows[i].Key == keep {
			continue
		}
		delete(doc.Rows, rows[i].Key)
		removed++
		excess--
	}
	return removed
}
