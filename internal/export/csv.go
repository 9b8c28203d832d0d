// Package export renders counter records as CSV.
package export

import (
	"strconv"
	"strings"
	"tarotstats/internal/models"
	"time"
)

var header = []string{
	"key", "fid", "wallet", "readings_total", "readings_one", "readings_three",
	"readings_custom", "streak", "last_visit_day_key", "last_seen_ts",
}

// CSV renders every row of doc, most recently seen first.
func CSV(doc *models.LedgerDocument) string {
	if doc == nil {
		return Records(nil)
	}
	return Records(doc.Sorted())
}

// Records renders rows in the given order. Text columns are always quoted;
// numbers are written bare and an unknown fid is left empty.
func Records(rows []*models.CounterRecord) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')

	for _, r := range rows {
		if r == nil {
			continue
		}
		fid := ""
		if r.FID > 0 {
			fid = strconv.FormatInt(r.FID, 10)
		}
		fields := []string{
			quote(r.Key),
			fid,
			quote(r.Wallet),
			strconv.Itoa(r.TotalReadings),
			strconv.Itoa(r.OneCardCount),
			strconv.Itoa(r.ThreeCardCount),
			strconv.Itoa(r.CustomCount),
			strconv.Itoa(r.Streak),
			quote(r.LastVisitDayKey),
			strconv.FormatInt(r.LastSeenAt, 10),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// RemoteRecords renders server records keyed by fid.
func RemoteRecords(rows []*models.RemoteRecord) string {
	out := make([]*models.CounterRecord, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		out = append(out, r.ToCounterRecord(models.Identity{FID: r.FID}.Key()))
	}
	return Records(out)
}

// Filename is the suggested download name for an export made at now.
func Filename(now time.Time) string {
	return "tarot-stats-" + now.Format(time.DateOnly) + ".csv"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
