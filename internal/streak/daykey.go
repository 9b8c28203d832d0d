// Package streak computes calendar day keys under a UTC cutoff hour and the
// consecutive-visit streak derived from them.
package streak

import (
	"math"
	"time"
)

const (
	// DefaultCutoffHourUTC moves the day boundary to 01:00 UTC.
	DefaultCutoffHourUTC = 1

	dayKeyLayout = "2006-01-02"
	msPerDay     = 24 * 60 * 60 * 1000
)

// DayKey returns the "YYYY-MM-DD" calendar date of t after shifting it back
// by cutoffHourUTC hours.
func DayKey(t time.Time, cutoffHourUTC int) string {
	return t.UTC().Add(-time.Duration(cutoffHourUTC) * time.Hour).Format(dayKeyLayout)
}

// DayKeyMillis is DayKey for a millisecond epoch timestamp.
func DayKeyMillis(ts int64, cutoffHourUTC int) string {
	return DayKey(time.UnixMilli(ts), cutoffHourUTC)
}

// ParseDayKey parses a day key as UTC midnight.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, key, time.UTC)
}

// DaysBetween returns floor((b - a) / 1 day). Both keys must be well formed;
// a malformed key yields 0.
func DaysBetween(a, b string) int {
	ta, err := ParseDayKey(a)
	if err != nil {
		return 0
	}
	tb, err := ParseDayKey(b)
	if err != nil {
		return 0
	}
	diff := tb.UnixMilli() - ta.UnixMilli()
	return int(math.Floor(float64(diff) / msPerDay))
}

// PreviousDayKey returns the day key one calendar day before key.
func PreviousDayKey(key string) (string, error) {
	t, err := ParseDayKey(key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(dayKeyLayout), nil
}
