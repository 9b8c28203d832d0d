package models

import "strings"

// CounterRecord holds the counters of one identity key. Timestamps are
// milliseconds since epoch.
type CounterRecord struct {
	Key             string `json:"key"`
	FID             int64  `json:"fid,omitempty"`
	Wallet          string `json:"wallet,omitempty"`
	TotalReadings   int    `json:"totalReadings"`
	OneCardCount    int    `json:"oneCardCount"`
	ThreeCardCount  int    `json:"threeCardCount"`
	CustomCount     int    `json:"customCount"`
	Streak          int    `json:"streak"`
	LastVisitDayKey string `json:"lastVisitDayKey,omitempty"`
	FirstSeenAt     int64  `json:"firstSeenAt,omitempty"`
	LastSeenAt      int64  `json:"lastSeenAt,omitempty"`
}

func NewCounterRecord(id Identity) *CounterRecord {
	return &CounterRecord{
		Key:    id.Key(),
		FID:    id.FID,
		Wallet: NormalizeWallet(id.Wallet),
	}
}

// IncReading bumps exactly one category counter and the total.
func (r *CounterRecord) IncReading(t ReadingType) bool {
	switch t {
	case ReadingOne:
		r.OneCardCount++
	case ReadingThree:
		r.ThreeCardCount++
	case ReadingCustom:
		r.CustomCount++
	default:
		return false
	}
	r.TotalReadings++
	return true
}

// Touch records activity at nowMs.
func (r *CounterRecord) Touch(nowMs int64) {
	if r.FirstSeenAt == 0 {
		r.FirstSeenAt = nowMs
	}
	r.LastSeenAt = nowMs
}

// Consistent reports whether the total matches the category counts.
func (r *CounterRecord) Consistent() bool {
	return r.TotalReadings == r.OneCardCount+r.ThreeCardCount+r.CustomCount
}

func (r *CounterRecord) Clone() *CounterRecord {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// RemoteRecord is the server-shaped counter record returned by the remote
// counter service.
type RemoteRecord struct {
	FID             int64  `json:"fid"`
	Wallet          string `json:"wallet,omitempty"`
	TotalReadings   int    `json:"total_readings"`
	OneCardCount    int    `json:"one_card_count"`
	ThreeCardCount  int    `json:"three_card_count"`
	CustomCount     int    `json:"custom_count"`
	Streak          int    `json:"streak"`
	LastVisitDayKey string `json:"last_visit_day_key"`
	FirstSeenTs     int64  `json:"first_seen_ts"`
	LastSeenTs      int64  `json:"last_seen_ts"`
}

// ToCounterRecord converts the server view into a ledger row stored under key.
func (r *RemoteRecord) ToCounterRecord(key string) *CounterRecord {
	return &CounterRecord{
		Key:             key,
		FID:             r.FID,
		Wallet:          strings.ToLower(r.Wallet),
		TotalReadings:   r.TotalReadings,
		OneCardCount:    r.OneCardCount,
		ThreeCardCount:  r.ThreeCardCount,
		CustomCount:     r.CustomCount,
		Streak:          r.Streak,
		LastVisitDayKey: r.LastVisitDayKey,
		FirstSeenAt:     r.FirstSeenTs,
		LastSeenAt:      r.LastSeenTs,
	}
}
