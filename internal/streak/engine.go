package streak

import (
	"time"

	"tarotstats/internal/models"
)

type Transition string

const (
	TransitionFirst       Transition = "first"
	TransitionSameDay     Transition = "same_day"
	TransitionConsecutive Transition = "consecutive"
	TransitionGap         Transition = "gap"
	TransitionOutOfOrder  Transition = "out_of_order"
)

type Result struct {
	Streak          int
	LastVisitDayKey string
	Transition      Transition
}

// Changed reports whether the transition moved the last visit day key.
func (r Result) Changed() bool {
	return r.Transition != TransitionSameDay && r.Transition != TransitionOutOfOrder
}

// Next computes the streak after a visit at now. An empty prevLastVisit means
// no visit was ever recorded. Same-day and out-of-order visits leave both
// values untouched.
func Next(prevStreak int, prevLastVisit string, now time.Time, cutoffHourUTC int) Result {
	current := DayKey(now, cutoffHourUTC)
	if prevLastVisit == "" {
		return Result{Streak: 1, LastVisitDayKey: current, Transition: TransitionFirst}
	}

	switch diff := DaysBetween(prevLastVisit, current); {
	case diff == 0:
		return Result{Streak: prevStreak, LastVisitDayKey: prevLastVisit, Transition: TransitionSameDay}
	case diff == 1:
		return Result{Streak: prevStreak + 1, LastVisitDayKey: current, Transition: TransitionConsecutive}
	case diff > 1:
		return Result{Streak: 1, LastVisitDayKey: current, Transition: TransitionGap}
	default:
		return Result{Streak: prevStreak, LastVisitDayKey: prevLastVisit, Transition: TransitionOutOfOrder}
	}
}

// ApplyVisit runs Next against rec and stores the outcome in it.
func ApplyVisit(rec *models.CounterRecord, now time.Time, cutoffHourUTC int) Result {
	res := Next(rec.Streak, rec.LastVisitDayKey, now, cutoffHourUTC)
	rec.Streak = res.Streak
	rec.LastVisitDayKey = res.LastVisitDayKey
	return res
}
