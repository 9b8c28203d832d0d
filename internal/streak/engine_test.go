package streak

import (
	"testing"

	"tarotstats/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_FirstVisit(t *testing.T) {
	res := Next(0, "", mustTime(t, "2024-01-10T00:30:00Z"), 1)
	assert.Equal(t, 1, res.Streak)
	assert.Equal(t, "2024-01-09", res.LastVisitDayKey)
	assert.Equal(t, TransitionFirst, res.Transition)
	assert.True(t, res.Changed())
}

func TestNext_SameDayIsIdempotent(t *testing.T) {
	for _, prev := range []int{1, 2, 17} {
		res := Next(prev, "2024-01-09", mustTime(t, "2024-01-10T00:45:00Z"), 1)
		assert.Equal(t, prev, res.Streak)
		assert.Equal(t, "2024-01-09", res.LastVisitDayKey)
		assert.Equal(t, TransitionSameDay, res.Transition)
		assert.False(t, res.Changed())
	}
}

func TestNext_ConsecutiveDayIncrements(t *testing.T) {
	for _, prev := range []int{1, 5, 99} {
		res := Next(prev, "2024-01-09", mustTime(t, "2024-01-11T00:30:00Z"), 1)
		assert.Equal(t, prev+1, res.Streak)
		assert.Equal(t, "2024-01-10", res.LastVisitDayKey)
		assert.Equal(t, TransitionConsecutive, res.Transition)
	}
}

func TestNext_GapResets(t *testing.T) {
	for _, prev := range []int{0, 1, 30} {
		res := Next(prev, "2024-01-01", mustTime(t, "2024-01-05T12:00:00Z"), 1)
		assert.Equal(t, 1, res.Streak)
		assert.Equal(t, "2024-01-05", res.LastVisitDayKey)
		assert.Equal(t, TransitionGap, res.Transition)
	}
}

func TestNext_OutOfOrderIsNoop(t *testing.T) {
	res := Next(4, "2024-01-10", mustTime(t, "2024-01-08T12:00:00Z"), 1)
	assert.Equal(t, 4, res.Streak)
	assert.Equal(t, "2024-01-10", res.LastVisitDayKey)
	assert.Equal(t, TransitionOutOfOrder, res.Transition)
	assert.False(t, res.Changed())
}

func TestApplyVisit_Scenario(t *testing.T) {
	rec := models.NewCounterRecord(models.Identity{FID: 1})

	steps := []struct {
		at         string
		dayKey     string
		streak     int
		transition Transition
	}{
		{"2024-01-10T00:30:00Z", "2024-01-09", 1, TransitionFirst},
		{"2024-01-10T02:00:00Z", "2024-01-09", 1, TransitionSameDay},
		{"2024-01-11T02:00:00Z", "2024-01-10", 2, TransitionConsecutive},
		{"2024-01-14T02:00:00Z", "2024-01-13", 1, TransitionGap},
	}
	for _, step := range steps {
		res := ApplyVisit(rec, mustTime(t, step.at), DefaultCutoffHourUTC)
		require.Equal(t, step.transition, res.Transition, step.at)
		assert.Equal(t, step.streak, rec.Streak, step.at)
		assert.Equal(t, step.dayKey, rec.LastVisitDayKey, step.at)
	}
}
