package algorithms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSchedule_FullExpirationHorizon(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	target := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	entries := BuildSchedule(TargetExpiration, target, now)

	require.Len(t, entries, len(ExpirationThresholds)+1)

	wantTypes := []string{
		"expiration_90d", "expiration_60d", "expiration_30d",
		"expiration_15d", "expiration_7d", "expiration_2d",
		"expiration_1d", "expiration_today",
	}
	for i, e := range entries {
		assert.Equal(t, wantTypes[i], e.Type)
		assert.Equal(t, 9, e.ScheduledFor.Hour())
		assert.Equal(t, 0, e.ScheduledFor.Minute())
		assert.True(t, e.ScheduledFor.After(now))
	}

	// Day-of entry lands on the target date itself.
	last := entries[len(entries)-1]
	assert.Equal(t, target.Day(), last.ScheduledFor.Day())
	assert.Equal(t, 0, last.DaysBefore)
}

func TestBuildSchedule_DropsPassedThresholds(t *testing.T) {
	// Target 30 days out: the 90 and 60 day thresholds already lie in
	// the past, the 30 day one fires today at 09:00.
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	target := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	entries := BuildSchedule(TargetExpiration, target, now)

	require.Len(t, entries, 6)
	assert.Equal(t, "expiration_30d", entries[0].Type)
	assert.Equal(t, now.Day(), entries[0].ScheduledFor.Day())
	assert.Equal(t, "expiration_today", entries[len(entries)-1].Type)
}

func TestBuildSchedule_AscendingOrder(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	target := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	entries := BuildSchedule(TargetExpiration, target, now)

	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i].ScheduledFor.After(entries[i-1].ScheduledFor),
			"entries must be chronologically ascending")
	}
}

func TestBuildSchedule_StrictlyFuture(t *testing.T) {
	// Now exactly at a threshold instant: that entry is excluded, the
	// comparison is strictly-after.
	target := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC) // the 7d instant

	entries := BuildSchedule(TargetExpiration, target, now)

	for _, e := range entries {
		assert.NotEqual(t, "expiration_7d", e.Type)
		assert.True(t, e.ScheduledFor.After(now))
	}
	require.Len(t, entries, 3) // 2d, 1d, day-of
}

func TestBuildSchedule_PastTargetDate(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	target := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	entries := BuildSchedule(TargetExpiration, target, now)
	assert.Empty(t, entries)
}

func TestBuildSchedule_DueDateThresholds(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	target := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	entries := BuildSchedule(TargetDueDate, target, now)

	require.Len(t, entries, len(DueDateThresholds)+1)
	wantTypes := []string{"due_date_7d", "due_date_3d", "due_date_1d", "due_date_today"}
	for i, e := range entries {
		assert.Equal(t, wantTypes[i], e.Type)
	}
}

func TestBuildSchedule_DayOfOnly(t *testing.T) {
	// Target is today with now before 09:00: only the day-of entry
	// survives.
	now := time.Date(2026, 2, 20, 7, 30, 0, 0, time.UTC)
	target := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	entries := BuildSchedule(TargetDueDate, target, now)

	require.Len(t, entries, 1)
	assert.Equal(t, "due_date_today", entries[0].Type)
}
