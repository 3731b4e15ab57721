package algorithms

import (
	"fmt"
	"time"
)

// Target date kinds. They double as the notification-type prefix, so
// rescheduling one kind never touches the other's rows.
const (
	TargetExpiration = "expiration"
	TargetDueDate    = "due_date"
)

// Fixed threshold tables: days before the target date at which a
// notification fires. Each schedule also gets a day-of entry.
var (
	ExpirationThresholds = []int{90, 60, 30, 15, 7, 2, 1}
	DueDateThresholds    = []int{7, 3, 1}
)

// Notifications fire at 09:00 server-local time.
const notifyHour = 9

type ScheduleEntry struct {
	Type         string
	ScheduledFor time.Time
	DaysBefore   int
}

// BuildSchedule computes the future notification instants for a target
// date. Instants at or before now are dropped; missed thresholds are
// never backfilled here, the urgent same-day check covers that gap.
// An empty result is valid and means "nothing left to schedule".
func BuildSchedule(target string, targetDate, now time.Time) []ScheduleEntry {
	thresholds := ExpirationThresholds
	if target == TargetDueDate {
		thresholds = DueDateThresholds
	}

	entries := make([]ScheduleEntry, 0, len(thresholds)+1)
	for _, days := range thresholds {
		at := notifyInstant(targetDate, days)
		if at.After(now) {
			entries = append(entries, ScheduleEntry{
				Type:         fmt.Sprintf("%s_%dd", target, days),
				ScheduledFor: at,
				DaysBefore:   days,
			})
		}
	}

	if at := notifyInstant(targetDate, 0); at.After(now) {
		entries = append(entries, ScheduleEntry{
			Type:         target + "_today",
			ScheduledFor: at,
			DaysBefore:   0,
		})
	}

	return entries
}

func notifyInstant(targetDate time.Time, daysBefore int) time.Time {
	day := targetDate.AddDate(0, 0, -daysBefore)
	return time.Date(day.Year(), day.Month(), day.Day(), notifyHour, 0, 0, 0, day.Location())
}
