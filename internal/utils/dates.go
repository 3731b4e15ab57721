package utils

import "time"

const (
	StatusExpired       = "expired"
	StatusExpiringToday = "expiring_today"
	StatusExpiringSoon  = "expiring_soon"
	StatusUpcoming      = "upcoming"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// ParseExpirationDate parses a user-supplied date string. Returns nil
// for empty or unparseable input; callers treat nil as "no date set".
func ParseExpirationDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

// StartOfDay strips the time-of-day component.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntilExpiration returns whole calendar days between now and the
// target date. Negative when the date has already passed.
func DaysUntilExpiration(date, now time.Time) int {
	return int(StartOfDay(date).Sub(StartOfDay(now)).Hours() / 24)
}

// ExpirationStatus buckets a days-until value for dashboard display.
func ExpirationStatus(daysUntil int) string {
	switch {
	case daysUntil < 0:
		return StatusExpired
	case daysUntil == 0:
		return StatusExpiringToday
	case daysUntil <= 30:
		return StatusExpiringSoon
	default:
		return StatusUpcoming
	}
}
