package contract

import (
	"time"

	"gittrack/schema"
)

// StartOfDay returns local midnight for the day containing t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey returns the calendar-day key for t in local time.
func DayKey(t time.Time) string {
	return t.Format(schema.DateFormat)
}

// ParseDayKey parses a calendar-day key back into a local-midnight time.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(schema.DateFormat, key, time.Local)
}
