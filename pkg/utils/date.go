package utils

import "time"

// StartOfISOWeek returns the Monday 00:00:00 UTC of the ISO week containing t.
func StartOfISOWeek(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // ISO weeks start on Monday
	}
	monday := t.AddDate(0, 0, 1-weekday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfLastISOWeek returns the end (exclusive) of the most recently completed
// ISO week relative to now, i.e. the Monday 00:00:00 UTC of the current week.
func EndOfLastISOWeek(now time.Time) time.Time {
	return StartOfISOWeek(now)
}

// ISOYearWeek returns the ISO-8601 year and week number for t.
func ISOYearWeek(t time.Time) (int, int) {
	return t.UTC().ISOWeek()
}
