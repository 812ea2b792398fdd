// Package kst centralizes every calendar-day computation in the system.
//
// Attendance is bucketed by the Korean local day (fixed UTC+9) regardless of
// where the server runs. All "today", "month start" and "year start"
// boundaries must go through this package; never do inline offset math.
package kst

import (
	"fmt"
	"time"
)

// Zone is the fixed reference offset. Deliberately not a tz-database zone:
// the bucketing rule is "UTC+9 always", with no DST and no host dependence.
var Zone = time.FixedZone("KST", 9*60*60)

const keyLayout = "2006-01-02"

// DayKey returns the KST calendar-day key (YYYY-MM-DD) for an absolute instant.
func DayKey(t time.Time) string {
	return t.In(Zone).Format(keyLayout)
}

// DayStart converts a day key back to the absolute instant of KST midnight,
// expressed in UTC so it compares and indexes identically everywhere.
// KST 00:00 is 15:00 UTC of the previous day.
func DayStart(key string) (time.Time, error) {
	t, err := time.ParseInLocation(keyLayout, key, Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return t.UTC(), nil
}

// IsSunday reports whether the given day key falls on a Sunday in KST.
func IsSunday(key string) bool {
	t, err := DayStart(key)
	if err != nil {
		return false
	}
	return t.In(Zone).Weekday() == time.Sunday
}

// MonthStartKey truncates a day key to the first day of its own month.
// It works on the key's text rather than re-deriving from an instant, so a
// request that straddles local midnight cannot drift between boundaries.
func MonthStartKey(key string) (string, error) {
	if _, err := DayStart(key); err != nil {
		return "", err
	}
	return key[:8] + "01", nil
}

// YearStartKey truncates a day key to January 1st of its own year.
func YearStartKey(key string) (string, error) {
	if _, err := DayStart(key); err != nil {
		return "", err
	}
	return key[:5] + "01-01", nil
}

// KoreanAge returns the Korean counting age: current KST year minus birth
// year plus one. Month and day are ignored on purpose; downstream grouping
// depends on this exact formula, so do not "fix" it to a birthday-based age.
func KoreanAge(birthDate, now time.Time) int {
	return now.In(Zone).Year() - birthDate.UTC().Year() + 1
}
