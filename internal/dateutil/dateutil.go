// Package dateutil provides day-key normalization, date range generation and parsing utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// KeyLayout is the canonical layout of a DayKey.
const KeyLayout = "2006-01-02"

// PulseDays is the number of days covered by the weekly pulse, today inclusive.
const PulseDays = 7

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrDateInPast        = errors.New("cannot schedule in the past")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DayKey is a calendar day normalized to "YYYY-MM-DD".
// Two keys refer to the same day iff they are equal.
// The zero value is the empty key and matches no calendar day.
type DayKey string

// KeyOf returns the day key of t in t's location.
func KeyOf(t time.Time) DayKey {
	return DayKey(t.Format(KeyLayout))
}

// Today returns the day key of now.
func Today(now time.Time) DayKey {
	return KeyOf(now)
}

// ParseKey validates s as a day key.
func ParseKey(s string) (DayKey, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(KeyLayout, s)
	if err != nil {
		return "", ErrInvalidDateFormat
	}
	return KeyOf(t), nil
}

// String returns the key text.
func (k DayKey) String() string {
	return string(k)
}

// IsZero reports whether k is the empty key.
func (k DayKey) IsZero() bool {
	return k == ""
}

// Valid reports whether k parses as a calendar day.
func (k DayKey) Valid() bool {
	_, err := time.Parse(KeyLayout, string(k))
	return err == nil
}

// Time returns local midnight of the day in loc.
func (k DayKey) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(KeyLayout, string(k), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// DayOfMonth returns the numeric day of month, or 0 for an invalid key.
func (k DayKey) DayOfMonth() int {
	t, err := time.Parse(KeyLayout, string(k))
	if err != nil {
		return 0
	}
	return t.Day()
}

// Weekday returns the weekday of the key. Invalid keys report Sunday.
func (k DayKey) Weekday() time.Weekday {
	t, err := time.Parse(KeyLayout, string(k))
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

// AddDays returns the key n calendar days after k.
func (k DayKey) AddDays(n int) DayKey {
	t, err := time.Parse(KeyLayout, string(k))
	if err != nil {
		return k
	}
	return KeyOf(t.AddDate(0, 0, n))
}

// NextDays returns n consecutive day keys starting at now's calendar day.
// Days are stepped with AddDate so DST transitions never skip or repeat a day.
func NextDays(now time.Time, n int) []DayKey {
	if n <= 0 {
		return nil
	}
	start := TruncateToDay(now)
	keys := make([]DayKey, n)
	for i := range keys {
		keys[i] = KeyOf(start.AddDate(0, 0, i))
	}
	return keys
}

// Upcoming returns the pulse window: today and the following six days.
func Upcoming(now time.Time) []DayKey {
	return NextDays(now, PulseDays)
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo's day
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow", "next-week"
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Next prefixed: "next-monday" through "next-sunday"
//
// All inputs are case-insensitive.
// Returns ErrDateInPast if the resulting date is before relativeTo (truncated to day).
func ParseRelativeDate(s string, relativeTo time.Time) (DayKey, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return KeyOf(today), nil
	case "tomorrow":
		return KeyOf(today.AddDate(0, 0, 1)), nil
	case "next-week":
		return KeyOf(today.AddDate(0, 0, 7)), nil
	}

	if name, ok := strings.CutPrefix(input, "next-"); ok {
		if target, ok := weekdayMap[name]; ok {
			return KeyOf(nextWeekday(today, target)), nil
		}
		return "", ErrInvalidDateFormat
	}

	if target, ok := weekdayMap[input]; ok {
		return KeyOf(nextWeekday(today, target)), nil
	}

	result, err := time.ParseInLocation(KeyLayout, input, relativeTo.Location())
	if err != nil {
		return "", ErrInvalidDateFormat
	}
	if result.Before(today) {
		return "", ErrDateInPast
	}
	return KeyOf(result), nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
