// Package calendar converts between wall-clock times, canonical date keys
// (YYYY-MM-DD) and HH:MM time-of-day values.
//
// Date keys are calendar days, so arithmetic is done on UTC midnights and is
// unaffected by daylight-saving transitions in the caller's zone. Only Key
// depends on a location: it projects an instant onto the calendar of the
// location carried by the time value.
package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	apperrors "compass/internal/platform/errors"
)

const (
	KeyLayout     = "2006-01-02"
	MinutesPerDay = 24 * 60
)

var (
	keyPattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Key returns the date key of t in t's own location.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

func IsValidKey(key string) bool {
	if !keyPattern.MatchString(key) {
		return false
	}
	_, err := time.Parse(KeyLayout, key)
	return err == nil
}

// ParseKey returns local midnight of key in loc.
func ParseKey(key string, loc *time.Location) (time.Time, error) {
	if !IsValidKey(key) {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDateKey, key)
	}
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(KeyLayout, key, loc)
}

func Shift(key string, days int) (string, error) {
	date, err := ParseKey(key, time.UTC)
	if err != nil {
		return "", err
	}
	return Key(date.AddDate(0, 0, days)), nil
}

// LastN returns the n keys ending at today, oldest first.
func LastN(today string, n int) ([]string, error) {
	end, err := ParseKey(today, time.UTC)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []string{}, nil
	}
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = Key(end.AddDate(0, 0, i-n+1))
	}
	return keys, nil
}

// WeekKeys returns the Monday..Sunday keys of the week containing anchor.
func WeekKeys(anchor string) ([]string, error) {
	date, err := ParseKey(anchor, time.UTC)
	if err != nil {
		return nil, err
	}
	mondayOffset := (int(date.Weekday()) + 6) % 7
	monday := date.AddDate(0, 0, -mondayOffset)
	keys := make([]string, 7)
	for i := range keys {
		keys[i] = Key(monday.AddDate(0, 0, i))
	}
	return keys, nil
}

func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatMinutes renders a minute-of-day as HH:MM, wrapping values outside a day.
func FormatMinutes(minutes int) string {
	normalized := ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", normalized/60, normalized%60)
}

func IsValidTimeOfDay(value string) bool {
	return timePattern.MatchString(value)
}

func ParseTimeOfDay(value string) (int, error) {
	if !IsValidTimeOfDay(value) {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidTime, value)
	}
	hours, _ := strconv.Atoi(value[:2])
	minutes, _ := strconv.Atoi(value[3:])
	return hours*60 + minutes, nil
}
