package calendar_test

import (
	"errors"
	"sort"
	"testing"
	"time"

	"compass/internal/platform/calendar"
	apperrors "compass/internal/platform/errors"
)

func TestKeyOrderMatchesChronologicalOrder(t *testing.T) {
	t.Parallel()
	start := time.Date(1999, 12, 25, 0, 0, 0, 0, time.UTC)
	var keys []string
	for i := 0; i < 800; i += 7 {
		keys = append(keys, calendar.Key(start.AddDate(0, 0, i)))
	}
	if !sort.StringsAreSorted(keys) {
		t.Fatalf("expected keys in chronological order to be lexicographically sorted: %v", keys)
	}
}

func TestShiftRoundTrip(t *testing.T) {
	t.Parallel()
	cases := []string{"2024-02-28", "2024-02-29", "2023-12-31", "2024-03-10", "2024-11-03", "1900-02-28", "2000-02-29"}
	for _, key := range cases {
		next, err := calendar.Shift(key, 1)
		if err != nil {
			t.Fatalf("shift %s: %v", key, err)
		}
		back, err := calendar.Shift(next, -1)
		if err != nil {
			t.Fatalf("shift back %s: %v", next, err)
		}
		if back != key {
			t.Fatalf("round trip %s -> %s -> %s", key, next, back)
		}
	}
	if next, _ := calendar.Shift("2024-02-28", 1); next != "2024-02-29" {
		t.Fatalf("expected leap day, got %s", next)
	}
	if next, _ := calendar.Shift("2023-12-31", 1); next != "2024-01-01" {
		t.Fatalf("expected new year, got %s", next)
	}
}

func TestKeyUsesLocationOfTime(t *testing.T) {
	t.Parallel()
	tokyo := time.FixedZone("JST", 9*3600)
	instant := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	if got := calendar.Key(instant.In(tokyo)); got != "2024-01-02" {
		t.Fatalf("expected next day in tokyo, got %s", got)
	}
	if got := calendar.Key(instant); got != "2024-01-01" {
		t.Fatalf("expected utc day, got %s", got)
	}
}

func TestIsValidKey(t *testing.T) {
	t.Parallel()
	for _, key := range []string{"2024-01-01", "2024-02-29"} {
		if !calendar.IsValidKey(key) {
			t.Fatalf("%s should be valid", key)
		}
	}
	for _, key := range []string{"", "2024-1-01", "2023-02-29", "2024-13-01", "24-01-01", "2024/01/01", "2024-01-01T00:00"} {
		if calendar.IsValidKey(key) {
			t.Fatalf("%q should be invalid", key)
		}
	}
	if _, err := calendar.Shift("nope", 1); !errors.Is(err, apperrors.ErrInvalidDateKey) {
		t.Fatalf("expected invalid date key error, got %v", err)
	}
}

func TestLastNAndWeekKeys(t *testing.T) {
	t.Parallel()
	keys, err := calendar.LastN("2024-03-02", 3)
	if err != nil {
		t.Fatalf("last n: %v", err)
	}
	want := []string{"2024-02-29", "2024-03-01", "2024-03-02"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("unexpected keys %v", keys)
		}
	}

	week, err := calendar.WeekKeys("2024-01-07")
	if err != nil {
		t.Fatalf("week keys: %v", err)
	}
	if week[0] != "2024-01-01" || week[6] != "2024-01-07" {
		t.Fatalf("expected monday-first week, got %v", week)
	}
}

func TestTimeOfDay(t *testing.T) {
	t.Parallel()
	if got := calendar.FormatMinutes(455); got != "07:35" {
		t.Fatalf("expected 07:35, got %s", got)
	}
	if got := calendar.FormatMinutes(-15); got != "23:45" {
		t.Fatalf("expected wrap to 23:45, got %s", got)
	}
	minutes, err := calendar.ParseTimeOfDay("21:05")
	if err != nil || minutes != 21*60+5 {
		t.Fatalf("parse 21:05: %d %v", minutes, err)
	}
	for _, bad := range []string{"24:00", "9:00", "12:60", ""} {
		if _, err := calendar.ParseTimeOfDay(bad); !errors.Is(err, apperrors.ErrInvalidTime) {
			t.Fatalf("%q should be rejected, got %v", bad, err)
		}
	}
}
