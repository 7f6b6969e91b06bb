package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ToMinutes parses an "HH:MM" string into a minute-of-day value.
// Empty or malformed input yields 0 rather than an error; block times are
// produced by the form and the expander, so a bad string here is a
// defensive default, not a real error path.
func ToMinutes(t string) int {
	h, m, ok := splitClock(t)
	if !ok {
		return 0
	}
	return h*60 + m
}

// FromMinutes renders a minute-of-day value as a zero-padded "HH:MM".
func FromMinutes(m int) string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ValidClock reports whether t is a well-formed "HH:MM" within a day.
func ValidClock(t string) bool {
	_, _, ok := splitClock(t)
	return ok
}

func splitClock(t string) (h, m int, ok bool) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

const dateKeyLayout = "2006-01-02"

// FormatDateKey turns a date into the canonical "YYYY-MM-DD" lookup key
// using the date's local components. Every place a date becomes a key must
// go through this function; a UTC-based conversion shifts the day near
// timezone boundaries.
func FormatDateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDateKey parses a "YYYY-MM-DD" key back into a local midnight time.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(dateKeyLayout, key, time.Local)
}

// BlockTime combines a date key and an "HH:MM" clock into one local
// timestamp, for ordering blocks across days.
func BlockTime(dateKey, clock string) (time.Time, error) {
	day, err := ParseDateKey(dateKey)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(ToMinutes(clock)) * time.Minute), nil
}
