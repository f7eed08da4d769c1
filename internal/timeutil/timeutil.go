package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Salesforce literal formats for date, dateTime and time fields.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05.000Z07:00"
	timeLayout     = "15:04:05.000"
)

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}

// FormatTime renders a time-of-day literal. The trailing Z is literal text,
// not a zone marker.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout) + "Z"
}

// ParseDuration accepts time.ParseDuration syntax plus day and week units.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, errors.New("empty duration string")
	}

	if dur, err := time.ParseDuration(s); err == nil {
		return dur, nil
	}

	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	num, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration number: %s", s[:len(s)-1])
	}

	switch s[len(s)-1:] {
	case "d":
		return time.Duration(num) * 24 * time.Hour, nil
	case "w":
		return time.Duration(num) * 7 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", s[len(s)-1:])
	}
}

// ParseRelativeTime accepts RFC3339 or an offset from now ("-90d", "+2w").
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty time string")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	if !strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "+") {
		return time.Time{}, fmt.Errorf("relative time must start with + or -: %s", s)
	}

	negative := strings.HasPrefix(s, "-")
	dur, err := ParseDuration(strings.TrimLeft(s, "+-"))
	if err != nil {
		return time.Time{}, err
	}

	if negative {
		return now.Add(-dur), nil
	}
	return now.Add(dur), nil
}
