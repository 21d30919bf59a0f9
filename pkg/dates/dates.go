// Package dates parses and formats the calendar dates used across plots,
// tasks and journal entries.
package dates

import (
	"strings"
	"time"

	"airrvie/pkg/apperr"
)

const Layout = "2006-01-02"

// Parse accepts "YYYY-MM-DD" or a full RFC 3339 timestamp (clients send
// both) and truncates to the date.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(Layout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, apperr.With(apperr.ErrInvalidInput, "invalid date format")
}

// ParseOrToday defaults to today's date when the input is empty.
func ParseOrToday(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return Parse(s)
}

func Format(t time.Time) string { return t.Format(Layout) }

// FormatPtr renders an optional date, empty string for nil.
func FormatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(Layout)
}
