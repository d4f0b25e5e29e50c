package util

import (
	"strconv"
	"time"
)

// DateLayout is the wire format for trading dates.
const DateLayout = "2006-01-02"

// ParseTime tries RFC3339, the plain date layout, and unix seconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// DateUTC truncates t to midnight UTC of its calendar day.
func DateUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateFromEpochMillis converts an epoch-milliseconds timestamp to its UTC
// calendar day. Upstream aggregates carry bar timestamps in milliseconds.
func DateFromEpochMillis(ms int64) time.Time {
	return DateUTC(time.UnixMilli(ms))
}

// Yesterday returns the UTC calendar day before now.
func Yesterday(now time.Time) time.Time {
	return DateUTC(now).AddDate(0, 0, -1)
}
