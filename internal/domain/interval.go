package domain

import (
	"strings"
	"time"
)

// Interval is a named reporting window resolved relative to a reference instant.
type Interval string

const (
	Daily   Interval = "daily"
	Weekly  Interval = "weekly"
	Monthly Interval = "monthly"
	Yearly  Interval = "yearly"
)

// Intervals lists the recognized interval names.
var Intervals = []Interval{Daily, Weekly, Monthly, Yearly}

// ParseInterval maps a name onto an Interval, case-insensitively.
// Unrecognized names fall back to Daily.
func ParseInterval(name string) Interval {
	switch Interval(strings.ToLower(strings.TrimSpace(name))) {
	case Weekly:
		return Weekly
	case Monthly:
		return Monthly
	case Yearly:
		return Yearly
	default:
		return Daily
	}
}

// IsKnownInterval reports whether name is one of the recognized interval names.
func IsKnownInterval(name string) bool {
	n := Interval(strings.ToLower(strings.TrimSpace(name)))
	for _, i := range Intervals {
		if n == i {
			return true
		}
	}
	return false
}

// IsWithinInterval parses an ISO 8601 timestamp and checks it against the named interval.
// Both RFC 3339 date-times and plain dates (read in now's location) are accepted.
// An empty or unparseable timestamp is never within any interval.
func IsWithinInterval(timestamp, interval string, now time.Time) bool {
	if timestamp == "" {
		return false
	}
	ts, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		ts, err = time.ParseInLocation(time.DateOnly, timestamp, now.Location())
		if err != nil {
			return false
		}
	}
	return ParseInterval(interval).Contains(&ts, now)
}

// Contains reports whether ts falls inside the interval ending at now.
// Comparison happens on calendar dates in now's location.
func (i Interval) Contains(ts *time.Time, now time.Time) bool {
	if ts == nil {
		return false
	}
	loc := now.Location()
	day := dateOf(*ts, loc)
	today := dateOf(now, loc)

	switch i {
	case Weekly:
		return day.After(today.AddDate(0, 0, -7))
	case Monthly:
		return day.After(subtractMonths(today, 1))
	case Yearly:
		return day.After(subtractMonths(today, 12))
	default:
		return day.Equal(today)
	}
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// subtractMonths moves t back by the given number of calendar months, clamping
// the day to the length of the target month (Mar 31 - 1 month = Feb 28).
func subtractMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
