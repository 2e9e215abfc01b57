package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// DateRange is an inclusive span of calendar days. Start and End are UTC
// midnights.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// Today truncates now to its UTC calendar day.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDateRange normalises start and end to calendar days. It does not check
// ordering; see Valid.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Today(start), End: Today(end)}
}

// Valid reports whether End is not before Start.
func (r DateRange) Valid() bool {
	return !r.End.Before(r.Start)
}

// Contains reports whether d falls within the range, endpoints included.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Overlaps applies the three-way inclusive test: r contains o's start, or r
// contains o's end, or o fully contains r.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Contains(o.Start) ||
		r.Contains(o.End) ||
		(!o.Start.After(r.Start) && !o.End.Before(r.End))
}

// Days is the number of billable days: End minus Start, floored to one so a
// same-day rental is charged a single day. Counted from Unix seconds, not a
// time.Duration, so any calendar span is exact.
func (r DateRange) Days() int {
	n := (r.End.Unix() - r.Start.Unix()) / secondsPerDay
	if n < 1 {
		return 1
	}
	return int(n)
}

// String formats the range as "start..end".
func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}
