package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayLayout is the ISO calendar day layout used for cell keys and snapshots.
const DayLayout = "2006-01-02"

// DisplayLayout renders days as day/month/year for flat exports.
const DisplayLayout = "02/01/2006"

// WorkDays is the number of days in a Monday..Friday span.
const WorkDays = 5

// Week is a Monday..Friday span.
type Week struct {
	Monday time.Time
	Friday time.Time
}

// Days lists Monday through Friday of the week.
func (w Week) Days() []time.Time {
	days := make([]time.Time, 0, WorkDays)
	for i := 0; i < WorkDays; i++ {
		days = append(days, w.Monday.AddDate(0, 0, i))
	}
	return days
}

// ParseDay parses an ISO day string into a UTC midnight time.
func ParseDay(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", raw, err)
	}
	return t, nil
}

// FormatDay renders t as an ISO day string.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// StartOfDay drops the clock part of t, keeping its calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the week containing t. Weeks start on Monday
// regardless of locale.
func WeekStart(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the Friday of the week containing t.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, WorkDays-1)
}

// WeekIterator walks consecutive weeks. It is finite and can be restarted.
type WeekIterator struct {
	start   time.Time
	end     time.Time
	current time.Time
}

// EnumerateWeeks yields (Monday, Friday) pairs starting at monday, stepping
// seven days, while the current Monday does not exceed fridayEnd.
func EnumerateWeeks(monday, fridayEnd time.Time) *WeekIterator {
	start := StartOfDay(monday)
	return &WeekIterator{start: start, end: StartOfDay(fridayEnd), current: start}
}

// Next returns the next week, or false once the range is exhausted.
func (it *WeekIterator) Next() (Week, bool) {
	if it.current.After(it.end) {
		return Week{}, false
	}
	week := Week{Monday: it.current, Friday: it.current.AddDate(0, 0, WorkDays-1)}
	it.current = it.current.AddDate(0, 0, 7)
	return week, true
}

// Reset rewinds the iterator to its first week.
func (it *WeekIterator) Reset() {
	it.current = it.start
}

// All drains a fresh pass over the range without disturbing the iterator.
func (it *WeekIterator) All() []Week {
	clone := &WeekIterator{start: it.start, end: it.end, current: it.start}
	weeks := make([]Week, 0)
	for {
		week, ok := clone.Next()
		if !ok {
			return weeks
		}
		weeks = append(weeks, week)
	}
}

// IsWeekday reports whether t falls Monday to Friday, the days a week grid
// renders.
func IsWeekday(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// WeeksCovering enumerates the weeks spanning the inclusive range [from, to].
func WeeksCovering(from, to time.Time) *WeekIterator {
	return EnumerateWeeks(WeekStart(from), WeekEnd(to))
}

// AddClock adds whole hours to an "HH:mm" string. Slot times are opaque, so
// there is no rollover past 24.
func AddClock(hhmm string, hours int) string {
	parts := strings.SplitN(strings.TrimSpace(hhmm), ":", 2)
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return hhmm
	}
	minutes := "00"
	if len(parts) == 2 && parts[1] != "" {
		minutes = parts[1]
	}
	return fmt.Sprintf("%02d:%s", h+hours, minutes)
}
