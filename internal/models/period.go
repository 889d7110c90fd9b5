package models

import (
	"fmt"

	"github.com/noah-isme/sma-exam-planner/pkg/calendar"
)

// MaxPeriods caps the number of live periods on a board.
const MaxPeriods = 5

// PeriodKind enumerates examination sittings.
type PeriodKind string

const (
	PeriodKindMidterm      PeriodKind = "midterm"
	PeriodKindFinal        PeriodKind = "final"
	PeriodKindReassessment PeriodKind = "reassessment"
)

// Valid reports whether k is a known kind.
func (k PeriodKind) Valid() bool {
	switch k {
	case PeriodKindMidterm, PeriodKindFinal, PeriodKindReassessment:
		return true
	}
	return false
}

// Period is a date range with its own slot list and assignment map.
type Period struct {
	ID           int        `json:"id"`
	Kind         PeriodKind `json:"kind"`
	AcademicYear string     `json:"academicYear"`
	HalfYear     int        `json:"halfYear"`
	StartDate    string     `json:"startDate"`
	EndDate      string     `json:"endDate"`
}

// Label renders the period as "<kind> <year> Q<half>".
func (p Period) Label() string {
	return fmt.Sprintf("%s %s Q%d", p.Kind, p.AcademicYear, p.HalfYear)
}

// Contains reports whether the ISO day falls in [StartDate, EndDate].
// Unparseable bounds or days never match.
func (p Period) Contains(day string) bool {
	d, err := calendar.ParseDay(day)
	if err != nil {
		return false
	}
	start, err := calendar.ParseDay(p.StartDate)
	if err != nil {
		return false
	}
	end, err := calendar.ParseDay(p.EndDate)
	if err != nil {
		return false
	}
	return !d.Before(start) && !d.After(end)
}

// OpenOn reports whether subjects can sit on the ISO day: inside the range
// and on a weekday, since weekends are never rendered.
func (p Period) OpenOn(day string) bool {
	if !p.Contains(day) {
		return false
	}
	d, err := calendar.ParseDay(day)
	return err == nil && calendar.IsWeekday(d)
}

// TimeSlot is a daily interval. Start and End are opaque "HH:mm" strings.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
