package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/models"
	"github.com/noah-isme/sma-exam-planner/pkg/calendar"
)

const (
	defaultSlotStart = "08:00"
	slotLengthHours  = 2
)

type boardStore interface {
	View(fn func(b *models.Board)) int64
	Update(fn func(b *models.Board) (bool, error)) (int64, bool, error)
}

// DefaultBoard seeds a planner with a single final-exam period covering the
// two working weeks starting at now.
func DefaultBoard(now time.Time) *models.Board {
	monday := calendar.WeekStart(now)
	year, month, _ := monday.Date()
	half := 1
	academic := fmt.Sprintf("%d-%d", year-1, year)
	if month >= time.September {
		academic = fmt.Sprintf("%d-%d", year, year+1)
	}
	if month >= time.February && month < time.September {
		half = 2
	}
	b := models.NewBoard()
	b.Periods = []models.Period{{
		ID:           1,
		Kind:         models.PeriodKindFinal,
		AcademicYear: academic,
		HalfYear:     half,
		StartDate:    calendar.FormatDay(monday),
		EndDate:      calendar.FormatDay(calendar.WeekEnd(monday).AddDate(0, 0, 7)),
	}}
	b.Slots[1] = []models.TimeSlot{defaultSlot()}
	b.ActivePeriodID = 1
	return b
}

func defaultSlot() models.TimeSlot {
	return models.TimeSlot{Start: defaultSlotStart, End: calendar.AddClock(defaultSlotStart, slotLengthHours)}
}

func commandResult(revision int64, changed bool, reason string, affected int) *dto.CommandResult {
	status := dto.CommandStatusNoop
	if changed {
		status = dto.CommandStatusApplied
		reason = ""
	}
	return &dto.CommandResult{Status: status, Reason: reason, Affected: affected, Revision: revision}
}

func resolveSubjects(b *models.Board, ids []string) []models.Subject {
	out := make([]models.Subject, 0, len(ids))
	for _, id := range ids {
		if subject, ok := b.Subject(id); ok {
			out = append(out, subject)
		}
	}
	return out
}
