package dto

import "github.com/noah-isme/sma-exam-planner/internal/models"

// CreatePeriodRequest describes a new period.
type CreatePeriodRequest struct {
	Kind         models.PeriodKind `json:"kind" validate:"required,oneof=midterm final reassessment"`
	AcademicYear string            `json:"academicYear" validate:"required"`
	HalfYear     int               `json:"halfYear" validate:"required,oneof=1 2"`
	StartDate    string            `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate      string            `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// UpdatePeriodRangeRequest moves a period's date range.
type UpdatePeriodRangeRequest struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// UpdatePeriodMetaRequest edits descriptive period fields.
type UpdatePeriodMetaRequest struct {
	Kind         models.PeriodKind `json:"kind" validate:"required,oneof=midterm final reassessment"`
	AcademicYear string            `json:"academicYear" validate:"required"`
	HalfYear     int               `json:"halfYear" validate:"required,oneof=1 2"`
}

// UpdateSlotRequest edits a slot's times.
type UpdateSlotRequest struct {
	Start string `json:"start" validate:"required,datetime=15:04"`
	End   string `json:"end" validate:"required,datetime=15:04"`
}

// PeriodView is a period together with its slots.
type PeriodView struct {
	models.Period
	Label       string            `json:"label"`
	Active      bool              `json:"active"`
	Slots       []models.TimeSlot `json:"slots"`
	Assigned    int               `json:"assigned"`
	PrunedCells int               `json:"prunedCells,omitempty"`
}

// CalendarView is the grid the rendering layer draws for one period.
type CalendarView struct {
	Period models.Period     `json:"period"`
	Slots  []models.TimeSlot `json:"slots"`
	Weeks  []CalendarWeek    `json:"weeks"`
}

// CalendarWeek is one Monday..Friday row of the grid.
type CalendarWeek struct {
	Monday string        `json:"monday"`
	Friday string        `json:"friday"`
	Days   []CalendarDay `json:"days"`
}

// CalendarDay is a column; disabled days accept no drops.
type CalendarDay struct {
	Date    string     `json:"date"`
	Weekday string     `json:"weekday"`
	Enabled bool       `json:"enabled"`
	Cells   []CellView `json:"cells,omitempty"`
}
