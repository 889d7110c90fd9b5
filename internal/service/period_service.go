package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/models"
	"github.com/noah-isme/sma-exam-planner/pkg/calendar"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
)

// PeriodService manages periods and their slot lists. Structural edits prune
// the assignment cells they invalidate.
type PeriodService struct {
	store     boardStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPeriodService creates a period service.
func NewPeriodService(store boardStore, validate *validator.Validate, logger *zap.Logger) *PeriodService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeriodService{store: store, validator: validate, logger: logger}
}

// List returns periods in store order.
func (s *PeriodService) List(ctx context.Context) []dto.PeriodView {
	var views []dto.PeriodView
	s.store.View(func(b *models.Board) {
		views = make([]dto.PeriodView, 0, len(b.Periods))
		for _, p := range b.Periods {
			views = append(views, periodView(b, p))
		}
	})
	return views
}

// Get returns a single period.
func (s *PeriodService) Get(ctx context.Context, id int) (*dto.PeriodView, error) {
	var view *dto.PeriodView
	s.store.View(func(b *models.Board) {
		if p, ok := b.Period(id); ok {
			v := periodView(b, p)
			view = &v
		}
	})
	if view == nil {
		return nil, periodNotFound(id)
	}
	return view, nil
}

// AddPeriod creates a period with one default slot and makes it active.
func (s *PeriodService) AddPeriod(ctx context.Context, req dto.CreatePeriodRequest) (*dto.PeriodView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid period payload")
	}
	if err := validateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	var view dto.PeriodView
	_, _, err := s.store.Update(func(b *models.Board) (bool, error) {
		if len(b.Periods) >= models.MaxPeriods {
			return false, appErrors.Clone(appErrors.ErrPeriodCapacity, fmt.Sprintf("a board holds at most %d periods", models.MaxPeriods))
		}
		p := models.Period{
			ID:           b.NextPeriodID(),
			Kind:         req.Kind,
			AcademicYear: req.AcademicYear,
			HalfYear:     req.HalfYear,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
		}
		b.Periods = append(b.Periods, p)
		b.Slots[p.ID] = []models.TimeSlot{defaultSlot()}
		b.Assignments[p.ID] = make(map[models.CellKey][]string)
		b.ActivePeriodID = p.ID
		view = periodView(b, p)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("period added", zap.Int("period_id", view.ID), zap.String("label", view.Label))
	return &view, nil
}

// RemovePeriod deletes a period with its slots and assignments. The caller
// must confirm, and the last period cannot be removed.
func (s *PeriodService) RemovePeriod(ctx context.Context, id int, confirmed bool) error {
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, "removing a period deletes its slots and assignments; confirm to proceed")
	}
	dropped := 0
	_, _, err := s.store.Update(func(b *models.Board) (bool, error) {
		idx := b.PeriodIndex(id)
		if idx < 0 {
			return false, periodNotFound(id)
		}
		if len(b.Periods) <= 1 {
			return false, appErrors.ErrLastPeriod
		}
		dropped = len(b.Assignments[id])
		b.Periods = append(b.Periods[:idx], b.Periods[idx+1:]...)
		delete(b.Slots, id)
		delete(b.Assignments, id)
		if b.ActivePeriodID == id {
			b.ActivePeriodID = b.LowestPeriodID()
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("period removed", zap.Int("period_id", id), zap.Int("cells_dropped", dropped))
	return nil
}

// EditPeriodRange moves the period's dates and prunes cells now outside them.
func (s *PeriodService) EditPeriodRange(ctx context.Context, id int, req dto.UpdatePeriodRangeRequest) (*dto.PeriodView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid period range")
	}
	if err := validateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	return s.editPeriod(id, func(p *models.Period) {
		p.StartDate = req.StartDate
		p.EndDate = req.EndDate
	})
}

// EditPeriodMeta changes kind, academic year and half-year.
func (s *PeriodService) EditPeriodMeta(ctx context.Context, id int, req dto.UpdatePeriodMetaRequest) (*dto.PeriodView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid period fields")
	}
	return s.editPeriod(id, func(p *models.Period) {
		p.Kind = req.Kind
		p.AcademicYear = req.AcademicYear
		p.HalfYear = req.HalfYear
	})
}

// SetActive marks a period as the one being edited.
func (s *PeriodService) SetActive(ctx context.Context, id int) error {
	_, _, err := s.store.Update(func(b *models.Board) (bool, error) {
		if _, ok := b.Period(id); !ok {
			return false, periodNotFound(id)
		}
		if b.ActivePeriodID == id {
			return false, nil
		}
		b.ActivePeriodID = id
		return true, nil
	})
	return err
}

// AddSlot appends a two-hour slot starting where the previous one ends.
func (s *PeriodService) AddSlot(ctx context.Context, id int) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	_, _, err := s.store.Update(func(b *models.Board) (bool, error) {
		if _, ok := b.Period(id); !ok {
			return false, periodNotFound(id)
		}
		current := b.Slots[id]
		next := defaultSlot()
		if len(current) > 0 {
			start := current[len(current)-1].End
			next = models.TimeSlot{Start: start, End: calendar.AddClock(start, slotLengthHours)}
		}
		b.Slots[id] = append(current, next)
		slots = append([]models.TimeSlot{}, b.Slots[id]...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// EditSlot replaces the start and end of one slot.
func (s *PeriodService) EditSlot(ctx context.Context, id, index int, req dto.UpdateSlotRequest) ([]models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	var slots []models.TimeSlot
	_, _, err := s.store.Update(func(b *models.Board) (bool, error) {
		if _, ok := b.Period(id); !ok {
			return false, periodNotFound(id)
		}
		current := b.Slots[id]
		if index < 0 || index >= len(current) {
			return false, slotNotFound(id, index)
		}
		current[index] = models.TimeSlot{Start: req.Start, End: req.End}
		slots = append([]models.TimeSlot{}, current...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// RemoveSlot deletes the slot at index and every cell keyed to it. Cells of
// later slots shift down one index so they stay with their slot.
func (s *PeriodService) RemoveSlot(ctx context.Context, id, index int) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	dropped := 0
	_, _, err := s.store.Update(func(b *models.Board) (bool, error) {
		if _, ok := b.Period(id); !ok {
			return false, periodNotFound(id)
		}
		current := b.Slots[id]
		if index < 0 || index >= len(current) {
			return false, slotNotFound(id, index)
		}
		b.Slots[id] = append(current[:index], current[index+1:]...)
		dropped = shiftCellsAfterSlotRemoval(b, id, index)
		dropped += pruneCells(b, id)
		slots = append([]models.TimeSlot{}, b.Slots[id]...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("slot removed", zap.Int("period_id", id), zap.Int("slot", index), zap.Int("cells_dropped", dropped))
	return slots, nil
}

// Calendar builds the week grid for a period. Days outside the range are
// disabled and carry no cells. Periods with unreadable dates yield no weeks.
func (s *PeriodService) Calendar(ctx context.Context, id int) (*dto.CalendarView, error) {
	var view *dto.CalendarView
	s.store.View(func(b *models.Board) {
		p, ok := b.Period(id)
		if !ok {
			return
		}
		slots := append([]models.TimeSlot{}, b.Slots[id]...)
		view = &dto.CalendarView{Period: p, Slots: slots, Weeks: []dto.CalendarWeek{}}
		start, errStart := calendar.ParseDay(p.StartDate)
		end, errEnd := calendar.ParseDay(p.EndDate)
		if errStart != nil || errEnd != nil {
			return
		}
		weeks := calendar.WeeksCovering(start, end)
		for week, ok := weeks.Next(); ok; week, ok = weeks.Next() {
			row := dto.CalendarWeek{Monday: calendar.FormatDay(week.Monday), Friday: calendar.FormatDay(week.Friday)}
			for _, day := range week.Days() {
				date := calendar.FormatDay(day)
				col := dto.CalendarDay{Date: date, Weekday: day.Weekday().String(), Enabled: p.OpenOn(date)}
				if col.Enabled {
					for slot := range slots {
						ref := models.CellRef{PeriodID: id, Date: date, Slot: slot}
						ids := b.CellSubjects(id, ref.Key())
						col.Cells = append(col.Cells, dto.CellView{
							ID:         ref.ID(),
							Slot:       slot,
							SubjectIDs: append([]string{}, ids...),
							Subjects:   resolveSubjects(b, ids),
						})
					}
				}
				row.Days = append(row.Days, col)
			}
			view.Weeks = append(view.Weeks, row)
		}
	})
	if view == nil {
		return nil, periodNotFound(id)
	}
	return view, nil
}

func (s *PeriodService) editPeriod(id int, mutate func(p *models.Period)) (*dto.PeriodView, error) {
	var view dto.PeriodView
	_, _, err := s.store.Update(func(b *models.Board) (bool, error) {
		idx := b.PeriodIndex(id)
		if idx < 0 {
			return false, periodNotFound(id)
		}
		mutate(&b.Periods[idx])
		pruned := pruneCells(b, id)
		view = periodView(b, b.Periods[idx])
		view.PrunedCells = pruned
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if view.PrunedCells > 0 {
		s.logger.Info("period edit pruned cells", zap.Int("period_id", id), zap.Int("cells_dropped", view.PrunedCells))
	}
	return &view, nil
}

// shiftCellsAfterSlotRemoval deletes cells at removed and moves cells above
// it down by one. It returns the number of deleted cells.
func shiftCellsAfterSlotRemoval(b *models.Board, periodID, removed int) int {
	cells := b.Assignments[periodID]
	if len(cells) == 0 {
		return 0
	}
	keys := make([]models.CellKey, 0, len(cells))
	for key := range cells {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Slot < keys[j].Slot })

	dropped := 0
	for _, key := range keys {
		switch {
		case key.Slot == removed:
			delete(cells, key)
			dropped++
		case key.Slot > removed:
			ids := cells[key]
			delete(cells, key)
			cells[models.CellKey{Date: key.Date, Slot: key.Slot - 1}] = ids
		}
	}
	return dropped
}

func periodView(b *models.Board, p models.Period) dto.PeriodView {
	assigned := 0
	for _, ids := range b.Assignments[p.ID] {
		assigned += len(ids)
	}
	return dto.PeriodView{
		Period:   p,
		Label:    p.Label(),
		Active:   b.ActivePeriodID == p.ID,
		Slots:    append([]models.TimeSlot{}, b.Slots[p.ID]...),
		Assigned: assigned,
	}
}

func validateRange(startDate, endDate string) error {
	start, err := calendar.ParseDay(startDate)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start date")
	}
	end, err := calendar.ParseDay(endDate)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end date")
	}
	if end.Before(start) {
		return appErrors.Clone(appErrors.ErrValidation, "end date must not be before start date")
	}
	return nil
}

func periodNotFound(id int) error {
	return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("period %d not found", id))
}

func slotNotFound(periodID, index int) error {
	return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("slot %d not found in period %d", index, periodID))
}
