package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/models"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
)

// Reasons reported for commands that leave the board unchanged.
const (
	ReasonUnknownPeriod = "unknown period"
	ReasonDisabledDay   = "day disabled in period"
	ReasonUnknownSlot   = "slot outside period"
	ReasonAlreadyInCell = "subject already in cell"
	ReasonNotInCell     = "subject not in cell"
	ReasonNotACell      = "drop target is not a cell"
	ReasonSameCell      = "source and target are the same cell"
	ReasonNothingPruned = "no cells out of range"
)

// AssignmentService is the assignment engine: it places subjects into cells
// and keeps every subject in at most one cell across all periods.
type AssignmentService struct {
	store   boardStore
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAssignmentService wires the engine to the board store.
func NewAssignmentService(store boardStore, metrics *MetricsService, logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{store: store, metrics: metrics, logger: logger}
}

// Assign places subjectID into the referenced cell.
func (s *AssignmentService) Assign(ctx context.Context, ref models.CellRef, subjectID string) (*dto.CommandResult, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subjectId is required")
	}
	var reason string
	rev, changed, err := s.store.Update(func(b *models.Board) (bool, error) {
		var err error
		reason, err = placeSubject(b, ref, subjectID)
		return reason == "" && err == nil, err
	})
	return s.finish(string(dto.CommandAssign), rev, changed, reason, 1, err)
}

// Unassign removes subjectID from the referenced cell. Empty cells are deleted.
func (s *AssignmentService) Unassign(ctx context.Context, ref models.CellRef, subjectID string) (*dto.CommandResult, error) {
	subjectID = strings.TrimSpace(subjectID)
	rev, changed, err := s.store.Update(func(b *models.Board) (bool, error) {
		return removeSubject(b, ref, subjectID), nil
	})
	return s.finish(string(dto.CommandUnassign), rev, changed, ReasonNotInCell, 1, err)
}

// Move relocates subjectID from one cell to another in a single step. When
// the subject is not in from, Move behaves like Assign on to.
func (s *AssignmentService) Move(ctx context.Context, from, to models.CellRef, subjectID string) (*dto.CommandResult, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subjectId is required")
	}
	var reason string
	rev, changed, err := s.store.Update(func(b *models.Board) (bool, error) {
		if !cellHolds(b, from, subjectID) {
			var err error
			reason, err = placeSubject(b, to, subjectID)
			return reason == "" && err == nil, err
		}
		if from == to {
			reason = ReasonSameCell
			return false, nil
		}
		if reason = targetProblem(b, to); reason != "" {
			return false, nil
		}
		removeSubject(b, from, subjectID)
		var err error
		reason, err = placeSubject(b, to, subjectID)
		return reason == "" && err == nil, err
	})
	return s.finish(string(dto.CommandMove), rev, changed, reason, 1, err)
}

// Drop handles a completed drag gesture addressed by a cell identifier.
func (s *AssignmentService) Drop(ctx context.Context, target, subjectID string) (*dto.CommandResult, error) {
	ref, err := models.ParseCellID(target)
	if err != nil {
		s.logger.Debug("drop ignored", zap.String("target", target), zap.Error(err))
		return s.finish(string(dto.CommandDrop), s.store.View(func(*models.Board) {}), false, ReasonNotACell, 0, nil)
	}
	return s.Assign(ctx, ref, subjectID)
}

// Prune deletes every cell of the period that is outside its date range or
// slot list.
func (s *AssignmentService) Prune(ctx context.Context, periodID int) (*dto.CommandResult, error) {
	removed := 0
	rev, changed, err := s.store.Update(func(b *models.Board) (bool, error) {
		removed = pruneCells(b, periodID)
		return removed > 0, nil
	})
	return s.finish(string(dto.CommandPrune), rev, changed, ReasonNothingPruned, removed, err)
}

// Cell returns the ids stored in a cell and the catalog records they resolve
// to. Orphaned ids are kept in SubjectIDs but have no record.
func (s *AssignmentService) Cell(ctx context.Context, ref models.CellRef) dto.CellView {
	view := dto.CellView{ID: ref.ID(), Slot: ref.Slot}
	s.store.View(func(b *models.Board) {
		ids := b.CellSubjects(ref.PeriodID, ref.Key())
		view.SubjectIDs = append([]string{}, ids...)
		view.Subjects = resolveSubjects(b, ids)
	})
	return view
}

// UsedSubjectIDs recomputes the set of scheduled subject ids.
func (s *AssignmentService) UsedSubjectIDs(ctx context.Context) []string {
	var used []string
	s.store.View(func(b *models.Board) {
		used = b.UsedSubjectIDs()
	})
	return used
}

// AvailableSubjects is the catalog minus every scheduled subject, in catalog order.
func (s *AssignmentService) AvailableSubjects(ctx context.Context) []models.Subject {
	available := make([]models.Subject, 0)
	s.store.View(func(b *models.Board) {
		used := make(map[string]struct{})
		for _, id := range b.UsedSubjectIDs() {
			used[id] = struct{}{}
		}
		for _, subject := range b.Subjects {
			if _, ok := used[subject.ID]; !ok {
				available = append(available, subject)
			}
		}
	})
	return available
}

func (s *AssignmentService) finish(command string, rev int64, changed bool, reason string, affected int, err error) (*dto.CommandResult, error) {
	if err != nil {
		s.metrics.RecordCommand(command, "rejected")
		s.logger.Info("board command rejected", zap.String("command", command), zap.Error(err))
		return nil, err
	}
	result := commandResult(rev, changed, reason, 0)
	if changed {
		result.Affected = affected
	}
	s.metrics.RecordCommand(command, string(result.Status))
	if !changed {
		s.logger.Debug("board command ignored", zap.String("command", command), zap.String("reason", reason))
	}
	return result, nil
}

// targetProblem explains why ref cannot receive subjects, or returns "".
func targetProblem(b *models.Board, ref models.CellRef) string {
	period, ok := b.Period(ref.PeriodID)
	if !ok {
		return ReasonUnknownPeriod
	}
	if !period.OpenOn(ref.Date) {
		return ReasonDisabledDay
	}
	if ref.Slot < 0 || ref.Slot >= len(b.Slots[ref.PeriodID]) {
		return ReasonUnknownSlot
	}
	return ""
}

// placeSubject runs the assignment checks in order: target validity, duplicate
// within the cell, then global uniqueness.
func placeSubject(b *models.Board, ref models.CellRef, subjectID string) (string, error) {
	if reason := targetProblem(b, ref); reason != "" {
		return reason, nil
	}
	if cellHolds(b, ref, subjectID) {
		return ReasonAlreadyInCell, nil
	}
	if at, ok := b.Locate(subjectID); ok {
		return "", appErrors.Clone(appErrors.ErrSubjectScheduled, fmt.Sprintf("subject %s already scheduled at %s", subjectID, at.ID()))
	}
	cells := b.Assignments[ref.PeriodID]
	if cells == nil {
		cells = make(map[models.CellKey][]string)
		b.Assignments[ref.PeriodID] = cells
	}
	cells[ref.Key()] = append(cells[ref.Key()], subjectID)
	return "", nil
}

func cellHolds(b *models.Board, ref models.CellRef, subjectID string) bool {
	for _, id := range b.CellSubjects(ref.PeriodID, ref.Key()) {
		if id == subjectID {
			return true
		}
	}
	return false
}

func removeSubject(b *models.Board, ref models.CellRef, subjectID string) bool {
	cells := b.Assignments[ref.PeriodID]
	if cells == nil {
		return false
	}
	key := ref.Key()
	ids := cells[key]
	for i, id := range ids {
		if id != subjectID {
			continue
		}
		remaining := append(append([]string{}, ids[:i]...), ids[i+1:]...)
		if len(remaining) == 0 {
			delete(cells, key)
		} else {
			cells[key] = remaining
		}
		return true
	}
	return false
}

// pruneCells drops the period's cells whose date is out of range or on a
// weekend, or whose slot index is out of range, and returns how many were removed.
func pruneCells(b *models.Board, periodID int) int {
	cells := b.Assignments[periodID]
	if len(cells) == 0 {
		return 0
	}
	period, ok := b.Period(periodID)
	slotCount := len(b.Slots[periodID])
	removed := 0
	for key := range cells {
		if !ok || !period.OpenOn(key.Date) || key.Slot < 0 || key.Slot >= slotCount {
			delete(cells, key)
			removed++
		}
	}
	return removed
}
