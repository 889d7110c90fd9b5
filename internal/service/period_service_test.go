package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/models"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
)

func createPeriodRequest() dto.CreatePeriodRequest {
	return dto.CreatePeriodRequest{
		Kind:         models.PeriodKindFinal,
		AcademicYear: "2024-2025",
		HalfYear:     2,
		StartDate:    "2025-06-02",
		EndDate:      "2025-06-13",
	}
}

func TestPeriodServiceAddPeriod(t *testing.T) {
	store := newTestStore(t)
	svc := NewPeriodService(store, nil, nil)

	view, err := svc.AddPeriod(context.Background(), createPeriodRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, view.ID)
	assert.True(t, view.Active)
	assert.Equal(t, "final 2024-2025 Q2", view.Label)
	assert.Equal(t, []models.TimeSlot{{Start: "08:00", End: "10:00"}}, view.Slots)
	assert.Equal(t, 2, snapshotBoard(store).ActivePeriodID)
}

func TestPeriodServiceAddPeriodCapacity(t *testing.T) {
	svc := NewPeriodService(newTestStore(t), nil, nil)
	ctx := context.Background()

	for i := 0; i < models.MaxPeriods-1; i++ {
		_, err := svc.AddPeriod(ctx, createPeriodRequest())
		require.NoError(t, err)
	}
	_, err := svc.AddPeriod(ctx, createPeriodRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPeriodCapacity.Code, appErrors.FromError(err).Code)
	assert.Len(t, svc.List(ctx), models.MaxPeriods)
}

func TestPeriodServiceAddPeriodValidation(t *testing.T) {
	svc := NewPeriodService(newTestStore(t), nil, nil)
	ctx := context.Background()

	bad := createPeriodRequest()
	bad.Kind = "quiz"
	_, err := svc.AddPeriod(ctx, bad)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	reversed := createPeriodRequest()
	reversed.StartDate, reversed.EndDate = reversed.EndDate, reversed.StartDate
	_, err = svc.AddPeriod(ctx, reversed)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPeriodServiceRemovePeriod(t *testing.T) {
	store := newTestStore(t)
	svc := NewPeriodService(store, nil, nil)
	engine := NewAssignmentService(store, nil, nil)
	ctx := context.Background()

	err := svc.RemovePeriod(ctx, 1, true)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrLastPeriod.Code, appErrors.FromError(err).Code)

	added, err := svc.AddPeriod(ctx, createPeriodRequest())
	require.NoError(t, err)
	_, err = engine.Assign(ctx, cell(added.ID, "2025-06-02", 0), "mat101")
	require.NoError(t, err)

	err = svc.RemovePeriod(ctx, added.ID, false)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConfirmationRequired.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.RemovePeriod(ctx, added.ID, true))
	b := snapshotBoard(store)
	assert.Len(t, b.Periods, 1)
	assert.Equal(t, 1, b.ActivePeriodID)
	assert.NotContains(t, b.Slots, added.ID)
	assert.NotContains(t, b.Assignments, added.ID)
	assert.Empty(t, engine.UsedSubjectIDs(ctx))

	err = svc.RemovePeriod(ctx, 42, true)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPeriodServiceEditPeriodRangePrunes(t *testing.T) {
	store := newTestStore(t)
	svc := NewPeriodService(store, nil, nil)
	engine := NewAssignmentService(store, nil, nil)
	ctx := context.Background()

	_, err := engine.Assign(ctx, cell(1, "2025-03-03", 0), "mat101")
	require.NoError(t, err)
	_, err = engine.Assign(ctx, cell(1, "2025-03-06", 0), "fis102")
	require.NoError(t, err)

	view, err := svc.EditPeriodRange(ctx, 1, dto.UpdatePeriodRangeRequest{StartDate: "2025-03-05", EndDate: "2025-03-12"})
	require.NoError(t, err)
	assert.Equal(t, 1, view.PrunedCells)
	assert.Equal(t, 1, view.Assigned)
	assert.Equal(t, []string{"fis102"}, engine.UsedSubjectIDs(ctx))
}

func TestPeriodServiceEditPeriodMeta(t *testing.T) {
	svc := NewPeriodService(newTestStore(t), nil, nil)

	view, err := svc.EditPeriodMeta(context.Background(), 1, dto.UpdatePeriodMetaRequest{
		Kind:         models.PeriodKindReassessment,
		AcademicYear: "2025-2026",
		HalfYear:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, "reassessment 2025-2026 Q1", view.Label)
	assert.Equal(t, "2025-03-03", view.StartDate)
}

func TestPeriodServiceSetActive(t *testing.T) {
	store := newTestStore(t)
	svc := NewPeriodService(store, nil, nil)
	ctx := context.Background()

	_, err := svc.AddPeriod(ctx, createPeriodRequest())
	require.NoError(t, err)
	require.NoError(t, svc.SetActive(ctx, 1))
	assert.Equal(t, 1, snapshotBoard(store).ActivePeriodID)

	err = svc.SetActive(ctx, 7)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPeriodServiceAddAndEditSlot(t *testing.T) {
	svc := NewPeriodService(newTestStore(t), nil, nil)
	ctx := context.Background()

	slots, err := svc.AddSlot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TimeSlot{Start: "10:00", End: "12:00"}, slots[1])

	slots, err = svc.EditSlot(ctx, 1, 1, dto.UpdateSlotRequest{Start: "13:00", End: "14:30"})
	require.NoError(t, err)
	assert.Equal(t, models.TimeSlot{Start: "13:00", End: "14:30"}, slots[1])

	slots, err = svc.AddSlot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TimeSlot{Start: "14:30", End: "16:30"}, slots[2])

	_, err = svc.EditSlot(ctx, 1, 5, dto.UpdateSlotRequest{Start: "13:00", End: "14:00"})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.EditSlot(ctx, 1, 0, dto.UpdateSlotRequest{Start: "8am", End: "14:00"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPeriodServiceRemoveSlotReindexesCells(t *testing.T) {
	store := newTestStore(t)
	svc := NewPeriodService(store, nil, nil)
	engine := NewAssignmentService(store, nil, nil)
	ctx := context.Background()

	_, err := svc.AddSlot(ctx, 1)
	require.NoError(t, err)
	_, err = svc.AddSlot(ctx, 1)
	require.NoError(t, err)

	for slot, id := range []string{"mat101", "fis102", "bio103"} {
		_, err := engine.Assign(ctx, cell(1, "2025-03-04", slot), id)
		require.NoError(t, err)
	}

	slots, err := svc.RemoveSlot(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []models.TimeSlot{{Start: "08:00", End: "10:00"}, {Start: "12:00", End: "14:00"}}, slots)

	b := snapshotBoard(store)
	assert.Equal(t, []string{"mat101"}, b.CellSubjects(1, models.CellKey{Date: "2025-03-04", Slot: 0}))
	assert.Equal(t, []string{"bio103"}, b.CellSubjects(1, models.CellKey{Date: "2025-03-04", Slot: 1}))
	assert.Len(t, b.Assignments[1], 2)
	assert.Equal(t, []string{"bio103", "mat101"}, b.UsedSubjectIDs())
}

func TestPeriodServiceCalendar(t *testing.T) {
	store := newTestStore(t)
	svc := NewPeriodService(store, nil, nil)
	engine := NewAssignmentService(store, nil, nil)
	ctx := context.Background()

	_, err := svc.EditPeriodRange(ctx, 1, dto.UpdatePeriodRangeRequest{StartDate: "2025-03-05", EndDate: "2025-03-11"})
	require.NoError(t, err)
	_, err = engine.Assign(ctx, cell(1, "2025-03-10", 0), "mat101")
	require.NoError(t, err)

	view, err := svc.Calendar(ctx, 1)
	require.NoError(t, err)
	require.Len(t, view.Weeks, 2)
	assert.Equal(t, "2025-03-03", view.Weeks[0].Monday)
	assert.Equal(t, "2025-03-14", view.Weeks[1].Friday)

	first := view.Weeks[0].Days
	require.Len(t, first, 5)
	assert.False(t, first[0].Enabled)
	assert.Empty(t, first[0].Cells)
	assert.True(t, first[2].Enabled)
	assert.Equal(t, "Wednesday", first[2].Weekday)

	monday := view.Weeks[1].Days[0]
	require.Len(t, monday.Cells, 1)
	assert.Equal(t, "cell:1:2025-03-10:0", monday.Cells[0].ID)
	assert.Equal(t, []string{"mat101"}, monday.Cells[0].SubjectIDs)
	assert.False(t, view.Weeks[1].Days[2].Enabled)

	_, err = svc.Calendar(ctx, 3)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
