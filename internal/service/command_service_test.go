package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
)

func TestCommandServiceApplyAll(t *testing.T) {
	engine := NewAssignmentService(newTestStore(t), nil, nil)
	svc := NewCommandService(engine, nil)
	ctx := context.Background()

	from := cell(1, "2025-03-03", 0)
	results, err := svc.ApplyAll(ctx, []dto.Command{
		{Type: dto.CommandAssign, PeriodID: 1, Date: "2025-03-03", Slot: 0, SubjectID: "mat101"},
		{Type: dto.CommandDrop, Target: "cell:1:2025-03-04:0", SubjectID: "fis102"},
		{Type: dto.CommandMove, From: &from, PeriodID: 1, Date: "2025-03-05", Slot: 0, SubjectID: "mat101"},
		{Type: dto.CommandUnassign, PeriodID: 1, Date: "2025-03-04", Slot: 0, SubjectID: "fis102"},
		{Type: dto.CommandPrune, PeriodID: 1},
	})
	require.NoError(t, err)
	require.Len(t, results, 5)
	for i := 0; i < 4; i++ {
		assert.True(t, results[i].Applied(), "command %d", i)
	}
	assert.Equal(t, dto.CommandStatusNoop, results[4].Status)
	assert.Equal(t, []string{"mat101"}, engine.UsedSubjectIDs(ctx))
	assert.Equal(t, []string{"mat101"}, engine.Cell(ctx, cell(1, "2025-03-05", 0)).SubjectIDs)
}

func TestCommandServiceStopsAtFirstError(t *testing.T) {
	engine := NewAssignmentService(newTestStore(t), nil, nil)
	svc := NewCommandService(engine, nil)

	results, err := svc.ApplyAll(context.Background(), []dto.Command{
		{Type: dto.CommandAssign, PeriodID: 1, Date: "2025-03-03", SubjectID: "mat101"},
		{Type: dto.CommandAssign, PeriodID: 1, Date: "2025-03-04", SubjectID: "mat101"},
		{Type: dto.CommandAssign, PeriodID: 1, Date: "2025-03-05", SubjectID: "bio103"},
	})
	require.Error(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, appErrors.ErrSubjectScheduled.Code, appErrors.FromError(err).Code)
	assert.Equal(t, []string{"mat101"}, engine.UsedSubjectIDs(context.Background()))
}

func TestCommandServiceRejectsInvalidCommands(t *testing.T) {
	svc := NewCommandService(NewAssignmentService(newTestStore(t), nil, nil), nil)
	ctx := context.Background()

	_, err := svc.Apply(ctx, dto.Command{Type: "teleport"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Apply(ctx, dto.Command{Type: dto.CommandMove, PeriodID: 1, Date: "2025-03-03", SubjectID: "mat101"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
