package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/models"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
)

type boardEngine interface {
	Assign(ctx context.Context, ref models.CellRef, subjectID string) (*dto.CommandResult, error)
	Unassign(ctx context.Context, ref models.CellRef, subjectID string) (*dto.CommandResult, error)
	Move(ctx context.Context, from, to models.CellRef, subjectID string) (*dto.CommandResult, error)
	Drop(ctx context.Context, target, subjectID string) (*dto.CommandResult, error)
	Prune(ctx context.Context, periodID int) (*dto.CommandResult, error)
}

// CommandService applies command values produced by user actions.
type CommandService struct {
	engine    boardEngine
	validator *validator.Validate
}

// NewCommandService builds a dispatcher over the assignment engine.
func NewCommandService(engine boardEngine, validate *validator.Validate) *CommandService {
	if validate == nil {
		validate = validator.New()
	}
	return &CommandService{engine: engine, validator: validate}
}

// Apply runs a single command.
func (s *CommandService) Apply(ctx context.Context, cmd dto.Command) (*dto.CommandResult, error) {
	if err := s.validator.Struct(cmd); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid command")
	}
	target := models.CellRef{PeriodID: cmd.PeriodID, Date: cmd.Date, Slot: cmd.Slot}
	switch cmd.Type {
	case dto.CommandAssign:
		return s.engine.Assign(ctx, target, cmd.SubjectID)
	case dto.CommandUnassign:
		return s.engine.Unassign(ctx, target, cmd.SubjectID)
	case dto.CommandMove:
		if cmd.From == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "move requires a source cell")
		}
		return s.engine.Move(ctx, *cmd.From, target, cmd.SubjectID)
	case dto.CommandDrop:
		return s.engine.Drop(ctx, cmd.Target, cmd.SubjectID)
	case dto.CommandPrune:
		return s.engine.Prune(ctx, cmd.PeriodID)
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown command %q", cmd.Type))
}

// ApplyAll runs commands in order and stops at the first error. Results of
// the commands already applied are returned alongside the error.
func (s *CommandService) ApplyAll(ctx context.Context, cmds []dto.Command) ([]dto.CommandResult, error) {
	results := make([]dto.CommandResult, 0, len(cmds))
	for i, cmd := range cmds {
		result, err := s.Apply(ctx, cmd)
		if err != nil {
			return results, fmt.Errorf("command %d: %w", i, err)
		}
		results = append(results, *result)
	}
	return results, nil
}
