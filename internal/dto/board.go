package dto

import "github.com/noah-isme/sma-exam-planner/internal/models"

// CommandStatus describes how a board command ended.
type CommandStatus string

const (
	CommandStatusApplied CommandStatus = "applied"
	CommandStatusNoop    CommandStatus = "noop"
)

// CommandResult is returned by every board command that did not fail.
type CommandResult struct {
	Status   CommandStatus `json:"status"`
	Reason   string        `json:"reason,omitempty"`
	Affected int           `json:"affected,omitempty"`
	Revision int64         `json:"revision"`
}

// Applied reports whether the command changed the board.
func (r *CommandResult) Applied() bool {
	return r != nil && r.Status == CommandStatusApplied
}

// CellRequest addresses a cell and a subject.
type CellRequest struct {
	PeriodID  int    `json:"periodId" validate:"required,min=1"`
	Date      string `json:"date" validate:"required"`
	Slot      int    `json:"slot" validate:"min=0"`
	SubjectID string `json:"subjectId" validate:"required"`
}

// Ref converts the request into a cell reference.
func (r CellRequest) Ref() models.CellRef {
	return models.CellRef{PeriodID: r.PeriodID, Date: r.Date, Slot: r.Slot}
}

// DropRequest is what the drag layer sends after a completed drop.
type DropRequest struct {
	Target    string `json:"target" validate:"required"`
	SubjectID string `json:"subjectId" validate:"required"`
}

// MoveRequest relocates a subject between two cells.
type MoveRequest struct {
	From      models.CellRef `json:"from"`
	To        models.CellRef `json:"to"`
	SubjectID string         `json:"subjectId" validate:"required"`
}

// CellView is the resolved content of one cell.
type CellView struct {
	ID         string           `json:"id"`
	Slot       int              `json:"slot"`
	SubjectIDs []string         `json:"subjectIds"`
	Subjects   []models.Subject `json:"subjects"`
}

// CommandType names a board command.
type CommandType string

const (
	CommandAssign   CommandType = "assign"
	CommandUnassign CommandType = "unassign"
	CommandMove     CommandType = "move"
	CommandDrop     CommandType = "drop"
	CommandPrune    CommandType = "prune"
)

// Command is a single user action against the board.
type Command struct {
	Type      CommandType     `json:"type" validate:"required,oneof=assign unassign move drop prune"`
	PeriodID  int             `json:"periodId"`
	Date      string          `json:"date"`
	Slot      int             `json:"slot"`
	SubjectID string          `json:"subjectId"`
	Target    string          `json:"target"`
	From      *models.CellRef `json:"from,omitempty"`
}

// CommandBatch is an ordered list of commands applied one after another.
type CommandBatch struct {
	Commands []Command `json:"commands" validate:"required,min=1,dive"`
}
