package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/models"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
	"github.com/noah-isme/sma-exam-planner/pkg/response"
)

type boardEngine interface {
	Assign(ctx context.Context, ref models.CellRef, subjectID string) (*dto.CommandResult, error)
	Unassign(ctx context.Context, ref models.CellRef, subjectID string) (*dto.CommandResult, error)
	Move(ctx context.Context, from, to models.CellRef, subjectID string) (*dto.CommandResult, error)
	Drop(ctx context.Context, target, subjectID string) (*dto.CommandResult, error)
	Cell(ctx context.Context, ref models.CellRef) dto.CellView
	UsedSubjectIDs(ctx context.Context) []string
	AvailableSubjects(ctx context.Context) []models.Subject
}

type commandDispatcher interface {
	ApplyAll(ctx context.Context, cmds []dto.Command) ([]dto.CommandResult, error)
}

// BoardHandler exposes the assignment engine.
type BoardHandler struct {
	engine    boardEngine
	commands  commandDispatcher
	validator *validator.Validate
}

// NewBoardHandler constructs a board handler.
func NewBoardHandler(engine boardEngine, commands commandDispatcher) *BoardHandler {
	return &BoardHandler{engine: engine, commands: commands, validator: validator.New()}
}

// Drop godoc
// @Summary Drop a subject onto a cell
// @Description Targets that are not cell identifiers are ignored and reported as noop
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body dto.DropRequest true "Drop payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /board/drop [post]
func (h *BoardHandler) Drop(c *gin.Context) {
	var req dto.DropRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.engine.Drop(c.Request.Context(), req.Target, req.SubjectID)
	h.respond(c, result, err)
}

// Assign godoc
// @Summary Assign a subject to a cell
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body dto.CellRequest true "Cell payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /board/assign [post]
func (h *BoardHandler) Assign(c *gin.Context) {
	var req dto.CellRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.engine.Assign(c.Request.Context(), req.Ref(), req.SubjectID)
	h.respond(c, result, err)
}

// Unassign godoc
// @Summary Remove a subject from a cell
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body dto.CellRequest true "Cell payload"
// @Success 200 {object} response.Envelope
// @Router /board/unassign [post]
func (h *BoardHandler) Unassign(c *gin.Context) {
	var req dto.CellRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.engine.Unassign(c.Request.Context(), req.Ref(), req.SubjectID)
	h.respond(c, result, err)
}

// Move godoc
// @Summary Move a subject between cells
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body dto.MoveRequest true "Move payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /board/move [post]
func (h *BoardHandler) Move(c *gin.Context) {
	var req dto.MoveRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.engine.Move(c.Request.Context(), req.From, req.To, req.SubjectID)
	h.respond(c, result, err)
}

// Commands godoc
// @Summary Apply a batch of board commands
// @Description Commands run in order; the batch stops at the first failing command
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body dto.CommandBatch true "Commands"
// @Success 200 {object} response.Envelope
// @Router /board/commands [post]
func (h *BoardHandler) Commands(c *gin.Context) {
	var req dto.CommandBatch
	if !h.bind(c, &req) {
		return
	}
	results, err := h.commands.ApplyAll(c.Request.Context(), req.Commands)
	if err != nil {
		appErr := appErrors.FromError(err)
		c.JSON(appErr.Status, response.Envelope{Data: results, Error: appErr})
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// Cell godoc
// @Summary Get a cell's subjects
// @Tags Board
// @Produce json
// @Param periodId path int true "Period ID"
// @Param date path string true "ISO date"
// @Param slot path int true "Slot index"
// @Success 200 {object} response.Envelope
// @Router /board/cells/{periodId}/{date}/{slot} [get]
func (h *BoardHandler) Cell(c *gin.Context) {
	periodID, err := strconv.Atoi(c.Param("periodId"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid period id"))
		return
	}
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid slot index"))
		return
	}
	ref := models.CellRef{PeriodID: periodID, Date: c.Param("date"), Slot: slot}
	response.JSON(c, http.StatusOK, h.engine.Cell(c.Request.Context(), ref))
}

// Used godoc
// @Summary List scheduled subject ids
// @Tags Board
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /board/used [get]
func (h *BoardHandler) Used(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.engine.UsedSubjectIDs(c.Request.Context()))
}

// Available godoc
// @Summary List subjects not yet scheduled
// @Tags Board
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /board/available [get]
func (h *BoardHandler) Available(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.engine.AvailableSubjects(c.Request.Context()))
}

func (h *BoardHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

func (h *BoardHandler) respond(c *gin.Context, result *dto.CommandResult, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
