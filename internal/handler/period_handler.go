package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/models"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
	"github.com/noah-isme/sma-exam-planner/pkg/response"
)

// ConfirmHeader lets clients confirm destructive edits without a query flag.
const ConfirmHeader = "X-Confirm"

type periodService interface {
	List(ctx context.Context) []dto.PeriodView
	Get(ctx context.Context, id int) (*dto.PeriodView, error)
	AddPeriod(ctx context.Context, req dto.CreatePeriodRequest) (*dto.PeriodView, error)
	RemovePeriod(ctx context.Context, id int, confirmed bool) error
	EditPeriodRange(ctx context.Context, id int, req dto.UpdatePeriodRangeRequest) (*dto.PeriodView, error)
	EditPeriodMeta(ctx context.Context, id int, req dto.UpdatePeriodMetaRequest) (*dto.PeriodView, error)
	SetActive(ctx context.Context, id int) error
	AddSlot(ctx context.Context, id int) ([]models.TimeSlot, error)
	EditSlot(ctx context.Context, id, index int, req dto.UpdateSlotRequest) ([]models.TimeSlot, error)
	RemoveSlot(ctx context.Context, id, index int) ([]models.TimeSlot, error)
	Calendar(ctx context.Context, id int) (*dto.CalendarView, error)
}

type periodPruner interface {
	Prune(ctx context.Context, periodID int) (*dto.CommandResult, error)
}

// PeriodHandler manages exam periods and their slots.
type PeriodHandler struct {
	service periodService
	pruner  periodPruner
}

// NewPeriodHandler constructs a period handler.
func NewPeriodHandler(svc periodService, pruner periodPruner) *PeriodHandler {
	return &PeriodHandler{service: svc, pruner: pruner}
}

// List godoc
// @Summary List periods
// @Tags Periods
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /periods [get]
func (h *PeriodHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()))
}

// Get godoc
// @Summary Get period
// @Tags Periods
// @Produce json
// @Param id path int true "Period ID"
// @Success 200 {object} response.Envelope
// @Router /periods/{id} [get]
func (h *PeriodHandler) Get(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Create godoc
// @Summary Add period
// @Tags Periods
// @Accept json
// @Produce json
// @Param payload body dto.CreatePeriodRequest true "Period payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /periods [post]
func (h *PeriodHandler) Create(c *gin.Context) {
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.service.AddPeriod(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Delete godoc
// @Summary Remove period
// @Description Cascades to slots and assignments; requires confirm=true or the X-Confirm header
// @Tags Periods
// @Param id path int true "Period ID"
// @Param confirm query bool false "Confirm the cascade"
// @Success 204
// @Failure 428 {object} response.Envelope
// @Router /periods/{id} [delete]
func (h *PeriodHandler) Delete(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	if err := h.service.RemovePeriod(c.Request.Context(), id, confirmed(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateRange godoc
// @Summary Change period dates
// @Tags Periods
// @Accept json
// @Produce json
// @Param id path int true "Period ID"
// @Param payload body dto.UpdatePeriodRangeRequest true "Range payload"
// @Success 200 {object} response.Envelope
// @Router /periods/{id}/range [put]
func (h *PeriodHandler) UpdateRange(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePeriodRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.service.EditPeriodRange(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// UpdateMeta godoc
// @Summary Change period kind, academic year and half-year
// @Tags Periods
// @Accept json
// @Produce json
// @Param id path int true "Period ID"
// @Param payload body dto.UpdatePeriodMetaRequest true "Meta payload"
// @Success 200 {object} response.Envelope
// @Router /periods/{id}/meta [put]
func (h *PeriodHandler) UpdateMeta(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePeriodMetaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.service.EditPeriodMeta(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Activate godoc
// @Summary Make a period the active one
// @Tags Periods
// @Param id path int true "Period ID"
// @Success 204
// @Router /periods/{id}/activate [post]
func (h *PeriodHandler) Activate(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	if err := h.service.SetActive(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Prune godoc
// @Summary Drop cells outside the period's range or slots
// @Tags Periods
// @Produce json
// @Param id path int true "Period ID"
// @Success 200 {object} response.Envelope
// @Router /periods/{id}/prune [post]
func (h *PeriodHandler) Prune(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	result, err := h.pruner.Prune(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Calendar godoc
// @Summary Week grid of a period
// @Tags Periods
// @Produce json
// @Param id path int true "Period ID"
// @Success 200 {object} response.Envelope
// @Router /periods/{id}/calendar [get]
func (h *PeriodHandler) Calendar(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	view, err := h.service.Calendar(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// AddSlot godoc
// @Summary Append a two-hour slot
// @Tags Periods
// @Produce json
// @Param id path int true "Period ID"
// @Success 201 {object} response.Envelope
// @Router /periods/{id}/slots [post]
func (h *PeriodHandler) AddSlot(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	slots, err := h.service.AddSlot(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slots)
}

// UpdateSlot godoc
// @Summary Edit slot times
// @Tags Periods
// @Accept json
// @Produce json
// @Param id path int true "Period ID"
// @Param index path int true "Slot index"
// @Param payload body dto.UpdateSlotRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Router /periods/{id}/slots/{index} [put]
func (h *PeriodHandler) UpdateSlot(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	index, ok := pathInt(c, "index")
	if !ok {
		return
	}
	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	slots, err := h.service.EditSlot(c.Request.Context(), id, index, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots)
}

// DeleteSlot godoc
// @Summary Remove a slot and its cells
// @Tags Periods
// @Produce json
// @Param id path int true "Period ID"
// @Param index path int true "Slot index"
// @Success 200 {object} response.Envelope
// @Router /periods/{id}/slots/{index} [delete]
func (h *PeriodHandler) DeleteSlot(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	index, ok := pathInt(c, "index")
	if !ok {
		return
	}
	slots, err := h.service.RemoveSlot(c.Request.Context(), id, index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots)
}

func pathInt(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+name))
		return 0, false
	}
	return value, true
}

func confirmed(c *gin.Context) bool {
	for _, raw := range []string{c.Query("confirm"), c.GetHeader(ConfirmHeader)} {
		if ok, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil && ok {
			return true
		}
	}
	return false
}
