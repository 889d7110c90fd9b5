package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/models"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
	"github.com/noah-isme/sma-exam-planner/pkg/response"
)

type snapshotService interface {
	ExportJSON(ctx context.Context) ([]byte, error)
	ImportReader(ctx context.Context, r io.Reader) (*dto.SnapshotImportResult, error)
	LoadPreset(ctx context.Context, source string) (*dto.SnapshotImportResult, error)
	Archive(ctx context.Context, req dto.ArchiveRequest) (*models.SnapshotArchive, error)
	ListArchives(ctx context.Context, limit int) ([]models.SnapshotArchive, error)
	Restore(ctx context.Context, id string) (*dto.SnapshotImportResult, error)
}

// PresetRequest names a preset source in the request body.
type PresetRequest struct {
	Source string `json:"source"`
}

// SnapshotHandler serves snapshot export, import and archives.
type SnapshotHandler struct {
	service snapshotService
}

// NewSnapshotHandler constructs a snapshot handler.
func NewSnapshotHandler(svc snapshotService) *SnapshotHandler {
	return &SnapshotHandler{service: svc}
}

// Export godoc
// @Summary Export the board snapshot
// @Description Returns the raw snapshot document; download=true adds an attachment header
// @Tags Snapshot
// @Produce json
// @Param download query bool false "Send as file"
// @Success 200 {object} models.Snapshot
// @Router /snapshot [get]
func (h *SnapshotHandler) Export(c *gin.Context) {
	payload, err := h.service.ExportJSON(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if download, _ := strconv.ParseBool(c.Query("download")); download {
		response.Attachment(c, "exam-plan.json", "application/json", payload)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// Import godoc
// @Summary Import a snapshot
// @Description Replaces only the fields present in the document; malformed JSON changes nothing
// @Tags Snapshot
// @Accept json
// @Produce json
// @Param payload body models.Snapshot true "Snapshot"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /snapshot [put]
func (h *SnapshotHandler) Import(c *gin.Context) {
	result, err := h.service.ImportReader(c.Request.Context(), c.Request.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Preset godoc
// @Summary Load a preset snapshot
// @Description The source is an http(s) URL or base64 encoded JSON, given as ?config= or in the body
// @Tags Snapshot
// @Accept json
// @Produce json
// @Param config query string false "Preset source"
// @Param payload body PresetRequest false "Preset source"
// @Success 200 {object} response.Envelope
// @Router /snapshot/preset [post]
func (h *SnapshotHandler) Preset(c *gin.Context) {
	source := strings.TrimSpace(c.Query("config"))
	if source == "" {
		var req PresetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "preset source is required"))
			return
		}
		source = req.Source
	}
	result, err := h.service.LoadPreset(c.Request.Context(), source)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ListArchives godoc
// @Summary List stored snapshots
// @Tags Snapshot
// @Produce json
// @Param limit query int false "Max results"
// @Success 200 {object} response.Envelope
// @Router /snapshot/archives [get]
func (h *SnapshotHandler) ListArchives(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	archives, err := h.service.ListArchives(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, archives)
}

// CreateArchive godoc
// @Summary Store the current snapshot
// @Tags Snapshot
// @Accept json
// @Produce json
// @Param payload body dto.ArchiveRequest false "Archive label"
// @Success 201 {object} response.Envelope
// @Router /snapshot/archives [post]
func (h *SnapshotHandler) CreateArchive(c *gin.Context) {
	var req dto.ArchiveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	archive, err := h.service.Archive(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, archive)
}

// RestoreArchive godoc
// @Summary Import a stored snapshot
// @Tags Snapshot
// @Produce json
// @Param id path string true "Archive ID"
// @Success 200 {object} response.Envelope
// @Router /snapshot/archives/{id}/restore [post]
func (h *SnapshotHandler) RestoreArchive(c *gin.Context) {
	result, err := h.service.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
