package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/models"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
	"github.com/noah-isme/sma-exam-planner/pkg/response"
)

type subjectService interface {
	List(ctx context.Context) []models.Subject
	SetCatalog(ctx context.Context, subjects []models.Subject) (*dto.CatalogImportResult, error)
	AddOne(ctx context.Context, req dto.SubjectRequest) (*models.Subject, error)
	EditOne(ctx context.Context, id string, patch models.SubjectPatch) (*models.Subject, error)
	ImportCatalog(ctx context.Context, r io.Reader) (*dto.CatalogImportResult, error)
}

// SubjectHandler handles the subject catalog.
type SubjectHandler struct {
	service  subjectService
	maxBytes int64
}

// NewSubjectHandler constructs a subject handler. maxBytes bounds uploads.
func NewSubjectHandler(svc subjectService, maxBytes int64) *SubjectHandler {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &SubjectHandler{service: svc, maxBytes: maxBytes}
}

// List godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()))
}

// Replace godoc
// @Summary Replace the whole catalog
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body []models.Subject true "Subjects"
// @Success 200 {object} response.Envelope
// @Router /subjects [put]
func (h *SubjectHandler) Replace(c *gin.Context) {
	var subjects []models.Subject
	if err := c.ShouldBindJSON(&subjects); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.SetCatalog(c.Request.Context(), subjects)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Create godoc
// @Summary Add one subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body dto.SubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req dto.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	subject, err := h.service.AddOne(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// Update godoc
// @Summary Edit a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path string true "Subject ID"
// @Param payload body models.SubjectPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id} [put]
func (h *SubjectHandler) Update(c *gin.Context) {
	var patch models.SubjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	subject, err := h.service.EditOne(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject)
}

// Import godoc
// @Summary Import a delimited catalog file
// @Description Accepts a multipart "file" field or a raw text/csv body
// @Tags Subjects
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Catalog file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /subjects/import [post]
func (h *SubjectHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	var reader io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file field is required"))
			return
		}
		file, err := header.Open()
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file could not be read"))
			return
		}
		defer file.Close() //nolint:errcheck
		reader = file
	}
	result, err := h.service.ImportCatalog(c.Request.Context(), reader)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
