package handler

import (
	"context"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/service"
	"github.com/noah-isme/sma-exam-planner/pkg/response"
)

type exportService interface {
	Render(ctx context.Context, format service.ExportFormat) (*service.ExportFile, error)
	Save(ctx context.Context, format service.ExportFormat) (*dto.SavedExport, error)
	OpenSaved(ctx context.Context, token string) (*os.File, string, error)
	PurgeCache(ctx context.Context) error
}

// ExportHandler serves the flat exports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export godoc
// @Summary Download the plan as CSV, fixed-width text or PDF
// @Description With save=true the file is stored and a signed download token is returned instead
// @Tags Exports
// @Produce text/csv,text/plain,application/pdf,json
// @Param format path string true "csv, txt or pdf"
// @Param save query bool false "Store the file"
// @Success 200 {file} file
// @Success 201 {object} response.Envelope
// @Router /exports/{format} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.Param("format"))
	if save, _ := strconv.ParseBool(c.Query("save")); save {
		saved, err := h.service.Save(c.Request.Context(), format)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, saved)
		return
	}
	file, err := h.service.Render(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("X-Board-Revision", strconv.FormatInt(file.Revision, 10))
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

// Download godoc
// @Summary Download a stored export
// @Tags Exports
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /exports/files/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, name, err := h.service.OpenSaved(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", "attachment; filename=\""+name+"\"")
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}

// PurgeCache godoc
// @Summary Drop cached export renderings
// @Tags Exports
// @Success 204
// @Router /exports/cache [delete]
func (h *ExportHandler) PurgeCache(c *gin.Context) {
	if err := h.service.PurgeCache(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
