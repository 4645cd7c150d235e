package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/guardia-api/internal/dto"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
	"github.com/noah-isme/guardia-api/pkg/response"
)

type exportService interface {
	Enqueue(ctx context.Context, req dto.CoverageSheetRequest) (*dto.CoverageSheetStatus, error)
	Status(date, format string) (*dto.CoverageSheetStatus, error)
	Download(date, format string) (string, string, []byte, error)
}

// ExportHandler exposes daily coverage sheet generation.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Enqueue godoc
// @Summary Schedule generation of a daily coverage sheet
// @Tags exports
// @Accept json
// @Produce json
// @Param request body dto.CoverageSheetRequest true "Sheet"
// @Success 202 {object} response.Envelope{data=dto.CoverageSheetStatus}
// @Security BearerAuth
// @Router /exports/coverage-sheet [post]
func (h *ExportHandler) Enqueue(c *gin.Context) {
	var req dto.CoverageSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	result, err := h.service.Enqueue(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, result)
}

// Status godoc
// @Summary Whether a coverage sheet has been generated
// @Tags exports
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param format query string true "csv or pdf"
// @Success 200 {object} response.Envelope{data=dto.CoverageSheetStatus}
// @Security BearerAuth
// @Router /exports/coverage-sheet/status [get]
func (h *ExportHandler) Status(c *gin.Context) {
	result, err := h.service.Status(c.Query("date"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Download godoc
// @Summary Download a generated coverage sheet
// @Tags exports
// @Produce octet-stream
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /exports/coverage-sheet/download [get]
func (h *ExportHandler) Download(c *gin.Context) {
	filename, contentType, data, err := h.service.Download(c.Query("date"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
