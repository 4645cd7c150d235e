package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/guardia-api/internal/dto"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
	"github.com/noah-isme/guardia-api/pkg/response"
)

type absenceService interface {
	RegisterAbsence(ctx context.Context, req dto.RegisterAbsenceRequest) (*dto.AbsenceResponse, error)
	GetAbsence(ctx context.Context, id string) (*dto.AbsenceItem, error)
	ListByDate(ctx context.Context, date string) (dto.AbsencesByHour, error)
	History(ctx context.Context) (dto.AbsenceHistory, error)
	HistoryByTeacher(ctx context.Context, teacherEmail string) ([]dto.AbsenceItem, error)
	DeleteAbsence(ctx context.Context, id string) error
}

// AbsenceHandler exposes absence registration and queries.
type AbsenceHandler struct {
	service absenceService
}

// NewAbsenceHandler constructs the handler.
func NewAbsenceHandler(service absenceService) *AbsenceHandler {
	return &AbsenceHandler{service: service}
}

// Register godoc
// @Summary Register a teacher absence and assign coverage
// @Description Stores the absence day and immediately computes substitute
// @Description coverage for each absent hour. Hours nobody can cover come
// @Description back marked unfulfilled.
// @Tags absences
// @Accept json
// @Produce json
// @Param request body dto.RegisterAbsenceRequest true "Absence"
// @Success 201 {object} response.Envelope{data=dto.AbsenceResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /absences [post]
func (h *AbsenceHandler) Register(c *gin.Context) {
	var req dto.RegisterAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	result, err := h.service.RegisterAbsence(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListByDate godoc
// @Summary List a date's absences grouped by hour
// @Tags absences
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=dto.AbsencesByHour}
// @Security BearerAuth
// @Router /absences [get]
func (h *AbsenceHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date query parameter is required"))
		return
	}
	result, err := h.service.ListByDate(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// History godoc
// @Summary Full absence history grouped by date and hour
// @Tags absences
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.AbsenceHistory}
// @Security BearerAuth
// @Router /absences/history [get]
func (h *AbsenceHandler) History(c *gin.Context) {
	result, err := h.service.History(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// HistoryByTeacher godoc
// @Summary One teacher's absence history
// @Tags absences
// @Produce json
// @Param email path string true "Teacher email"
// @Success 200 {object} response.Envelope{data=[]dto.AbsenceItem}
// @Security BearerAuth
// @Router /absences/teacher/{email} [get]
func (h *AbsenceHandler) HistoryByTeacher(c *gin.Context) {
	result, err := h.service.HistoryByTeacher(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Fetch one absence with its coverages
// @Tags absences
// @Produce json
// @Param id path string true "Absence ID"
// @Success 200 {object} response.Envelope{data=dto.AbsenceItem}
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /absences/{id} [get]
func (h *AbsenceHandler) Get(c *gin.Context) {
	result, err := h.service.GetAbsence(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Delete godoc
// @Summary Withdraw an absence
// @Description Drops the absence and its pending coverages, then rebalances
// @Description the affected slots. Absences with validated coverage cannot
// @Description be withdrawn.
// @Tags absences
// @Param id path string true "Absence ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /absences/{id} [delete]
func (h *AbsenceHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteAbsence(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
