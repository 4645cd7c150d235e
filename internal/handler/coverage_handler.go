package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/guardia-api/internal/dto"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
	"github.com/noah-isme/guardia-api/pkg/response"
)

type lifecycleService interface {
	Validate(ctx context.Context, coverageID, adminEmail string) (*dto.CoverageItem, error)
	Cancel(ctx context.Context, coverageID, adminEmail, reason string) (*dto.CoverageItem, error)
	ValidateAllForDate(ctx context.Context, req dto.ValidateDayRequest, adminEmail string) (*dto.ValidateDayResponse, error)
	Get(ctx context.Context, coverageID string) (*dto.CoverageItem, error)
	ListByDate(ctx context.Context, date, status string) ([]dto.CoverageItem, error)
	ListByTeacher(ctx context.Context, teacherEmail string) ([]dto.CoverageItem, error)
	ListPending(ctx context.Context) ([]dto.CoverageItem, error)
	Stats(ctx context.Context, date string) (*dto.CoverageStatsItem, error)
}

type redistributionService interface {
	Redistribute(ctx context.Context, req dto.RedistributeRequest) ([]dto.HourOutcome, error)
	SupervisionPreview(ctx context.Context, date string, hour int) (*dto.SupervisionPreviewItem, error)
}

// CoverageHandler exposes coverage lifecycle and queries.
type CoverageHandler struct {
	lifecycle   lifecycleService
	assignments redistributionService
}

// NewCoverageHandler constructs the handler.
func NewCoverageHandler(lifecycle lifecycleService, assignments redistributionService) *CoverageHandler {
	return &CoverageHandler{lifecycle: lifecycle, assignments: assignments}
}

// Validate godoc
// @Summary Confirm a coverage was performed
// @Description Transitions the coverage to VALIDATED and credits the
// @Description teacher's fairness counter for its duty type.
// @Tags coverages
// @Produce json
// @Param id path string true "Coverage ID"
// @Success 200 {object} response.Envelope{data=dto.CoverageItem}
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /coverages/{id}/validate [post]
func (h *CoverageHandler) Validate(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
		return
	}
	result, err := h.lifecycle.Validate(c.Request.Context(), c.Param("id"), claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Cancel godoc
// @Summary Cancel a coverage
// @Description Marks the coverage as not performed. Counters stay untouched
// @Description and the slot is recomputed for a replacement.
// @Tags coverages
// @Accept json
// @Produce json
// @Param id path string true "Coverage ID"
// @Param request body dto.CancelCoverageRequest true "Reason"
// @Success 200 {object} response.Envelope{data=dto.CoverageItem}
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /coverages/{id}/cancel [post]
func (h *CoverageHandler) Cancel(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
		return
	}
	var req dto.CancelCoverageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Reason == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "a cancellation reason is required"))
		return
	}
	result, err := h.lifecycle.Cancel(c.Request.Context(), c.Param("id"), claims.Email, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ValidateDay godoc
// @Summary Validate every assigned coverage of a date
// @Tags coverages
// @Accept json
// @Produce json
// @Param request body dto.ValidateDayRequest true "Date"
// @Success 200 {object} response.Envelope{data=dto.ValidateDayResponse}
// @Security BearerAuth
// @Router /coverages/validate-day [post]
func (h *CoverageHandler) ValidateDay(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
		return
	}
	var req dto.ValidateDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	result, err := h.lifecycle.ValidateAllForDate(c.Request.Context(), req, claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Redistribute godoc
// @Summary Recompute coverage for specific slots
// @Description Purges the still-assigned coverages of each slot and assigns
// @Description again over every open hour. Validated coverages survive.
// @Tags coverages
// @Accept json
// @Produce json
// @Param request body dto.RedistributeRequest true "Slots"
// @Success 200 {object} response.Envelope{data=[]dto.HourOutcome}
// @Security BearerAuth
// @Router /coverages/redistribute [post]
func (h *CoverageHandler) Redistribute(c *gin.Context) {
	var req dto.RedistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	result, err := h.assignments.Redistribute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List a date's coverages
// @Tags coverages
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param status query string false "ASSIGNED, VALIDATED or CANCELLED"
// @Success 200 {object} response.Envelope{data=[]dto.CoverageItem}
// @Security BearerAuth
// @Router /coverages [get]
func (h *CoverageHandler) List(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date query parameter is required"))
		return
	}
	result, err := h.lifecycle.ListByDate(c.Request.Context(), date, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListPending godoc
// @Summary List every coverage awaiting validation
// @Tags coverages
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.CoverageItem}
// @Security BearerAuth
// @Router /coverages/pending [get]
func (h *CoverageHandler) ListPending(c *gin.Context) {
	result, err := h.lifecycle.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListByTeacher godoc
// @Summary List a teacher's coverages
// @Tags coverages
// @Produce json
// @Param email path string true "Teacher email"
// @Success 200 {object} response.Envelope{data=[]dto.CoverageItem}
// @Security BearerAuth
// @Router /coverages/teacher/{email} [get]
func (h *CoverageHandler) ListByTeacher(c *gin.Context) {
	result, err := h.lifecycle.ListByTeacher(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Stats godoc
// @Summary Per-state tallies for a date's coverages
// @Tags coverages
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=dto.CoverageStatsItem}
// @Security BearerAuth
// @Router /coverages/stats [get]
func (h *CoverageHandler) Stats(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date query parameter is required"))
		return
	}
	result, err := h.lifecycle.Stats(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// SupervisionPreview godoc
// @Summary Preview the supervision pick for a slot
// @Tags coverages
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param hour query int true "Hour (1-8)"
// @Success 200 {object} response.Envelope{data=dto.SupervisionPreviewItem}
// @Security BearerAuth
// @Router /coverages/supervision/preview [get]
func (h *CoverageHandler) SupervisionPreview(c *gin.Context) {
	date := c.Query("date")
	hour, err := strconv.Atoi(c.Query("hour"))
	if date == "" || err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date and hour query parameters are required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	result, err := h.assignments.SupervisionPreview(ctx, date, hour)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Fetch one coverage
// @Tags coverages
// @Produce json
// @Param id path string true "Coverage ID"
// @Success 200 {object} response.Envelope{data=dto.CoverageItem}
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /coverages/{id} [get]
func (h *CoverageHandler) Get(c *gin.Context) {
	result, err := h.lifecycle.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
