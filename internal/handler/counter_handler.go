package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/guardia-api/internal/dto"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
	"github.com/noah-isme/guardia-api/pkg/response"
)

type counterService interface {
	Get(ctx context.Context, teacherEmail string, weekday, hour int) (*dto.CounterItem, error)
	ListByTeacher(ctx context.Context, teacherEmail string) ([]dto.CounterItem, error)
	Reset(ctx context.Context, teacherEmail string) (*dto.CounterResetResponse, error)
}

// CounterHandler exposes the fairness counters.
type CounterHandler struct {
	service counterService
}

// NewCounterHandler constructs the handler.
func NewCounterHandler(service counterService) *CounterHandler {
	return &CounterHandler{service: service}
}

// ListByTeacher godoc
// @Summary Every materialized counter row for a teacher
// @Tags counters
// @Produce json
// @Param email path string true "Teacher email"
// @Success 200 {object} response.Envelope{data=[]dto.CounterItem}
// @Security BearerAuth
// @Router /counters/{email} [get]
func (h *CounterHandler) ListByTeacher(c *gin.Context) {
	result, err := h.service.ListByTeacher(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GetSlot godoc
// @Summary Counter for one (teacher, weekday, hour) key
// @Description Keys that were never written read as all zeros.
// @Tags counters
// @Produce json
// @Param email path string true "Teacher email"
// @Param weekday query int true "Weekday (1=Monday..5=Friday)"
// @Param hour query int true "Hour (1-8)"
// @Success 200 {object} response.Envelope{data=dto.CounterItem}
// @Security BearerAuth
// @Router /counters/{email}/slot [get]
func (h *CounterHandler) GetSlot(c *gin.Context) {
	weekday, werr := strconv.Atoi(c.Query("weekday"))
	hour, herr := strconv.Atoi(c.Query("hour"))
	if werr != nil || herr != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "weekday and hour query parameters are required"))
		return
	}
	result, err := h.service.Get(c.Request.Context(), c.Param("email"), weekday, hour)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Reset godoc
// @Summary Wipe a teacher's counters
// @Tags counters
// @Produce json
// @Param email path string true "Teacher email"
// @Success 200 {object} response.Envelope{data=dto.CounterResetResponse}
// @Security BearerAuth
// @Router /counters/{email} [delete]
func (h *CounterHandler) Reset(c *gin.Context) {
	result, err := h.service.Reset(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
