package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/guardia-api/internal/dto"
	"github.com/noah-isme/guardia-api/internal/models"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
)

type coverageLifecycleStore interface {
	FindByID(ctx context.Context, id string) (*models.Coverage, error)
	UpdateStatus(ctx context.Context, coverage *models.Coverage, expected models.CoverageStatus) error
	ListByDate(ctx context.Context, date time.Time) ([]models.Coverage, error)
	ListByDateAndStatus(ctx context.Context, date time.Time, status models.CoverageStatus) ([]models.Coverage, error)
	ListByTeacher(ctx context.Context, teacherEmail string) ([]models.Coverage, error)
	ListPending(ctx context.Context) ([]models.Coverage, error)
	StatsByDate(ctx context.Context, date time.Time) (*models.CoverageStats, error)
}

type counterWriter interface {
	Increment(ctx context.Context, teacherEmail string, weekday, hour int, duty models.DutyType) error
}

// slotAssigner lets the lifecycle service trigger a best-effort reassignment
// after a cancellation without depending on the whole assignment service.
type slotAssigner interface {
	AssignSlot(ctx context.Context, date time.Time, hour int) ([]dto.HourOutcome, error)
}

// LifecycleService transitions coverages between ASSIGNED, VALIDATED and
// CANCELLED. Only validation touches the fairness counters; a cancelled
// coverage never counts, no matter how long it was assigned.
type LifecycleService struct {
	coverages coverageLifecycleStore
	counters  counterWriter
	assigner  slotAssigner
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewLifecycleService constructs the service.
func NewLifecycleService(
	coverages coverageLifecycleStore,
	counters counterWriter,
	assigner slotAssigner,
	logger *zap.Logger,
	metrics *MetricsService,
) *LifecycleService {
	return &LifecycleService{
		coverages: coverages,
		counters:  counters,
		assigner:  assigner,
		logger:    logger,
		metrics:   metrics,
	}
}

// Validate confirms a coverage was performed and credits the teacher's
// counter for its duty type. Repeat validations conflict, so each coverage
// adds exactly one to exactly one track.
func (s *LifecycleService) Validate(ctx context.Context, coverageID, adminEmail string) (*dto.CoverageItem, error) {
	coverage, err := s.findCoverage(ctx, coverageID)
	if err != nil {
		return nil, err
	}
	switch coverage.Status {
	case models.CoverageValidated:
		return nil, appErrors.Clone(appErrors.ErrConflict, "coverage is already validated")
	case models.CoverageCancelled:
		return nil, appErrors.Clone(appErrors.ErrConflict, "cannot validate a cancelled coverage")
	}

	weekday, ok := models.Weekday(coverage.Date)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInternal, "coverage stored outside school weekdays")
	}

	now := time.Now().UTC()
	coverage.Status = models.CoverageValidated
	coverage.ValidatedBy = &adminEmail
	coverage.ValidatedAt = &now
	if err := s.coverages.UpdateStatus(ctx, coverage, models.CoverageAssigned); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "coverage was transitioned concurrently")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "validate coverage")
	}

	if err := s.counters.Increment(ctx, coverage.TeacherEmail, weekday, coverage.Hour, coverage.DutyType); err != nil {
		s.logger.Error("counter increment failed after validation",
			zap.String("coverage_id", coverage.ID),
			zap.String("teacher", coverage.TeacherEmail), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "credit duty counter")
	}

	s.metrics.RecordValidation("validated")
	s.logger.Info("coverage validated",
		zap.String("coverage_id", coverage.ID),
		zap.String("teacher", coverage.TeacherEmail),
		zap.String("duty_type", string(coverage.DutyType)),
		zap.String("validated_by", adminEmail))

	item := newCoverageItem(*coverage)
	return &item, nil
}

// Cancel marks a coverage as not performed. Counters are never touched, and
// the slot is recomputed so another teacher can pick up the hour.
func (s *LifecycleService) Cancel(ctx context.Context, coverageID, adminEmail, reason string) (*dto.CoverageItem, error) {
	coverage, err := s.findCoverage(ctx, coverageID)
	if err != nil {
		return nil, err
	}
	switch coverage.Status {
	case models.CoverageValidated:
		return nil, appErrors.Clone(appErrors.ErrConflict, "cannot cancel a validated coverage")
	case models.CoverageCancelled:
		return nil, appErrors.Clone(appErrors.ErrConflict, "coverage is already cancelled")
	}

	now := time.Now().UTC()
	coverage.Status = models.CoverageCancelled
	coverage.ValidatedBy = &adminEmail
	coverage.ValidatedAt = &now
	coverage.CancelReason = &reason
	if err := s.coverages.UpdateStatus(ctx, coverage, models.CoverageAssigned); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "coverage was transitioned concurrently")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "cancel coverage")
	}

	s.metrics.RecordValidation("cancelled")
	s.logger.Info("coverage cancelled",
		zap.String("coverage_id", coverage.ID),
		zap.String("teacher", coverage.TeacherEmail),
		zap.String("reason", reason))

	if s.assigner != nil {
		if _, err := s.assigner.AssignSlot(ctx, coverage.Date, coverage.Hour); err != nil {
			s.logger.Warn("slot reassignment after cancellation failed",
				zap.String("date", coverage.Date.Format(models.DateLayout)),
				zap.Int("hour", coverage.Hour), zap.Error(err))
		}
	}

	item := newCoverageItem(*coverage)
	return &item, nil
}

// ValidateAllForDate validates every still-assigned coverage of a date. One
// failing coverage does not stop the rest.
func (s *LifecycleService) ValidateAllForDate(ctx context.Context, req dto.ValidateDayRequest, adminEmail string) (*dto.ValidateDayResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	pending, err := s.coverages.ListByDateAndStatus(ctx, date, models.CoverageAssigned)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list assigned coverages")
	}

	response := &dto.ValidateDayResponse{Date: req.Date}
	for _, coverage := range pending {
		if _, err := s.Validate(ctx, coverage.ID, adminEmail); err != nil {
			response.Skipped++
			s.logger.Warn("day validation skipped a coverage",
				zap.String("coverage_id", coverage.ID), zap.Error(err))
			continue
		}
		response.Validated++
	}
	return response, nil
}

// Get returns one coverage.
func (s *LifecycleService) Get(ctx context.Context, coverageID string) (*dto.CoverageItem, error) {
	coverage, err := s.findCoverage(ctx, coverageID)
	if err != nil {
		return nil, err
	}
	item := newCoverageItem(*coverage)
	return &item, nil
}

// ListByDate returns a date's coverages, optionally filtered by status.
func (s *LifecycleService) ListByDate(ctx context.Context, dateStr, status string) ([]dto.CoverageItem, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	var coverages []models.Coverage
	if status == "" {
		coverages, err = s.coverages.ListByDate(ctx, date)
	} else {
		parsed, ok := parseStatus(status)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "status must be ASSIGNED, VALIDATED or CANCELLED")
		}
		coverages, err = s.coverages.ListByDateAndStatus(ctx, date, parsed)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list coverages")
	}
	return coverageItems(coverages), nil
}

// ListByTeacher returns a teacher's coverages, newest date first.
func (s *LifecycleService) ListByTeacher(ctx context.Context, teacherEmail string) ([]dto.CoverageItem, error) {
	coverages, err := s.coverages.ListByTeacher(ctx, teacherEmail)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list coverages")
	}
	return coverageItems(coverages), nil
}

// ListPending returns every coverage still waiting for validation.
func (s *LifecycleService) ListPending(ctx context.Context) ([]dto.CoverageItem, error) {
	coverages, err := s.coverages.ListPending(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list pending coverages")
	}
	return coverageItems(coverages), nil
}

// Stats tallies a date's coverages per state.
func (s *LifecycleService) Stats(ctx context.Context, dateStr string) (*dto.CoverageStatsItem, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	stats, err := s.coverages.StatsByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "coverage stats")
	}
	return &dto.CoverageStatsItem{
		Date:      dateStr,
		Assigned:  stats.Assigned,
		Validated: stats.Validated,
		Cancelled: stats.Cancelled,
	}, nil
}

func (s *LifecycleService) findCoverage(ctx context.Context, id string) (*models.Coverage, error) {
	coverage, err := s.coverages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "coverage not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load coverage")
	}
	return coverage, nil
}

func parseStatus(value string) (models.CoverageStatus, bool) {
	switch models.CoverageStatus(value) {
	case models.CoverageAssigned, models.CoverageValidated, models.CoverageCancelled:
		return models.CoverageStatus(value), true
	}
	return "", false
}

func coverageItems(coverages []models.Coverage) []dto.CoverageItem {
	items := make([]dto.CoverageItem, 0, len(coverages))
	for _, coverage := range coverages {
		items = append(items, newCoverageItem(coverage))
	}
	return items
}
