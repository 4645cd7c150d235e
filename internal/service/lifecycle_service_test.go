package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/guardia-api/internal/dto"
	"github.com/noah-isme/guardia-api/internal/models"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
)

type lifecycleStoreMock struct {
	items   map[string]*models.Coverage
	failIDs map[string]bool
}

func newLifecycleStore(coverages ...*models.Coverage) *lifecycleStoreMock {
	items := make(map[string]*models.Coverage, len(coverages))
	for _, coverage := range coverages {
		items[coverage.ID] = coverage
	}
	return &lifecycleStoreMock{items: items, failIDs: make(map[string]bool)}
}

func (m *lifecycleStoreMock) FindByID(ctx context.Context, id string) (*models.Coverage, error) {
	coverage, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *coverage
	return &cp, nil
}

func (m *lifecycleStoreMock) UpdateStatus(ctx context.Context, coverage *models.Coverage, expected models.CoverageStatus) error {
	if m.failIDs[coverage.ID] {
		return fmt.Errorf("forced update failure")
	}
	stored, ok := m.items[coverage.ID]
	if !ok || stored.Status != expected {
		return sql.ErrNoRows
	}
	cp := *coverage
	m.items[coverage.ID] = &cp
	return nil
}

func (m *lifecycleStoreMock) ListByDate(ctx context.Context, date time.Time) ([]models.Coverage, error) {
	var out []models.Coverage
	for _, coverage := range m.items {
		if coverage.Date.Equal(date) {
			out = append(out, *coverage)
		}
	}
	return out, nil
}

func (m *lifecycleStoreMock) ListByDateAndStatus(ctx context.Context, date time.Time, status models.CoverageStatus) ([]models.Coverage, error) {
	var out []models.Coverage
	for _, coverage := range m.items {
		if coverage.Date.Equal(date) && coverage.Status == status {
			out = append(out, *coverage)
		}
	}
	return out, nil
}

func (m *lifecycleStoreMock) ListByTeacher(ctx context.Context, teacherEmail string) ([]models.Coverage, error) {
	var out []models.Coverage
	for _, coverage := range m.items {
		if coverage.TeacherEmail == teacherEmail {
			out = append(out, *coverage)
		}
	}
	return out, nil
}

func (m *lifecycleStoreMock) ListPending(ctx context.Context) ([]models.Coverage, error) {
	return m.ListByDateAndStatus(context.Background(), monday, models.CoverageAssigned)
}

func (m *lifecycleStoreMock) StatsByDate(ctx context.Context, date time.Time) (*models.CoverageStats, error) {
	stats := &models.CoverageStats{}
	for _, coverage := range m.items {
		if !coverage.Date.Equal(date) {
			continue
		}
		switch coverage.Status {
		case models.CoverageAssigned:
			stats.Assigned++
		case models.CoverageValidated:
			stats.Validated++
		case models.CoverageCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

type counterRecorder struct {
	increments []string
}

func (m *counterRecorder) Increment(ctx context.Context, teacherEmail string, weekday, hour int, duty models.DutyType) error {
	m.increments = append(m.increments, fmt.Sprintf("%s|%d|%d|%s", teacherEmail, weekday, hour, duty))
	return nil
}

type assignerRecorder struct {
	calls []string
}

func (m *assignerRecorder) AssignSlot(ctx context.Context, date time.Time, hour int) ([]dto.HourOutcome, error) {
	m.calls = append(m.calls, fmt.Sprintf("%s#%d", date.Format(models.DateLayout), hour))
	return nil, nil
}

func assignedCoverage(id string, duty models.DutyType, hour int) *models.Coverage {
	hourID := id + "-hour"
	return &models.Coverage{
		ID:            id,
		AbsenceHourID: &hourID,
		Date:          monday,
		Hour:          hour,
		TeacherEmail:  "sub@school.test",
		GroupCode:     "2A",
		Room:          "A12",
		DutyType:      duty,
		Status:        models.CoverageAssigned,
	}
}

func TestValidateCreditsExactlyOneTrack(t *testing.T) {
	store := newLifecycleStore(assignedCoverage("c1", models.DutyProblematic, 3))
	counters := &counterRecorder{}
	service := NewLifecycleService(store, counters, nil, zap.NewNop(), nil)

	item, err := service.Validate(context.Background(), "c1", "admin@school.test")
	require.NoError(t, err)
	assert.Equal(t, string(models.CoverageValidated), item.Status)
	assert.Equal(t, "admin@school.test", item.ValidatedBy)
	require.NotNil(t, item.ValidatedAt)

	// Monday hour 3, problematic track only.
	require.Equal(t, []string{"sub@school.test|1|3|PROBLEMATIC"}, counters.increments)
}

func TestValidateTwiceConflicts(t *testing.T) {
	store := newLifecycleStore(assignedCoverage("c1", models.DutyNormal, 2))
	counters := &counterRecorder{}
	service := NewLifecycleService(store, counters, nil, zap.NewNop(), nil)

	_, err := service.Validate(context.Background(), "c1", "admin@school.test")
	require.NoError(t, err)

	_, err = service.Validate(context.Background(), "c1", "admin@school.test")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Len(t, counters.increments, 1)
}

func TestValidateCancelledConflicts(t *testing.T) {
	coverage := assignedCoverage("c1", models.DutyNormal, 2)
	coverage.Status = models.CoverageCancelled
	service := NewLifecycleService(newLifecycleStore(coverage), &counterRecorder{}, nil, zap.NewNop(), nil)

	_, err := service.Validate(context.Background(), "c1", "admin@school.test")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestValidateNotFound(t *testing.T) {
	service := NewLifecycleService(newLifecycleStore(), &counterRecorder{}, nil, zap.NewNop(), nil)

	_, err := service.Validate(context.Background(), "missing", "admin@school.test")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCancelNeverTouchesCountersAndReassigns(t *testing.T) {
	store := newLifecycleStore(assignedCoverage("c1", models.DutySupervision, 4))
	counters := &counterRecorder{}
	assigner := &assignerRecorder{}
	service := NewLifecycleService(store, counters, assigner, zap.NewNop(), nil)

	item, err := service.Cancel(context.Background(), "c1", "admin@school.test", "teacher called in sick")
	require.NoError(t, err)
	assert.Equal(t, string(models.CoverageCancelled), item.Status)
	assert.Equal(t, "teacher called in sick", item.CancelReason)

	assert.Empty(t, counters.increments)
	assert.Equal(t, []string{"2026-09-14#4"}, assigner.calls)
}

func TestCancelValidatedConflicts(t *testing.T) {
	coverage := assignedCoverage("c1", models.DutyNormal, 2)
	coverage.Status = models.CoverageValidated
	service := NewLifecycleService(newLifecycleStore(coverage), &counterRecorder{}, nil, zap.NewNop(), nil)

	_, err := service.Cancel(context.Background(), "c1", "admin@school.test", "reason")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestValidateAllForDateContinuesPastFailures(t *testing.T) {
	store := newLifecycleStore(
		assignedCoverage("c1", models.DutyNormal, 1),
		assignedCoverage("c2", models.DutyNormal, 2),
		assignedCoverage("c3", models.DutyNormal, 3),
	)
	store.failIDs["c2"] = true
	counters := &counterRecorder{}
	service := NewLifecycleService(store, counters, nil, zap.NewNop(), nil)

	result, err := service.ValidateAllForDate(context.Background(),
		dto.ValidateDayRequest{Date: "2026-09-14"}, "admin@school.test")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Validated)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, counters.increments, 2)
}

func TestListByDateRejectsUnknownStatus(t *testing.T) {
	service := NewLifecycleService(newLifecycleStore(), &counterRecorder{}, nil, zap.NewNop(), nil)

	_, err := service.ListByDate(context.Background(), "2026-09-14", "DONE")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStatsTalliesPerState(t *testing.T) {
	validated := assignedCoverage("c2", models.DutyNormal, 2)
	validated.Status = models.CoverageValidated
	cancelled := assignedCoverage("c3", models.DutyNormal, 3)
	cancelled.Status = models.CoverageCancelled
	store := newLifecycleStore(assignedCoverage("c1", models.DutyNormal, 1), validated, cancelled)
	service := NewLifecycleService(store, &counterRecorder{}, nil, zap.NewNop(), nil)

	stats, err := service.Stats(context.Background(), "2026-09-14")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Assigned)
	assert.Equal(t, 1, stats.Validated)
	assert.Equal(t, 1, stats.Cancelled)
}
