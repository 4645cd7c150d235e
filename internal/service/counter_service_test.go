package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/guardia-api/internal/models"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
)

type counterStoreMock struct {
	rows    map[string]models.DutyCounter
	removed int64
}

func (m *counterStoreMock) Get(ctx context.Context, teacherEmail string, weekday, hour int) (*models.DutyCounter, error) {
	if counter, ok := m.rows[counterKey(teacherEmail, weekday, hour)]; ok {
		cp := counter
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *counterStoreMock) ListByTeacher(ctx context.Context, teacherEmail string) ([]models.DutyCounter, error) {
	var out []models.DutyCounter
	for _, counter := range m.rows {
		if counter.TeacherEmail == teacherEmail {
			out = append(out, counter)
		}
	}
	return out, nil
}

func (m *counterStoreMock) ResetByTeacher(ctx context.Context, teacherEmail string) (int64, error) {
	return m.removed, nil
}

func TestCounterGetMissingKeyReadsAsZero(t *testing.T) {
	service := NewCounterService(&counterStoreMock{}, zap.NewNop())

	item, err := service.Get(context.Background(), "new@school.test", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "new@school.test", item.TeacherEmail)
	assert.Equal(t, 2, item.Weekday)
	assert.Equal(t, 5, item.Hour)
	assert.Zero(t, item.NormalCount)
	assert.Zero(t, item.ProblematicCount)
	assert.Zero(t, item.SupervisionCount)
	assert.Zero(t, item.Total)
}

func TestCounterGetComputesTotal(t *testing.T) {
	store := &counterStoreMock{rows: map[string]models.DutyCounter{
		counterKey("ana@school.test", 1, 3): {
			TeacherEmail: "ana@school.test", Weekday: 1, Hour: 3,
			NormalCount: 2, ProblematicCount: 1, SupervisionCount: 3,
		},
	}}
	service := NewCounterService(store, zap.NewNop())

	item, err := service.Get(context.Background(), "ana@school.test", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, item.Total)
}

func TestCounterGetRejectsOutOfRangeKeys(t *testing.T) {
	service := NewCounterService(&counterStoreMock{}, zap.NewNop())

	_, err := service.Get(context.Background(), "ana@school.test", 6, 3)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = service.Get(context.Background(), "ana@school.test", 1, 9)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCounterReset(t *testing.T) {
	service := NewCounterService(&counterStoreMock{removed: 7}, zap.NewNop())

	result, err := service.Reset(context.Background(), "ana@school.test")
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.Removed)
	assert.Equal(t, "ana@school.test", result.TeacherEmail)
}
