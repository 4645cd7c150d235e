package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/guardia-api/internal/dto"
	"github.com/noah-isme/guardia-api/internal/models"
	"github.com/noah-isme/guardia-api/pkg/config"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
	"github.com/noah-isme/guardia-api/pkg/storage"
)

type coverageListerMock struct {
	coverages []models.Coverage
}

func (m *coverageListerMock) ListByDate(ctx context.Context, date time.Time) ([]models.Coverage, error) {
	return m.coverages, nil
}

func newExportFixture(t *testing.T, coverages []models.Coverage) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewExportService(&coverageListerMock{coverages: coverages}, store,
		config.ExportsConfig{WorkerConcurrency: 1, WorkerRetries: 0},
		validator.New(), zap.NewNop())
}

func TestExportEnqueueGeneratesSheet(t *testing.T) {
	admin := "admin@school.test"
	service := newExportFixture(t, []models.Coverage{
		{Hour: 3, TeacherEmail: "sub@school.test", GroupCode: "2A", Room: "A12",
			DutyType: models.DutyNormal, Status: models.CoverageValidated, ValidatedBy: &admin},
	})
	service.Start()
	defer service.Stop()

	status, err := service.Enqueue(context.Background(), dto.CoverageSheetRequest{
		Date: "2026-09-14", Format: "csv",
	})
	require.NoError(t, err)
	assert.Equal(t, "coverage-sheet-2026-09-14.csv", status.Filename)

	require.Eventually(t, func() bool {
		ready, err := service.Status("2026-09-14", "csv")
		return err == nil && ready.Ready
	}, 2*time.Second, 10*time.Millisecond)

	filename, contentType, data, err := service.Download("2026-09-14", "csv")
	require.NoError(t, err)
	assert.Equal(t, "coverage-sheet-2026-09-14.csv", filename)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(data), "sub@school.test")
	assert.Contains(t, string(data), "admin@school.test")
}

func TestExportEnqueueRejectsUnknownFormat(t *testing.T) {
	service := newExportFixture(t, nil)
	service.Start()
	defer service.Stop()

	_, err := service.Enqueue(context.Background(), dto.CoverageSheetRequest{
		Date: "2026-09-14", Format: "xlsx",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportDownloadBeforeGeneration(t *testing.T) {
	service := newExportFixture(t, nil)

	_, _, _, err := service.Download("2026-09-14", "pdf")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
