package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/guardia-api/internal/models"
)

var coverageDate = time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)

func TestCoverageRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoverageRepository(db)

	mock.ExpectExec("INSERT INTO coverages").
		WillReturnResult(sqlmock.NewResult(0, 1))

	coverage := &models.Coverage{
		Date:         coverageDate,
		Hour:         3,
		TeacherEmail: "sub@school.test",
		GroupCode:    "2A",
		Room:         "A12",
		DutyType:     models.DutyNormal,
		Status:       models.CoverageAssigned,
	}
	require.NoError(t, repo.Create(context.Background(), coverage))
	assert.NotEmpty(t, coverage.ID)
	assert.False(t, coverage.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoverageRepositoryUpdateStatusGuardsExpected(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoverageRepository(db)

	mock.ExpectExec("UPDATE coverages").
		WillReturnResult(sqlmock.NewResult(0, 0))

	coverage := &models.Coverage{ID: "c1", Status: models.CoverageValidated}
	err := repo.UpdateStatus(context.Background(), coverage, models.CoverageAssigned)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoverageRepositoryDeleteReassignableBySlot(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoverageRepository(db)

	mock.ExpectExec("DELETE FROM coverages WHERE date = .+ AND hour = .+ AND status = 'ASSIGNED'").
		WithArgs(coverageDate, 3).
		WillReturnResult(sqlmock.NewResult(0, 2))

	purged, err := repo.DeleteReassignableBySlot(context.Background(), coverageDate, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoverageRepositoryCancelledTeachersBySlot(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoverageRepository(db)

	rows := sqlmock.NewRows([]string{"teacher_email"}).AddRow("bea@school.test")
	mock.ExpectQuery("SELECT DISTINCT teacher_email FROM coverages").
		WithArgs(coverageDate, 3).
		WillReturnRows(rows)

	emails, err := repo.CancelledTeachersBySlot(context.Background(), coverageDate, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"bea@school.test"}, emails)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoverageRepositoryHasValidatedByAbsenceHourIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoverageRepository(db)

	mock.ExpectQuery("SELECT 1 FROM coverages").
		WithArgs("h1", "h2").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	validated, err := repo.HasValidatedByAbsenceHourIDs(context.Background(), []string{"h1", "h2"})
	require.NoError(t, err)
	assert.True(t, validated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoverageRepositoryStatsByDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoverageRepository(db)

	rows := sqlmock.NewRows([]string{"assigned", "validated", "cancelled"}).AddRow(2, 5, 1)
	mock.ExpectQuery("FROM coverages WHERE date =").
		WithArgs(coverageDate).
		WillReturnRows(rows)

	stats, err := repo.StatsByDate(context.Background(), coverageDate)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Assigned)
	assert.Equal(t, 5, stats.Validated)
	assert.Equal(t, 1, stats.Cancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoverageRepositoryListPending(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoverageRepository(db)

	rows := sqlmock.NewRows([]string{"id", "absence_hour_id", "date", "hour", "teacher_email", "group_code", "room",
		"duty_type", "status", "validated_by", "validated_at", "cancel_reason", "created_at"}).
		AddRow("c1", "h1", coverageDate, 3, "sub@school.test", "2A", "A12",
			"NORMAL", "ASSIGNED", nil, nil, nil, time.Now())
	mock.ExpectQuery("FROM coverages WHERE status =").
		WithArgs(models.CoverageAssigned).
		WillReturnRows(rows)

	pending, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.CoverageAssigned, pending[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
