package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/guardia-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCounterRepositoryGetMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCounterRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM duty_counters WHERE LOWER(teacher_email) = LOWER($1) AND weekday = $2 AND hour = $3")).
		WithArgs("ana@school.test", 1, 3).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "ana@school.test", 1, 3)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterRepositoryIncrementSeedsFreshRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCounterRepository(db)

	mock.ExpectExec("INSERT INTO duty_counters").
		WithArgs(sqlmock.AnyArg(), "ana@school.test", 1, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Increment(context.Background(), "ana@school.test", 1, 3, models.DutySupervision)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterRepositoryIncrementUnknownDuty(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCounterRepository(db)

	err := repo.Increment(context.Background(), "ana@school.test", 1, 3, models.DutyType("WEEKEND"))
	require.Error(t, err)
}

func TestCounterRepositoryGetMany(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCounterRepository(db)

	rows := sqlmock.NewRows([]string{"id", "teacher_email", "weekday", "hour", "normal_count", "problematic_count", "supervision_count"}).
		AddRow("k1", "ana@school.test", 1, 3, 2, 0, 1)
	mock.ExpectQuery("FROM duty_counters WHERE teacher_email IN").
		WithArgs("ana@school.test", "bea@school.test", 1, 3).
		WillReturnRows(rows)

	counters, err := repo.GetMany(context.Background(), []string{"ana@school.test", "bea@school.test"}, 1, 3)
	require.NoError(t, err)
	require.Len(t, counters, 1)
	assert.Equal(t, 2, counters[0].NormalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterRepositoryGetManyEmptyInput(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCounterRepository(db)

	counters, err := repo.GetMany(context.Background(), nil, 1, 3)
	require.NoError(t, err)
	assert.Empty(t, counters)
}

func TestCounterRepositoryResetByTeacher(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCounterRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM duty_counters WHERE LOWER(teacher_email) = LOWER($1)")).
		WithArgs("ana@school.test").
		WillReturnResult(sqlmock.NewResult(0, 5))

	removed, err := repo.ResetByTeacher(context.Background(), "ana@school.test")
	require.NoError(t, err)
	assert.Equal(t, int64(5), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
