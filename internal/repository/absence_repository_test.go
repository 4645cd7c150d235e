package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/guardia-api/internal/models"
)

var absenceDate = time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)

func TestAbsenceRepositoryCreateInsertsHoursInOneTx(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAbsenceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO absences").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO absence_hours").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO absence_hours").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	absence := &models.Absence{
		TeacherEmail: "absent@school.test",
		Date:         absenceDate,
		Hours: []models.AbsenceHour{
			{Hour: 3, GroupCode: "2A", Room: "A12"},
			{Hour: 4, GroupCode: "2A", Room: "A12"},
		},
	}
	require.NoError(t, repo.Create(context.Background(), absence))
	assert.NotEmpty(t, absence.ID)
	for _, hour := range absence.Hours {
		assert.NotEmpty(t, hour.ID)
		assert.Equal(t, absence.ID, hour.AbsenceID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAbsenceRepositoryCreateRollsBackOnHourFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAbsenceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO absences").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO absence_hours").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	absence := &models.Absence{
		TeacherEmail: "absent@school.test",
		Date:         absenceDate,
		Hours:        []models.AbsenceHour{{Hour: 3, GroupCode: "2A", Room: "A12"}},
	}
	require.Error(t, repo.Create(context.Background(), absence))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAbsenceRepositoryExistsByTeacherAndDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAbsenceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM absences WHERE LOWER(teacher_email) = LOWER($1) AND date = $2 LIMIT 1")).
		WithArgs("absent@school.test", absenceDate).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsByTeacherAndDate(context.Background(), "absent@school.test", absenceDate)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAbsenceRepositoryListUncoveredHoursBySlot(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAbsenceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "absence_id", "hour", "group_code", "room", "task"}).
		AddRow("h1", "a1", 3, "2A", "A12", nil).
		AddRow("h2", "a2", 3, "4C", "C03", "worksheet page 12")
	mock.ExpectQuery("FROM absence_hours ah").
		WithArgs(absenceDate, 3).
		WillReturnRows(rows)

	hours, err := repo.ListUncoveredHoursBySlot(context.Background(), absenceDate, 3)
	require.NoError(t, err)
	require.Len(t, hours, 2)
	assert.Nil(t, hours[0].Task)
	require.NotNil(t, hours[1].Task)
	assert.Equal(t, "worksheet page 12", *hours[1].Task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAbsenceRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAbsenceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM absence_hours").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM absences").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
