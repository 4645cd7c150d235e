package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/guardia-api/internal/models"
)

// AbsenceRepository persists absence days and their absent hours.
type AbsenceRepository struct {
	db *sqlx.DB
}

// NewAbsenceRepository constructs the repository.
func NewAbsenceRepository(db *sqlx.DB) *AbsenceRepository {
	return &AbsenceRepository{db: db}
}

// Create inserts the absence and all its hours in one transaction.
func (r *AbsenceRepository) Create(ctx context.Context, absence *models.Absence) error {
	if absence.ID == "" {
		absence.ID = uuid.NewString()
	}
	if absence.CreatedAt.IsZero() {
		absence.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create absence: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertAbsence = `INSERT INTO absences (id, teacher_email, date, created_at)
		VALUES (:id, :teacher_email, :date, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insertAbsence, absence); err != nil {
		return fmt.Errorf("create absence: %w", err)
	}

	const insertHour = `INSERT INTO absence_hours (id, absence_id, hour, group_code, room, task)
		VALUES (:id, :absence_id, :hour, :group_code, :room, :task)`
	for i := range absence.Hours {
		hour := &absence.Hours[i]
		if hour.ID == "" {
			hour.ID = uuid.NewString()
		}
		hour.AbsenceID = absence.ID
		if _, err := tx.NamedExecContext(ctx, insertHour, hour); err != nil {
			return fmt.Errorf("create absence hour %d: %w", hour.Hour, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create absence: %w", err)
	}
	return nil
}

// ExistsByTeacherAndDate checks the one-absence-per-teacher-per-day constraint.
func (r *AbsenceRepository) ExistsByTeacherAndDate(ctx context.Context, teacherEmail string, date time.Time) (bool, error) {
	const query = `SELECT 1 FROM absences WHERE LOWER(teacher_email) = LOWER($1) AND date = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, teacherEmail, date); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check absence exists: %w", err)
	}
	return true, nil
}

// FindByID loads an absence with its hours.
func (r *AbsenceRepository) FindByID(ctx context.Context, id string) (*models.Absence, error) {
	const query = `SELECT id, teacher_email, date, created_at FROM absences WHERE id = $1`
	var absence models.Absence
	if err := r.db.GetContext(ctx, &absence, query, id); err != nil {
		return nil, err
	}
	hours, err := r.hoursByAbsenceIDs(ctx, []string{absence.ID})
	if err != nil {
		return nil, err
	}
	absence.Hours = hours[absence.ID]
	return &absence, nil
}

// ListByDate returns all absences for a date, hours included.
func (r *AbsenceRepository) ListByDate(ctx context.Context, date time.Time) ([]models.Absence, error) {
	const query = `SELECT id, teacher_email, date, created_at FROM absences
		WHERE date = $1 ORDER BY teacher_email ASC`
	var absences []models.Absence
	if err := r.db.SelectContext(ctx, &absences, query, date); err != nil {
		return nil, fmt.Errorf("list absences by date: %w", err)
	}
	return r.attachHours(ctx, absences)
}

// ListByTeacher returns a teacher's full absence history, hours included.
func (r *AbsenceRepository) ListByTeacher(ctx context.Context, teacherEmail string) ([]models.Absence, error) {
	const query = `SELECT id, teacher_email, date, created_at FROM absences
		WHERE LOWER(teacher_email) = LOWER($1) ORDER BY date DESC`
	var absences []models.Absence
	if err := r.db.SelectContext(ctx, &absences, query, teacherEmail); err != nil {
		return nil, fmt.Errorf("list absences by teacher: %w", err)
	}
	return r.attachHours(ctx, absences)
}

// ListAll returns every absence, hours included, newest date first.
func (r *AbsenceRepository) ListAll(ctx context.Context) ([]models.Absence, error) {
	const query = `SELECT id, teacher_email, date, created_at FROM absences
		ORDER BY date DESC, teacher_email ASC`
	var absences []models.Absence
	if err := r.db.SelectContext(ctx, &absences, query); err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	return r.attachHours(ctx, absences)
}

// ListUncoveredHoursBySlot returns the absent hours at (date, hour) that have
// no non-cancelled coverage. These are the hours open for assignment.
func (r *AbsenceRepository) ListUncoveredHoursBySlot(ctx context.Context, date time.Time, hour int) ([]models.AbsenceHour, error) {
	const query = `
SELECT ah.id, ah.absence_id, ah.hour, ah.group_code, ah.room, ah.task
FROM absence_hours ah
JOIN absences a ON a.id = ah.absence_id
WHERE a.date = $1 AND ah.hour = $2
  AND NOT EXISTS (
    SELECT 1 FROM coverages c
    WHERE c.absence_hour_id = ah.id AND c.status <> 'CANCELLED'
  )
ORDER BY ah.group_code ASC, ah.id ASC`
	var hours []models.AbsenceHour
	if err := r.db.SelectContext(ctx, &hours, query, date, hour); err != nil {
		return nil, fmt.Errorf("list uncovered hours: %w", err)
	}
	return hours, nil
}

// Delete removes an absence and its hours.
func (r *AbsenceRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete absence: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM absence_hours WHERE absence_id = $1`, id); err != nil {
		return fmt.Errorf("delete absence hours: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM absences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete absence: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted absence rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

func (r *AbsenceRepository) attachHours(ctx context.Context, absences []models.Absence) ([]models.Absence, error) {
	if len(absences) == 0 {
		return absences, nil
	}
	ids := make([]string, len(absences))
	for i, absence := range absences {
		ids[i] = absence.ID
	}
	hours, err := r.hoursByAbsenceIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range absences {
		absences[i].Hours = hours[absences[i].ID]
	}
	return absences, nil
}

func (r *AbsenceRepository) hoursByAbsenceIDs(ctx context.Context, ids []string) (map[string][]models.AbsenceHour, error) {
	query, args, err := sqlx.In(`SELECT id, absence_id, hour, group_code, room, task
		FROM absence_hours WHERE absence_id IN (?) ORDER BY hour ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("build hours query: %w", err)
	}
	query = r.db.Rebind(query)

	var hours []models.AbsenceHour
	if err := r.db.SelectContext(ctx, &hours, query, args...); err != nil {
		return nil, fmt.Errorf("list absence hours: %w", err)
	}

	grouped := make(map[string][]models.AbsenceHour, len(ids))
	for _, hour := range hours {
		grouped[hour.AbsenceID] = append(grouped[hour.AbsenceID], hour)
	}
	return grouped, nil
}
