package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/guardia-api/internal/models"
)

// CounterRepository persists per-(teacher, weekday, hour) duty counters.
type CounterRepository struct {
	db *sqlx.DB
}

// NewCounterRepository constructs the repository.
func NewCounterRepository(db *sqlx.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// Get returns the counter row for one key, or sql.ErrNoRows when the key has
// never been written. Callers treat a missing row as all-zero.
func (r *CounterRepository) Get(ctx context.Context, teacherEmail string, weekday, hour int) (*models.DutyCounter, error) {
	const query = `SELECT id, teacher_email, weekday, hour, normal_count, problematic_count, supervision_count
		FROM duty_counters WHERE LOWER(teacher_email) = LOWER($1) AND weekday = $2 AND hour = $3`
	var counter models.DutyCounter
	if err := r.db.GetContext(ctx, &counter, query, teacherEmail, weekday, hour); err != nil {
		return nil, err
	}
	return &counter, nil
}

// GetMany loads the counters for a set of teachers at one slot. Teachers with
// no row are simply absent from the result.
func (r *CounterRepository) GetMany(ctx context.Context, teacherEmails []string, weekday, hour int) ([]models.DutyCounter, error) {
	if len(teacherEmails) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, teacher_email, weekday, hour, normal_count, problematic_count, supervision_count
		FROM duty_counters WHERE teacher_email IN (?) AND weekday = ? AND hour = ?`,
		teacherEmails, weekday, hour)
	if err != nil {
		return nil, fmt.Errorf("build counters query: %w", err)
	}
	query = r.db.Rebind(query)

	var counters []models.DutyCounter
	if err := r.db.SelectContext(ctx, &counters, query, args...); err != nil {
		return nil, fmt.Errorf("list counters: %w", err)
	}
	return counters, nil
}

// Increment atomically adds one to the counter matching the duty type,
// materializing the row on first use. The upsert serializes concurrent
// increments on the same key at the storage layer.
func (r *CounterRepository) Increment(ctx context.Context, teacherEmail string, weekday, hour int, duty models.DutyType) error {
	var column string
	switch duty {
	case models.DutyProblematic:
		column = "problematic_count"
	case models.DutySupervision:
		column = "supervision_count"
	case models.DutyNormal:
		column = "normal_count"
	default:
		return fmt.Errorf("unknown duty type %q", duty)
	}

	// A fresh row lands with the incremented track already at 1; an existing
	// row takes the conflict branch and bumps in place.
	query := fmt.Sprintf(`INSERT INTO duty_counters
		(id, teacher_email, weekday, hour, normal_count, problematic_count, supervision_count)
		VALUES ($1, $2, $3, $4, %s, %s, %s)
		ON CONFLICT (teacher_email, weekday, hour)
		DO UPDATE SET %s = duty_counters.%s + 1`,
		seedCount(column == "normal_count"),
		seedCount(column == "problematic_count"),
		seedCount(column == "supervision_count"),
		column, column)

	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), teacherEmail, weekday, hour); err != nil {
		return fmt.Errorf("increment %s counter: %w", duty, err)
	}
	return nil
}

// ListByTeacher returns every materialized counter row for a teacher.
func (r *CounterRepository) ListByTeacher(ctx context.Context, teacherEmail string) ([]models.DutyCounter, error) {
	const query = `SELECT id, teacher_email, weekday, hour, normal_count, problematic_count, supervision_count
		FROM duty_counters WHERE LOWER(teacher_email) = LOWER($1)
		ORDER BY weekday ASC, hour ASC`
	var counters []models.DutyCounter
	if err := r.db.SelectContext(ctx, &counters, query, teacherEmail); err != nil {
		return nil, fmt.Errorf("list counters by teacher: %w", err)
	}
	return counters, nil
}

// ResetByTeacher deletes a teacher's counters. Administrative reset only.
func (r *CounterRepository) ResetByTeacher(ctx context.Context, teacherEmail string) (int64, error) {
	const query = `DELETE FROM duty_counters WHERE LOWER(teacher_email) = LOWER($1)`
	result, err := r.db.ExecContext(ctx, query, teacherEmail)
	if err != nil {
		return 0, fmt.Errorf("reset counters: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check reset counter rows: %w", err)
	}
	return affected, nil
}

func seedCount(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
