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

const coverageColumns = `id, absence_hour_id, date, hour, teacher_email, group_code, room,
	duty_type, status, validated_by, validated_at, cancel_reason, created_at`

// CoverageRepository persists coverage assignments.
type CoverageRepository struct {
	db *sqlx.DB
}

// NewCoverageRepository constructs the repository.
func NewCoverageRepository(db *sqlx.DB) *CoverageRepository {
	return &CoverageRepository{db: db}
}

// Create inserts a new coverage row.
func (r *CoverageRepository) Create(ctx context.Context, coverage *models.Coverage) error {
	if coverage.ID == "" {
		coverage.ID = uuid.NewString()
	}
	if coverage.CreatedAt.IsZero() {
		coverage.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO coverages
		(id, absence_hour_id, date, hour, teacher_email, group_code, room, duty_type, status,
		 validated_by, validated_at, cancel_reason, created_at)
		VALUES (:id, :absence_hour_id, :date, :hour, :teacher_email, :group_code, :room, :duty_type, :status,
		 :validated_by, :validated_at, :cancel_reason, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, coverage); err != nil {
		return fmt.Errorf("create coverage: %w", err)
	}
	return nil
}

// FindByID returns a single coverage.
func (r *CoverageRepository) FindByID(ctx context.Context, id string) (*models.Coverage, error) {
	query := fmt.Sprintf(`SELECT %s FROM coverages WHERE id = $1`, coverageColumns)
	var coverage models.Coverage
	if err := r.db.GetContext(ctx, &coverage, query, id); err != nil {
		return nil, err
	}
	return &coverage, nil
}

// UpdateStatus transitions a coverage, guarding on the expected current
// status so concurrent administrators cannot double-apply a transition.
func (r *CoverageRepository) UpdateStatus(ctx context.Context, coverage *models.Coverage, expected models.CoverageStatus) error {
	const query = `UPDATE coverages
		SET status = :status, validated_by = :validated_by, validated_at = :validated_at,
		    cancel_reason = :cancel_reason
		WHERE id = :id AND status = :expected_status`
	args := map[string]interface{}{
		"status":          coverage.Status,
		"validated_by":    coverage.ValidatedBy,
		"validated_at":    coverage.ValidatedAt,
		"cancel_reason":   coverage.CancelReason,
		"id":              coverage.ID,
		"expected_status": expected,
	}
	result, err := r.db.NamedExecContext(ctx, query, args)
	if err != nil {
		return fmt.Errorf("update coverage status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated coverage rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByDate returns all coverages for a date ordered by hour.
func (r *CoverageRepository) ListByDate(ctx context.Context, date time.Time) ([]models.Coverage, error) {
	query := fmt.Sprintf(`SELECT %s FROM coverages WHERE date = $1
		ORDER BY hour ASC, duty_type ASC, teacher_email ASC`, coverageColumns)
	var coverages []models.Coverage
	if err := r.db.SelectContext(ctx, &coverages, query, date); err != nil {
		return nil, fmt.Errorf("list coverages by date: %w", err)
	}
	return coverages, nil
}

// ListByDateAndStatus filters a date's coverages by lifecycle state.
func (r *CoverageRepository) ListByDateAndStatus(ctx context.Context, date time.Time, status models.CoverageStatus) ([]models.Coverage, error) {
	query := fmt.Sprintf(`SELECT %s FROM coverages WHERE date = $1 AND status = $2
		ORDER BY hour ASC, teacher_email ASC`, coverageColumns)
	var coverages []models.Coverage
	if err := r.db.SelectContext(ctx, &coverages, query, date, status); err != nil {
		return nil, fmt.Errorf("list coverages by date and status: %w", err)
	}
	return coverages, nil
}

// ListByTeacher returns the coverages a teacher has been assigned.
func (r *CoverageRepository) ListByTeacher(ctx context.Context, teacherEmail string) ([]models.Coverage, error) {
	query := fmt.Sprintf(`SELECT %s FROM coverages WHERE LOWER(teacher_email) = LOWER($1)
		ORDER BY date DESC, hour ASC`, coverageColumns)
	var coverages []models.Coverage
	if err := r.db.SelectContext(ctx, &coverages, query, teacherEmail); err != nil {
		return nil, fmt.Errorf("list coverages by teacher: %w", err)
	}
	return coverages, nil
}

// ListPending returns every coverage still waiting for validation.
func (r *CoverageRepository) ListPending(ctx context.Context) ([]models.Coverage, error) {
	query := fmt.Sprintf(`SELECT %s FROM coverages WHERE status = $1
		ORDER BY date ASC, hour ASC`, coverageColumns)
	var coverages []models.Coverage
	if err := r.db.SelectContext(ctx, &coverages, query, models.CoverageAssigned); err != nil {
		return nil, fmt.Errorf("list pending coverages: %w", err)
	}
	return coverages, nil
}

// ListActiveBySlot returns the non-cancelled coverages at (date, hour).
func (r *CoverageRepository) ListActiveBySlot(ctx context.Context, date time.Time, hour int) ([]models.Coverage, error) {
	query := fmt.Sprintf(`SELECT %s FROM coverages
		WHERE date = $1 AND hour = $2 AND status <> 'CANCELLED'
		ORDER BY teacher_email ASC`, coverageColumns)
	var coverages []models.Coverage
	if err := r.db.SelectContext(ctx, &coverages, query, date, hour); err != nil {
		return nil, fmt.Errorf("list coverages by slot: %w", err)
	}
	return coverages, nil
}

// CancelledTeachersBySlot returns the teachers whose coverage at (date, hour)
// was cancelled. Reassignment skips them, otherwise a cancellation would hand
// the hour straight back to the same teacher.
func (r *CoverageRepository) CancelledTeachersBySlot(ctx context.Context, date time.Time, hour int) ([]string, error) {
	const query = `SELECT DISTINCT teacher_email FROM coverages
		WHERE date = $1 AND hour = $2 AND status = 'CANCELLED'`
	var emails []string
	if err := r.db.SelectContext(ctx, &emails, query, date, hour); err != nil {
		return nil, fmt.Errorf("list cancelled teachers by slot: %w", err)
	}
	return emails, nil
}

// DeleteReassignableBySlot purges the ASSIGNED rows at (date, hour) so the
// slot can be recomputed. Validated and cancelled rows are untouched.
func (r *CoverageRepository) DeleteReassignableBySlot(ctx context.Context, date time.Time, hour int) (int64, error) {
	const query = `DELETE FROM coverages WHERE date = $1 AND hour = $2 AND status = 'ASSIGNED'`
	result, err := r.db.ExecContext(ctx, query, date, hour)
	if err != nil {
		return 0, fmt.Errorf("purge reassignable coverages: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check purged coverage rows: %w", err)
	}
	return affected, nil
}

// DeleteByAbsenceHourIDs removes the non-validated coverages tied to the
// given absence hours. Used when an absence is withdrawn.
func (r *CoverageRepository) DeleteByAbsenceHourIDs(ctx context.Context, hourIDs []string) error {
	if len(hourIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM coverages
		WHERE absence_hour_id IN (?) AND status <> 'VALIDATED'`, hourIDs)
	if err != nil {
		return fmt.Errorf("build coverage delete query: %w", err)
	}
	query = r.db.Rebind(query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete coverages for absence hours: %w", err)
	}
	return nil
}

// ListByAbsenceHourIDs returns the non-cancelled coverages tied to the given
// absence hours, keyed by absence hour ID.
func (r *CoverageRepository) ListByAbsenceHourIDs(ctx context.Context, hourIDs []string) (map[string]models.Coverage, error) {
	if len(hourIDs) == 0 {
		return map[string]models.Coverage{}, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf(`SELECT %s FROM coverages
		WHERE absence_hour_id IN (?) AND status <> 'CANCELLED'`, coverageColumns), hourIDs)
	if err != nil {
		return nil, fmt.Errorf("build coverage lookup query: %w", err)
	}
	query = r.db.Rebind(query)

	var coverages []models.Coverage
	if err := r.db.SelectContext(ctx, &coverages, query, args...); err != nil {
		return nil, fmt.Errorf("list coverages for absence hours: %w", err)
	}

	byHour := make(map[string]models.Coverage, len(coverages))
	for _, coverage := range coverages {
		if coverage.AbsenceHourID != nil {
			byHour[*coverage.AbsenceHourID] = coverage
		}
	}
	return byHour, nil
}

// HasValidatedByAbsenceHourIDs reports whether any of the hours carries a
// validated coverage. Validated history blocks absence withdrawal.
func (r *CoverageRepository) HasValidatedByAbsenceHourIDs(ctx context.Context, hourIDs []string) (bool, error) {
	if len(hourIDs) == 0 {
		return false, nil
	}
	query, args, err := sqlx.In(`SELECT 1 FROM coverages
		WHERE absence_hour_id IN (?) AND status = 'VALIDATED' LIMIT 1`, hourIDs)
	if err != nil {
		return false, fmt.Errorf("build validated check query: %w", err)
	}
	query = r.db.Rebind(query)
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check validated coverages: %w", err)
	}
	return true, nil
}

// StatsByDate tallies a date's coverages per state.
func (r *CoverageRepository) StatsByDate(ctx context.Context, date time.Time) (*models.CoverageStats, error) {
	const query = `
SELECT
	COUNT(*) FILTER (WHERE status = 'ASSIGNED')  AS assigned,
	COUNT(*) FILTER (WHERE status = 'VALIDATED') AS validated,
	COUNT(*) FILTER (WHERE status = 'CANCELLED') AS cancelled
FROM coverages WHERE date = $1`
	var stats models.CoverageStats
	if err := r.db.GetContext(ctx, &stats, query, date); err != nil {
		return nil, fmt.Errorf("coverage stats: %w", err)
	}
	return &stats, nil
}
