package models

import "time"

// DutyType is the fairness track a coverage counts against.
type DutyType string

const (
	DutyNormal      DutyType = "NORMAL"
	DutyProblematic DutyType = "PROBLEMATIC"
	DutySupervision DutyType = "SUPERVISION"
)

// CoverageStatus is the lifecycle state of a coverage.
type CoverageStatus string

const (
	CoverageAssigned  CoverageStatus = "ASSIGNED"
	CoverageValidated CoverageStatus = "VALIDATED"
	CoverageCancelled CoverageStatus = "CANCELLED"
)

// Reassignable reports whether redistribution may discard this coverage.
func (s CoverageStatus) Reassignable() bool {
	return s == CoverageAssigned
}

// Terminal reports whether no further transition is allowed.
func (s CoverageStatus) Terminal() bool {
	return s == CoverageValidated || s == CoverageCancelled
}

// SupervisionGroupCode marks the supervision-post pseudo group.
const SupervisionGroupCode = "SUPERVISION"

// Coverage assigns a substitute teacher to one absent hour, or to the
// supervision post for a slot (AbsenceHourID nil).
type Coverage struct {
	ID            string         `db:"id" json:"id"`
	AbsenceHourID *string        `db:"absence_hour_id" json:"absence_hour_id,omitempty"`
	Date          time.Time      `db:"date" json:"date"`
	Hour          int            `db:"hour" json:"hour"`
	TeacherEmail  string         `db:"teacher_email" json:"teacher_email"`
	GroupCode     string         `db:"group_code" json:"group_code"`
	Room          string         `db:"room" json:"room"`
	DutyType      DutyType       `db:"duty_type" json:"duty_type"`
	Status        CoverageStatus `db:"status" json:"status"`
	ValidatedBy   *string        `db:"validated_by" json:"validated_by,omitempty"`
	ValidatedAt   *time.Time     `db:"validated_at" json:"validated_at,omitempty"`
	CancelReason  *string        `db:"cancel_reason" json:"cancel_reason,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

// CoverageStats tallies a date's coverages per state.
type CoverageStats struct {
	Assigned  int `db:"assigned" json:"assigned"`
	Validated int `db:"validated" json:"validated"`
	Cancelled int `db:"cancelled" json:"cancelled"`
}
