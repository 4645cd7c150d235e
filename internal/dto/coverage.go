package dto

import "time"

// CoverageItem is the wire representation of a coverage.
type CoverageItem struct {
	ID            string     `json:"id"`
	AbsenceHourID string     `json:"absence_hour_id,omitempty"`
	Date          string     `json:"date"`
	Hour          int        `json:"hour"`
	TeacherEmail  string     `json:"teacher_email"`
	GroupCode     string     `json:"group_code"`
	Room          string     `json:"room"`
	DutyType      string     `json:"duty_type"`
	Status        string     `json:"status"`
	ValidatedBy   string     `json:"validated_by,omitempty"`
	ValidatedAt   *time.Time `json:"validated_at,omitempty"`
	CancelReason  string     `json:"cancel_reason,omitempty"`
}

// CancelCoverageRequest carries the administrator's cancellation reason.
type CancelCoverageRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// ValidateDayRequest validates every assigned coverage of one date.
type ValidateDayRequest struct {
	Date string `json:"date" validate:"required"`
}

// ValidateDayResponse reports how many coverages were validated.
type ValidateDayResponse struct {
	Date      string `json:"date"`
	Validated int    `json:"validated"`
	Skipped   int    `json:"skipped"`
}

// RedistributeRequest recomputes coverage for specific slots of a date.
type RedistributeRequest struct {
	Date  string `json:"date" validate:"required"`
	Hours []int  `json:"hours" validate:"required,min=1,max=8,dive,min=1,max=8"`
}

// CoverageStatsItem tallies a date's coverages per state.
type CoverageStatsItem struct {
	Date      string `json:"date"`
	Assigned  int    `json:"assigned"`
	Validated int    `json:"validated"`
	Cancelled int    `json:"cancelled"`
}

// SupervisionPreviewItem names the teacher who would take the supervision
// post for a slot, without persisting anything.
type SupervisionPreviewItem struct {
	Date             string `json:"date"`
	Hour             int    `json:"hour"`
	TeacherEmail     string `json:"teacher_email"`
	TeacherName      string `json:"teacher_name,omitempty"`
	SupervisionCount int    `json:"supervision_count"`
}
