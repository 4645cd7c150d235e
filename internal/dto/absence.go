package dto

// AbsenceHourRequest describes one absent class hour.
type AbsenceHourRequest struct {
	Hour      int    `json:"hour" validate:"required,min=1,max=8"`
	GroupCode string `json:"group_code" validate:"required"`
	Room      string `json:"room" validate:"required"`
	Task      string `json:"task"`
}

// RegisterAbsenceRequest registers one teacher's absence day.
type RegisterAbsenceRequest struct {
	TeacherEmail string               `json:"teacher_email" validate:"required,email"`
	Date         string               `json:"date" validate:"required"`
	Hours        []AbsenceHourRequest `json:"hours" validate:"required,min=1,max=8,dive"`
}

// HourOutcome reports what happened to one absent hour during assignment.
// Either Coverage is set or Unfulfilled is true with a reason.
type HourOutcome struct {
	AbsenceHourID string        `json:"absence_hour_id"`
	Hour          int           `json:"hour"`
	GroupCode     string        `json:"group_code"`
	Room          string        `json:"room"`
	Task          string        `json:"task,omitempty"`
	Coverage      *CoverageItem `json:"coverage,omitempty"`
	Unfulfilled   bool          `json:"unfulfilled"`
	Reason        string        `json:"reason,omitempty"`
}

// AbsenceResponse is the result of registering an absence.
type AbsenceResponse struct {
	ID           string        `json:"id"`
	TeacherEmail string        `json:"teacher_email"`
	Date         string        `json:"date"`
	Hours        []HourOutcome `json:"hours"`
}

// AbsenceItem is one absence with its covering teachers resolved.
type AbsenceItem struct {
	ID           string            `json:"id"`
	TeacherEmail string            `json:"teacher_email"`
	Date         string            `json:"date"`
	Hours        []AbsenceHourItem `json:"hours"`
}

// AbsenceHourItem is one absent hour with its coverage, if any.
type AbsenceHourItem struct {
	ID        string        `json:"id"`
	Hour      int           `json:"hour"`
	GroupCode string        `json:"group_code"`
	Room      string        `json:"room"`
	Task      string        `json:"task,omitempty"`
	Coverage  *CoverageItem `json:"coverage,omitempty"`
}

// AbsencesByHour groups a date's absences per hour index.
type AbsencesByHour map[string][]AbsenceItem

// AbsenceHistory groups absences by date, then by hour.
type AbsenceHistory map[string]AbsencesByHour
