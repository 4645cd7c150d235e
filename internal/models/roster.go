package models

// DutyTeacher is an on-duty teacher as reported by the timetable service.
type DutyTeacher struct {
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}
