package models

import (
	"time"
)

// DateLayout is the wire/database format for absence dates.
const DateLayout = "2006-01-02"

// Absence is a teacher's registered unavailability for one day.
// Its AbsenceHour children are created atomically with it.
type Absence struct {
	ID           string    `db:"id" json:"id"`
	TeacherEmail string    `db:"teacher_email" json:"teacher_email"`
	Date         time.Time `db:"date" json:"date"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	Hours []AbsenceHour `db:"-" json:"hours,omitempty"`
}

// AbsenceHour is one absent class hour within an absence day.
type AbsenceHour struct {
	ID        string  `db:"id" json:"id"`
	AbsenceID string  `db:"absence_id" json:"absence_id"`
	Hour      int     `db:"hour" json:"hour"`
	GroupCode string  `db:"group_code" json:"group_code"`
	Room      string  `db:"room" json:"room"`
	Task      *string `db:"task" json:"task,omitempty"`
}

// Weekday converts a date to the 1..5 school weekday index (Monday=1).
// ok is false for weekend dates, which carry no duty roster.
func Weekday(date time.Time) (int, bool) {
	switch date.Weekday() {
	case time.Monday:
		return 1, true
	case time.Tuesday:
		return 2, true
	case time.Wednesday:
		return 3, true
	case time.Thursday:
		return 4, true
	case time.Friday:
		return 5, true
	default:
		return 0, false
	}
}
