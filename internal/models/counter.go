package models

// DutyCounter tracks how many duties of each type a teacher has performed
// at a (weekday, hour) slot. Rows materialize lazily and only grow; the
// single legal writer is the coverage lifecycle on validation.
type DutyCounter struct {
	ID               string `db:"id" json:"id,omitempty"`
	TeacherEmail     string `db:"teacher_email" json:"teacher_email"`
	Weekday          int    `db:"weekday" json:"weekday"`
	Hour             int    `db:"hour" json:"hour"`
	NormalCount      int    `db:"normal_count" json:"normal_count"`
	ProblematicCount int    `db:"problematic_count" json:"problematic_count"`
	SupervisionCount int    `db:"supervision_count" json:"supervision_count"`
}

// CountFor returns the counter value for the given duty type.
func (c DutyCounter) CountFor(duty DutyType) int {
	switch duty {
	case DutyProblematic:
		return c.ProblematicCount
	case DutySupervision:
		return c.SupervisionCount
	default:
		return c.NormalCount
	}
}

// Total sums all three counters.
func (c DutyCounter) Total() int {
	return c.NormalCount + c.ProblematicCount + c.SupervisionCount
}
