package dto

// CounterItem is the wire representation of one duty counter key.
type CounterItem struct {
	TeacherEmail     string `json:"teacher_email"`
	Weekday          int    `json:"weekday"`
	Hour             int    `json:"hour"`
	NormalCount      int    `json:"normal_count"`
	ProblematicCount int    `json:"problematic_count"`
	SupervisionCount int    `json:"supervision_count"`
	Total            int    `json:"total"`
}

// CounterResetResponse reports how many counter rows an administrative
// reset removed.
type CounterResetResponse struct {
	TeacherEmail string `json:"teacher_email"`
	Removed      int64  `json:"removed"`
}
