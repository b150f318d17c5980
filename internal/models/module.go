package models

import "regexp"

// Semester identifies when a module runs within an academic year.
type Semester string

const (
	SemesterOne      Semester = "S1"
	SemesterTwo      Semester = "S2"
	SemesterFullYear Semester = "Full Year"
)

// ModuleCodePattern matches institutional module codes, e.g. MT3501.
var ModuleCodePattern = regexp.MustCompile(`[A-Z]{2}\d{4}`)

// Module is one row of the module catalogue. The catalogue is loaded once
// per run and treated as read-only afterwards.
type Module struct {
	Code           string   `db:"code" validate:"required,module_code"`
	Semester       Semester `db:"semester" validate:"required,oneof=S1 S2 'Full Year'"`
	IntakeYear     string   `db:"intake_year" validate:"required"`
	Alternating    bool     `db:"alternating"`
	Prerequisites  string   `db:"prerequisites"`
	Antirequisites string   `db:"antirequisites"`
	Timetable      string   `db:"timetable"`
}
