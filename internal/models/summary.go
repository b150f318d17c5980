package models

import "strconv"

// Summary report column headers, in export order.
const (
	HeaderStudentID   = "Student ID"
	HeaderName        = "Name"
	HeaderProgramme   = "Programme"
	HeaderHonoursYear = "Hon. year"
	HeaderProgrammeF  = "Unmet programme requirements"
	HeaderPrereqF     = "Missing prerequisites"
	HeaderSchedulingF = "Modules not running"
	HeaderTimetableF  = "Timetable clashes"
	HeaderAdviser     = "Adviser recommendations"
)

// SummaryHeaders returns the report columns in export order.
func SummaryHeaders() []string {
	return []string{
		HeaderStudentID,
		HeaderName,
		HeaderProgramme,
		HeaderHonoursYear,
		HeaderProgrammeF,
		HeaderPrereqF,
		HeaderSchedulingF,
		HeaderTimetableF,
		HeaderAdviser,
	}
}

// SummaryRow is one processed student in the batch report. Rows are created
// once per input file and never mutated after assembly.
type SummaryRow struct {
	StudentID            int
	Name                 string
	Programme            string
	HonoursYear          int
	ProgrammeFindings    string
	PrerequisiteFindings string
	SchedulingFindings   string
	TimetableFindings    string
	AdviserNotes         string
}

// NewSentinelRow builds the placeholder row reported when a form cannot be
// matched to a valid, recognized student record. The explanatory message
// occupies the programme findings column so it stands out in the report.
func NewSentinelRow(message string) SummaryRow {
	return SummaryRow{
		StudentID:            0,
		Name:                 "Unknown",
		Programme:            "Unknown",
		HonoursYear:          0,
		ProgrammeFindings:    message,
		PrerequisiteFindings: " ",
		SchedulingFindings:   " ",
		TimetableFindings:    " ",
		AdviserNotes:         " ",
	}
}

// Values maps the row onto the export headers.
func (r SummaryRow) Values() map[string]string {
	return map[string]string{
		HeaderStudentID:   strconv.Itoa(r.StudentID),
		HeaderName:        r.Name,
		HeaderProgramme:   r.Programme,
		HeaderHonoursYear: strconv.Itoa(r.HonoursYear),
		HeaderProgrammeF:  r.ProgrammeFindings,
		HeaderPrereqF:     r.PrerequisiteFindings,
		HeaderSchedulingF: r.SchedulingFindings,
		HeaderTimetableF:  r.TimetableFindings,
		HeaderAdviser:     r.AdviserNotes,
	}
}
