package models

// ResultPass is the assessment result code recorded for a passed module.
const ResultPass = "P"

// AcademicRecord is one historical module outcome for a student, as pulled
// from a record source (CSV extract or records database).
type AcademicRecord struct {
	StudentID     int    `db:"student_id" csv:"Student ID"`
	ModuleCode    string `db:"module_code" csv:"Module code"`
	AcademicYear  string `db:"academic_year" csv:"Year"`
	Result        string `db:"result" csv:"Assessment result"`
	ProgrammeName string `db:"programme_name" csv:"Programme name"`
	GivenNames    string `db:"given_names" csv:"Given names"`
	FamilyName    string `db:"family_name" csv:"Family name"`
	Email         string `db:"email" csv:"Email"`
}

// Passed reports whether the record is a pass.
func (r AcademicRecord) Passed() bool {
	return r.Result == ResultPass
}
