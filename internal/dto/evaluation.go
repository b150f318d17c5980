package dto

// EvaluationResult carries the five delimited finding strings for one
// student. Each category is a ", "-joined string, or the literal "None"
// when the category is empty.
type EvaluationResult struct {
	ProgrammeFindings    string
	PrerequisiteFindings string
	SchedulingFindings   string
	TimetableFindings    string
	AdviserNotes         string
}
