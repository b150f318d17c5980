package dto

import "github.com/stmaths/advising-check/internal/models"

// FormSection is one "Year N of Honours: Semester M" block of a submitted
// module choice form, with module codes in form order.
type FormSection struct {
	HonoursYear string // "Year 1"
	Semester    models.Semester
	Modules     []string
}

// FormSubmission is the structured extraction of one module choice form.
type FormSubmission struct {
	SourceFile string
	StudentID  int
	Sections   []FormSection
}

// Modules returns the codes listed under the given year and semester, or
// nil when the form has no such section.
func (f FormSubmission) Modules(honoursYear string, semester models.Semester) []string {
	for _, section := range f.Sections {
		if section.HonoursYear == honoursYear && section.Semester == semester {
			return section.Modules
		}
	}
	return nil
}
