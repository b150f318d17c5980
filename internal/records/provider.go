// Package records supplies historical academic rows for a student from one
// or more source tables (CSV extracts or a records database).
package records

import (
	"context"

	"github.com/stmaths/advising-check/internal/models"
)

// Provider looks a student up across every table it fronts. A student that
// appears in none of the tables yields an empty slice, not an error.
type Provider interface {
	FindByStudentID(ctx context.Context, studentID int) ([]models.AcademicRecord, error)
}

// MultiProvider scans a list of providers in order and returns the rows of
// the first one that knows the student.
type MultiProvider struct {
	providers []Provider
}

// NewMultiProvider chains record providers.
func NewMultiProvider(providers ...Provider) *MultiProvider {
	return &MultiProvider{providers: providers}
}

// FindByStudentID scans all chained providers until one yields rows.
func (m *MultiProvider) FindByStudentID(ctx context.Context, studentID int) ([]models.AcademicRecord, error) {
	for _, provider := range m.providers {
		rows, err := provider.FindByStudentID(ctx, studentID)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, nil
}
