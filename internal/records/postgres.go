package records

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/stmaths/advising-check/internal/models"
)

// Repository reads student records from one table of the records database.
// Configure one Repository per source table and chain them through a
// MultiProvider when records are split across tables.
type Repository struct {
	db    *sqlx.DB
	table string
}

// NewRepository constructs a record Repository over the given table.
func NewRepository(db *sqlx.DB, table string) *Repository {
	if table == "" {
		table = "academic_records"
	}
	return &Repository{db: db, table: table}
}

// FindByStudentID returns every historical row for the student.
func (r *Repository) FindByStudentID(ctx context.Context, studentID int) ([]models.AcademicRecord, error) {
	query := fmt.Sprintf(`SELECT student_id, module_code, academic_year, result,
        programme_name, given_names, family_name, email
        FROM %s WHERE student_id = $1 ORDER BY academic_year, module_code`, r.table)
	var rows []models.AcademicRecord
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("find records for student %d: %w", studentID, err)
	}
	return rows, nil
}
