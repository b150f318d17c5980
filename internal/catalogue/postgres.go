package catalogue

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/stmaths/advising-check/internal/models"
	appErrors "github.com/stmaths/advising-check/pkg/errors"
)

// Repository loads the module catalogue from a records database table.
type Repository struct {
	db    *sqlx.DB
	table string
}

// NewRepository constructs a catalogue Repository.
func NewRepository(db *sqlx.DB, table string) *Repository {
	if table == "" {
		table = "module_catalogue"
	}
	return &Repository{db: db, table: table}
}

// ListAll returns every catalogue row ordered by module code.
func (r *Repository) ListAll(ctx context.Context) ([]models.Module, error) {
	query := fmt.Sprintf(`SELECT code, semester, intake_year, alternating,
        COALESCE(prerequisites, '') AS prerequisites,
        COALESCE(antirequisites, '') AS antirequisites,
        COALESCE(timetable, '') AS timetable
        FROM %s ORDER BY code`, r.table)
	var rows []models.Module
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list catalogue: %w", err)
	}
	return rows, nil
}

// LoadDB reads the full catalogue from the database and builds the
// immutable in-memory table.
func LoadDB(ctx context.Context, db *sqlx.DB, table string, validate *validator.Validate) (*Catalogue, error) {
	rows, err := NewRepository(db, table).ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCatalogue.Code, true, "load catalogue from database")
	}
	return New(rows, validate)
}
