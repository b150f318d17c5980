// Package catalogue holds the in-memory module catalogue: one row per
// module code, loaded once per run and read-only afterwards.
package catalogue

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/stmaths/advising-check/internal/models"
	appErrors "github.com/stmaths/advising-check/pkg/errors"
)

// Catalogue is an immutable lookup table keyed by module code.
type Catalogue struct {
	modules map[string]models.Module
}

// NewValidator returns a validator with the module_code rule registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for blank tags.
	_ = v.RegisterValidation("module_code", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		return models.ModuleCodePattern.FindString(code) == code
	})
	return v
}

// New validates the given rows and builds a catalogue. Invalid rows and
// duplicate codes are catalogue data-entry errors and abort the run.
func New(rows []models.Module, validate *validator.Validate) (*Catalogue, error) {
	if validate == nil {
		validate = NewValidator()
	}
	modules := make(map[string]models.Module, len(rows))
	for _, row := range rows {
		if err := validate.Struct(row); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrCatalogue.Code, true,
				fmt.Sprintf("invalid catalogue entry for module %q", row.Code))
		}
		if _, exists := modules[row.Code]; exists {
			return nil, appErrors.Clone(appErrors.ErrCatalogue,
				fmt.Sprintf("duplicate catalogue entry for module %s", row.Code))
		}
		modules[row.Code] = row
	}
	return &Catalogue{modules: modules}, nil
}

// Lookup returns the catalogue row for a module code. A miss means
// "unknown module" and is reported through the boolean, never an error.
func (c *Catalogue) Lookup(code string) (models.Module, bool) {
	module, ok := c.modules[code]
	return module, ok
}

// Has reports whether the module code exists in the catalogue.
func (c *Catalogue) Has(code string) bool {
	_, ok := c.modules[code]
	return ok
}

// Len returns the number of catalogued modules.
func (c *Catalogue) Len() int {
	return len(c.modules)
}
