package catalogue

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stmaths/advising-check/internal/models"
	appErrors "github.com/stmaths/advising-check/pkg/errors"
)

// Expected catalogue CSV column headers.
const (
	columnCode           = "Module code"
	columnSemester       = "Semester"
	columnYear           = "Year"
	columnAlternateYears = "Alternate years"
	columnPrerequisites  = "Prerequisites"
	columnAntirequisites = "Antirequisites"
	columnTimetable      = "Timetable"
)

// LoadCSV reads the module catalogue from a CSV file. Any malformed row is
// fatal: catalogue problems need a manual data fix, not a per-student
// warning.
func LoadCSV(path string, validate *validator.Validate) (*Catalogue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCatalogue.Code, true, "open module catalogue")
	}
	defer file.Close() //nolint:errcheck

	rows, err := readRows(file)
	if err != nil {
		return nil, err
	}
	return New(rows, validate)
}

func readRows(r io.Reader) ([]models.Module, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCatalogue.Code, true, "read catalogue header")
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{columnCode, columnSemester, columnYear, columnAlternateYears} {
		if _, ok := index[required]; !ok {
			return nil, appErrors.Clone(appErrors.ErrCatalogue,
				fmt.Sprintf("catalogue is missing the %q column", required))
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []models.Module
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrCatalogue.Code, true, "read catalogue row")
		}

		code := field(record, columnCode)
		alternating, err := parseAlternating(code, field(record, columnAlternateYears))
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.Module{
			Code:           code,
			Semester:       models.Semester(field(record, columnSemester)),
			IntakeYear:     field(record, columnYear),
			Alternating:    alternating,
			Prerequisites:  field(record, columnPrerequisites),
			Antirequisites: field(record, columnAntirequisites),
			Timetable:      field(record, columnTimetable),
		})
	}
	return rows, nil
}

// parseAlternating accepts the literal flags "Yes" and "No". Anything else
// indicates a catalogue data-entry error requiring a manual fix.
func parseAlternating(code, raw string) (bool, error) {
	switch raw {
	case "Yes":
		return true, nil
	case "No":
		return false, nil
	default:
		return false, appErrors.Clone(appErrors.ErrCatalogue,
			fmt.Sprintf("cannot tell if module %s is alternating or not. Check the table entry.", code))
	}
}
