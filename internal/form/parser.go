// Package form extracts the structured content of a submitted honours
// module choice form (xlsx).
package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/stmaths/advising-check/internal/dto"
	"github.com/stmaths/advising-check/internal/models"
	appErrors "github.com/stmaths/advising-check/pkg/errors"
)

// sectionHeaderPattern matches the per-year, per-semester block headings of
// the choice form, e.g. "Year 2 of Honours: Semester 1".
var sectionHeaderPattern = regexp.MustCompile(`Year (\d) of Honours: Semester ([12])`)

// moduleColumn is the zero-based column holding headings and module codes.
const moduleColumn = 1

// Parser reads module choice forms.
type Parser struct {
	studentIDCell string
	subjectPrefix string
}

// NewParser constructs a form Parser. Numeric-only module entries are
// normalized by prefixing the subject code.
func NewParser(studentIDCell, subjectPrefix string) *Parser {
	if studentIDCell == "" {
		studentIDCell = "D5"
	}
	if subjectPrefix == "" {
		subjectPrefix = "MT"
	}
	return &Parser{studentIDCell: studentIDCell, subjectPrefix: subjectPrefix}
}

// Parse extracts the student ID and every section of the form.
func (p *Parser) Parse(path string) (dto.FormSubmission, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return dto.FormSubmission{}, fmt.Errorf("open form file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	sheet := file.GetSheetName(0)

	rawID, err := file.GetCellValue(sheet, p.studentIDCell)
	if err != nil {
		return dto.FormSubmission{}, fmt.Errorf("read student ID cell: %w", err)
	}
	studentID, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil || studentID <= 0 {
		return dto.FormSubmission{SourceFile: path}, appErrors.Clone(appErrors.ErrNoStudentID, "")
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return dto.FormSubmission{}, fmt.Errorf("read form rows: %w", err)
	}

	submission := dto.FormSubmission{SourceFile: path, StudentID: studentID}
	for rowIndex := range rows {
		match := sectionHeaderPattern.FindStringSubmatch(cellAt(rows, rowIndex, moduleColumn))
		if match == nil {
			continue
		}
		section := dto.FormSection{
			HonoursYear: "Year " + match[1],
			Semester:    models.Semester("S" + match[2]),
		}
		// Module entries start two rows below the heading and run until
		// the first empty cell.
		for entryRow := rowIndex + 2; entryRow < len(rows); entryRow++ {
			entry := strings.TrimSpace(cellAt(rows, entryRow, moduleColumn))
			if entry == "" {
				break
			}
			section.Modules = append(section.Modules, p.normalizeCode(entry))
		}
		submission.Sections = append(submission.Sections, section)
	}
	return submission, nil
}

func (p *Parser) normalizeCode(entry string) string {
	if _, err := strconv.Atoi(entry); err == nil {
		return p.subjectPrefix + entry
	}
	return entry
}

func cellAt(rows [][]string, row, col int) string {
	if row >= len(rows) || col >= len(rows[row]) {
		return ""
	}
	return rows[row][col]
}
