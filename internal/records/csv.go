package records

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stmaths/advising-check/internal/models"
)

// Record CSV column headers, matching the registry export format.
const (
	columnStudentID  = "Student ID"
	columnModuleCode = "Module code"
	columnYear       = "Year"
	columnResult     = "Assessment result"
	columnProgramme  = "Programme name"
	columnGivenNames = "Given names"
	columnFamilyName = "Family name"
	columnEmail      = "Email"
)

// CSVProvider reads student records from every .csv file in a directory.
// Each file is one source table; lookups scan the files in name order and
// return the rows of the first file that contains the student.
type CSVProvider struct {
	dir string
}

// NewCSVProvider constructs a CSVProvider over a directory of extracts.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir}
}

// FindByStudentID scans all record files for the given student ID.
func (p *CSVProvider) FindByStudentID(ctx context.Context, studentID int) ([]models.AcademicRecord, error) {
	files, err := p.listFiles()
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := readRecordFile(path, studentID)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, nil
}

func (p *CSVProvider) listFiles() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("read record directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(p.dir, entry.Name()))
	}
	return files, nil
}

func readRecordFile(path string, studentID int) ([]models.AcademicRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read record header in %s: %w", filepath.Base(path), err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []models.AcademicRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record row in %s: %w", filepath.Base(path), err)
		}
		id, err := strconv.Atoi(field(record, columnStudentID))
		if err != nil {
			continue
		}
		if id != studentID {
			continue
		}
		rows = append(rows, models.AcademicRecord{
			StudentID:     id,
			ModuleCode:    field(record, columnModuleCode),
			AcademicYear:  field(record, columnYear),
			Result:        field(record, columnResult),
			ProgrammeName: field(record, columnProgramme),
			GivenNames:    field(record, columnGivenNames),
			FamilyName:    field(record, columnFamilyName),
			Email:         field(record, columnEmail),
		})
	}
	return rows, nil
}
