package catalogue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stmaths/advising-check/internal/models"
	appErrors "github.com/stmaths/advising-check/pkg/errors"
)

func writeCatalogueFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "module_catalogue.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCatalogueFile(t, `Module code,Semester,Year,Alternate years,Prerequisites,Antirequisites,Timetable
MT3501,S1,2023/2024,No,MT2501,,9am Mon
MT4512,S2,2023/2024,Yes,MT3501 and MT3502,MT5812,"10am Tue, 10am Thu"
`)

	cat, err := LoadCSV(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	module, ok := cat.Lookup("MT4512")
	require.True(t, ok)
	assert.Equal(t, models.SemesterTwo, module.Semester)
	assert.True(t, module.Alternating)
	assert.Equal(t, "MT3501 and MT3502", module.Prerequisites)
	assert.Equal(t, "MT5812", module.Antirequisites)
	assert.Equal(t, "10am Tue, 10am Thu", module.Timetable)

	_, ok = cat.Lookup("MT9999")
	assert.False(t, ok)
}

func TestLoadCSVBadAlternatingFlagIsFatal(t *testing.T) {
	path := writeCatalogueFile(t, `Module code,Semester,Year,Alternate years
MT3501,S1,2023/2024,Maybe
`)

	_, err := LoadCSV(path, nil)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrCatalogue))
	assert.False(t, appErrors.IsRecoverable(err))
	assert.Contains(t, err.Error(), "MT3501")
}

func TestLoadCSVMissingColumn(t *testing.T) {
	path := writeCatalogueFile(t, `Module code,Semester,Year
MT3501,S1,2023/2024
`)

	_, err := LoadCSV(path, nil)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrCatalogue))
}

func TestNewRejectsInvalidModuleCode(t *testing.T) {
	_, err := New([]models.Module{
		{Code: "maths", Semester: models.SemesterOne, IntakeYear: "2023/2024"},
	}, nil)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrCatalogue))
}

func TestNewRejectsDuplicateCode(t *testing.T) {
	rows := []models.Module{
		{Code: "MT3501", Semester: models.SemesterOne, IntakeYear: "2023/2024"},
		{Code: "MT3501", Semester: models.SemesterTwo, IntakeYear: "2023/2024"},
	}
	_, err := New(rows, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewAcceptsFullYearSemester(t *testing.T) {
	cat, err := New([]models.Module{
		{Code: "MT4599", Semester: models.SemesterFullYear, IntakeYear: "2023/2024"},
	}, nil)
	require.NoError(t, err)
	assert.True(t, cat.Has("MT4599"))
}
