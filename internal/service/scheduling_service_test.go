package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stmaths/advising-check/internal/models"
	appErrors "github.com/stmaths/advising-check/pkg/errors"
)

func TestSchedulingWrongSemester(t *testing.T) {
	cat := buildCatalogue(t, models.Module{Code: "MT3504", Semester: models.SemesterTwo})
	svc := NewSchedulingService(cat, nil)

	student := plannedStudent(nil, choiceOf("Year 1", models.SemesterOne, "MT3504"))
	findings, err := svc.Check(student)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Selected module MT3504 for Semester S1 but it is actually running in S2"},
		findings)
}

func TestSchedulingFullYearModuleMatchesEitherSemester(t *testing.T) {
	cat := buildCatalogue(t, models.Module{Code: "MT4599", Semester: models.SemesterFullYear})
	svc := NewSchedulingService(cat, nil)

	student := plannedStudent(nil, choiceOf("Year 2", models.SemesterTwo, "MT4599"))
	findings, err := svc.Check(student)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestSchedulingAlternatingModuleOffYear(t *testing.T) {
	cat := buildCatalogue(t, models.Module{
		Code:        "MT4526",
		Semester:    models.SemesterOne,
		IntakeYear:  "2022/2023",
		Alternating: true,
	})
	svc := NewSchedulingService(cat, nil)

	offYear := plannedStudent(nil, choiceOf("Year 1", models.SemesterOne, "MT4526"))
	findings, err := svc.Check(offYear)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Selected module MT4526 is not running in academic year 2023/2024"},
		findings)

	onYear := plannedStudent(nil, models.ModuleChoice{
		HonoursYear: "Year 2", AcademicYear: "2024/2025",
		Semester: models.SemesterOne, ModuleCode: "MT4526",
	})
	findings, err = svc.Check(onYear)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestSchedulingFutureIntake(t *testing.T) {
	cat := buildCatalogue(t, models.Module{
		Code:       "MT4113",
		Semester:   models.SemesterOne,
		IntakeYear: "2024/2025",
	})
	svc := NewSchedulingService(cat, nil)

	student := plannedStudent(nil, choiceOf("Year 1", models.SemesterOne, "MT4113"))
	findings, err := svc.Check(student)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Selected module MT4113 is not running in academic year 2023/2024"},
		findings)
}

func TestSchedulingInvalidIntakeYearIsFatal(t *testing.T) {
	cat := buildCatalogue(t, models.Module{Code: "MT3501", IntakeYear: "n/a"})
	svc := NewSchedulingService(cat, nil)

	student := plannedStudent(nil, choiceOf("Year 1", models.SemesterOne, "MT3501"))
	_, err := svc.Check(student)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrCatalogue))
}

func TestSchedulingSkipsUnknownModules(t *testing.T) {
	cat := buildCatalogue(t, models.Module{Code: "MT3501"})
	svc := NewSchedulingService(cat, nil)

	student := plannedStudent(nil, choiceOf("Year 1", models.SemesterOne, "MT9999"))
	findings, err := svc.Check(student)
	require.NoError(t, err)
	assert.Empty(t, findings)
}
