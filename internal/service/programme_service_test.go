package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stmaths/advising-check/internal/catalogue"
	"github.com/stmaths/advising-check/internal/models"
)

const bscProgramme = "Bachelor of Science (Honours) Mathematics"

func compliantCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	codes := []string{
		"MT3501", "MT3502", "MT3503", "MT3504", "MT3505", "MT3506", "MT3507", "MT3510",
		"MT4003", "MT4004", "MT4005", "MT4512", "MT4514", "MT4515", "MT4526", "MT4599",
		"MT5867",
	}
	modules := make([]models.Module, 0, len(codes))
	for _, code := range codes {
		modules = append(modules, models.Module{Code: code})
	}
	return buildCatalogue(t, modules...)
}

// compliantStudent plans a full two-year BSc honours programme that meets
// every requirement.
func compliantStudent() *models.Student {
	student := &models.Student{
		StudentID:            1,
		ProgrammeName:        bscProgramme,
		ExpectedHonoursYears: 2,
		CurrentHonoursYear:   1,
	}
	add := func(year string, semester models.Semester, codes ...string) {
		for _, code := range codes {
			student.ModuleChoices = append(student.ModuleChoices, models.ModuleChoice{
				HonoursYear: year, Semester: semester, ModuleCode: code,
			})
		}
	}
	add("Year 1", models.SemesterOne, "MT3501", "MT3502", "MT3503", "MT3510")
	add("Year 1", models.SemesterTwo, "MT3504", "MT3505", "MT3506", "MT3507")
	add("Year 2", models.SemesterOne, "MT4512", "MT4514", "MT4515", "MT4526")
	add("Year 2", models.SemesterTwo, "MT4003", "MT4004", "MT4005", "MT4599")
	return student
}

func newProgrammeService(t *testing.T) *ProgrammeService {
	t.Helper()
	return NewProgrammeService(compliantCatalogue(t), "MT", nil)
}

func TestProgrammeCompliantPlan(t *testing.T) {
	findings, advisories := newProgrammeService(t).Check(compliantStudent())
	assert.Empty(t, findings)
	assert.Empty(t, advisories)
}

func TestProgrammeUnknownProgrammeHasNoRules(t *testing.T) {
	student := compliantStudent()
	student.ProgrammeName = "Master of Arts (Honours) Philosophy"

	findings, advisories := newProgrammeService(t).Check(student)
	assert.Equal(t, []string{"No programme requirements available"}, findings)
	assert.Empty(t, advisories)
}

func TestProgrammeDuplicateSelections(t *testing.T) {
	student := compliantStudent()
	student.PassedModules = []string{"MT3501", "MT3504"}

	findings, _ := newProgrammeService(t).Check(student)
	assert.Contains(t, findings, "Student selected the following modules twice: MT3501, MT3504")
}

func TestProgrammeNonexistentModule(t *testing.T) {
	student := compliantStudent()
	student.ModuleChoices[2].ModuleCode = "MT9999"

	findings, _ := newProgrammeService(t).Check(student)
	assert.Contains(t, findings, "Student is planning to take MT9999 (which does not exist)")
}

func TestProgrammeCreditLoadShortfall(t *testing.T) {
	student := compliantStudent()
	student.ModuleChoices = student.ModuleChoices[:len(student.ModuleChoices)-1]

	findings, _ := newProgrammeService(t).Check(student)
	assert.Contains(t, findings, "Not collecting 120 credits in Year 2")
	// Dropping MT4599 also loses the project.
	assert.Contains(t, findings, "Student is not taking an allowed final year project")
}

func TestProgrammeUnevenFirstYearSplit(t *testing.T) {
	student := compliantStudent()
	// Move a first-year module from semester two to semester one.
	for i := range student.ModuleChoices {
		if student.ModuleChoices[i].ModuleCode == "MT3504" {
			student.ModuleChoices[i].Semester = models.SemesterOne
		}
	}

	_, advisories := newProgrammeService(t).Check(student)
	assert.Equal(t, []string{
		"Not taking even credit split in Year 1",
		"Not taking even credit split in Year 1",
	}, advisories)
}

func TestProgrammeFinalYearOverload(t *testing.T) {
	student := compliantStudent()
	for i := range student.ModuleChoices {
		if student.ModuleChoices[i].ModuleCode == "MT4512" {
			student.ModuleChoices[i].Semester = models.SemesterTwo
		}
	}

	_, advisories := newProgrammeService(t).Check(student)
	assert.Contains(t, advisories,
		"Student is taking a high course load in second semester of final honours year")
}

func TestProgrammeMissingCoreModules(t *testing.T) {
	student := compliantStudent()
	for i := range student.ModuleChoices {
		switch student.ModuleChoices[i].ModuleCode {
		case "MT3501", "MT3502", "MT3503", "MT3504", "MT3505":
			student.ModuleChoices[i].ModuleCode = "MT4003"
		}
	}

	findings, _ := newProgrammeService(t).Check(student)
	assert.Contains(t, findings, "Student is only taking 2 out of MT3501-MT3508")
}

func TestProgrammeMissingComputingModule(t *testing.T) {
	student := compliantStudent()
	for i := range student.ModuleChoices {
		if student.ModuleChoices[i].ModuleCode == "MT3510" {
			student.ModuleChoices[i].ModuleCode = "MT3508"
		}
	}

	findings, _ := newProgrammeService(t).Check(student)
	assert.Contains(t, findings, "Student is not taking a computing module")
}

func TestProgrammeProjectInWrongYear(t *testing.T) {
	student := compliantStudent()
	for i := range student.ModuleChoices {
		switch student.ModuleChoices[i].ModuleCode {
		case "MT4599":
			student.ModuleChoices[i].ModuleCode = "MT3506"
			student.ModuleChoices[i].HonoursYear = "Year 1"
		case "MT3506":
			student.ModuleChoices[i].ModuleCode = "MT4599"
		}
	}

	findings, _ := newProgrammeService(t).Check(student)
	assert.Contains(t, findings, "Student is not taking their final year project in their final year.")
}

func TestProgrammeProjectPassedNotPlanned(t *testing.T) {
	student := compliantStudent()
	for i := range student.ModuleChoices {
		if student.ModuleChoices[i].ModuleCode == "MT4599" {
			student.ModuleChoices[i].ModuleCode = "MT3508"
		}
	}
	student.PassedModules = []string{"MT4599"}

	findings, _ := newProgrammeService(t).Check(student)
	assert.NotContains(t, findings, "Student is not taking their final year project in their final year.")
	assert.NotContains(t, findings, "Student is not taking an allowed final year project")
}

func TestProgrammeBarredModule(t *testing.T) {
	student := compliantStudent()
	student.ModuleChoices[8].ModuleCode = "MT4794"

	findings, _ := newProgrammeService(t).Check(student)
	assert.Contains(t, findings, "Student is taking a module in MT4794-MT4797")
}

func TestProgrammeTooManyDipModules(t *testing.T) {
	student := compliantStudent()
	student.ModuleChoices[0].ModuleCode = "PH3081"
	student.ModuleChoices[1].ModuleCode = "CS3052"
	student.ModuleChoices[2].ModuleCode = "ID4001"

	findings, advisories := newProgrammeService(t).Check(student)
	assert.Contains(t, findings,
		"Student is taking more than 2 modules as dip-down or dip-across, which is not allowed.")
	assert.Contains(t, advisories,
		"Student is planning to take non-MT modules, which requires permission")
}

func TestProgrammeNotEnoughAdvancedCredits(t *testing.T) {
	student := compliantStudent()
	for i := range student.ModuleChoices {
		switch student.ModuleChoices[i].ModuleCode {
		case "MT4512", "MT4514", "MT4515":
			student.ModuleChoices[i].ModuleCode = "MT3508"
		}
	}

	findings, _ := newProgrammeService(t).Check(student)
	assert.Contains(t, findings, "Student is not planning to take enough credits at 4000 level or above")
}

func TestProgrammePermissionAdvisories(t *testing.T) {
	student := compliantStudent()
	student.ModuleChoices[8].ModuleCode = "MT5867"

	_, advisories := newProgrammeService(t).Check(student)
	assert.Contains(t, advisories,
		"Student is planning to take 5000 level modules (which will require permission)")
}
