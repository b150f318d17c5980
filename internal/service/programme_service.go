package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/stmaths/advising-check/internal/catalogue"
	"github.com/stmaths/advising-check/internal/models"
)

const (
	projectModuleBSc   = "MT4599"
	projectModuleMMath = "MT5599"
)

var (
	subhonoursCoreModules = []string{"MT3501", "MT3502", "MT3503", "MT3504", "MT3505", "MT3506", "MT3507", "MT3508"}
	computingModules      = []string{"MT3510", "MT4111", "MT4112", "MT4113"}
	projectModules        = []string{"MT4598", projectModuleBSc}
	barredModules         = []string{"MT4794", "MT4795", "MT4796", "MT4797"}
	honoursLevelPrefixes  = []string{"MT2", "MT3", "MT4", "MT5"}
)

// programmeRule checks one degree requirement against a student's plan.
type programmeRule func(student *models.Student) (findings, advisories []string)

// programmeRules keys each recognized programme to its requirement set.
// Programmes without an entry get a single "no requirements" finding so
// the adviser knows the plan was not vetted.
var programmeRules = map[string][]programmeRule{
	"Bachelor of Science (Honours) Mathematics": {
		checkCreditLoad,
		checkCreditSplit,
		checkSubhonoursCore,
		checkComputingModule,
		checkFinalYearProject,
		checkBarredModules,
		checkDipModules,
		checkAdvancedCredits,
		checkPermissionNotes,
	},
}

// ProgrammeService checks a student's plan against their degree
// programme's requirements.
type ProgrammeService struct {
	catalogue     *catalogue.Catalogue
	subjectPrefix string
	logger        *zap.Logger
}

// NewProgrammeService wires the programme requirement checker.
func NewProgrammeService(cat *catalogue.Catalogue, subjectPrefix string, logger *zap.Logger) *ProgrammeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if subjectPrefix == "" {
		subjectPrefix = "MT"
	}
	return &ProgrammeService{catalogue: cat, subjectPrefix: subjectPrefix, logger: logger}
}

// Check returns unmet programme requirements and adviser notes. Duplicate
// selections and nonexistent modules are reported for every programme;
// degree requirements only for programmes with a rule set.
func (s *ProgrammeService) Check(student *models.Student) (findings []string, advisories []string) {
	findings = append(findings, s.checkDuplicates(student)...)
	findings = append(findings, s.checkModulesExist(student)...)

	rules, ok := programmeRules[student.ProgrammeName]
	if !ok {
		findings = append(findings, "No programme requirements available")
		return findings, advisories
	}
	for _, rule := range rules {
		ruleFindings, ruleAdvisories := rule(student)
		findings = append(findings, ruleFindings...)
		advisories = append(advisories, ruleAdvisories...)
	}
	return findings, advisories
}

// checkDuplicates reports modules that appear more than once across the
// student's passed and planned modules, each named once.
func (s *ProgrammeService) checkDuplicates(student *models.Student) []string {
	counts := make(map[string]int)
	for _, code := range student.FullModuleList() {
		counts[code]++
	}
	var duplicates []string
	seen := make(map[string]bool)
	for _, code := range student.FullModuleList() {
		if counts[code] > 1 && !seen[code] {
			seen[code] = true
			duplicates = append(duplicates, code)
		}
	}
	if len(duplicates) == 0 {
		return nil
	}
	return []string{"Student selected the following modules twice: " + strings.Join(duplicates, ", ")}
}

func (s *ProgrammeService) checkModulesExist(student *models.Student) []string {
	var findings []string
	for _, code := range student.PlannedModules() {
		if strings.HasPrefix(code, s.subjectPrefix) && !s.catalogue.Has(code) {
			findings = append(findings, fmt.Sprintf("Student is planning to take %s (which does not exist)", code))
		}
	}
	return findings
}

// checkCreditLoad verifies each planned honours year carries a full 120
// credits: eight module entries, or seven in a third honours year where
// the project is worth double.
func checkCreditLoad(student *models.Student) ([]string, []string) {
	var findings []string
	for _, label := range student.HonoursYearLabels() {
		entries := len(student.ChoicesFor(label, ""))
		expected := 8
		if label == "Year 3" {
			expected = 7
		}
		if entries != expected {
			findings = append(findings, "Not collecting 120 credits in "+label)
		}
	}
	return findings, nil
}

// checkCreditSplit advises on uneven semester loads. Final honours years
// get a looser check that discounts the full-year project module.
func checkCreditSplit(student *models.Student) ([]string, []string) {
	var advisories []string
	for _, label := range student.HonoursYearLabels() {
		switch {
		case label == "Year 1" || (label == "Year 2" && student.ExpectedHonoursYears == 3):
			for _, semester := range []models.Semester{models.SemesterOne, models.SemesterTwo} {
				if len(student.ChoicesFor(label, semester)) != 4 {
					advisories = append(advisories, "Not taking even credit split in "+label)
				}
			}
		case label == "Year 2":
			s1, s2 := semesterCounts(student, label, projectModuleBSc)
			if s1 != 4 || s2 != 3 {
				advisories = append(advisories, "Student is taking a high course load in second semester of final honours year")
			}
		case label == "Year 3":
			s1, s2 := semesterCounts(student, label, projectModuleMMath)
			if s1 != 3 || s2 != 3 {
				advisories = append(advisories, "Student is taking uneven course load in final honours year")
			}
		}
	}
	return nil, advisories
}

func semesterCounts(student *models.Student, label, excludedProject string) (s1, s2 int) {
	for _, choice := range student.ChoicesFor(label, "") {
		if choice.ModuleCode == excludedProject {
			continue
		}
		switch choice.Semester {
		case models.SemesterOne:
			s1++
		case models.SemesterTwo:
			s2++
		}
	}
	return s1, s2
}

func checkSubhonoursCore(student *models.Student) ([]string, []string) {
	count := student.CountInList(subhonoursCoreModules)
	if count < 4 {
		return []string{fmt.Sprintf("Student is only taking %d out of MT3501-MT3508", count)}, nil
	}
	return nil, nil
}

func checkComputingModule(student *models.Student) ([]string, []string) {
	if student.CountInList(computingModules) == 0 {
		return []string{"Student is not taking a computing module"}, nil
	}
	return nil, nil
}

// checkFinalYearProject requires exactly one project module, planned for
// the student's final honours year. The year check is skipped when the
// project was already completed rather than planned.
func checkFinalYearProject(student *models.Student) ([]string, []string) {
	if student.CountInList(projectModules) != 1 {
		return []string{"Student is not taking an allowed final year project"}, nil
	}
	finalYear := fmt.Sprintf("Year %d", student.ExpectedHonoursYears)
	for _, choice := range student.ModuleChoices {
		for _, project := range projectModules {
			if choice.ModuleCode != project {
				continue
			}
			if choice.HonoursYear != finalYear {
				return []string{"Student is not taking their final year project in their final year."}, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func checkBarredModules(student *models.Student) ([]string, []string) {
	if student.CountInList(barredModules) > 0 {
		return []string{"Student is taking a module in MT4794-MT4797"}, nil
	}
	return nil, nil
}

// checkDipModules limits dip-down and dip-across choices: at most two
// honours modules may come from outside the MT2000 to MT5000 range.
func checkDipModules(student *models.Student) ([]string, []string) {
	outside := 0
	for _, code := range student.AllHonoursModules() {
		if !hasAnyPrefix(code, honoursLevelPrefixes) {
			outside++
		}
	}
	if outside > 2 {
		return []string{"Student is taking more than 2 modules as dip-down or dip-across, which is not allowed."}, nil
	}
	return nil, nil
}

func checkAdvancedCredits(student *models.Student) ([]string, []string) {
	advanced := 0
	for _, code := range student.AllHonoursModules() {
		if strings.HasPrefix(code, "MT4") || strings.HasPrefix(code, "MT5") {
			advanced++
		}
	}
	if advanced < 6 {
		return []string{"Student is not planning to take enough credits at 4000 level or above"}, nil
	}
	return nil, nil
}

// checkPermissionNotes reminds the adviser which planned choices need
// explicit permission.
func checkPermissionNotes(student *models.Student) ([]string, []string) {
	var advisories []string
	planned := student.PlannedModules()
	if anyWithPrefix(planned, "MT5") {
		advisories = append(advisories, "Student is planning to take 5000 level modules (which will require permission)")
	}
	if anyWithPrefix(planned, "MT2") {
		advisories = append(advisories, "Student is planning to take 2000 level modules, (which will require permission)")
	}
	for _, code := range planned {
		if !hasAnyPrefix(code, honoursLevelPrefixes) {
			advisories = append(advisories, "Student is planning to take non-MT modules, which requires permission")
			break
		}
	}
	return nil, advisories
}

func anyWithPrefix(codes []string, prefix string) bool {
	for _, code := range codes {
		if strings.HasPrefix(code, prefix) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(code string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(code, prefix) {
			return true
		}
	}
	return false
}
