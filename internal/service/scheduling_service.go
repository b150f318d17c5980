package service

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/stmaths/advising-check/internal/catalogue"
	"github.com/stmaths/advising-check/internal/models"
	appErrors "github.com/stmaths/advising-check/pkg/errors"
)

// runningYearHorizon bounds how far ahead availability is projected. Five
// sessions comfortably covers the longest honours plan.
const runningYearHorizon = 5

// SchedulingService checks that each planned choice is actually on offer
// in the chosen semester and academic year.
type SchedulingService struct {
	catalogue *catalogue.Catalogue
	logger    *zap.Logger
}

// NewSchedulingService wires the availability checker.
func NewSchedulingService(cat *catalogue.Catalogue, logger *zap.Logger) *SchedulingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchedulingService{catalogue: cat, logger: logger}
}

// Check returns one finding per choice that is scheduled in the wrong
// semester or in a year the module does not run. Unknown modules are
// skipped; the programme checker reports them.
func (s *SchedulingService) Check(student *models.Student) ([]string, error) {
	var findings []string
	for _, choice := range student.ModuleChoices {
		module, ok := s.catalogue.Lookup(choice.ModuleCode)
		if !ok {
			continue
		}

		if module.Semester != models.SemesterFullYear && module.Semester != choice.Semester {
			findings = append(findings, fmt.Sprintf(
				"Selected module %s for Semester %s but it is actually running in %s",
				choice.ModuleCode, choice.Semester, module.Semester))
		}

		running, err := runningYears(module)
		if err != nil {
			return nil, err
		}
		if !running[choice.AcademicYear] {
			findings = append(findings, fmt.Sprintf(
				"Selected module %s is not running in academic year %s",
				choice.ModuleCode, choice.AcademicYear))
		}
	}
	return findings, nil
}

// runningYears projects the sessions a module runs in from its intake
// year, every year or every second year for alternating modules.
func runningYears(module models.Module) (map[string]bool, error) {
	if len(module.IntakeYear) < 4 {
		return nil, appErrors.Clone(appErrors.ErrCatalogue,
			fmt.Sprintf("invalid intake year %q for module %s", module.IntakeYear, module.Code))
	}
	start, err := strconv.Atoi(module.IntakeYear[:4])
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrCatalogue,
			fmt.Sprintf("invalid intake year %q for module %s", module.IntakeYear, module.Code))
	}

	step := 1
	if module.Alternating {
		step = 2
	}
	running := make(map[string]bool, runningYearHorizon)
	for i := 0; i < runningYearHorizon; i++ {
		session := start + step*i
		running[academicYearString(session)] = true
	}
	return running, nil
}
