package service

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/stmaths/advising-check/internal/catalogue"
	"github.com/stmaths/advising-check/internal/models"
	"github.com/stmaths/advising-check/pkg/boolexpr"
	appErrors "github.com/stmaths/advising-check/pkg/errors"
)

// Prerequisite fields that carry policy text instead of module logic.
const (
	prereqLetterOfAgreement = "Letter of agreement"
	prereqMScAdmission      = "Students must have gained admission onto an MSc programme"
)

// coRequisiteMarker flags a module code that may be satisfied by a
// simultaneous selection rather than a completed one.
const coRequisiteMarker = "co-requisite"

// countedPrerequisite is an "n of the following list" requirement that the
// boolean expression grammar cannot express.
type countedPrerequisite struct {
	Description string
	MinCount    int
	Codes       []string
}

// countedPrerequisites overrides the catalogue text for modules whose
// published prerequisite is a counting rule.
var countedPrerequisites = map[string]countedPrerequisite{
	"MT5867": {
		Description: "two of (MT3505, MT4003, MT4004, MT4512, MT4514, MT4515, MT4526)",
		MinCount:    2,
		Codes:       []string{"MT3505", "MT4003", "MT4004", "MT4512", "MT4514", "MT4515", "MT4526"},
	},
}

// PrerequisiteService checks every planned module choice against the
// catalogue's prerequisite and antirequisite entries.
type PrerequisiteService struct {
	catalogue *catalogue.Catalogue
	logger    *zap.Logger
}

// NewPrerequisiteService wires the prerequisite checker.
func NewPrerequisiteService(cat *catalogue.Catalogue, logger *zap.Logger) *PrerequisiteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrerequisiteService{catalogue: cat, logger: logger}
}

// Check returns blocking findings and adviser notes for the student's
// planned choices. Unknown module codes are skipped here; the programme
// checker reports them. A prerequisite entry that fails to parse is a
// catalogue data-entry error and aborts the run.
func (s *PrerequisiteService) Check(student *models.Student) (findings []string, advisories []string, err error) {
	for index, choice := range student.ModuleChoices {
		module, ok := s.catalogue.Lookup(choice.ModuleCode)
		if !ok {
			continue
		}

		previous := s.previouslyTaken(student, choice)
		simultaneous := s.simultaneousChoices(student, index)

		prereqFindings, prereqAdvisories, prereqErr := s.checkPrerequisites(module, previous, simultaneous)
		if prereqErr != nil {
			return nil, nil, prereqErr
		}
		findings = append(findings, prereqFindings...)
		advisories = append(advisories, prereqAdvisories...)

		findings = append(findings, s.checkAntirequisites(module, previous, simultaneous)...)
	}
	return findings, advisories, nil
}

// previouslyTaken collects everything completed before the choice's
// semester starts: passed modules, choices in earlier honours years, and
// for a second-semester choice the same year's first-semester choices.
func (s *PrerequisiteService) previouslyTaken(student *models.Student, choice models.ModuleChoice) map[string]bool {
	previous := make(map[string]bool)
	for _, code := range student.PassedModules {
		previous[code] = true
	}
	year := honoursYearIndex(choice.HonoursYear)
	for _, other := range student.ModuleChoices {
		otherYear := honoursYearIndex(other.HonoursYear)
		if otherYear < year {
			previous[other.ModuleCode] = true
			continue
		}
		if otherYear == year && choice.Semester == models.SemesterTwo && other.Semester == models.SemesterOne {
			previous[other.ModuleCode] = true
		}
	}
	return previous
}

func (s *PrerequisiteService) simultaneousChoices(student *models.Student, index int) map[string]bool {
	choice := student.ModuleChoices[index]
	simultaneous := make(map[string]bool)
	for other, entry := range student.ModuleChoices {
		if other == index {
			continue
		}
		if entry.HonoursYear == choice.HonoursYear && entry.Semester == choice.Semester {
			simultaneous[entry.ModuleCode] = true
		}
	}
	return simultaneous
}

func (s *PrerequisiteService) checkPrerequisites(module models.Module, previous, simultaneous map[string]bool) ([]string, []string, error) {
	field := strings.TrimSpace(module.Prerequisites)
	if field == "" {
		return nil, nil, nil
	}

	switch field {
	case prereqLetterOfAgreement:
		return nil, []string{fmt.Sprintf("Module %s requires a letter of agreement", module.Code)}, nil
	case prereqMScAdmission:
		return []string{fmt.Sprintf("Student cannot take module %s as this module is only available to Msc students", module.Code)}, nil, nil
	}

	if counted, ok := countedPrerequisites[module.Code]; ok {
		matched := 0
		for _, code := range counted.Codes {
			if previous[code] {
				matched++
			}
		}
		if matched < counted.MinCount {
			return []string{fmt.Sprintf("Student is missing prerequisite [%s] for module %s", counted.Description, module.Code)}, nil, nil
		}
		return nil, nil, nil
	}

	// A bare module code needs no expression machinery.
	if !strings.ContainsRune(field, ' ') {
		if !previous[field] {
			return []string{fmt.Sprintf("Student is missing prerequisite %s for module %s", field, module.Code)}, nil, nil
		}
		return nil, nil, nil
	}

	coRequisites := coRequisiteCodes(field)
	resolve := func(code string) bool {
		if coRequisites[code] {
			return previous[code] || simultaneous[code]
		}
		return previous[code]
	}

	expression := strings.ReplaceAll(field, coRequisiteMarker+" ", "")
	satisfied, err := boolexpr.Eval(expression, resolve)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrCatalogue.Code, true,
			fmt.Sprintf("cannot parse prerequisite entry for module %s", module.Code))
	}
	if !satisfied {
		substituted := models.ModuleCodePattern.ReplaceAllStringFunc(expression, func(code string) string {
			return strconv.FormatBool(resolve(code))
		})
		return []string{fmt.Sprintf("Student is missing prerequisite [%s] for module %s ([%s])", field, module.Code, substituted)}, nil, nil
	}
	return nil, nil, nil
}

func (s *PrerequisiteService) checkAntirequisites(module models.Module, previous, simultaneous map[string]bool) []string {
	var findings []string
	for _, code := range models.ModuleCodePattern.FindAllString(module.Antirequisites, -1) {
		if previous[code] || simultaneous[code] {
			findings = append(findings, fmt.Sprintf("Student selected antirequisite %s for module %s", code, module.Code))
		}
	}
	return findings
}

// coRequisiteCodes returns the module codes immediately preceded by the
// co-requisite marker in a prerequisite entry.
func coRequisiteCodes(field string) map[string]bool {
	tokens := strings.Fields(field)
	codes := make(map[string]bool)
	for i, token := range tokens {
		code := models.ModuleCodePattern.FindString(token)
		if code == "" || i == 0 {
			continue
		}
		if strings.EqualFold(tokens[i-1], coRequisiteMarker) {
			codes[code] = true
		}
	}
	return codes
}

func honoursYearIndex(label string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(label, "Year "))
	return n
}
