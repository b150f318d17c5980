package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/stmaths/advising-check/internal/dto"
	"github.com/stmaths/advising-check/internal/models"
	"github.com/stmaths/advising-check/internal/records"
	"github.com/stmaths/advising-check/pkg/config"
	appErrors "github.com/stmaths/advising-check/pkg/errors"
)

// advancedStandingCode marks direct-entry credit in the historical record.
// Its presence shortens the programme by one year.
const advancedStandingCode = "EXA120"

// programmeProfile describes one recognized degree programme: how long it
// runs overall and how many of those years are honours years.
type programmeProfile struct {
	matches      func(name string) bool
	totalYears   int
	honoursYears int
}

func containsMatcher(fragment string) func(string) bool {
	return func(name string) bool { return strings.Contains(name, fragment) }
}

func exactMatcher(full string) func(string) bool {
	return func(name string) bool { return name == full }
}

// recognizedProgrammes is checked in order; the first match wins.
var recognizedProgrammes = []programmeProfile{
	{matches: containsMatcher("Bachelor of Science"), totalYears: 4, honoursYears: 2},
	{matches: containsMatcher("Master in Mathematics"), totalYears: 5, honoursYears: 3},
	{matches: containsMatcher("Master of Arts (Honours)"), totalYears: 4, honoursYears: 2},
	{matches: exactMatcher("Master in Chemistry (Honours) Chemistry with Mathematics"), totalYears: 5, honoursYears: 3},
	{matches: exactMatcher("Master in Physics (Honours) Mathematics and Theoretical Physics"), totalYears: 5, honoursYears: 3},
}

// ProfileService reconciles a form submission with historical academic
// records into a normalized Student profile.
type ProfileService struct {
	records records.Provider
	cfg     config.ProgrammeConfig
	logger  *zap.Logger
}

// NewProfileService wires the student record builder.
func NewProfileService(provider records.Provider, cfg config.ProgrammeConfig, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.AcademicYearStart == 0 {
		cfg.AcademicYearStart = 2023
	}
	return &ProfileService{records: provider, cfg: cfg, logger: logger}
}

// Build produces the Student profile for one submission. Recoverable
// errors (no ID, unknown ID, unrecognized programme) identify forms that
// become sentinel rows; a record source with contradictory identity data
// is fatal for the run.
func (s *ProfileService) Build(ctx context.Context, submission dto.FormSubmission) (*models.Student, error) {
	if submission.StudentID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrNoStudentID, "")
	}

	history, err := s.records.FindByStudentID(ctx, submission.StudentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, true, "look up student records")
	}
	if len(history) == 0 {
		return nil, appErrors.Clone(appErrors.ErrStudentNotFound,
			fmt.Sprintf("contains invalid student ID %d", submission.StudentID))
	}

	programmeName, err := singleValue(history, "programme name", func(r models.AcademicRecord) string { return r.ProgrammeName })
	if err != nil {
		return nil, err
	}
	givenNames, err := singleValue(history, "given names", func(r models.AcademicRecord) string { return r.GivenNames })
	if err != nil {
		return nil, err
	}
	familyName, err := singleValue(history, "family name", func(r models.AcademicRecord) string { return r.FamilyName })
	if err != nil {
		return nil, err
	}
	email, err := singleValue(history, "email", func(r models.AcademicRecord) string { return r.Email })
	if err != nil {
		return nil, err
	}

	profile, ok := lookupProgramme(programmeName)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownProgramme,
			fmt.Sprintf("Do not recognise student programme for parsing: %s", programmeName))
	}

	yearOfStudy, err := s.deriveYearOfStudy(history)
	if err != nil {
		return nil, err
	}

	totalYears := profile.totalYears
	if hasModule(history, advancedStandingCode) {
		totalYears--
	}
	subhonoursYears := totalYears - profile.honoursYears
	currentHonoursYear := yearOfStudy - subhonoursYears

	passed := passedModules(history)
	passedHonours := s.passedHonoursModules(history, currentHonoursYear)
	choices := s.planChoices(submission, currentHonoursYear, profile.honoursYears)

	student := &models.Student{
		StudentID:            submission.StudentID,
		FullName:             givenNames + " " + familyName,
		Email:                email,
		ProgrammeName:        programmeName,
		YearOfStudy:          yearOfStudy,
		ExpectedHonoursYears: profile.honoursYears,
		CurrentHonoursYear:   currentHonoursYear,
		PassedModules:        passed,
		PassedHonoursModules: passedHonours,
		ModuleChoices:        choices,
	}

	s.logger.Debug("built student profile",
		zap.Int("student_id", student.StudentID),
		zap.String("programme", student.ProgrammeName),
		zap.Int("honours_year", student.CurrentHonoursYear),
		zap.Int("planned_modules", len(choices)),
	)
	return student, nil
}

// deriveYearOfStudy infers the year of study from the earliest recorded
// module: a student whose first module ran in 2021 is in year 3 by 2023.
func (s *ProfileService) deriveYearOfStudy(history []models.AcademicRecord) (int, error) {
	earliest := 0
	for _, record := range history {
		if len(record.AcademicYear) < 4 {
			continue
		}
		year, err := strconv.Atoi(record.AcademicYear[:4])
		if err != nil {
			continue
		}
		if earliest == 0 || year < earliest {
			earliest = year
		}
	}
	if earliest == 0 {
		return 0, appErrors.Clone(appErrors.ErrDataIntegrity, "no parsable academic years in student history")
	}
	return s.cfg.AcademicYearStart - earliest + 1, nil
}

// passedHonoursModules restricts passes to already-elapsed honours years.
func (s *ProfileService) passedHonoursModules(history []models.AcademicRecord, currentHonoursYear int) []string {
	var honours []string
	for previous := 1; previous < currentHonoursYear; previous++ {
		sessionStart := s.cfg.AcademicYearStart - (currentHonoursYear - previous)
		session := academicYearString(sessionStart)
		for _, record := range history {
			if record.Passed() && record.AcademicYear == session {
				honours = append(honours, record.ModuleCode)
			}
		}
	}
	return honours
}

// planChoices builds the planned-choice table for every honours year that
// has not happened yet, in form order.
func (s *ProfileService) planChoices(submission dto.FormSubmission, currentHonoursYear, expectedHonoursYears int) []models.ModuleChoice {
	var choices []models.ModuleChoice
	for honoursYear := currentHonoursYear; honoursYear <= expectedHonoursYears; honoursYear++ {
		yearLabel := fmt.Sprintf("Year %d", honoursYear)
		sessionStart := s.cfg.AcademicYearStart + (honoursYear - currentHonoursYear)
		session := academicYearString(sessionStart)
		for _, semester := range []models.Semester{models.SemesterOne, models.SemesterTwo} {
			for _, code := range submission.Modules(yearLabel, semester) {
				choices = append(choices, models.ModuleChoice{
					HonoursYear:  yearLabel,
					AcademicYear: session,
					Semester:     semester,
					ModuleCode:   code,
				})
			}
		}
	}
	return choices
}

func academicYearString(start int) string {
	return fmt.Sprintf("%d/%d", start, start+1)
}

func lookupProgramme(name string) (programmeProfile, bool) {
	for _, profile := range recognizedProgrammes {
		if profile.matches(name) {
			return profile, true
		}
	}
	return programmeProfile{}, false
}

func passedModules(history []models.AcademicRecord) []string {
	var passed []string
	for _, record := range history {
		if record.Passed() {
			passed = append(passed, record.ModuleCode)
		}
	}
	return passed
}

func hasModule(history []models.AcademicRecord, code string) bool {
	for _, record := range history {
		if record.ModuleCode == code {
			return true
		}
	}
	return false
}

// singleValue asserts that a per-student field is consistent across the
// record source. Disagreement means the source itself is corrupt.
func singleValue(history []models.AcademicRecord, field string, value func(models.AcademicRecord) string) (string, error) {
	distinct := make(map[string]bool)
	var first string
	for i, record := range history {
		v := value(record)
		if i == 0 {
			first = v
		}
		distinct[v] = true
	}
	if len(distinct) != 1 {
		return "", appErrors.Clone(appErrors.ErrDataIntegrity,
			fmt.Sprintf("student record source has %d distinct values for %s", len(distinct), field))
	}
	return first, nil
}
