package service

import (
	"go.uber.org/zap"

	"github.com/stmaths/advising-check/internal/dto"
	"github.com/stmaths/advising-check/internal/models"
)

// AdvisingService runs every checker over a student profile and folds the
// results into one evaluation.
type AdvisingService struct {
	programme     *ProgrammeService
	prerequisites *PrerequisiteService
	scheduling    *SchedulingService
	timetable     *TimetableService
	logger        *zap.Logger
}

// NewAdvisingService wires the per-student evaluation pipeline.
func NewAdvisingService(
	programme *ProgrammeService,
	prerequisites *PrerequisiteService,
	scheduling *SchedulingService,
	timetable *TimetableService,
	logger *zap.Logger,
) *AdvisingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisingService{
		programme:     programme,
		prerequisites: prerequisites,
		scheduling:    scheduling,
		timetable:     timetable,
		logger:        logger,
	}
}

// Evaluate checks one student's plan against programme requirements,
// prerequisites, module availability and the timetable. Adviser notes
// from the programme and prerequisite checkers are merged into a single
// column.
func (s *AdvisingService) Evaluate(student *models.Student) (dto.EvaluationResult, error) {
	programmeFindings, programmeAdvisories := s.programme.Check(student)

	prereqFindings, prereqAdvisories, err := s.prerequisites.Check(student)
	if err != nil {
		return dto.EvaluationResult{}, err
	}

	schedulingFindings, err := s.scheduling.Check(student)
	if err != nil {
		return dto.EvaluationResult{}, err
	}

	timetableFindings, err := s.timetable.Check(student)
	if err != nil {
		return dto.EvaluationResult{}, err
	}

	advisories := append(append([]string(nil), programmeAdvisories...), prereqAdvisories...)

	result := dto.EvaluationResult{
		ProgrammeFindings:    models.JoinFindings(programmeFindings),
		PrerequisiteFindings: models.JoinFindings(prereqFindings),
		SchedulingFindings:   models.JoinFindings(schedulingFindings),
		TimetableFindings:    models.JoinFindings(timetableFindings),
		AdviserNotes:         models.JoinFindings(advisories),
	}

	s.logger.Debug("evaluated student",
		zap.Int("student_id", student.StudentID),
		zap.Int("programme_findings", len(programmeFindings)),
		zap.Int("prerequisite_findings", len(prereqFindings)),
		zap.Int("scheduling_findings", len(schedulingFindings)),
		zap.Int("timetable_findings", len(timetableFindings)),
	)
	return result, nil
}
