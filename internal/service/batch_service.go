package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stmaths/advising-check/internal/dto"
	"github.com/stmaths/advising-check/internal/models"
	"github.com/stmaths/advising-check/pkg/config"
	appErrors "github.com/stmaths/advising-check/pkg/errors"
	"github.com/stmaths/advising-check/pkg/export"
	"github.com/stmaths/advising-check/pkg/storage"
)

// FormParser extracts a submission from one module choice form file.
type FormParser interface {
	Parse(path string) (dto.FormSubmission, error)
}

// formExtensions are the workbook types accepted when scanning a folder.
var formExtensions = map[string]bool{
	".xlsx": true,
	".xltx": true,
}

// BatchService processes a form file or a folder of forms into one
// summary report. Forms that cannot be matched to a valid student become
// sentinel rows; broken data sources abort the whole run.
type BatchService struct {
	parser   FormParser
	profiles *ProfileService
	advising *AdvisingService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	xlsx     *export.XLSXExporter
	store    *storage.LocalStorage
	cfg      config.ReportConfig
	logger   *zap.Logger
}

// NewBatchService wires the batch runner.
func NewBatchService(
	parser FormParser,
	profiles *ProfileService,
	advising *AdvisingService,
	store *storage.LocalStorage,
	cfg config.ReportConfig,
	logger *zap.Logger,
) *BatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Format == "" {
		cfg.Format = "xlsx"
	}
	if cfg.BaseName == "" {
		cfg.BaseName = "advising_summary"
	}
	return &BatchService{
		parser:   parser,
		profiles: profiles,
		advising: advising,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		xlsx: export.NewXLSXExporter(
			[]string{models.HeaderProgrammeF, models.HeaderPrereqF, models.HeaderSchedulingF, models.HeaderTimetableF},
			[]string{models.HeaderAdviser},
		),
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// ProcessPath evaluates a single form file or every form in a folder and
// writes the summary report. It returns the stored report path.
func (s *BatchService) ProcessPath(ctx context.Context, path string) (string, error) {
	forms, err := s.collectForms(path)
	if err != nil {
		return "", err
	}
	if len(forms) == 0 {
		return "", appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("no module choice forms found in %s", path))
	}

	rows := make([]models.SummaryRow, 0, len(forms))
	for _, form := range forms {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		row, err := s.processForm(ctx, form)
		if err != nil {
			return "", err
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].StudentID < rows[j].StudentID })

	s.logger.Info("processed module choice forms",
		zap.Int("forms", len(forms)),
		zap.String("format", s.cfg.Format),
	)
	return s.writeReport(rows)
}

func (s *BatchService) collectForms(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("inspect input path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read forms folder: %w", err)
	}
	var forms []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		// Office lock files start with ~$ and are not real forms.
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if !formExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		forms = append(forms, filepath.Join(path, name))
	}
	return forms, nil
}

// processForm evaluates one form. Recoverable failures are reported as a
// sentinel row naming the file; anything fatal is returned.
func (s *BatchService) processForm(ctx context.Context, path string) (models.SummaryRow, error) {
	base := filepath.Base(path)

	submission, err := s.parser.Parse(path)
	if err != nil {
		return s.sentinelOrFatal(base, submission, err)
	}

	student, err := s.profiles.Build(ctx, submission)
	if err != nil {
		return s.sentinelOrFatal(base, submission, err)
	}

	result, err := s.advising.Evaluate(student)
	if err != nil {
		return models.SummaryRow{}, err
	}

	return models.SummaryRow{
		StudentID:            student.StudentID,
		Name:                 student.FullName,
		Programme:            student.ProgrammeName,
		HonoursYear:          student.CurrentHonoursYear,
		ProgrammeFindings:    result.ProgrammeFindings,
		PrerequisiteFindings: result.PrerequisiteFindings,
		SchedulingFindings:   result.SchedulingFindings,
		TimetableFindings:    result.TimetableFindings,
		AdviserNotes:         result.AdviserNotes,
	}, nil
}

func (s *BatchService) sentinelOrFatal(base string, submission dto.FormSubmission, err error) (models.SummaryRow, error) {
	if !appErrors.IsRecoverable(err) {
		return models.SummaryRow{}, err
	}

	var message string
	switch {
	case appErrors.Is(err, appErrors.ErrNoStudentID):
		message = fmt.Sprintf("Could not process %s. The file does not contain a valid student ID.", base)
	case appErrors.Is(err, appErrors.ErrStudentNotFound):
		message = fmt.Sprintf("Could not process %s. The file contains invalid student ID %d", base, submission.StudentID)
	default:
		message = fmt.Sprintf("Could not process %s. %s", base, appErrors.FromError(err).Message)
	}

	s.logger.Warn("skipping module choice form",
		zap.String("file", base),
		zap.String("reason", appErrors.FromError(err).Code),
	)
	return models.NewSentinelRow(message), nil
}

func (s *BatchService) writeReport(rows []models.SummaryRow) (string, error) {
	dataset := export.Dataset{Headers: models.SummaryHeaders()}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, row.Values())
	}

	format := strings.ToLower(s.cfg.Format)
	var content []byte
	var err error
	switch format {
	case "csv":
		content, err = s.csv.Render(dataset)
	case "pdf":
		content, err = s.pdf.Render(dataset, "Advising summary")
	case "xlsx":
		content, err = s.xlsx.Render(dataset, "Summary")
	default:
		return "", appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("unsupported report format %q", s.cfg.Format))
	}
	if err != nil {
		return "", fmt.Errorf("render %s report: %w", format, err)
	}

	filename := fmt.Sprintf("%s_%s.%s", s.cfg.BaseName, uuid.NewString(), format)
	if _, err := s.store.Save(filename, content); err != nil {
		return "", err
	}
	return s.store.Path(filename), nil
}
