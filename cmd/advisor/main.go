package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stmaths/advising-check/internal/catalogue"
	"github.com/stmaths/advising-check/internal/form"
	"github.com/stmaths/advising-check/internal/records"
	"github.com/stmaths/advising-check/internal/service"
	"github.com/stmaths/advising-check/pkg/config"
	"github.com/stmaths/advising-check/pkg/database"
	"github.com/stmaths/advising-check/pkg/logger"
	"github.com/stmaths/advising-check/pkg/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "advisor",
		Short:         "Checks honours module choice forms against degree requirements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCommand())
	return root
}

func newCheckCommand() *cobra.Command {
	var outputDir, format string
	var retention time.Duration
	cmd := &cobra.Command{
		Use:   "check <form-file-or-folder>",
		Short: "Evaluate module choice forms and write a summary report",
		Long: `Evaluate a single module choice form, or every form in a folder,
against the module catalogue and the students' academic records.
The result is one summary report with a row per form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], outputDir, format, retention)
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "report output directory")
	cmd.Flags().StringVarP(&format, "format", "f", "", "report format: xlsx, csv or pdf")
	cmd.Flags().DurationVar(&retention, "retention", 0,
		"after the run, delete reports older than this age (0 keeps everything)")
	return cmd
}

func runCheck(cmd *cobra.Command, input, outputDir, format string, retention time.Duration) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if outputDir != "" {
		cfg.Report.OutputDir = outputDir
	}
	if format != "" {
		cfg.Report.Format = format
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	var db *sqlx.DB
	if cfg.Catalogue.Source == config.SourcePostgres || cfg.Records.Source == config.SourcePostgres {
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close() //nolint:errcheck
	}

	cat, err := loadCatalogue(ctx, cfg, db)
	if err != nil {
		return err
	}
	log.Info("loaded module catalogue",
		zap.String("source", cfg.Catalogue.Source),
		zap.Int("modules", cat.Len()),
	)

	provider, err := recordProvider(cfg, db)
	if err != nil {
		return err
	}

	store, err := storage.NewLocalStorage(cfg.Report.OutputDir)
	if err != nil {
		return err
	}

	parser := form.NewParser(cfg.Forms.StudentIDCell, cfg.Programme.SubjectPrefix)
	profiles := service.NewProfileService(provider, cfg.Programme, log)
	advising := service.NewAdvisingService(
		service.NewProgrammeService(cat, cfg.Programme.SubjectPrefix, log),
		service.NewPrerequisiteService(cat, log),
		service.NewSchedulingService(cat, log),
		service.NewTimetableService(cat, log),
		log,
	)
	batch := service.NewBatchService(parser, profiles, advising, store, cfg.Report, log)

	reportPath, err := batch.ProcessPath(ctx, input)
	if err != nil {
		return err
	}
	cmd.Printf("Summary report written to %s\n", reportPath)

	if retention > 0 {
		deleted, err := store.CleanupOlderThan(retention)
		if err != nil {
			return err
		}
		log.Info("removed old reports", zap.Int("count", len(deleted)))
	}
	return nil
}

func loadCatalogue(ctx context.Context, cfg *config.Config, db *sqlx.DB) (*catalogue.Catalogue, error) {
	validate := catalogue.NewValidator()
	switch cfg.Catalogue.Source {
	case config.SourcePostgres:
		return catalogue.LoadDB(ctx, db, cfg.Catalogue.Table, validate)
	default:
		return catalogue.LoadCSV(cfg.Catalogue.Path, validate)
	}
}

func recordProvider(cfg *config.Config, db *sqlx.DB) (records.Provider, error) {
	switch cfg.Records.Source {
	case config.SourcePostgres:
		providers := make([]records.Provider, 0, len(cfg.Records.Tables))
		for _, table := range cfg.Records.Tables {
			providers = append(providers, records.NewRepository(db, table))
		}
		if len(providers) == 0 {
			providers = append(providers, records.NewRepository(db, ""))
		}
		return records.NewMultiProvider(providers...), nil
	default:
		return records.NewCSVProvider(cfg.Records.Dir), nil
	}
}
