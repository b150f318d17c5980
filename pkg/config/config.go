package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	Env string

	Catalogue CatalogueConfig
	Records   RecordsConfig
	Forms     FormsConfig
	Programme ProgrammeConfig
	Report    ReportConfig
	Database  DatabaseConfig
	Log       LogConfig
}

// CatalogueConfig locates the module catalogue.
type CatalogueConfig struct {
	Source string
	Path   string
	Table  string
}

// RecordsConfig locates the historical academic record sources.
type RecordsConfig struct {
	Source string
	Dir    string
	Tables []string
}

// FormsConfig governs module choice form extraction.
type FormsConfig struct {
	StudentIDCell string
}

// ProgrammeConfig carries institution-wide constants used when deriving
// honours years from historical records.
type ProgrammeConfig struct {
	SubjectPrefix     string
	AcademicYearStart int
}

// ReportConfig governs summary report rendering.
type ReportConfig struct {
	OutputDir string
	Format    string
	BaseName  string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Catalogue = CatalogueConfig{
		Source: v.GetString("CATALOGUE_SOURCE"),
		Path:   v.GetString("CATALOGUE_PATH"),
		Table:  v.GetString("CATALOGUE_TABLE"),
	}

	cfg.Records = RecordsConfig{
		Source: v.GetString("RECORDS_SOURCE"),
		Dir:    v.GetString("RECORDS_DIR"),
		Tables: splitAndTrim(v.GetString("RECORDS_TABLES")),
	}

	cfg.Forms = FormsConfig{
		StudentIDCell: v.GetString("FORM_STUDENT_ID_CELL"),
	}

	cfg.Programme = ProgrammeConfig{
		SubjectPrefix:     v.GetString("SUBJECT_PREFIX"),
		AcademicYearStart: v.GetInt("ACADEMIC_YEAR_START"),
	}

	cfg.Report = ReportConfig{
		OutputDir: v.GetString("REPORT_OUTPUT_DIR"),
		Format:    v.GetString("REPORT_FORMAT"),
		BaseName:  v.GetString("REPORT_BASE_NAME"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("CATALOGUE_SOURCE", SourceCSV)
	v.SetDefault("CATALOGUE_PATH", "./module_catalogue/module_catalogue.csv")
	v.SetDefault("CATALOGUE_TABLE", "module_catalogue")

	v.SetDefault("RECORDS_SOURCE", SourceCSV)
	v.SetDefault("RECORDS_DIR", "./student_data")
	v.SetDefault("RECORDS_TABLES", "academic_records")

	v.SetDefault("FORM_STUDENT_ID_CELL", "D5")

	v.SetDefault("SUBJECT_PREFIX", "MT")
	v.SetDefault("ACADEMIC_YEAR_START", 2023)

	v.SetDefault("REPORT_OUTPUT_DIR", "./reports")
	v.SetDefault("REPORT_FORMAT", "xlsx")
	v.SetDefault("REPORT_BASE_NAME", "advising_summary")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "advising")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
