package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/txnapi/internal/importer"
)

// FileName is the default config file name.
const FileName = "txnapi.yaml"

// Config represents the top-level txnapi.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	Export   ExportConfig   `yaml:"export"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ImportConfig controls how uploaded files are read.
type ImportConfig struct {
	Dir      string                   `yaml:"dir"`
	Workbook importer.WorkbookOptions `yaml:"workbook,omitempty"`
	Number   importer.NumberFormat    `yaml:"number"`
}

// ExportConfig sets the default export destination.
type ExportConfig struct {
	Path string `yaml:"path"`
}

// LogConfig sets the log level: debug, info, warn, error or off.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Environment variables that override the file.
const (
	EnvDBPath     = "TXNAPI_DB_PATH"
	EnvImportDir  = "TXNAPI_IMPORT_DIR"
	EnvExportPath = "TXNAPI_EXPORT_PATH"
	EnvLogLevel   = "TXNAPI_LOG_LEVEL"
)

// Load reads a txnapi.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "txnapi.db",
		},
		Import: ImportConfig{
			Dir:    "import",
			Number: importer.USNumberFormat(),
		},
		Export: ExportConfig{
			Path: "transactions.csv",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyEnv loads envFile (if it exists) into the process environment and
// then lets the TXNAPI_* variables override cfg.
func ApplyEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	overrides := []struct {
		name   string
		target *string
	}{
		{EnvDBPath, &cfg.Database.Path},
		{EnvImportDir, &cfg.Import.Dir},
		{EnvExportPath, &cfg.Export.Path},
		{EnvLogLevel, &cfg.Log.Level},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.name); ok && v != "" {
			*o.target = v
		}
	}
	return nil
}
