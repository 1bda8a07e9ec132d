package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration. Precedence, lowest to
// highest: built-in defaults, the optional YAML file, TABLEQC_* environment
// variables.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Validation ValidationConfig `yaml:"validation" envconfig:"VALIDATION"`
	Cleaning   CleaningConfig   `yaml:"cleaning" envconfig:"CLEANING"`
	Workers    int              `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths.
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// ValidationConfig contains default validation expectations applied to every
// file unless overridden on the command line.
type ValidationConfig struct {
	RequiredColumns []string          `yaml:"required_columns" envconfig:"REQUIRED_COLUMNS"`
	ExpectedKinds   map[string]string `yaml:"expected_kinds" envconfig:"EXPECTED_KINDS"`
}

// CleaningConfig contains default cleaning options.
type CleaningConfig struct {
	DropDuplicates         bool   `yaml:"drop_duplicates" envconfig:"DROP_DUPLICATES"`
	MissingStrategy        string `yaml:"missing_strategy" envconfig:"MISSING_STRATEGY" validate:"oneof=none drop mean median mode forward_fill backward_fill"`
	TrimWhitespace         bool   `yaml:"trim_whitespace" envconfig:"TRIM_WHITESPACE"`
	StandardizeColumnNames bool   `yaml:"standardize_column_names" envconfig:"STANDARDIZE_COLUMN_NAMES"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "file",
			FilePath: "tableqc.log",
		},
		Paths: PathsConfig{
			InputDir:  "input",
			OutputDir: "output",
			LogsDir:   "logs",
		},
		Cleaning: CleaningConfig{
			DropDuplicates:         true,
			MissingStrategy:        "none",
			TrimWhitespace:         true,
			StandardizeColumnNames: true,
		},
		Workers: 4,
	}
}

// Load builds the configuration. An empty configFile skips the file layer;
// a named file must exist and parse.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Env vars override file values. No default tags here: an unset
	// variable leaves the current value alone.
	if err := envconfig.Process("TABLEQC", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LogPath returns the resolved log file path, rooted in LogsDir when the
// configured path is a bare file name.
func (c *Config) LogPath() string {
	if filepath.IsAbs(c.Logging.FilePath) {
		return c.Logging.FilePath
	}
	if filepath.Dir(c.Logging.FilePath) != "." {
		return c.Logging.FilePath
	}
	return filepath.Join(c.Paths.LogsDir, c.Logging.FilePath)
}

// EnsureDirectories creates the output and logs directories if needed.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
