package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "file", cfg.Logging.Output)
	assert.Equal(t, "input", cfg.Paths.InputDir)
	assert.Equal(t, "output", cfg.Paths.OutputDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Cleaning.DropDuplicates)
	assert.True(t, cfg.Cleaning.TrimWhitespace)
	assert.Equal(t, "none", cfg.Cleaning.MissingStrategy)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: debug
  output: stdout
paths:
  input_dir: /data/in
  output_dir: /data/out
validation:
  required_columns:
    - id
    - email
cleaning:
  missing_strategy: median
workers: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, "/data/in", cfg.Paths.InputDir)
	assert.Equal(t, []string{"id", "email"}, cfg.Validation.RequiredColumns)
	assert.Equal(t, "median", cfg.Cleaning.MissingStrategy)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TABLEQC_LOGGING_LEVEL", "warn")
	t.Setenv("TABLEQC_WORKERS", "8")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad log level", content: "logging:\n  level: loud\n"},
		{name: "bad strategy", content: "cleaning:\n  missing_strategy: interpolate\n"},
		{name: "too many workers", content: "workers: 1000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}

func TestLogPath(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{FilePath: "tableqc.log"},
		Paths:   PathsConfig{LogsDir: "logs"},
	}
	assert.Equal(t, filepath.Join("logs", "tableqc.log"), cfg.LogPath())

	cfg.Logging.FilePath = "/var/log/tableqc.log"
	assert.Equal(t, "/var/log/tableqc.log", cfg.LogPath())

	cfg.Logging.FilePath = "custom/dir/app.log"
	assert.Equal(t, "custom/dir/app.log", cfg.LogPath())
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := &Config{
		Paths: PathsConfig{
			OutputDir: filepath.Join(base, "out"),
			LogsDir:   filepath.Join(base, "logs"),
		},
	}

	require.NoError(t, cfg.EnsureDirectories())
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
