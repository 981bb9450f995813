package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingReturnsBase(t *testing.T) {
	base := DefaultConfig("/home/test")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), base)
	require.NoError(t, err)
	assert.Equal(t, base, cfg)
	assert.Empty(t, cfg.Path)
}

func TestLoadFile_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := strings.TrimSpace(`
defaults:
  questions: 25
  error_divisor: 3
  options: [A, B, C]
db: keys.db
log_file: /var/log/opo.log
log_usecases: true
`)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadFile(path, DefaultConfig(dir))
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Defaults.QuestionCount)
	assert.Equal(t, 3, cfg.Defaults.ErrorDivisor)
	assert.Equal(t, []string{"A", "B", "C"}, cfg.Defaults.Options)
	assert.Equal(t, filepath.Join(dir, "keys.db"), cfg.DBPath)
	assert.Equal(t, "/var/log/opo.log", cfg.LogFile)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  questions: 40\n"), 0644))

	cfg, err := LoadFile(path, DefaultConfig(dir))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Defaults.QuestionCount)
	assert.Equal(t, DefaultErrorDivisor, cfg.Defaults.ErrorDivisor)
	assert.Equal(t, domain.DefaultOptions, cfg.Defaults.Options)
}

func TestLoadFile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults: [unclosed"), 0644))
	_, err := LoadFile(path, DefaultConfig("/tmp"))
	assert.ErrorContains(t, err, "config: parse")
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("OPOSECURITY_CONFIG", filepath.Join(dir, "missing.yaml"))
	t.Setenv("OPOSECURITY_DB", filepath.Join(dir, "env.db"))
	t.Setenv("OPOSECURITY_QUESTIONS", "60")
	t.Setenv("OPOSECURITY_DIVISOR", "3")
	t.Setenv("OPOSECURITY_OPTIONS", "a, b ,c")
	t.Setenv("OPOSECURITY_LOG_USECASES", "true")
	t.Setenv("OPOSECURITY_LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env.db"), cfg.DBPath)
	assert.Equal(t, 60, cfg.Defaults.QuestionCount)
	assert.Equal(t, 3, cfg.Defaults.ErrorDivisor)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Defaults.Options)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, filepath.Join(dir, "missing.yaml"), cfg.Path)
}

func TestLoad_InvalidEnvFailsValidation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("OPOSECURITY_CONFIG", filepath.Join(dir, "missing.yaml"))
	t.Setenv("OPOSECURITY_DIVISOR", "0")

	_, err := Load()
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero questions", func(c *Config) { c.Defaults.QuestionCount = 0 }},
		{"zero divisor", func(c *Config) { c.Defaults.ErrorDivisor = 0 }},
		{"no options", func(c *Config) { c.Defaults.Options = nil }},
		{"empty db", func(c *Config) { c.DBPath = " " }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("/home/test")
			require.NoError(t, cfg.Validate())
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfiguration)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")
	require.NoError(t, WriteDefault(path))

	cfg, err := LoadFile(path, DefaultConfig(dir))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultQuestionCount, cfg.Defaults.QuestionCount)
	assert.Equal(t, filepath.Join(dir, "nested", "oposecurity.db"), cfg.DBPath)

	assert.ErrorContains(t, WriteDefault(path), "already exists")
}

func TestSplitOptions(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, SplitOptions(" A,,B ,"))
	assert.Nil(t, SplitOptions(""))
}
