// Package config loads oposecurity settings from ~/.oposecurity/config.yaml
// and OPOSECURITY_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	// Dir is the per-user state directory under $HOME.
	Dir = ".oposecurity"

	DefaultQuestionCount = 10
	DefaultErrorDivisor  = 4
)

const defaultConfigYAML = `# oposecurity configuration

# Values used to prefill the rehearsal setup form and the rehearse command.
defaults:
  questions: 10
  # Wrong answers needed to cancel one correct answer.
  error_divisor: 4
  options: [A, B, C, D]

# Answer-key library. Relative paths resolve against this file's directory.
db: oposecurity.db

# Service use-case events are appended here when set.
# log_file: oposecurity.log
log_usecases: false
# text or json
log_format: text
`

// Defaults seeds new rehearsals.
type Defaults struct {
	QuestionCount int      `yaml:"questions"`
	ErrorDivisor  int      `yaml:"error_divisor"`
	Options       []string `yaml:"options,flow"`
}

// Config is the effective runtime configuration.
type Config struct {
	Defaults    Defaults `yaml:"defaults"`
	DBPath      string   `yaml:"db"`
	LogFile     string   `yaml:"log_file,omitempty"`
	LogUseCases bool     `yaml:"log_usecases"`
	LogFormat   string   `yaml:"log_format"`

	// Path is the config file location, whether or not it exists yet.
	Path string `yaml:"-"`
}

// DefaultConfig returns the built-in configuration rooted at home.
func DefaultConfig(home string) Config {
	return Config{
		Defaults: Defaults{
			QuestionCount: DefaultQuestionCount,
			ErrorDivisor:  DefaultErrorDivisor,
			Options:       append([]string(nil), domain.DefaultOptions...),
		},
		DBPath:    filepath.Join(home, Dir, "oposecurity.db"),
		LogFormat: "text",
	}
}

// DefaultPath returns ~/.oposecurity/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, Dir, "config.yaml"), nil
}

// Load reads the config file named by OPOSECURITY_CONFIG, or the default
// path, and applies environment overrides. A missing file is not an error;
// Path still names it so "config init" knows where to write.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	path := os.Getenv("OPOSECURITY_CONFIG")
	if path == "" {
		path = filepath.Join(home, Dir, "config.yaml")
	}

	cfg, err := LoadFile(path, DefaultConfig(home))
	if err != nil {
		return Config{}, err
	}
	cfg.Path = path
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto base. Relative db and log
// paths are resolved against the file's directory.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Path = path
	dir := filepath.Dir(path)
	cfg.DBPath = resolvePath(dir, cfg.DBPath)
	cfg.LogFile = resolvePath(dir, cfg.LogFile)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OPOSECURITY_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("OPOSECURITY_QUESTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Defaults.QuestionCount = n
		}
	}
	if v := os.Getenv("OPOSECURITY_DIVISOR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Defaults.ErrorDivisor = n
		}
	}
	if v := os.Getenv("OPOSECURITY_OPTIONS"); v != "" {
		cfg.Defaults.Options = SplitOptions(v)
	}
	if v := os.Getenv("OPOSECURITY_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("OPOSECURITY_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("OPOSECURITY_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
}

// Validate checks that the defaults could start a rehearsal.
func (c Config) Validate() error {
	if c.Defaults.QuestionCount < 1 {
		return fmt.Errorf("%w: defaults.questions must be >= 1, got %d",
			domain.ErrInvalidConfiguration, c.Defaults.QuestionCount)
	}
	if c.Defaults.ErrorDivisor < 1 {
		return fmt.Errorf("%w: defaults.error_divisor must be >= 1, got %d",
			domain.ErrInvalidConfiguration, c.Defaults.ErrorDivisor)
	}
	if _, err := c.Alphabet(); err != nil {
		return fmt.Errorf("defaults.options: %w", err)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("%w: db path is required", domain.ErrInvalidConfiguration)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q",
			domain.ErrInvalidConfiguration, c.LogFormat)
	}
	return nil
}

// Alphabet builds the configured option alphabet.
func (c Config) Alphabet() (domain.Alphabet, error) {
	return domain.NewAlphabet(c.Defaults.Options...)
}

// WriteDefault seeds a commented config file at path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Marshal renders the effective configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// SplitOptions parses a comma-separated option list such as "A,B,C,D".
func SplitOptions(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
