package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"primesieve/internal/runutil"
	"primesieve/internal/writers"
)

// Config holds all primesieve settings that can live in a file.
// Command-line flags override these when set explicitly.
type Config struct {
	// Method is a menu code or name: 1-4, trial, sieve, parallel, all.
	Method string `yaml:"method"`
	// Bound is the inclusive upper limit; digit separators are allowed.
	Bound string `yaml:"bound,omitempty"`
	// Threads is the parallel sieve worker count (0 = all CPUs).
	Threads int `yaml:"threads"`

	// Output settings
	Output        string `yaml:"output"` // text, json
	List          string `yaml:"list"`   // auto, always, never
	ListThreshold int    `yaml:"list_threshold"`

	// MemoryLimit caps the sieve arena, e.g. "512MiB". Empty uses the engine default.
	MemoryLimit string `yaml:"memory_limit,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console, json
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Method:        "parallel",
		Threads:       0,
		Output:        "text",
		List:          runutil.ListAuto,
		ListThreshold: runutil.DefaultListThreshold,
		Logging: LoggingConfig{
			Level:    "warn",
			Encoding: "console",
		},
	}
}

// Load reads a YAML config from path on top of DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks values that do not depend on other packages' parsing.
// Method and Bound are checked where they are parsed.
func (c *Config) Validate() error {
	if c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0, got %d", c.Threads)
	}
	if formats := writers.Formats(); !slices.Contains(formats, c.Output) {
		return fmt.Errorf("invalid output %q (want %s)", c.Output, strings.Join(formats, " | "))
	}
	if err := runutil.ValidateListMode(c.List); err != nil {
		return err
	}
	if c.ListThreshold < 0 {
		return fmt.Errorf("list_threshold must be >= 0, got %d", c.ListThreshold)
	}
	if _, err := c.MemoryLimitBytes(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}
	if c.Logging.Encoding != "console" && c.Logging.Encoding != "json" {
		return fmt.Errorf("invalid logging encoding %q (want console | json)", c.Logging.Encoding)
	}
	return nil
}

// MemoryLimitBytes parses MemoryLimit ("4GiB", "512 MB"). 0 leaves the
// engine's default arena limit in place.
func (c *Config) MemoryLimitBytes() (uint64, error) {
	if c.MemoryLimit == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(c.MemoryLimit)
	if err != nil {
		return 0, fmt.Errorf("invalid memory_limit %q: %w", c.MemoryLimit, err)
	}
	return n, nil
}
