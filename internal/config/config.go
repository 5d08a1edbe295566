// Package config handles the configuration directory, the optional
// config.yaml file and TODO_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional settings filename inside the config directory.
	ConfigFile = "config.yaml"

	// EnvPrefix prefixes every environment override, e.g. TODO_BACKEND.
	EnvPrefix = "TODO"

	// DatabaseFile is the SQLite database filename.
	DatabaseFile = "todos.db"

	// BlobDir is the directory holding key-value files for the blob backend.
	BlobDir = "storage"

	// DefaultTimeout bounds each storage operation.
	DefaultTimeout = 5 * time.Second
)

// Supported storage backends.
const (
	BackendBlob   = "blob"
	BackendSQLite = "sqlite"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `ignored:"true"`

	// Debug enables debug logging.
	Debug bool `ignored:"true"`

	// Quiet suppresses informational output.
	Quiet bool `ignored:"true"`

	// Backend selects the durable medium: "blob" or "sqlite".
	Backend string `split_words:"true"`

	// DataDir holds the medium. Empty means Dir.
	DataDir string `split_words:"true"`

	// Timeout bounds each storage operation. Zero disables it.
	Timeout time.Duration `split_words:"true"`

	// StrictIDs makes toggling an unknown task an error.
	StrictIDs bool `envconfig:"STRICT_IDS"`
}

// fileConfig is the layout of config.yaml. Absent keys keep their current value.
type fileConfig struct {
	Backend   *string   `yaml:"backend"`
	DataDir   *string   `yaml:"data_dir"`
	Timeout   *duration `yaml:"timeout"`
	StrictIDs *bool     `yaml:"strict_ids"`
}

// duration reads a Go duration string such as "250ms", or a bare 0.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: timeout must be a duration such as 5s", value.Line)
	}

	if value.ShortTag() == "!!int" {
		n, err := strconv.ParseInt(value.Value, 0, 64)
		if err != nil || n != 0 {
			return fmt.Errorf("line %d: timeout %s needs a unit, e.g. %ss", value.Line, value.Value, value.Value)
		}
		*d = 0
		return nil
	}

	v, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid timeout: %w", value.Line, err)
	}
	*d = duration(v)
	return nil
}

// New creates a Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// Settings come from defaults, then config.yaml if present, then TODO_* variables.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:     dir,
		Backend: BackendBlob,
		Timeout: DefaultTimeout,
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Validate checks backend and timeout values.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendBlob, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend: %q (want %s or %s)", c.Backend, BackendBlob, BackendSQLite)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	return nil
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns the directory holding the medium.
func (c *Config) DataPath() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return c.Dir
}

// DatabasePath returns the SQLite database path.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataPath(), DatabaseFile)
}

// BlobPath returns the blob backend's key-value directory.
func (c *Config) BlobPath() string {
	return filepath.Join(c.DataPath(), BlobDir)
}

// loadFile reads config.yaml over the current values. A missing file is fine.
func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if fc.Backend != nil {
		c.Backend = *fc.Backend
	}
	if fc.DataDir != nil {
		c.DataDir = *fc.DataDir
	}
	if fc.Timeout != nil {
		c.Timeout = time.Duration(*fc.Timeout)
	}
	if fc.StrictIDs != nil {
		c.StrictIDs = *fc.StrictIDs
	}
	return nil
}
