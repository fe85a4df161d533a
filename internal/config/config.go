package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	xlog "github.com/Nomadcxx/mkvrenamer/internal/log"
)

// Config holds all mkvrenamer configuration
type Config struct {
	Paths   PathsConfig   `toml:"paths"`
	Layout  LayoutConfig  `toml:"layout"`
	Logging LoggingConfig `toml:"logging"`
}

// PathsConfig holds defaults for command-line paths
type PathsConfig struct {
	ProcessingDir string `toml:"processing_dir"` // used when -p is not given
}

// LayoutConfig controls where destination containers are created
type LayoutConfig struct {
	SplitEncodes bool `toml:"split_encodes"` // Encodes/tv and Encodes/movies instead of Encodes/
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			SplitEncodes: true,
		},
		Logging: LoggingConfig{
			Level: xlog.DefaultLevel,
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(configDir, "mkvrenamer", "config.toml"), nil
}

// Load reads the config file at path. A missing file yields the defaults and
// nothing is written.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	// keys absent from the file keep their defaults
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to path, creating its directory
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.Logging.Level != "" && !xlog.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (must be trace, debug, info, warn, error, fatal, panic or disabled)", c.Logging.Level)
	}

	if c.Paths.ProcessingDir != "" && !filepath.IsAbs(c.Paths.ProcessingDir) {
		return fmt.Errorf("processing_dir must be an absolute path: %s", c.Paths.ProcessingDir)
	}

	return nil
}

// SetProcessingDir stores path as the default processing directory
func (c *Config) SetProcessingDir(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", abs)
	}

	c.Paths.ProcessingDir = abs
	return nil
}

// ProcessingDirOr returns flagValue if set, otherwise the configured default
func (c *Config) ProcessingDirOr(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return c.Paths.ProcessingDir
}
