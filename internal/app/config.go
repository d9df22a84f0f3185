package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"bitsclues/internal/config"
)

// Config controls runtime behavior for the TUI app. Values resolve in
// order: defaults, then the optional settings file, then environment,
// then command-line flags.
type Config struct {
	ConfigPath string `yaml:"config_path" env:"BITSCLUES_CONFIG"`
	DataDir    string `yaml:"data_dir" env:"BITSCLUES_DATA_DIR"`
	ExportDir  string `yaml:"export_dir" env:"BITSCLUES_EXPORT_DIR"`
	LogPath    string `yaml:"log_path" env:"BITSCLUES_LOG"`
	TeamName   string `yaml:"team_name" env:"BITSCLUES_TEAM"`
	ASCIIOnly  bool   `yaml:"ascii_only" env:"BITSCLUES_ASCII"`
	Debug      bool   `yaml:"debug" env:"BITSCLUES_DEBUG"`
	Seed       int64  `yaml:"seed" env:"BITSCLUES_SEED"`
}

func DefaultConfig() Config {
	return Config{
		ConfigPath: config.DefaultPath,
		ExportDir:  ".",
	}
}

// ApplySettingsFile merges a YAML settings document over c. A missing
// file is not an error.
func (c *Config) ApplySettingsFile(path string) error {
	body, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(body, c); err != nil {
		return fmt.Errorf("parse settings %s: %w", path, err)
	}
	return nil
}

func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.ConfigPath == "" {
		c.ConfigPath = config.DefaultPath
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "bitsclues")
	}
	return nil
}
