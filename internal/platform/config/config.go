package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const FileName = "config.yaml"

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

type Config struct {
	DataDir        string `yaml:"-"`
	DBPath         string `yaml:"-"`
	Backend        string `yaml:"backend"`
	Platform       string `yaml:"platform"`
	DefaultMinutes int    `yaml:"default_minutes"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file"`
}

// DefaultDataDir returns ~/.lumen, or .lumen when the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".lumen"
	}
	return filepath.Join(home, ".lumen")
}

// New builds defaults for dataDir and overlays <dataDir>/config.yaml when present.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:  dataDir,
		DBPath:   filepath.Join(dataDir, "lumen.db"),
		Backend:  BackendSQLite,
		Platform: "auto",
		LogLevel: "info",
		LogFile:  filepath.Join(dataDir, "lumen.log"),
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", FileName, err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("read %s: %w", FileName, err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("unsupported backend %q", c.Backend)
	}
	switch strings.ToLower(c.Platform) {
	case "auto", "mac", "windows":
	default:
		return fmt.Errorf("unsupported platform %q", c.Platform)
	}
	if c.DefaultMinutes < 0 || c.DefaultMinutes > 720 {
		return fmt.Errorf("default_minutes must be within 0-720, got %d", c.DefaultMinutes)
	}
	return nil
}
