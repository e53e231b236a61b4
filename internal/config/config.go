package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the project config looked for in the working
// directory when --config is not given.
const DefaultFile = "structhub.yaml"

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Units    UnitsConfig    `yaml:"units"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type UnitsConfig struct {
	Length string `yaml:"length"`
}

type DefaultsConfig struct {
	Diaphragm string `yaml:"diaphragm"`
	BaseLevel string `yaml:"base_level"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	// Inches are the only canonical unit; reject configs that ask for
	// anything else rather than silently mis-scaling geometry.
	if u := strings.TrimSpace(cfg.Units.Length); u != "" && !strings.EqualFold(u, "in") {
		return fmt.Errorf("unsupported length unit: %s", cfg.Units.Length)
	}
	return nil
}

// Diaphragm returns the configured default diaphragm name, or "D1".
func (c *ProjectConfig) Diaphragm() string {
	if c == nil || strings.TrimSpace(c.Defaults.Diaphragm) == "" {
		return "D1"
	}
	return c.Defaults.Diaphragm
}

// BaseLevel returns the configured default base-level selector. Empty
// means no rebase unless the command asks for one.
func (c *ProjectConfig) BaseLevel() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Defaults.BaseLevel)
}

// DSN returns the database connection string, or an error telling the
// operator where to set it. Only catalog commands need a database.
func (c *ProjectConfig) DSN() (string, error) {
	if c == nil || strings.TrimSpace(c.Database.DSN) == "" {
		return "", fmt.Errorf("database dsn is required (set database.dsn in %s)", DefaultFile)
	}
	return c.Database.DSN, nil
}
