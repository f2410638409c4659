// Package config loads the per-project .crudgen.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the project root.
const FileName = ".crudgen.yaml"

// Schema sources.
const (
	SchemaLaravel = "laravel" // Eloquent model classes
	SchemaCUE     = "cue"     // CUE manifest
)

// Column sources used with SchemaLaravel.
const (
	ColumnsDatabase   = "database"
	ColumnsMigrations = "migrations"
)

// Route sources for permission synthesis.
const (
	RoutesArtisan = "artisan"
	RoutesFile    = "file"
)

// Config represents the crudgen configuration.
type Config struct {
	PHP      string         `yaml:"php" validate:"required"`
	Schema   SchemaConfig   `yaml:"schema"`
	Routes   RoutesConfig   `yaml:"routes"`
	Database DatabaseConfig `yaml:"database"`
	Layout   LayoutConfig   `yaml:"layout"`
}

// SchemaConfig selects where model fields and column types come from.
type SchemaConfig struct {
	Source   string `yaml:"source" validate:"oneof=laravel cue"`
	Columns  string `yaml:"columns" validate:"oneof=database migrations"`
	Manifest string `yaml:"manifest" validate:"required_if=Source cue"`
}

// RoutesConfig selects how named routes are listed.
type RoutesConfig struct {
	Source string `yaml:"source" validate:"oneof=artisan file"`
}

// DatabaseConfig points at the project's database. An empty driver
// disables everything that needs a connection.
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"omitempty,oneof=mysql postgres sqlite"`
	DSN    string `yaml:"dsn" validate:"required_with=Driver"`
}

// LayoutConfig customizes the generated admin layout.
type LayoutConfig struct {
	Brand      string `yaml:"brand" validate:"required"`
	FooterText string `yaml:"footer_text"`
	FooterURL  string `yaml:"footer_url" validate:"omitempty,url"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		PHP: "php",
		Schema: SchemaConfig{
			Source:   SchemaLaravel,
			Columns:  ColumnsMigrations,
			Manifest: "crudgen.cue",
		},
		Routes: RoutesConfig{Source: RoutesArtisan},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "database/database.sqlite",
		},
		Layout: LayoutConfig{
			Brand:      "Admin Panel",
			FooterText: "Laravel",
			FooterURL:  "https://laravel.com",
		},
	}
}

// LoadConfig reads .crudgen.yaml from dir. A missing file yields Default();
// keys absent from the file keep their default values.
func LoadConfig(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile reads and validates a config file at an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to dir/.crudgen.yaml.
func SaveConfig(dir string, cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks field constraints.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ResolvePath joins a project-relative path onto root; absolute paths are kept.
func ResolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
