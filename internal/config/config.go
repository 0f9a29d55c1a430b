// Package config loads costcheck.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "costcheck.toml"

// AppConfig is the application configuration.
type AppConfig struct {
	Server     ServerConfig     `toml:"server"`
	Validation ValidationConfig `toml:"validation"`
	Log        LogConfig        `toml:"log"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
	// MaxUploadMB caps the multipart body of one validation request.
	MaxUploadMB int64 `toml:"max_upload_mb"`
}

// ValidationConfig selects rulesets and their reference tables.
type ValidationConfig struct {
	DefaultBrand string `toml:"default_brand"`
	ReferenceDir string `toml:"reference_dir"`
	// Charset of reference CSV files, as an HTML encoding label.
	Charset string `toml:"charset"`
	// RulesFile is an optional YAML ruleset replacing the built-in brands.
	RulesFile string `toml:"rules_file"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        8080,
			DevMode:     false,
			MaxUploadMB: 32,
		},
		Validation: ValidationConfig{
			DefaultBrand: "tidewater",
			ReferenceDir: "reference",
			Charset:      "utf-8",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults and applies COSTCHECK_* environment
// overrides. A missing file is not an error.
func Load(path string) (*AppConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv("COSTCHECK_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("COSTCHECK_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("COSTCHECK_BRAND"); v != "" {
		cfg.Validation.DefaultBrand = v
	}
	if v := os.Getenv("COSTCHECK_REFERENCE_DIR"); v != "" {
		cfg.Validation.ReferenceDir = v
	}
	if v := os.Getenv("COSTCHECK_RULES_FILE"); v != "" {
		cfg.Validation.RulesFile = v
	}
	if v := os.Getenv("COSTCHECK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// ErrExists indicates Init would overwrite a config file.
var ErrExists = errors.New("config file already exists")

// Init writes cfg to path for editing. An existing file is kept unless
// overwrite is set.
func Init(path string, cfg *AppConfig, overwrite bool) error {
	if path == "" {
		path = DefaultPath
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}
	return Save(path, cfg)
}

// Save writes cfg as TOML.
func Save(path string, cfg *AppConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Addr is the listen address for the HTTP service.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
