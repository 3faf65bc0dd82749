// Package config loads the server configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	DatabaseURL   string `yaml:"database_url"` // Postgres; empty means SQLite
	SQLitePath    string `yaml:"sqlite_path"`
	AdminUser     string `yaml:"admin_user"`
	AdminPassword string `yaml:"admin_password"`
	SessionSecret string `yaml:"session_secret"`
	Metrics       struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Default returns the configuration used when the file sets nothing.
func Default() *Config {
	cfg := &Config{
		SQLitePath: "cafe45.db",
		AdminUser:  "admin",
	}
	cfg.Metrics.Enabled = true
	cfg.Metrics.Port = 9090
	cfg.Metrics.Path = "/metrics"
	return cfg
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if c.AdminPassword == "" {
		return errors.New("admin_password must be set")
	}
	if c.SessionSecret == "" {
		return errors.New("session_secret must be set")
	}
	return nil
}
