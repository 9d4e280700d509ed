package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"connlogger/internal/models"
)

// Config holds all configuration for the connection logger.
type Config struct {
	Hosts                []models.Host `yaml:"hosts"`
	PingCount            int           `yaml:"ping_count"`
	IntervalSeconds      int           `yaml:"interval_seconds"`
	TimeoutSeconds       int           `yaml:"timeout_seconds"`
	RetentionDays        int           `yaml:"retention_days"`
	CleanupIntervalHours int           `yaml:"cleanup_interval_hours"`
	DatabasePath         string        `yaml:"database_path"`
	Dashboard            Dashboard     `yaml:"dashboard"`
}

// Dashboard configures the web interface.
type Dashboard struct {
	Port  int    `yaml:"port"`
	Title string `yaml:"title"`
}

// Default returns the built-in configuration used when no file is given.
func Default() Config {
	return Config{
		Hosts: []models.Host{
			{Name: "Google DNS", Address: "8.8.8.8"},
			{Name: "Cloudflare DNS", Address: "1.1.1.1"},
		},
		PingCount:            5,
		IntervalSeconds:      60,
		TimeoutSeconds:       5,
		RetentionDays:        90,
		CleanupIntervalHours: 24,
		DatabasePath:         "connlogger.db",
		Dashboard: Dashboard{
			Port:  8080,
			Title: "Connection Monitor",
		},
	}
}

// Load reads configuration from a YAML file. A missing file falls back to
// defaults; a malformed or invalid file is an error.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	cfg.Hosts = nil
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable. An empty host list is
// allowed: the monitor then runs no-op cycles.
func (c *Config) Validate() error {
	if c.PingCount <= 0 {
		return fmt.Errorf("ping_count must be positive, got %d", c.PingCount)
	}
	if c.IntervalSeconds <= 0 {
		return fmt.Errorf("interval_seconds must be positive, got %d", c.IntervalSeconds)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.RetentionDays <= 0 {
		return fmt.Errorf("retention_days must be positive, got %d", c.RetentionDays)
	}
	if c.CleanupIntervalHours <= 0 {
		return fmt.Errorf("cleanup_interval_hours must be positive, got %d", c.CleanupIntervalHours)
	}
	if c.DatabasePath == "" {
		return errors.New("database_path cannot be empty")
	}
	if c.Dashboard.Port < 0 || c.Dashboard.Port > 65535 {
		return fmt.Errorf("dashboard port must be between 0 and 65535, got %d", c.Dashboard.Port)
	}

	seen := make(map[string]string, len(c.Hosts))
	for _, h := range c.Hosts {
		if h.Address == "" {
			return fmt.Errorf("host %q has an empty address", h.Name)
		}
		if prev, ok := seen[h.Address]; ok {
			return fmt.Errorf("duplicate host address %s (%q and %q)", h.Address, prev, h.Name)
		}
		seen[h.Address] = h.Name
	}
	return nil
}

// Interval returns the probe cycle interval.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Timeout returns the per-attempt ping timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CleanupInterval returns the retention loop interval.
func (c *Config) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalHours) * time.Hour
}
