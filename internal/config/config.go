// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; secrets come from flags, the
// environment, or the OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ayga/mcp/internal/xdg"
)

// DefaultAPIURL is the public executor.
const DefaultAPIURL = "https://redis.ayga.tech"

// Config holds non-sensitive CLI settings.
type Config struct {
	APIURL         string          `json:"api_url"`
	LogLevel       string          `json:"log_level"`
	LogFormat      string          `json:"log_format"`
	DefaultTimeout int             `json:"default_timeout"`
	HTTPTimeout    int             `json:"http_timeout"`
	Telemetry      TelemetryConfig `json:"telemetry"`
}

// TelemetryConfig selects the trace exporter.
type TelemetryConfig struct {
	// Exporter is "none", "otlp-http" or "otlp-grpc".
	Exporter string `json:"exporter"`
	// Endpoint is the collector address, e.g. "localhost:4318".
	Endpoint string `json:"endpoint"`
	Insecure bool   `json:"insecure"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		LogLevel:       "info",
		LogFormat:      "colorful",
		DefaultTimeout: 90,
		HTTPTimeout:    120,
		Telemetry:      TelemetryConfig{Exporter: "none"},
	}
}

// HTTPTimeoutDuration returns the per-request HTTP timeout.
func (c Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration from the XDG config dir; missing file returns defaults.
func Load() (Config, error) {
	p, err := path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(p)
}

// LoadFrom reads configuration from p. Fields absent from the file keep
// their defaults; a missing file returns defaults.
func LoadFrom(p string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Default(), err
	}
	c.fillZeroes()
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	return SaveTo(p, c)
}

// SaveTo writes configuration to p with 0600 permissions.
func SaveTo(p string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

func (c *Config) fillZeroes() {
	d := Default()
	if strings.TrimSpace(c.APIURL) == "" {
		c.APIURL = d.APIURL
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = d.DefaultTimeout
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = d.HTTPTimeout
	}
	if c.Telemetry.Exporter == "" {
		c.Telemetry.Exporter = d.Telemetry.Exporter
	}
}

// Getenv returns the first non-empty value among the named variables.
func Getenv(lookup func(string) string, names ...string) string {
	if lookup == nil {
		lookup = os.Getenv
	}
	for _, n := range names {
		if v := strings.TrimSpace(lookup(n)); v != "" {
			return v
		}
	}
	return ""
}

// ApplyEnv overrides settings from the environment. AYGA_* names win over
// the legacy REDIS_* names.
func (c *Config) ApplyEnv(lookup func(string) string) {
	if v := Getenv(lookup, "AYGA_API_URL", "REDIS_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := Getenv(lookup, "AYGA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := Getenv(lookup, "AYGA_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := Getenv(lookup, "AYGA_DEFAULT_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.DefaultTimeout = n
		}
	}
	if v := Getenv(lookup, "OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		c.Telemetry.Endpoint = v
		if c.Telemetry.Exporter == "" || c.Telemetry.Exporter == "none" {
			c.Telemetry.Exporter = "otlp-http"
		}
	}
	if v := Getenv(lookup, "AYGA_TELEMETRY_EXPORTER"); v != "" {
		c.Telemetry.Exporter = v
	}
}
