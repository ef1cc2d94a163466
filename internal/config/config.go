package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines configuration for the collab-dl CLI.
type Config struct {
	RegionHost      string        `yaml:"region_host"`
	LtiKey          string        `yaml:"lti_key"`
	LtiSecret       string        `yaml:"lti_secret"`
	RecordingReport string        `yaml:"recording_report"`
	DownloadPath    string        `yaml:"download_path"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		RequestTimeout: 30 * time.Second,
	}
}

// yamlConfig is used for YAML unmarshaling with string durations.
type yamlConfig struct {
	RegionHost      string `yaml:"region_host"`
	LtiKey          string `yaml:"lti_key"`
	LtiSecret       string `yaml:"lti_secret"`
	RecordingReport string `yaml:"recording_report"`
	DownloadPath    string `yaml:"download_path"`
	RequestTimeout  string `yaml:"request_timeout"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.RegionHost != "" {
		cfg.RegionHost = yc.RegionHost
	}
	if yc.LtiKey != "" {
		cfg.LtiKey = yc.LtiKey
	}
	if yc.LtiSecret != "" {
		cfg.LtiSecret = yc.LtiSecret
	}
	if yc.RecordingReport != "" {
		cfg.RecordingReport = yc.RecordingReport
	}
	if yc.DownloadPath != "" {
		cfg.DownloadPath = yc.DownloadPath
	}
	if yc.RequestTimeout != "" {
		d, err := time.ParseDuration(yc.RequestTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the COLLAB_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("COLLAB_REGION_HOST"); v != "" {
		c.RegionHost = v
	}
	if v := os.Getenv("COLLAB_LTI_KEY"); v != "" {
		c.LtiKey = v
	}
	if v := os.Getenv("COLLAB_LTI_SECRET"); v != "" {
		c.LtiSecret = v
	}
	if v := os.Getenv("COLLAB_RECORDING_REPORT"); v != "" {
		c.RecordingReport = v
	}
	if v := os.Getenv("COLLAB_DOWNLOAD_PATH"); v != "" {
		c.DownloadPath = v
	}
	if v := os.Getenv("COLLAB_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse COLLAB_REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = d
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.RegionHost == "" {
		return errors.New("config: region_host is required")
	}
	if c.LtiKey == "" {
		return errors.New("config: lti_key is required")
	}
	if c.LtiSecret == "" {
		return errors.New("config: lti_secret is required")
	}
	if c.RecordingReport == "" {
		return errors.New("config: recording_report is required")
	}
	if c.DownloadPath == "" {
		return errors.New("config: download_path is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("config: request_timeout must be positive")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.RegionHost != "" {
		c.RegionHost = override.RegionHost
	}
	if override.LtiKey != "" {
		c.LtiKey = override.LtiKey
	}
	if override.LtiSecret != "" {
		c.LtiSecret = override.LtiSecret
	}
	if override.RecordingReport != "" {
		c.RecordingReport = override.RecordingReport
	}
	if override.DownloadPath != "" {
		c.DownloadPath = override.DownloadPath
	}
	if override.RequestTimeout != 0 {
		c.RequestTimeout = override.RequestTimeout
	}
	return c
}
