package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected default request timeout 30s, got %v", cfg.RequestTimeout)
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
region_host: https://us.bbcollab.com
lti_key: my-key
lti_secret: my-secret
recording_report: /data/recording_report.csv
download_path: /data/recordings
request_timeout: 45s
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.RegionHost != "https://us.bbcollab.com" {
		t.Errorf("expected region host, got %s", cfg.RegionHost)
	}
	if cfg.LtiKey != "my-key" {
		t.Errorf("expected lti key, got %s", cfg.LtiKey)
	}
	if cfg.LtiSecret != "my-secret" {
		t.Errorf("expected lti secret, got %s", cfg.LtiSecret)
	}
	if cfg.RecordingReport != "/data/recording_report.csv" {
		t.Errorf("expected report path, got %s", cfg.RecordingReport)
	}
	if cfg.DownloadPath != "/data/recordings" {
		t.Errorf("expected download path, got %s", cfg.DownloadPath)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Errorf("expected request timeout 45s, got %v", cfg.RequestTimeout)
	}
}

func TestLoadFromYAMLKeepsDefaults(t *testing.T) {
	yamlContent := `
region_host: https://eu.bbcollab.com
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected default timeout preserved, got %v", cfg.RequestTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("COLLAB_REGION_HOST", "https://au.bbcollab.com")
	t.Setenv("COLLAB_LTI_KEY", "env-key")
	t.Setenv("COLLAB_LTI_SECRET", "env-secret")
	t.Setenv("COLLAB_RECORDING_REPORT", "report.csv")
	t.Setenv("COLLAB_DOWNLOAD_PATH", "downloads")
	t.Setenv("COLLAB_REQUEST_TIMEOUT", "10s")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.RegionHost != "https://au.bbcollab.com" {
		t.Errorf("expected env region host, got %s", cfg.RegionHost)
	}
	if cfg.LtiKey != "env-key" {
		t.Errorf("expected env key, got %s", cfg.LtiKey)
	}
	if cfg.LtiSecret != "env-secret" {
		t.Errorf("expected env secret, got %s", cfg.LtiSecret)
	}
	if cfg.RecordingReport != "report.csv" {
		t.Errorf("expected env report, got %s", cfg.RecordingReport)
	}
	if cfg.DownloadPath != "downloads" {
		t.Errorf("expected env download path, got %s", cfg.DownloadPath)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected env timeout 10s, got %v", cfg.RequestTimeout)
	}
}

func TestLoadFromEnvBadTimeout(t *testing.T) {
	t.Setenv("COLLAB_REQUEST_TIMEOUT", "not-a-duration")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err == nil {
		t.Error("expected error for invalid timeout")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		RegionHost:      "https://us.bbcollab.com",
		LtiKey:          "key",
		LtiSecret:       "secret",
		RecordingReport: "report.csv",
		DownloadPath:    "downloads",
		RequestTimeout:  30 * time.Second,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"missing region host", func(c *Config) { c.RegionHost = "" }, true},
		{"missing key", func(c *Config) { c.LtiKey = "" }, true},
		{"missing secret", func(c *Config) { c.LtiSecret = "" }, true},
		{"missing report", func(c *Config) { c.RecordingReport = "" }, true},
		{"missing download path", func(c *Config) { c.DownloadPath = "" }, true},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	base.RegionHost = "https://us.bbcollab.com"
	base.LtiKey = "file-key"
	base.LtiSecret = "file-secret"
	base.RecordingReport = "file-report.csv"
	base.DownloadPath = "file-downloads"

	override := Config{
		RecordingReport: "flag-report.csv",
	}

	merged := base.Merge(override)

	if merged.RegionHost != "https://us.bbcollab.com" {
		t.Errorf("expected RegionHost preserved, got %s", merged.RegionHost)
	}
	if merged.LtiKey != "file-key" {
		t.Errorf("expected LtiKey preserved, got %s", merged.LtiKey)
	}
	if merged.RecordingReport != "flag-report.csv" {
		t.Errorf("expected RecordingReport overridden, got %s", merged.RecordingReport)
	}
	if merged.RequestTimeout != 30*time.Second {
		t.Errorf("expected RequestTimeout preserved, got %v", merged.RequestTimeout)
	}
}

func TestLoadYAMLFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadYAMLInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	_, err := LoadFromFile(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}
