// Package config provides configuration loading and management.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for the screenshot server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Quota    QuotaConfig    `yaml:"quota"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Tools    ToolsConfig    `yaml:"tools"`
	Document DocumentConfig `yaml:"document"`
	Debug    DebugConfig    `yaml:"debug"`
	LogLevel string         `yaml:"log_level"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	ListenAddr     string   `yaml:"listen_addr"`
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// QuotaConfig holds per-identity request limiting settings.
type QuotaConfig struct {
	// Limit is the number of requests allowed per identity per window.
	Limit int `yaml:"limit"`
	// WindowHours is the quota window length in hours.
	WindowHours int `yaml:"window_hours"`
	// Store selects the backing store: "memory" or "badger".
	Store string `yaml:"store"`
	// BadgerDir is the database directory for the badger store.
	BadgerDir string `yaml:"badger_dir"`
}

// PipelineConfig holds pipeline execution settings.
type PipelineConfig struct {
	// WorkspaceRoot is where per-job working directories are created.
	WorkspaceRoot string `yaml:"workspace_root"`
	// RequestTimeoutMs bounds one whole pipeline run.
	RequestTimeoutMs int `yaml:"request_timeout_ms"`
	// ReadTimeoutMs is the download inactivity budget between reads.
	ReadTimeoutMs int `yaml:"read_timeout_ms"`
	// RetryDelayMs is the pause before re-resolving a stalled download.
	RetryDelayMs int `yaml:"retry_delay_ms"`
	// CropWorkers is the crop stage worker count; 0 means NumCPU.
	CropWorkers int `yaml:"crop_workers"`
	// KeepWorkspace preserves job directories for debugging.
	KeepWorkspace bool `yaml:"keep_workspace"`
}

// ToolsConfig holds external binary locations.
type ToolsConfig struct {
	YtdlpPath   string `yaml:"ytdlp_path"`
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	ChromePath  string `yaml:"chrome_path"`
	// RendererFallback enables the Playwright fallback when no system
	// Chrome is found.
	RendererFallback bool `yaml:"renderer_fallback"`
}

// DocumentConfig holds document page rendering settings.
type DocumentConfig struct {
	// PageWidthPx is the page content width in CSS pixels.
	PageWidthPx int `yaml:"page_width_px"`
	// MarginVerticalPx is the top and bottom page margin in CSS pixels.
	MarginVerticalPx int `yaml:"margin_vertical_px"`
	// MarginHorizontalPx is the left and right page margin in CSS pixels.
	MarginHorizontalPx int `yaml:"margin_horizontal_px"`
	// RenderTimeoutMs bounds the document render, including navigation.
	RenderTimeoutMs int `yaml:"render_timeout_ms"`
}

// DebugConfig holds debug artifact settings.
type DebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr: ":8080",
		},
		Quota: QuotaConfig{
			Limit:       10,
			WindowHours: 24,
			Store:       "memory",
			BadgerDir:   "./data/quota",
		},
		Pipeline: PipelineConfig{
			WorkspaceRoot:    "./jobs",
			RequestTimeoutMs: 600000,
			ReadTimeoutMs:    30000,
			RetryDelayMs:     1000,
		},
		Tools: ToolsConfig{
			RendererFallback: true,
		},
		Document: DocumentConfig{
			PageWidthPx:        800,
			MarginVerticalPx:   48,
			MarginHorizontalPx: 48,
			RenderTimeoutMs:    60000,
		},
		Debug: DebugConfig{
			Dir: "./debug",
		},
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// QuotaWindow returns the quota window as a duration.
func (c Config) QuotaWindow() time.Duration {
	return time.Duration(c.Quota.WindowHours) * time.Hour
}

// RequestTimeout returns the pipeline timeout as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Pipeline.RequestTimeoutMs) * time.Millisecond
}

// ReadTimeout returns the download inactivity budget as a duration.
func (c Config) ReadTimeout() time.Duration {
	return time.Duration(c.Pipeline.ReadTimeoutMs) * time.Millisecond
}

// RetryDelay returns the download retry pause as a duration.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.Pipeline.RetryDelayMs) * time.Millisecond
}

// RenderTimeout returns the document render budget as a duration.
func (c Config) RenderTimeout() time.Duration {
	return time.Duration(c.Document.RenderTimeoutMs) * time.Millisecond
}
