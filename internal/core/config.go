package core

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jo-hoe/docucloud/internal/cloud"
	"gopkg.in/yaml.v3"
)

// Defaults are the per-request fallbacks for omitted form fields.
type Defaults struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Resolution int    `yaml:"resolution"`
	Format     string `yaml:"format"`
}

// Limits bound the accepted canvas size and resolution. MaxPixels caps the
// scaled output raster (width x height after the resolution is applied).
type Limits struct {
	MaxWidth      int `yaml:"maxWidth"`
	MaxHeight     int `yaml:"maxHeight"`
	MaxResolution int `yaml:"maxResolution"`
	MaxPixels     int `yaml:"maxPixels"`
}

// RateLimit throttles form submissions per client IP; zero disables it.
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

type ServiceConfig struct {
	Port          int       `yaml:"port"`
	UploadFolder  string    `yaml:"uploadFolder"`
	MaxUploadSize string    `yaml:"maxUploadSize"`
	LogLevel      string    `yaml:"logLevel"`
	FontFile      string    `yaml:"fontFile"`
	MaxWords      int       `yaml:"maxWords"`
	Defaults      Defaults  `yaml:"defaults"`
	Limits        Limits    `yaml:"limits"`
	RateLimit     RateLimit `yaml:"rateLimit"`
}

// DefaultConfig returns the configuration used for keys missing from the config file.
func DefaultConfig() *ServiceConfig {
	return &ServiceConfig{
		Port:          8080,
		UploadFolder:  "uploads",
		MaxUploadSize: "32M",
		LogLevel:      "info",
		MaxWords:      cloud.DefaultMaxWords,
		Defaults: Defaults{
			Width:      1200,
			Height:     800,
			Resolution: 300,
			Format:     string(cloud.PNG),
		},
		Limits: Limits{
			MaxWidth:      4000,
			MaxHeight:     4000,
			MaxResolution: 600,
			MaxPixels:     40_000_000,
		},
	}
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Parse YAML over the defaults
	config := DefaultConfig()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return config, nil
}

// Validate checks ranges and cross-field constraints.
func (c *ServiceConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if strings.TrimSpace(c.UploadFolder) == "" {
		return fmt.Errorf("uploadFolder must not be empty")
	}
	if c.MaxWords < 0 {
		return fmt.Errorf("maxWords must not be negative, got %d", c.MaxWords)
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}

	if c.Limits.MaxWidth <= 0 || c.Limits.MaxHeight <= 0 || c.Limits.MaxResolution <= 0 || c.Limits.MaxPixels <= 0 {
		return fmt.Errorf("limits must be positive, got %+v", c.Limits)
	}
	d := c.Defaults
	if d.Width <= 0 || d.Width > c.Limits.MaxWidth {
		return fmt.Errorf("default width %d outside 1..%d", d.Width, c.Limits.MaxWidth)
	}
	if d.Height <= 0 || d.Height > c.Limits.MaxHeight {
		return fmt.Errorf("default height %d outside 1..%d", d.Height, c.Limits.MaxHeight)
	}
	if d.Resolution <= 0 || d.Resolution > c.Limits.MaxResolution {
		return fmt.Errorf("default resolution %d outside 1..%d", d.Resolution, c.Limits.MaxResolution)
	}
	if w, h := cloud.OutputSize(d.Width, d.Height, d.Resolution); w*h > c.Limits.MaxPixels {
		return fmt.Errorf("default output %dx%d exceeds maxPixels %d", w, h, c.Limits.MaxPixels)
	}
	if _, err := cloud.ParseFormat(d.Format); err != nil {
		return fmt.Errorf("default format: %w", err)
	}

	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rateLimit must not be negative, got %+v", c.RateLimit)
	}
	return nil
}

// SlogLevel returns the configured log level; unknown values map to info.
func (c *ServiceConfig) SlogLevel() slog.Level {
	level, err := parseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown logLevel: %q", name)
	}
}
