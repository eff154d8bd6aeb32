package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/markerman/clip"
	"github.com/user/markerman/marker"
	"github.com/user/markerman/render"
)

type contextKey string

const configKey contextKey = "config"

// Environment variables that override the config file.
const (
	EnvDBPath    = "MARKERMAN_DB_PATH"
	EnvLogLevel  = "MARKERMAN_LOG_LEVEL"
	EnvRenderDir = "MARKERMAN_RENDER_DIR"
	EnvFFmpeg    = "MARKERMAN_FFMPEG"
	EnvMpvSocket = "MARKERMAN_MPV_SOCKET"
)

// Config holds all application configuration
type Config struct {
	DBPath   string `yaml:"db_path"`
	LogLevel string `yaml:"log_level"`

	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
	Mpv     MpvConfig     `yaml:"mpv"`
	Render  RenderConfig  `yaml:"render"`
	Session SessionConfig `yaml:"session"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type MpvConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SocketPath string `yaml:"socket_path"`
}

type RenderConfig struct {
	// TargetDir skips the render location prompt when set.
	TargetDir string          `yaml:"target_dir"`
	Encoding  render.Encoding `yaml:"encoding"`
}

type SessionConfig struct {
	// Colors preselects marker colours in the colour prompt.
	Colors []string `yaml:"colors"`
	// Strategy preselects the clip strategy ("dual" or "duration").
	Strategy string `yaml:"strategy"`
}

// Load reads configuration from path, or from the first file found in the
// search path when path is empty, then applies environment overrides.
// A missing file found by search is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = findConfigFile()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the rest of the program cannot use.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}

	if _, err := marker.ParseColors(c.Session.Colors); err != nil {
		errs = append(errs, fmt.Errorf("session.colors: %w", err))
	}
	if c.Session.Strategy != "" {
		if _, err := clip.ParseStrategy(c.Session.Strategy); err != nil {
			errs = append(errs, fmt.Errorf("session.strategy: %w", err))
		}
	}

	enc := c.Render.Encoding
	if enc.AudioBitDepth < 0 {
		errs = append(errs, fmt.Errorf("render.encoding.audio_bit_depth must not be negative"))
	}
	if enc.AudioSampleRate < 0 {
		errs = append(errs, fmt.Errorf("render.encoding.audio_sample_rate must not be negative"))
	}
	if enc.VideoQuality < 0 {
		errs = append(errs, fmt.Errorf("render.encoding.video_quality must not be negative"))
	}
	if enc.UniqueFilenameStyle != render.UniquePrefix && enc.UniqueFilenameStyle != render.UniqueSuffix {
		errs = append(errs, fmt.Errorf("render.encoding.unique_filename_style must be 0 or 1"))
	}

	return errors.Join(errs...)
}

// SessionColors returns the preselected colours.
func (c *Config) SessionColors() []marker.Color {
	colors, _ := marker.ParseColors(c.Session.Colors)
	return colors
}

// SessionStrategy returns the preselected strategy and whether one is set.
func (c *Config) SessionStrategy() (clip.Strategy, bool) {
	if c.Session.Strategy == "" {
		return clip.DualMarker, false
	}
	s, err := clip.ParseStrategy(c.Session.Strategy)
	return s, err == nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvRenderDir); v != "" {
		c.Render.TargetDir = v
	}
	if v := os.Getenv(EnvFFmpeg); v != "" {
		c.FFmpeg.BinaryPath = v
	}
	if v := os.Getenv(EnvMpvSocket); v != "" {
		c.Mpv.SocketPath = v
	}
}

func defaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		FFmpeg: FFmpegConfig{
			BinaryPath: "ffmpeg",
		},
		Mpv: MpvConfig{
			BinaryPath: "mpv",
		},
		Render: RenderConfig{
			Encoding: render.DefaultEncoding(),
		},
	}
}

// DefaultPath is where `config init` writes and the last place Load looks.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "markerman", "config.yaml")
}

func findConfigFile() string {
	candidates := []string{
		"./markerman.yaml",
		"./markerman.yml",
		DefaultPath(),
	}

	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
