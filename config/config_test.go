package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/markerman/clip"
	"github.com/user/markerman/marker"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "markerman.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDBPath, EnvLogLevel, EnvRenderDir, EnvFFmpeg, EnvMpvSocket} {
		t.Setenv(k, "")
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
db_path: /data/markers.db
log_level: debug
ffmpeg:
  binary_path: /opt/ffmpeg
render:
  target_dir: /renders
  encoding:
    audio_sample_rate: 48000
session:
  colors: [Blue, "green,pink"]
  strategy: duration
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.DBPath != "/data/markers.db" || cfg.LogLevel != "debug" || cfg.FFmpeg.BinaryPath != "/opt/ffmpeg" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Render.TargetDir != "/renders" {
		t.Fatalf("target dir = %q", cfg.Render.TargetDir)
	}
	if cfg.Render.Encoding.AudioSampleRate != 48000 {
		t.Fatalf("sample rate = %d, want 48000", cfg.Render.Encoding.AudioSampleRate)
	}
	if cfg.Render.Encoding.AudioCodec != "aac" || cfg.Render.Encoding.EncodingProfile != "Main10" {
		t.Fatalf("unset encoding fields lost their defaults: %+v", cfg.Render.Encoding)
	}

	colors := cfg.SessionColors()
	want := []marker.Color{marker.Blue, marker.Green, marker.Pink}
	if len(colors) != len(want) {
		t.Fatalf("SessionColors = %v, want %v", colors, want)
	}
	for i := range want {
		if colors[i] != want[i] {
			t.Fatalf("SessionColors = %v, want %v", colors, want)
		}
	}

	s, ok := cfg.SessionStrategy()
	if !ok || s != clip.Duration {
		t.Fatalf("SessionStrategy = %v, %v", s, ok)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.LogLevel != "info" || cfg.FFmpeg.BinaryPath != "ffmpeg" || cfg.Render.TargetDir != "" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if _, ok := cfg.SessionStrategy(); ok {
		t.Fatal("no strategy configured but SessionStrategy reported one")
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load of a missing explicit path expected error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "db_path: /from/file.db\nrender:\n  target_dir: /from/file\n")
	t.Setenv(EnvDBPath, "/from/env.db")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvRenderDir, "/from/env")
	t.Setenv(EnvFFmpeg, "/env/ffmpeg")
	t.Setenv(EnvMpvSocket, "/tmp/env.sock")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.DBPath != "/from/env.db" || cfg.LogLevel != "warn" || cfg.Render.TargetDir != "/from/env" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.FFmpeg.BinaryPath != "/env/ffmpeg" || cfg.Mpv.SocketPath != "/tmp/env.sock" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "reserved colour", body: "session:\n  colors: [none1]\n", want: "session.colors"},
		{name: "unknown colour", body: "session:\n  colors: [Magenta]\n", want: "session.colors"},
		{name: "unknown strategy", body: "session:\n  strategy: random\n", want: "session.strategy"},
		{name: "negative sample rate", body: "render:\n  encoding:\n    audio_sample_rate: -1\n", want: "audio_sample_rate"},
		{name: "bad log level", body: "log_level: loud\n", want: "log_level"},
		{name: "bad yaml", body: "session: [\n", want: "parse config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Load error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := defaultConfig()
	cfg.Session.Strategy = "dual"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if loaded.Session.Strategy != "dual" || loaded.Render.Encoding != cfg.Render.Encoding {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestContext(t *testing.T) {
	cfg := defaultConfig()
	cfg.DBPath = "/ctx.db"
	if got := FromContext(WithConfig(context.Background(), cfg)); got.DBPath != "/ctx.db" {
		t.Fatalf("FromContext = %+v", got)
	}
	if got := FromContext(context.Background()); got == nil || got.LogLevel != "info" {
		t.Fatalf("FromContext(empty) = %+v", got)
	}
}
