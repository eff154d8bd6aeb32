// Package render turns clips into render jobs and hands them to a render queue.
package render

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Project setting names read from the SettingsProvider.
const (
	SettingFrameRate = "timelineFrameRate"
	SettingHeight    = "timelineResolutionHeight"
	SettingWidth     = "timelineResolutionWidth"
)

// SettingsProvider exposes named project settings as text.
type SettingsProvider interface {
	Setting(ctx context.Context, name string) (string, error)
}

// ProjectSettings holds the timeline format every render job inherits.
type ProjectSettings struct {
	FrameRate float64
	Width     int
	Height    int
}

// LoadProjectSettings reads frame rate and resolution from p.
func LoadProjectSettings(ctx context.Context, p SettingsProvider) (ProjectSettings, error) {
	var ps ProjectSettings

	raw, err := p.Setting(ctx, SettingFrameRate)
	if err != nil {
		return ps, fmt.Errorf("read %s: %w", SettingFrameRate, err)
	}
	ps.FrameRate, err = strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return ps, fmt.Errorf("parse %s %q: %w", SettingFrameRate, raw, err)
	}
	if ps.FrameRate <= 0 {
		return ps, fmt.Errorf("%s must be positive, got %v", SettingFrameRate, ps.FrameRate)
	}

	if ps.Height, err = intSetting(ctx, p, SettingHeight); err != nil {
		return ps, err
	}
	if ps.Width, err = intSetting(ctx, p, SettingWidth); err != nil {
		return ps, err
	}
	return ps, nil
}

func intSetting(ctx context.Context, p SettingsProvider, name string) (int, error) {
	raw, err := p.Setting(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", name, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", name, raw, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %d", name, n)
	}
	return n, nil
}
