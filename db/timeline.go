package db

import (
	"context"
	"fmt"
	"strconv"

	"github.com/user/markerman/marker"
	"github.com/user/markerman/render"
)

var (
	_ marker.Source           = (*Timeline)(nil)
	_ marker.Clearer          = (*Timeline)(nil)
	_ marker.Replacer         = (*Timeline)(nil)
	_ render.SettingsProvider = (*Timeline)(nil)
)

// Markers returns every marker on the timeline, keyed by frame offset.
func (t *Timeline) Markers(ctx context.Context) (marker.Map, error) {
	return SelectMarkers(ctx, t.db, t.ID)
}

// StartFrame is the absolute frame at which the timeline begins.
func (t *Timeline) StartFrame(context.Context) (int, error) {
	return t.Start, nil
}

// AddMarker stores m on the timeline.
func (t *Timeline) AddMarker(ctx context.Context, m marker.Marker) error {
	return InsertMarker(ctx, t.db, t.ID, m)
}

// DeleteMarkerAtFrame removes the marker at frame, if any.
func (t *Timeline) DeleteMarkerAtFrame(ctx context.Context, frame int) (bool, error) {
	return DeleteMarkerAtFrame(ctx, t.db, t.ID, frame)
}

// ReplaceMarker rewrites the marker at m.Frame atomically.
func (t *Timeline) ReplaceMarker(ctx context.Context, m marker.Marker) (bool, error) {
	return ReplaceMarker(ctx, t.db, t.ID, m)
}

// ClearMarkers removes every marker on the timeline.
func (t *Timeline) ClearMarkers(ctx context.Context) (int, error) {
	return DeleteMarkers(ctx, t.db, t.ID)
}

// Setting answers the project settings the render step asks for.
func (t *Timeline) Setting(_ context.Context, name string) (string, error) {
	switch name {
	case render.SettingFrameRate:
		return strconv.FormatFloat(t.FrameRate, 'f', -1, 64), nil
	case render.SettingHeight:
		return strconv.Itoa(t.Height), nil
	case render.SettingWidth:
		return strconv.Itoa(t.Width), nil
	default:
		return "", fmt.Errorf("unknown project setting %q", name)
	}
}
