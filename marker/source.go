package marker

import (
	"context"
	"fmt"
)

// Source is the host timeline the markers live on.
type Source interface {
	// Markers returns every marker on the timeline.
	Markers(ctx context.Context) (Map, error)
	// StartFrame is the absolute frame the timeline starts at.
	StartFrame(ctx context.Context) (int, error)
	// AddMarker places a marker at m.Frame. Adding onto an occupied frame fails.
	AddMarker(ctx context.Context, m Marker) error
	// DeleteMarkerAtFrame removes the marker at frame and reports whether one existed.
	DeleteMarkerAtFrame(ctx context.Context, frame int) (bool, error)
}

// ByColor returns the source's markers whose colour is one of colors.
func ByColor(ctx context.Context, src Source, colors ...Color) (Map, error) {
	all, err := src.Markers(ctx)
	if err != nil {
		return nil, err
	}
	return all.FilterByColor(colors...), nil
}

// Overrides replaces marker fields during Edit. Zero values keep the
// marker's current value.
type Overrides struct {
	Color      Color
	Name       string
	Note       string
	Duration   int
	CustomData string
}

func (o Overrides) apply(m Marker) Marker {
	if o.Color != "" {
		m.Color = o.Color
	}
	if o.Name != "" {
		m.Name = o.Name
	}
	if o.Note != "" {
		m.Note = o.Note
	}
	if o.Duration != 0 {
		m.Duration = o.Duration
	}
	if o.CustomData != "" {
		m.CustomData = o.CustomData
	}
	return m
}

// Replacer is implemented by sources that can swap the marker at a frame
// in one step, leaving the old marker in place when the swap fails.
type Replacer interface {
	ReplaceMarker(ctx context.Context, m Marker) (bool, error)
}

// Edit rewrites each marker in markers with o applied. Sources that are not a
// Replacer get a delete followed by an add. Markers the source no longer
// holds are skipped. It returns the number of markers rewritten.
func Edit(ctx context.Context, src Source, markers Map, o Overrides) (int, error) {
	replacer, atomic := src.(Replacer)
	edited := 0
	for _, m := range markers.Sorted() {
		if atomic {
			replaced, err := replacer.ReplaceMarker(ctx, o.apply(m))
			if err != nil {
				return edited, fmt.Errorf("replace marker at frame %d: %w", m.Frame, err)
			}
			if replaced {
				edited++
			}
			continue
		}

		deleted, err := src.DeleteMarkerAtFrame(ctx, m.Frame)
		if err != nil {
			return edited, fmt.Errorf("delete marker at frame %d: %w", m.Frame, err)
		}
		if !deleted {
			continue
		}
		if err := src.AddMarker(ctx, o.apply(m)); err != nil {
			return edited, fmt.Errorf("re-add marker at frame %d: %w", m.Frame, err)
		}
		edited++
	}
	return edited, nil
}

// Clearer is implemented by sources that can drop all markers in one call.
type Clearer interface {
	ClearMarkers(ctx context.Context) (int, error)
}

// DeleteAll removes every marker from src and returns how many were removed.
func DeleteAll(ctx context.Context, src Source) (int, error) {
	if c, ok := src.(Clearer); ok {
		return c.ClearMarkers(ctx)
	}
	all, err := src.Markers(ctx)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, f := range all.Frames() {
		ok, err := src.DeleteMarkerAtFrame(ctx, f)
		if err != nil {
			return deleted, fmt.Errorf("delete marker at frame %d: %w", f, err)
		}
		if ok {
			deleted++
		}
	}
	return deleted, nil
}
