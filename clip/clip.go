// Package clip derives named clip ranges from timeline markers.
package clip

import (
	"github.com/user/markerman/marker"
	"github.com/user/markerman/pkg/timecode"
)

// Clip is one derived in/out range. In and out points are absolute timeline
// frames. A Clip is built once by Build and never modified.
type Clip struct {
	Index    string
	InPoint  int
	OutPoint int
	Filename string
	Name     string
	Note     string
	Color    string
	Frames   int
	Duration string
}

// Build materialises the clip for the range [in, out) opened by source.
// Frames may be negative for an inverted range; Duration then holds the
// timecode.Placeholder value.
func Build(in, out int, source marker.Marker, index int, frameRate float64) Clip {
	return Clip{
		Index:    FormatIndex(index),
		InPoint:  in,
		OutPoint: out,
		Filename: Filename(index, source.Name),
		Name:     source.Name,
		Note:     source.Note,
		Color:    string(source.Color),
		Frames:   out - in,
		Duration: timecode.ComputeDuration(in, out, frameRate),
	}
}

// InTimecode formats the clip's in point as HH:MM:SS:FF.
func (c Clip) InTimecode(frameRate float64) string {
	return timecode.FramesToTimecode(c.InPoint, frameRate)
}

// OutTimecode formats the clip's out point as HH:MM:SS:FF.
func (c Clip) OutTimecode(frameRate float64) string {
	return timecode.FramesToTimecode(c.OutPoint, frameRate)
}

// collector hands out dense 1-based indices in discovery order.
type collector struct {
	frameRate float64
	clips     []Clip
}

func (c *collector) add(in, out int, source marker.Marker) {
	c.clips = append(c.clips, Build(in, out, source, len(c.clips)+1, c.frameRate))
}
