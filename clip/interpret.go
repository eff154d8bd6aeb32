package clip

import "github.com/user/markerman/marker"

// Interpreter turns frame-ordered markers into clips. startFrame is added to
// every marker frame to get absolute positions.
type Interpreter interface {
	Interpret(markers marker.Map, startFrame int, frameRate float64) []Clip
}

// DualMarkerScan treats a named marker as an IN point and the next marker as
// its OUT point.
//
// A named marker that closes an open clip is spent as that clip's OUT point;
// it does not also open the next clip. An IN point still open when the
// markers run out produces nothing.
type DualMarkerScan struct{}

// Interpret implements Interpreter.
func (DualMarkerScan) Interpret(markers marker.Map, startFrame int, frameRate float64) []Clip {
	c := collector{frameRate: frameRate}

	var (
		markIn, markOut int
		hasIn, hasOut   bool
		pending         *marker.Marker
	)

	for _, m := range markers.Sorted() {
		pos := startFrame + m.Frame

		switch {
		case m.Named() && hasIn:
			markOut, hasOut = pos, true
		case m.Named():
			markIn, hasIn = pos, true
			hasOut = false
			opener := m
			pending = &opener
		default:
			markOut, hasOut = pos, true
		}

		if hasIn && hasOut && pending != nil {
			c.add(markIn, markOut, *pending)
			hasIn, hasOut = false, false
			pending = nil
		}
	}

	return c.clips
}

// DurationScan makes one clip per marker spanning the marker's own duration.
// Markers without a positive duration are skipped.
type DurationScan struct{}

// Interpret implements Interpreter.
func (DurationScan) Interpret(markers marker.Map, startFrame int, frameRate float64) []Clip {
	c := collector{frameRate: frameRate}

	for _, m := range markers.Sorted() {
		if m.Duration <= 0 {
			continue
		}
		markIn := startFrame + m.Frame
		c.add(markIn, markIn+m.Duration, m)
	}

	return c.clips
}
