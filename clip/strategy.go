package clip

import (
	"fmt"
	"strings"

	"github.com/user/markerman/marker"
)

// Strategy selects how markers are read as clip boundaries.
type Strategy int

const (
	// DualMarker pairs each named marker with the marker that follows it.
	DualMarker Strategy = iota
	// Duration uses each marker's own duration.
	Duration
)

// Strategies lists every strategy in menu order.
func Strategies() []Strategy {
	return []Strategy{DualMarker, Duration}
}

// String returns the short name used in config files and flags.
func (s Strategy) String() string {
	switch s {
	case DualMarker:
		return "dual"
	case Duration:
		return "duration"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Label is the menu entry shown to the user.
func (s Strategy) Label() string {
	switch s {
	case DualMarker:
		return "Mark Clips using Multiple Markers"
	case Duration:
		return "Mark Clips using Marker Duration"
	default:
		return s.String()
	}
}

// Description explains the strategy to the user.
func (s Strategy) Description() string {
	switch s {
	case DualMarker:
		return "Markers WITH NAMES will be treated as IN points, the next marker will be treated as the OUT point. " +
			"A named marker that closes a clip is used only as that clip's OUT point."
	case Duration:
		return "Marker durations will be used to denote IN and OUT point of clips."
	default:
		return ""
	}
}

// Interpreter returns the scan implementing s.
func (s Strategy) Interpreter() Interpreter {
	switch s {
	case Duration:
		return DurationScan{}
	default:
		return DualMarkerScan{}
	}
}

// Interpret runs the strategy's scan.
func (s Strategy) Interpret(markers marker.Map, startFrame int, frameRate float64) []Clip {
	return s.Interpreter().Interpret(markers, startFrame, frameRate)
}

// ParseStrategy accepts the short name or the menu label, case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.TrimSpace(name)
	for _, s := range Strategies() {
		if strings.EqualFold(name, s.String()) || strings.EqualFold(name, s.Label()) {
			return s, nil
		}
	}
	switch strings.ToLower(name) {
	case "dual-marker", "dualmarker", "multiple", "pair":
		return DualMarker, nil
	}
	return 0, fmt.Errorf("unknown clip strategy %q (want %q or %q)", name, DualMarker, Duration)
}
