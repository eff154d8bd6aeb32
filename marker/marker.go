// Package marker models timeline markers: timestamped, coloured annotations
// that the clip scans turn into in/out ranges.
package marker

import (
	"fmt"
	"sort"
	"strings"
)

// Color is one of the host's named marker colours.
type Color string

const (
	Orange    Color = "Orange"
	Apricot   Color = "Apricot"
	Yellow    Color = "Yellow"
	Lime      Color = "Lime"
	Olive     Color = "Olive"
	Green     Color = "Green"
	Teal      Color = "Teal"
	Navy      Color = "Navy"
	Blue      Color = "Blue"
	Purple    Color = "Purple"
	Violet    Color = "Violet"
	Pink      Color = "Pink"
	Tan       Color = "Tan"
	Beige     Color = "Beige"
	Brown     Color = "Brown"
	Chocolate Color = "Chocolate"
	// None1 and None2 are reserved slots; they are never offered for selection.
	None1 Color = "none1"
	None2 Color = "none2"
)

var allColors = []Color{
	Orange, Apricot, Yellow, Lime, Olive, Green,
	Teal, Navy, Blue, Purple, Violet, Pink,
	Tan, Beige, Brown, Chocolate, None1, None2,
}

// Colors returns all 18 colours in host order, reserved slots included.
func Colors() []Color {
	out := make([]Color, len(allColors))
	copy(out, allColors)
	return out
}

// EnabledColors returns the selectable colours in host order.
func EnabledColors() []Color {
	out := make([]Color, 0, len(allColors))
	for _, c := range allColors {
		if c.Enabled() {
			out = append(out, c)
		}
	}
	return out
}

// Enabled reports whether c is a selectable colour.
func (c Color) Enabled() bool {
	return !strings.HasPrefix(string(c), "none")
}

func (c Color) String() string {
	return string(c)
}

// ParseColor resolves a colour name case-insensitively. Reserved and unknown
// names are rejected.
func ParseColor(s string) (Color, error) {
	for _, c := range allColors {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			if !c.Enabled() {
				return "", fmt.Errorf("marker colour %q is reserved", s)
			}
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown marker colour %q", s)
}

// ParseColors resolves a list of colour names, accepting comma separated
// entries, and drops duplicates while keeping first-seen order.
func ParseColors(names []string) ([]Color, error) {
	var out []Color
	seen := make(map[Color]bool)
	for _, entry := range names {
		for _, name := range strings.Split(entry, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			c, err := ParseColor(name)
			if err != nil {
				return nil, err
			}
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out, nil
}

// DefaultNamePrefix starts every name the host generates for a marker the
// user did not name ("Marker 1", "Marker 2", ...).
const DefaultNamePrefix = "Marker "

// IsDefaultName reports whether name is a host auto-generated marker name.
func IsDefaultName(name string) bool {
	return strings.HasPrefix(name, DefaultNamePrefix)
}

// Marker is a single timeline annotation. Frame is relative to the start of
// the timeline; Duration is in frames.
type Marker struct {
	Frame      int
	Color      Color
	Name       string
	Note       string
	Duration   int
	CustomData string
}

// Named reports whether the marker carries an explicit, user-given name.
func (m Marker) Named() bool {
	return !IsDefaultName(m.Name)
}

// Map holds markers keyed by their timeline-relative frame. Frames are unique.
type Map map[int]Marker

// NewMap builds a Map from markers, keyed by each marker's Frame. A later
// marker at the same frame replaces an earlier one.
func NewMap(markers ...Marker) Map {
	m := make(Map, len(markers))
	for _, mk := range markers {
		m[mk.Frame] = mk
	}
	return m
}

// Frames returns the marker frames in ascending order.
func (m Map) Frames() []int {
	frames := make([]int, 0, len(m))
	for f := range m {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames
}

// Sorted returns the markers in ascending frame order, with each marker's
// Frame set to its key.
func (m Map) Sorted() []Marker {
	out := make([]Marker, 0, len(m))
	for _, f := range m.Frames() {
		mk := m[f]
		mk.Frame = f
		out = append(out, mk)
	}
	return out
}

// FilterByColor returns the markers whose colour is one of colors.
func (m Map) FilterByColor(colors ...Color) Map {
	want := make(map[Color]bool, len(colors))
	for _, c := range colors {
		want[c] = true
	}
	out := make(Map)
	for f, mk := range m {
		if want[mk.Color] {
			out[f] = mk
		}
	}
	return out
}
