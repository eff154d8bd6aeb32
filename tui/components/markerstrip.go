package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/markerman/marker"
	"github.com/user/markerman/pkg/timecode"
	"github.com/user/markerman/tui/styles"
)

// MarkerStrip renders the span from start to end frames as a bar with a
// diamond at each marker, coloured like the marker. Markers outside the span
// are not drawn.
func MarkerStrip(markers marker.Map, start, end int, frameRate float64, width int) string {
	if width < 20 {
		return ""
	}

	rule := lipgloss.NewStyle().Foreground(styles.Purple)
	label := lipgloss.NewStyle().Foreground(styles.LightLavender).Bold(true)

	span := fmt.Sprintf(" %s / %s",
		timecode.FramesToTimecode(start, frameRate),
		timecode.FramesToTimecode(end, frameRate))

	barWidth := max(width-4-lipgloss.Width(span)-2, 10)

	slots := make([]marker.Color, barWidth)
	if end > start {
		for _, m := range markers.Sorted() {
			if m.Frame < start || m.Frame > end {
				continue
			}
			pos := int(math.Round(float64(barWidth-1) * float64(m.Frame-start) / float64(end-start)))
			slots[pos] = m.Color
		}
	}

	var bar strings.Builder
	for _, c := range slots {
		if c == "" {
			bar.WriteString(rule.Render("─"))
			continue
		}
		bar.WriteString(styles.MarkerSwatch(c, "◆"))
	}

	return InfoBox("Timeline", []string{" " + bar.String() + " " + label.Render(span)}, width)
}
