// Package styles provides Lipgloss styles for the terminal dialogs using the
// Ciapre colour palette.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/user/markerman/marker"
)

// Color palette - Ciapre (warm, earthy) theme from Gogh
const (
	// DeepPurple is the main background colour (Ciapre background)
	DeepPurple = lipgloss.Color("#191C27")
	// Purple is the border/dim accent colour (Ciapre ANSI 6 brown)
	Purple = lipgloss.Color("#5C4F4B")
	// BrightPurple is used for highlights and focus states (Ciapre ANSI 5 magenta)
	BrightPurple = lipgloss.Color("#724D7C")
	// Lavender is a secondary text colour (Ciapre foreground)
	Lavender = lipgloss.Color("#AEA47A")
	// LightLavender is the primary text colour (Ciapre ANSI 14 cream)
	LightLavender = lipgloss.Color("#F3DBB2")
	// Pink is an accent colour for headers (Ciapre ANSI 13 bright magenta)
	Pink = lipgloss.Color("#D33061")
	// Cyan is an accent colour for interactive elements (Ciapre ANSI 12 bright blue)
	Cyan = lipgloss.Color("#3097C6")
	// Amber is a warm accent for sub-headers (Ciapre derived)
	Amber = lipgloss.Color("#CC8B3F")
	// Red is used for warnings and errors (Ciapre ANSI 1)
	Red = lipgloss.Color("#AC3835")
	// Green is used for success messages (Ciapre ANSI 2)
	Green = lipgloss.Color("#A6A75D")
)

// Header is the style for table headers and dialog titles.
var Header = lipgloss.NewStyle().
	Foreground(Pink).
	Bold(true)

// Border is the style for bordered panels
var Border = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Purple)

// PrimaryText is the style for primary text content
var PrimaryText = lipgloss.NewStyle().
	Foreground(LightLavender)

// SecondaryText is the style for less prominent text
var SecondaryText = lipgloss.NewStyle().
	Foreground(Lavender)

// Warning is the style for warning messages
var Warning = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is the style for success messages
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)

// markerSwatches approximates each host marker colour on a terminal.
var markerSwatches = map[marker.Color]lipgloss.Color{
	marker.Orange:    "#EB6E01",
	marker.Apricot:   "#FFA833",
	marker.Yellow:    "#E2A906",
	marker.Lime:      "#9FC615",
	marker.Olive:     "#5F9916",
	marker.Green:     "#448E44",
	marker.Teal:      "#00AD8E",
	marker.Navy:      "#0F3E6C",
	marker.Blue:      "#0077E4",
	marker.Purple:    "#9933FF",
	marker.Violet:    "#D0568D",
	marker.Pink:      "#E96CB1",
	marker.Tan:       "#B9AF97",
	marker.Beige:     "#C4915E",
	marker.Brown:     "#99662B",
	marker.Chocolate: "#8C5A3F",
}

// MarkerSwatch renders name in the terminal colour closest to c.
func MarkerSwatch(c marker.Color, name string) string {
	sw, ok := markerSwatches[c]
	if !ok {
		return SecondaryText.Render(name)
	}
	return lipgloss.NewStyle().Foreground(sw).Bold(true).Render(name)
}
