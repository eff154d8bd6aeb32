package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/user/markerman/tui/styles"
)

// SubmitProgress is the state of a render queue submission run.
type SubmitProgress struct {
	Total     int
	Done      int
	Failed    int
	Current   string
	Spinner   string
	Cancelled bool
}

// Finished reports whether every clip has been handed to the queue.
func (p SubmitProgress) Finished() bool {
	return p.Total > 0 && p.Done >= p.Total
}

// ProgressBox renders the submission bar, counters and current filename.
func ProgressBox(p SubmitProgress, width int) string {
	if width < 10 {
		return ""
	}

	ok := lipgloss.NewStyle().Foreground(styles.Green)
	pending := lipgloss.NewStyle().Foreground(styles.Amber)
	text := styles.PrimaryText

	inner := width - 4
	barWidth := inner - 6
	if barWidth < 4 {
		barWidth = 4
	}

	pct, filled := 0, 0
	if p.Total > 0 {
		pct = p.Done * 100 / p.Total
		filled = min(barWidth*p.Done/p.Total, barWidth)
	}

	lines := []string{
		" " + ok.Render(strings.Repeat("█", filled)) +
			pending.Render(strings.Repeat("░", barWidth-filled)) +
			text.Render(fmt.Sprintf(" %3d%%", pct)),
	}

	counter := fmt.Sprintf(" %d/%d clips", p.Done, p.Total)
	if p.Failed > 0 {
		counter = text.Render(counter) + "  " + styles.Warning.Render(fmt.Sprintf("%d failed", p.Failed))
	} else {
		counter = text.Render(counter)
	}
	lines = append(lines, counter)

	switch {
	case p.Cancelled:
		lines = append(lines, " "+styles.Warning.Render("Stopped"))
	case p.Finished():
		lines = append(lines, " "+styles.Success.Render("Queued"))
	case p.Current != "":
		name := p.Current
		if lipgloss.Width(name) > inner-4 {
			name = ansi.Truncate(name, inner-7, "...")
		}
		lines = append(lines, " "+p.Spinner+" "+text.Render(name))
	}

	return InfoBox("Render", lines, width)
}
