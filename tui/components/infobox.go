// Package components provides reusable terminal view pieces.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/markerman/tui/styles"
)

// InfoBox renders content lines inside a rounded border whose top edge carries
// the title as a tab:
//
//	╭─ Render ───────╮
//	│ 2/3 clips      │
//	╰────────────────╯
//
// Lines are drawn as given; wider lines are not clipped.
func InfoBox(title string, lines []string, width int) string {
	if width < 4 {
		return ""
	}
	inner := width - 2

	edge := lipgloss.NewStyle().Foreground(styles.Purple)
	head := styles.Header.Render(" " + title + " ")

	fill := inner - 1 - lipgloss.Width(head)
	if fill < 0 {
		fill = 0
	}

	var b strings.Builder
	b.WriteString(edge.Render("╭─") + head + edge.Render(strings.Repeat("─", fill)+"╮"))
	for _, line := range lines {
		pad := inner - lipgloss.Width(line)
		if pad < 0 {
			pad = 0
		}
		b.WriteString("\n" + edge.Render("│") + line + strings.Repeat(" ", pad) + edge.Render("│"))
	}
	b.WriteString("\n" + edge.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return b.String()
}
