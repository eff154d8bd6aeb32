package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/markerman/tui/styles"
)

// fieldColors are the colours one field state draws with.
type fieldColors struct {
	border   lipgloss.TerminalColor
	title    lipgloss.Color
	text     lipgloss.Color
	dim      lipgloss.Color
	accent   lipgloss.Color
	button   lipgloss.Color
	buttonFg lipgloss.Color
	bold     bool
}

var (
	focusedColors = fieldColors{
		border:   styles.BrightPurple,
		title:    styles.Pink,
		text:     styles.LightLavender,
		dim:      styles.Lavender,
		accent:   styles.Cyan,
		button:   styles.BrightPurple,
		buttonFg: styles.LightLavender,
		bold:     true,
	}
	blurredColors = fieldColors{
		border:   lipgloss.NoColor{},
		title:    styles.Lavender,
		text:     styles.Lavender,
		dim:      styles.Purple,
		accent:   styles.Lavender,
		button:   styles.Purple,
		buttonFg: styles.Lavender,
	}
)

// Theme returns a huh theme in the dialog palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()
	applyFieldStyles(&t.Focused, focusedColors, lipgloss.ThickBorder(), "▸ ")
	applyFieldStyles(&t.Blurred, blurredColors, lipgloss.HiddenBorder(), "  ")
	return t
}

func applyFieldStyles(fs *huh.FieldStyles, c fieldColors, border lipgloss.Border, selector string) {
	fg := func(col lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(col) }

	fs.Base = fs.Base.
		BorderStyle(border).
		BorderLeft(true).
		BorderForeground(c.border).
		PaddingLeft(1)

	fs.Title = fg(c.title).Bold(c.bold)
	fs.NoteTitle = fg(c.accent).Bold(c.bold)
	fs.Description = fg(c.dim)
	fs.ErrorIndicator = fg(styles.Pink).Bold(true)
	fs.ErrorMessage = fg(styles.Pink)

	fs.SelectSelector = fg(c.accent).SetString(selector)
	fs.MultiSelectSelector = fg(c.accent).SetString(selector)
	fs.Option = fg(c.text)
	fs.NextIndicator = fg(c.dim)
	fs.PrevIndicator = fg(c.dim)
	fs.SelectedOption = fg(c.accent)
	fs.SelectedPrefix = fg(c.accent).SetString("[✓] ")
	fs.UnselectedOption = fg(c.dim)
	fs.UnselectedPrefix = fg(c.dim).SetString("[ ] ")

	fs.TextInput.Cursor = fg(c.accent)
	fs.TextInput.Placeholder = fg(styles.Purple)
	fs.TextInput.Prompt = fg(c.accent)
	fs.TextInput.Text = fg(c.text)

	fs.FocusedButton = lipgloss.NewStyle().
		Background(c.button).
		Foreground(c.buttonFg).
		Bold(c.bold).
		Padding(0, 1)
	fs.BlurredButton = lipgloss.NewStyle().
		Background(styles.DeepPurple).
		Foreground(c.dim).
		Padding(0, 1)
	fs.Next = fs.FocusedButton

	fs.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c.dim).
		Padding(0, 1)
}
