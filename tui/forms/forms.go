// Package forms provides the huh forms behind each interactive prompt.
package forms

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/user/markerman/clip"
	"github.com/user/markerman/marker"
	"github.com/user/markerman/render"
	"github.com/user/markerman/session"
	"github.com/user/markerman/tui/styles"
)

// NewColorForm asks which marker colours to use. Colours in preselected start
// ticked. The chosen colours are written to result in host order.
func NewColorForm(preselected []marker.Color, result *[]marker.Color) *huh.Form {
	var opts []huh.Option[marker.Color]
	for _, c := range marker.EnabledColors() {
		opts = append(opts, huh.NewOption(styles.MarkerSwatch(c, c.String()), c).
			Selected(slices.Contains(preselected, c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[marker.Color]().
				Title("Marker colours").
				Description("Markers of the ticked colours become clips. Space toggles, enter confirms.").
				Options(opts...).
				Height(len(opts) + 2).
				Value(result),
		),
	).WithTheme(Theme())
}

// StrategyTitle is the heading of the strategy prompt.
func StrategyTitle(markerCount int) string {
	return fmt.Sprintf("Found %d markers, how should they be used?", markerCount)
}

// NewStrategyForm asks how the selected markers should be read.
func NewStrategyForm(markerCount int, result *clip.Strategy) *huh.Form {
	var opts []huh.Option[clip.Strategy]
	var help []string
	for _, s := range clip.Strategies() {
		opts = append(opts, huh.NewOption(s.Label(), s))
		help = append(help, s.Label()+": "+s.Description())
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[clip.Strategy]().
				Title(StrategyTitle(markerCount)).
				Description(strings.Join(help, "\n\n")).
				Options(opts...).
				Value(result),
		),
	).WithTheme(Theme())
}

// ValidateRenderDir accepts a directory the render host can write to.
func ValidateRenderDir(raw string) error {
	dir, err := render.NormalizeDir(raw)
	if err != nil {
		return err
	}
	if err := render.ProbeWritable(dir); err != nil {
		return fmt.Errorf("cannot render to %s", dir)
	}
	return nil
}

// NewDirectoryForm asks where rendered clips should be written.
func NewDirectoryForm(result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Render location").
				Description("Directory the clips are rendered into").
				Placeholder("~/Movies/clips").
				Value(result).
				Validate(ValidateRenderDir),
		),
	).WithTheme(Theme())
}

// NewResultsForm asks whether the listed clips should be queued. Queueing is
// only offered when there is at least one clip.
func NewResultsForm(title string, clipCount int, result *session.Decision) *huh.Form {
	opts := []huh.Option[session.Decision]{huh.NewOption("Nevermind", session.Cancel)}
	if clipCount > 0 {
		opts = append(opts, huh.NewOption("Add to Render Queue", session.Render))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[session.Decision]().
				Title(title).
				Options(opts...).
				Value(result),
		),
	).WithTheme(Theme())
}

// NewConfirmForm asks a yes/no question. The answer is bound to confirmed.
func NewConfirmForm(title, description, affirmative string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative(affirmative).
				Negative("No, go back").
				Value(confirmed),
		),
	).WithTheme(Theme())
}

// NewMessageForm shows text until the user dismisses it.
func NewMessageForm(text string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("markerman").
				Description(text).
				Next(true).
				NextLabel("OK"),
		),
	).WithTheme(Theme())
}
