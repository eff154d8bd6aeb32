// Package tui is the terminal host for the interactive session: huh dialogs,
// a lipgloss clip table and a bubbletea render progress view.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/user/markerman/clip"
	"github.com/user/markerman/marker"
	"github.com/user/markerman/session"
	"github.com/user/markerman/tui/forms"
	"github.com/user/markerman/tui/styles"
)

var _ session.Dialog = (*Dialog)(nil)

// Dialog runs each session prompt as a huh form on the terminal.
type Dialog struct {
	// Out receives the clip table shown with the results prompt.
	Out io.Writer
	// FrameRate formats in and out points in the clip table.
	FrameRate float64
	// Colors are ticked when the colour prompt opens.
	Colors []marker.Color
	// Strategy is highlighted when the strategy prompt opens.
	Strategy clip.Strategy

	run func(ctx context.Context, f *huh.Form) error
}

// NewDialog returns a Dialog writing to stdout.
func NewDialog(frameRate float64, colors []marker.Color, strategy clip.Strategy) *Dialog {
	return &Dialog{Out: os.Stdout, FrameRate: frameRate, Colors: colors, Strategy: strategy}
}

func (d *Dialog) runForm(ctx context.Context, f *huh.Form) error {
	run := d.run
	if run == nil {
		run = func(ctx context.Context, f *huh.Form) error { return f.RunWithContext(ctx) }
	}
	return formErr(run(ctx, f))
}

// formErr maps a closed form to session.ErrCancelled.
func formErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, huh.ErrUserAborted), errors.Is(err, huh.ErrTimeout):
		return session.ErrCancelled
	default:
		return err
	}
}

// PromptColorSelection asks which marker colours to use, ticking d.Colors.
func (d *Dialog) PromptColorSelection(ctx context.Context) ([]marker.Color, error) {
	var colors []marker.Color
	if err := d.runForm(ctx, forms.NewColorForm(d.Colors, &colors)); err != nil {
		return nil, err
	}
	return colors, nil
}

// PromptAlgorithmChoice asks how markerCount markers become clips.
func (d *Dialog) PromptAlgorithmChoice(ctx context.Context, markerCount int) (clip.Strategy, error) {
	strategy := d.Strategy
	if err := d.runForm(ctx, forms.NewStrategyForm(markerCount, &strategy)); err != nil {
		return 0, err
	}
	return strategy, nil
}

// PromptDirectory asks for a writable render location.
func (d *Dialog) PromptDirectory(ctx context.Context) (string, error) {
	var dir string
	if err := d.runForm(ctx, forms.NewDirectoryForm(&dir)); err != nil {
		return "", err
	}
	return dir, nil
}

// ShowResults prints the clip table and asks whether to queue the clips.
func (d *Dialog) ShowResults(ctx context.Context, title string, clips []clip.Clip) (session.Decision, error) {
	out := d.out()
	fmt.Fprintln(out, styles.Header.Render(title))
	if len(clips) > 0 {
		fmt.Fprintln(out, ClipTable(clips, d.FrameRate))
	}

	decision := session.Cancel
	if err := d.runForm(ctx, forms.NewResultsForm(title, len(clips), &decision)); err != nil {
		return session.Cancel, err
	}
	return decision, nil
}

// ShowMessage shows text until the user dismisses it.
func (d *Dialog) ShowMessage(ctx context.Context, text string) error {
	return d.runForm(ctx, forms.NewMessageForm(text))
}

// Confirm asks a yes/no question outside the session flow.
func (d *Dialog) Confirm(ctx context.Context, title, description, affirmative string) (bool, error) {
	var ok bool
	if err := d.runForm(ctx, forms.NewConfirmForm(title, description, affirmative, &ok)); err != nil {
		return false, err
	}
	return ok, nil
}

// PromptMarker asks for the fields of a new marker at frame.
func (d *Dialog) PromptMarker(ctx context.Context, frame int, color marker.Color) (marker.Marker, error) {
	res := forms.MarkerFormResult{Color: color}
	if err := d.runForm(ctx, forms.NewMarkerForm(frame, d.FrameRate, &res)); err != nil {
		return marker.Marker{}, err
	}
	return res.Marker(frame, d.FrameRate)
}

func (d *Dialog) out() io.Writer {
	if d.Out == nil {
		return os.Stdout
	}
	return d.Out
}
