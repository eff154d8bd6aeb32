// Package session runs one interactive pass from marker selection to queued
// render jobs. Every step is a blocking call on a Dialog.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/user/markerman/clip"
	"github.com/user/markerman/marker"
	"github.com/user/markerman/render"
)

// ErrCancelled is returned by a Dialog when the user closes it.
var ErrCancelled = errors.New("dialog cancelled")

// Messages shown to the user.
const (
	MsgNoMarkers  = "No marker colours were selected."
	MsgUnwritable = "Unable to render to that directory, please choose another."
	resultsTitle  = "Marked %d clips based on marker positions."
)

// Decision is the user's answer to the results dialog.
type Decision int

const (
	Cancel Decision = iota
	Render
)

func (d Decision) String() string {
	if d == Render {
		return "render"
	}
	return "cancel"
}

// Dialog is the interactive host. Each method blocks until the user answers
// and returns ErrCancelled if the dialog is closed instead.
type Dialog interface {
	PromptColorSelection(ctx context.Context) ([]marker.Color, error)
	PromptAlgorithmChoice(ctx context.Context, markerCount int) (clip.Strategy, error)
	PromptDirectory(ctx context.Context) (string, error)
	ShowResults(ctx context.Context, title string, clips []clip.Clip) (Decision, error)
	ShowMessage(ctx context.Context, text string) error
}

// Renderer drives a Submitter over the chosen clips.
type Renderer interface {
	Render(ctx context.Context, s *render.Submitter, clips []clip.Clip) (render.Report, error)
}

// SequentialRenderer submits clips one after another without any display.
type SequentialRenderer struct{}

// Render implements Renderer.
func (SequentialRenderer) Render(ctx context.Context, s *render.Submitter, clips []clip.Clip) (render.Report, error) {
	return s.SubmitAll(ctx, clips)
}

// Deps are the collaborators a Session drives. A nil Renderer falls back
// to SequentialRenderer.
type Deps struct {
	Markers  marker.Source
	Settings render.SettingsProvider
	Queue    render.Queue
	Dialog   Dialog
	Renderer Renderer
	Logger   zerolog.Logger
}

// Options tune a single run.
type Options struct {
	Encoding render.Encoding
	// TargetDir skips the directory prompt when set.
	TargetDir string
}

// Result describes how far a run got.
type Result struct {
	Cancelled bool
	Colors    []marker.Color
	Markers   int
	Strategy  clip.Strategy
	Clips     []clip.Clip
	Decision  Decision
	TargetDir string
	Report    render.Report
}

// Session is one interactive pass from colour selection to render queue.
type Session struct {
	d    Deps
	opts Options
}

// New returns a Session over d.
func New(d Deps, opts Options) *Session {
	if d.Renderer == nil {
		d.Renderer = SequentialRenderer{}
	}
	return &Session{d: d, opts: opts}
}

// Run walks the user through one pass. Closing any dialog ends the run with
// Result.Cancelled set and a nil error.
func (s *Session) Run(ctx context.Context) (Result, error) {
	var res Result

	colors, err := s.d.Dialog.PromptColorSelection(ctx)
	if err != nil {
		return cancelled(res, err)
	}
	res.Colors = colors

	markers, err := marker.ByColor(ctx, s.d.Markers, colors...)
	if err != nil {
		return res, fmt.Errorf("read markers: %w", err)
	}
	res.Markers = len(markers)
	s.d.Logger.Debug().Int("markers", len(markers)).Strs("colors", colorNames(colors)).Msg("markers selected")

	if len(markers) == 0 {
		return cancelled(res, s.d.Dialog.ShowMessage(ctx, MsgNoMarkers))
	}

	strategy, err := s.d.Dialog.PromptAlgorithmChoice(ctx, len(markers))
	if err != nil {
		return cancelled(res, err)
	}
	res.Strategy = strategy

	project, err := render.LoadProjectSettings(ctx, s.d.Settings)
	if err != nil {
		return res, err
	}
	start, err := s.d.Markers.StartFrame(ctx)
	if err != nil {
		return res, fmt.Errorf("read start frame: %w", err)
	}

	res.Clips = strategy.Interpret(markers, start, project.FrameRate)
	s.d.Logger.Info().Str("strategy", strategy.String()).Int("clips", len(res.Clips)).Msg("clips marked")

	decision, err := s.d.Dialog.ShowResults(ctx, fmt.Sprintf(resultsTitle, len(res.Clips)), res.Clips)
	if err != nil {
		return cancelled(res, err)
	}
	res.Decision = decision
	if decision != Render || len(res.Clips) == 0 {
		return res, nil
	}

	dir, err := s.targetDir(ctx)
	if err != nil {
		return cancelled(res, err)
	}
	res.TargetDir = dir

	sub := &render.Submitter{
		Queue:     s.d.Queue,
		Project:   project,
		TargetDir: dir,
		Encoding:  s.opts.Encoding,
		Logger:    s.d.Logger,
	}
	res.Report, err = s.d.Renderer.Render(ctx, sub, res.Clips)
	if err != nil {
		return res, err
	}

	summary := fmt.Sprintf("Added %d of %d clips to the render queue.", res.Report.Submitted(), len(res.Clips))
	if err := s.d.Dialog.ShowMessage(ctx, summary); err != nil && !errors.Is(err, ErrCancelled) {
		return res, err
	}
	return res, nil
}

// targetDir returns the configured render location, or asks until the user
// picks a writable one.
func (s *Session) targetDir(ctx context.Context) (string, error) {
	if s.opts.TargetDir != "" {
		dir, err := render.NormalizeDir(s.opts.TargetDir)
		if err != nil {
			return "", err
		}
		if err := render.ProbeWritable(dir); err != nil {
			return "", err
		}
		return dir, nil
	}

	for {
		raw, err := s.d.Dialog.PromptDirectory(ctx)
		if err != nil {
			return "", err
		}
		dir, err := render.NormalizeDir(raw)
		if err == nil {
			err = render.ProbeWritable(dir)
		}
		if err == nil {
			return dir, nil
		}

		s.d.Logger.Warn().Err(err).Str("dir", raw).Msg("render location rejected")
		if err := s.d.Dialog.ShowMessage(ctx, MsgUnwritable); err != nil {
			return "", err
		}
	}
}

// cancelled turns a dialog cancellation into a clean end of the run and
// passes any other error through.
func cancelled(res Result, err error) (Result, error) {
	if errors.Is(err, ErrCancelled) {
		res.Cancelled = true
		return res, nil
	}
	return res, err
}

func colorNames(colors []marker.Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = string(c)
	}
	return out
}
