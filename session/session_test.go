package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/user/markerman/clip"
	"github.com/user/markerman/marker"
	"github.com/user/markerman/render"
)

type fakeSource struct {
	markers marker.Map
	start   int
}

func (f *fakeSource) Markers(context.Context) (marker.Map, error) { return f.markers, nil }
func (f *fakeSource) StartFrame(context.Context) (int, error)     { return f.start, nil }
func (f *fakeSource) AddMarker(_ context.Context, m marker.Marker) error {
	f.markers[m.Frame] = m
	return nil
}
func (f *fakeSource) DeleteMarkerAtFrame(_ context.Context, frame int) (bool, error) {
	_, ok := f.markers[frame]
	delete(f.markers, frame)
	return ok, nil
}

type fakeSettings struct {
	rate          float64
	width, height int
}

func (f fakeSettings) Setting(_ context.Context, name string) (string, error) {
	switch name {
	case render.SettingFrameRate:
		return strconv.FormatFloat(f.rate, 'f', -1, 64), nil
	case render.SettingWidth:
		return strconv.Itoa(f.width), nil
	case render.SettingHeight:
		return strconv.Itoa(f.height), nil
	}
	return "", errors.New("unknown")
}

// scriptedDialog answers each prompt from canned values and records what it
// was shown.
type scriptedDialog struct {
	colors      []marker.Color
	colorsErr   error
	strategy    clip.Strategy
	strategyErr error
	dirs        []string
	dirErr      error
	decision    Decision
	resultsErr  error

	markerCount  int
	resultsTitle string
	shownClips   []clip.Clip
	messages     []string
	dirPrompts   int
}

func (d *scriptedDialog) PromptColorSelection(context.Context) ([]marker.Color, error) {
	return d.colors, d.colorsErr
}

func (d *scriptedDialog) PromptAlgorithmChoice(_ context.Context, n int) (clip.Strategy, error) {
	d.markerCount = n
	return d.strategy, d.strategyErr
}

func (d *scriptedDialog) PromptDirectory(context.Context) (string, error) {
	if d.dirErr != nil {
		return "", d.dirErr
	}
	if d.dirPrompts >= len(d.dirs) {
		return "", ErrCancelled
	}
	dir := d.dirs[d.dirPrompts]
	d.dirPrompts++
	return dir, nil
}

func (d *scriptedDialog) ShowResults(_ context.Context, title string, clips []clip.Clip) (Decision, error) {
	d.resultsTitle = title
	d.shownClips = clips
	return d.decision, d.resultsErr
}

func (d *scriptedDialog) ShowMessage(_ context.Context, text string) error {
	d.messages = append(d.messages, text)
	return nil
}

func testMarkers() marker.Map {
	return marker.Map{
		0:   {Name: "Intro", Color: marker.Blue, Duration: 24},
		100: {Name: "Marker 1", Color: marker.Blue},
		150: {Name: "Outro", Color: marker.Blue},
		220: {Name: "Marker 2", Color: marker.Blue},
		300: {Name: "Other", Color: marker.Green, Duration: 48},
	}
}

func newTestSession(d *scriptedDialog, q render.Queue, opts Options) *Session {
	return New(Deps{
		Markers:  &fakeSource{markers: testMarkers(), start: 1000},
		Settings: fakeSettings{rate: 24, width: 1920, height: 1080},
		Queue:    q,
		Dialog:   d,
		Logger:   zerolog.Nop(),
	}, opts)
}

func TestRun_RendersDualMarkerClips(t *testing.T) {
	dir := t.TempDir()
	d := &scriptedDialog{
		colors:   []marker.Color{marker.Blue},
		strategy: clip.DualMarker,
		dirs:     []string{dir + "/./"},
		decision: Render,
	}
	q := render.NewMemoryQueue()

	res, err := newTestSession(d, q, Options{Encoding: render.DefaultEncoding()}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if res.Cancelled {
		t.Fatal("run reported cancelled")
	}
	if d.markerCount != 4 {
		t.Fatalf("strategy prompt saw %d markers, want 4", d.markerCount)
	}
	if d.resultsTitle != "Marked 2 clips based on marker positions." {
		t.Fatalf("results title = %q", d.resultsTitle)
	}
	if len(d.shownClips) != 2 || d.shownClips[0].InPoint != 1000 || d.shownClips[1].OutPoint != 1220 {
		t.Fatalf("clips shown = %+v", d.shownClips)
	}
	if res.TargetDir != filepath.Clean(dir) {
		t.Fatalf("target dir = %q, want %q", res.TargetDir, filepath.Clean(dir))
	}

	jobs := q.Jobs()
	if len(jobs) != 2 || res.Report.Submitted() != 2 {
		t.Fatalf("queued %d jobs, report says %d", len(jobs), res.Report.Submitted())
	}
	if jobs[0].Request.CustomName != "01_intro" || jobs[1].Request.CustomName != "02_outro" {
		t.Fatalf("job names = %q, %q", jobs[0].Request.CustomName, jobs[1].Request.CustomName)
	}
	if jobs[0].Request.TargetDir != res.TargetDir || jobs[0].Request.PixelAspectRatio != "16_9" {
		t.Fatalf("first request = %+v", jobs[0].Request)
	}
	if last := d.messages[len(d.messages)-1]; last != "Added 2 of 2 clips to the render queue." {
		t.Fatalf("summary = %q", last)
	}
}

func TestRun_DurationStrategy(t *testing.T) {
	d := &scriptedDialog{
		colors:   []marker.Color{marker.Blue, marker.Green},
		strategy: clip.Duration,
		decision: Cancel,
	}
	q := render.NewMemoryQueue()

	res, err := newTestSession(d, q, Options{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if len(res.Clips) != 2 || res.Clips[1].InPoint != 1300 || res.Clips[1].OutPoint != 1348 {
		t.Fatalf("clips = %+v", res.Clips)
	}
	if res.Decision != Cancel || len(q.Jobs()) != 0 || d.dirPrompts != 0 {
		t.Fatal("cancelled results still rendered or prompted for a directory")
	}
}

func TestRun_NoMarkersSelected(t *testing.T) {
	for _, colors := range [][]marker.Color{nil, {marker.Chocolate}} {
		d := &scriptedDialog{colors: colors}
		res, err := newTestSession(d, render.NewMemoryQueue(), Options{}).Run(context.Background())
		if err != nil {
			t.Fatalf("Run error = %v", err)
		}
		if len(d.messages) != 1 || d.messages[0] != MsgNoMarkers {
			t.Fatalf("messages = %v", d.messages)
		}
		if d.markerCount != 0 || len(res.Clips) != 0 {
			t.Fatal("run continued past an empty selection")
		}
	}
}

func TestRun_CancelledDialogsEndCleanly(t *testing.T) {
	tests := []struct {
		name   string
		dialog *scriptedDialog
	}{
		{name: "colours", dialog: &scriptedDialog{colorsErr: ErrCancelled}},
		{name: "strategy", dialog: &scriptedDialog{colors: []marker.Color{marker.Blue}, strategyErr: ErrCancelled}},
		{name: "results", dialog: &scriptedDialog{colors: []marker.Color{marker.Blue}, resultsErr: ErrCancelled}},
		{name: "directory", dialog: &scriptedDialog{colors: []marker.Color{marker.Blue}, decision: Render, dirErr: ErrCancelled}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := render.NewMemoryQueue()
			res, err := newTestSession(tc.dialog, q, Options{}).Run(context.Background())
			if err != nil {
				t.Fatalf("Run error = %v", err)
			}
			if !res.Cancelled {
				t.Fatal("Result.Cancelled not set")
			}
			if len(q.Jobs()) != 0 {
				t.Fatal("cancelled run queued jobs")
			}
		})
	}
}

func TestRun_DialogErrorsPropagate(t *testing.T) {
	boom := errors.New("terminal gone")
	d := &scriptedDialog{colorsErr: boom}
	if _, err := newTestSession(d, render.NewMemoryQueue(), Options{}).Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want %v", err, boom)
	}
}

func TestRun_RepromptsForWritableDirectory(t *testing.T) {
	good := t.TempDir()
	file := filepath.Join(good, "not-a-dir")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	d := &scriptedDialog{
		colors:   []marker.Color{marker.Blue},
		strategy: clip.DualMarker,
		decision: Render,
		dirs:     []string{"  ", file, filepath.Join(good, "missing"), good},
	}
	res, err := newTestSession(d, render.NewMemoryQueue(), Options{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if d.dirPrompts != 4 || res.TargetDir != good {
		t.Fatalf("prompts = %d, dir = %q", d.dirPrompts, res.TargetDir)
	}
	rejected := 0
	for _, m := range d.messages {
		if m == MsgUnwritable {
			rejected++
		}
	}
	if rejected != 3 {
		t.Fatalf("shown %d rejections, want 3", rejected)
	}
}

func TestRun_ConfiguredTargetDir(t *testing.T) {
	dir := t.TempDir()
	d := &scriptedDialog{colors: []marker.Color{marker.Blue}, strategy: clip.DualMarker, decision: Render}
	res, err := newTestSession(d, render.NewMemoryQueue(), Options{TargetDir: dir}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if d.dirPrompts != 0 || res.TargetDir != dir {
		t.Fatalf("prompts = %d, dir = %q", d.dirPrompts, res.TargetDir)
	}

	d = &scriptedDialog{colors: []marker.Color{marker.Blue}, strategy: clip.DualMarker, decision: Render}
	_, err = newTestSession(d, render.NewMemoryQueue(), Options{TargetDir: filepath.Join(dir, "missing")}).Run(context.Background())
	if err == nil {
		t.Fatal("missing configured target dir expected error")
	}
}

type countingRenderer struct{ calls int }

func (r *countingRenderer) Render(ctx context.Context, s *render.Submitter, clips []clip.Clip) (render.Report, error) {
	r.calls++
	return s.SubmitAll(ctx, clips)
}

func TestRun_UsesRenderer(t *testing.T) {
	d := &scriptedDialog{colors: []marker.Color{marker.Blue}, strategy: clip.DualMarker, decision: Render}
	r := &countingRenderer{}
	s := New(Deps{
		Markers:  &fakeSource{markers: testMarkers()},
		Settings: fakeSettings{rate: 24},
		Queue:    render.NewMemoryQueue(),
		Dialog:   d,
		Renderer: r,
		Logger:   zerolog.Nop(),
	}, Options{TargetDir: t.TempDir()})

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if r.calls != 1 {
		t.Fatalf("renderer called %d times", r.calls)
	}
}
