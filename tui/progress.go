package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/markerman/clip"
	"github.com/user/markerman/render"
	"github.com/user/markerman/session"
	"github.com/user/markerman/tui/components"
	"github.com/user/markerman/tui/styles"
)

var _ session.Renderer = (*ProgressRenderer)(nil)

// ProgressRenderer submits clips one at a time while showing a progress box.
// Pressing q or ctrl+c stops before the next clip; jobs already queued stay
// in the report.
type ProgressRenderer struct {
	Out io.Writer
	In  io.Reader
}

// submittedMsg carries the outcome of one SubmitOne call.
type submittedMsg struct {
	clip clip.Clip
	job  render.Job
	err  error
}

type progressModel struct {
	ctx   context.Context
	sub   *render.Submitter
	clips []clip.Clip

	next    int
	report  render.Report
	spinner spinner.Model
	width   int
	stopped bool
	err     error
}

func newProgressModel(ctx context.Context, sub *render.Submitter, clips []clip.Clip) progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Cyan)
	return progressModel{ctx: ctx, sub: sub, clips: clips, spinner: sp, width: 60}
}

// submit queues the next clip. Submissions are chained so only one is ever
// in flight.
func (m progressModel) submit() tea.Cmd {
	if m.next >= len(m.clips) {
		return nil
	}
	c := m.clips[m.next]
	ctx, sub := m.ctx, m.sub
	return func() tea.Msg {
		job, err := sub.SubmitOne(ctx, c)
		return submittedMsg{clip: c, job: job, err: err}
	}
}

func (m progressModel) Init() tea.Cmd {
	if len(m.clips) == 0 {
		return tea.Quit
	}
	return tea.Batch(m.spinner.Tick, m.submit())
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		m.next++
		if msg.err != nil {
			if err := m.ctx.Err(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.report.Failures = append(m.report.Failures, render.Failure{Clip: msg.clip, Err: msg.err})
		} else {
			m.report.Jobs = append(m.report.Jobs, msg.job)
		}
		if m.stopped || m.next >= len(m.clips) {
			return m, tea.Quit
		}
		return m, m.submit()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.stopped = true
			if m.next >= len(m.clips) {
				return m, tea.Quit
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = min(msg.Width, 80)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) state() components.SubmitProgress {
	p := components.SubmitProgress{
		Total:     len(m.clips),
		Done:      m.next,
		Failed:    len(m.report.Failures),
		Spinner:   m.spinner.View(),
		Cancelled: m.stopped && m.next < len(m.clips),
	}
	if m.next < len(m.clips) {
		p.Current = m.clips[m.next].Filename
	}
	return p
}

func (m progressModel) View() string {
	return components.ProgressBox(m.state(), m.width) + "\n"
}

// Render implements session.Renderer.
func (r *ProgressRenderer) Render(ctx context.Context, s *render.Submitter, clips []clip.Clip) (render.Report, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(r.out())}
	if r.In != nil {
		opts = append(opts, tea.WithInput(r.In))
	}

	final, err := tea.NewProgram(newProgressModel(ctx, s, clips), opts...).Run()
	m, ok := final.(progressModel)
	if !ok {
		return render.Report{}, fmt.Errorf("render progress: %w", err)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return m.report, ctxErr
		}
		return m.report, fmt.Errorf("render progress: %w", err)
	}
	return m.report, m.err
}

func (r *ProgressRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}
