package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/user/markerman/clip"
)

// ErrNoJobID is returned when the queue accepts a request without naming a job.
var ErrNoJobID = errors.New("render queue returned no job id")

// Queue accepts render requests.
type Queue interface {
	AddJob(ctx context.Context, req Request) (string, error)
}

// Job is a submitted render job.
type Job struct {
	ID      string
	Clip    clip.Clip
	Request Request
}

// Failure records a clip the queue refused.
type Failure struct {
	Clip clip.Clip
	Err  error
}

// Report summarises a batch submission.
type Report struct {
	Jobs     []Job
	Failures []Failure
}

// Submitted returns the number of accepted jobs.
func (r Report) Submitted() int { return len(r.Jobs) }

// Submitter translates clips into requests and adds them to a queue one at a
// time. A refused clip is logged and recorded; the next clip still goes.
type Submitter struct {
	Queue     Queue
	Project   ProjectSettings
	TargetDir string
	Encoding  Encoding
	Logger    zerolog.Logger
}

// SubmitOne queues a single clip.
func (s *Submitter) SubmitOne(ctx context.Context, c clip.Clip) (Job, error) {
	req := ToRequest(c, s.Project, s.TargetDir, s.Encoding)

	id, err := s.Queue.AddJob(ctx, req)
	if err == nil && id == "" {
		err = ErrNoJobID
	}
	if err != nil {
		s.Logger.Warn().
			Err(err).
			Str("clip", c.Index).
			Str("filename", c.Filename).
			Msg("failed to add render job")
		return Job{}, fmt.Errorf("queue clip %s: %w", c.Filename, err)
	}

	s.Logger.Info().
		Str("job", id).
		Str("filename", c.Filename).
		Int("mark_in", req.MarkIn).
		Int("mark_out", req.MarkOut).
		Msg("added render job")
	return Job{ID: id, Clip: c, Request: req}, nil
}

// SubmitAll queues every clip in order. Only context cancellation stops the
// loop early; its error is returned alongside the partial report.
func (s *Submitter) SubmitAll(ctx context.Context, clips []clip.Clip) (Report, error) {
	var rep Report
	for _, c := range clips {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		job, err := s.SubmitOne(ctx, c)
		if err != nil {
			rep.Failures = append(rep.Failures, Failure{Clip: c, Err: err})
			continue
		}
		rep.Jobs = append(rep.Jobs, job)
	}
	return rep, nil
}
