package mpv

import (
	"fmt"

	"github.com/user/markerman/pkg/timecode"
)

// PlayheadFrame returns the timeline-relative frame under mpv's playhead.
func (c *Client) PlayheadFrame(frameRate float64) (int, error) {
	pos, err := c.GetTimePos()
	if err != nil {
		return 0, err
	}
	return timecode.SecondsToFrames(pos, frameRate), nil
}

// PreviewRange seeks to the start of the frame range and loops it.
func (c *Client) PreviewRange(inFrame, outFrame int, frameRate float64, label string) error {
	a := timecode.FramesToSeconds(inFrame, frameRate)
	b := timecode.FramesToSeconds(outFrame, frameRate)
	if err := c.SetABLoop(a, b); err != nil {
		return fmt.Errorf("set loop: %w", err)
	}
	if err := c.Seek(a); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	if err := c.SetPaused(false); err != nil {
		return err
	}
	if label != "" {
		return c.ShowText(label, 3000)
	}
	return nil
}

// StopPreview clears the loop set by PreviewRange and pauses playback.
func (c *Client) StopPreview() error {
	if err := c.ClearABLoop(); err != nil {
		return fmt.Errorf("clear loop: %w", err)
	}
	return c.SetPaused(true)
}
