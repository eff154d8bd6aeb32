// Package timecode converts between frame counts, seconds and HH:MM:SS:FF
// timecode strings.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Placeholder is returned by ComputeDuration when the out point precedes the
// in point. It is deliberately shorter than a full timecode.
const Placeholder = "00:00"

// zero is the timecode returned for counts or rates that cannot be converted.
const zero = "00:00:00:00"

// FramesToTimecode formats a frame count as HH:MM:SS:FF at the given frame rate.
// Fractional rates (23.976, 29.97) are divided as real values and each field
// is truncated, so the rebuilt frame count never exceeds frames.
func FramesToTimecode(frames int, rate float64) string {
	if !validRate(rate) || frames < 0 {
		return zero
	}

	secs, ff := divmod(float64(frames), rate)
	mins, secs := divmod(secs, 60)
	hours, mins := divmod(mins, 60)

	return fmt.Sprintf("%02d:%02d:%02d:%02d", int(hours), int(mins), int(secs), int(ff))
}

// ComputeDuration returns the timecode length of the range [in, out).
// An inverted range yields Placeholder rather than a negative duration.
func ComputeDuration(in, out int, rate float64) string {
	if out < in {
		return Placeholder
	}
	return FramesToTimecode(out-in, rate)
}

// AspectRatio reduces a resolution to its simplest width_height ratio,
// e.g. AspectRatio(1080, 1920) == "16_9". When both sides are zero the
// unreduced value is returned.
func AspectRatio(height, width int) string {
	g := gcd(height, width)
	if g == 0 {
		return fmt.Sprintf("%d_%d", width, height)
	}
	return fmt.Sprintf("%d_%d", width/g, height/g)
}

// FramesToSeconds converts a frame count to seconds.
func FramesToSeconds(frames int, rate float64) float64 {
	if !validRate(rate) {
		return 0
	}
	return float64(frames) / rate
}

// SecondsToFrames converts a playback position to the frame it falls in.
func SecondsToFrames(seconds, rate float64) int {
	if !validRate(rate) || seconds <= 0 {
		return 0
	}
	return int(math.Floor(seconds * rate))
}

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// ParseTimecode parses HH:MM:SS:FF or a raw frame count into frames.
// It is the inverse of FramesToTimecode for the same rate.
func ParseTimecode(s string, rate float64) (int, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ":") {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("expected HH:MM:SS:FF or a frame count, got '%s'", s)
		}
		return n, nil
	}

	if !validRate(rate) {
		return 0, fmt.Errorf("invalid frame rate %v", rate)
	}

	var h, m, sec, ff int
	if n, err := fmt.Sscanf(s, "%d:%d:%d:%d", &h, &m, &sec, &ff); n != 4 || err != nil {
		return 0, fmt.Errorf("expected HH:MM:SS:FF, got '%s'", s)
	}
	if h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 || ff < 0 || float64(ff) >= math.Ceil(rate) {
		return 0, fmt.Errorf("timecode field out of range: '%s'", s)
	}

	total := float64(h*3600+m*60+sec) * rate
	return int(math.Round(total)) + ff, nil
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0) && !math.IsNaN(rate)
}

// divmod mirrors floored division on real values: q = floor(a/b), r = a - q*b.
func divmod(a, b float64) (float64, float64) {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		mod += b
		div--
	}
	q := math.Floor(div)
	if div-q > 0.5 {
		q++
	}
	return q, mod
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
