package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/user/markerman/deps"
	"github.com/user/markerman/pkg/timecode"
)

// FFmpegQueue renders each request immediately by cutting the timeline's
// source media with ffmpeg. Mark points are timeline frames; StartFrame is
// the timeline frame at which MediaPath begins.
type FFmpegQueue struct {
	Binary     string
	MediaPath  string
	StartFrame int
	Logger     zerolog.Logger
}

// NewFFmpegQueue creates a queue rendering from mediaPath. An empty binary
// means "ffmpeg" on PATH.
func NewFFmpegQueue(logger zerolog.Logger, binary, mediaPath string, startFrame int) *FFmpegQueue {
	return &FFmpegQueue{
		Binary:     binary,
		MediaPath:  mediaPath,
		StartFrame: startFrame,
		Logger:     logger.With().Str("component", "ffmpeg").Logger(),
	}
}

// AddJob runs ffmpeg for req and returns a fresh job id once the output exists.
func (q *FFmpegQueue) AddJob(ctx context.Context, req Request) (string, error) {
	bin, err := deps.Resolve("ffmpeg", q.Binary, deps.FfmpegInstallURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(req.TargetDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	outPath := UniqueOutputPath(req.TargetDir, req.CustomName, ".mp4", req.UniqueFilenameStyle)

	args, err := q.Args(req, outPath)
	if err != nil {
		return "", err
	}

	q.Logger.Debug().Strs("args", args).Msg("executing ffmpeg")

	cmd := exec.CommandContext(ctx, bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("ffmpeg failed: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return "", fmt.Errorf("stat output: %w", err)
	}

	id := uuid.NewString()
	q.Logger.Debug().
		Str("job", id).
		Str("output", outPath).
		Int64("bytes", info.Size()).
		Msg("render complete")
	return id, nil
}

// Args builds the ffmpeg argument list that renders req into outPath.
func (q *FFmpegQueue) Args(req Request, outPath string) ([]string, error) {
	if q.MediaPath == "" {
		return nil, errors.New("timeline has no source media to render from")
	}
	if req.Frames() <= 0 {
		return nil, fmt.Errorf("clip %s has no frames to render", req.CustomName)
	}
	if !req.ExportVideo && !req.ExportAudio {
		return nil, fmt.Errorf("clip %s exports neither video nor audio", req.CustomName)
	}

	start := timecode.FramesToSeconds(req.MarkIn-q.StartFrame, req.FrameRate)
	if start < 0 {
		return nil, fmt.Errorf("clip %s starts before the source media", req.CustomName)
	}
	duration := timecode.FramesToSeconds(req.Frames(), req.FrameRate)

	args := []string{
		"-y",
		"-hide_banner",
		"-ss", fmt.Sprintf("%.3f", start),
		"-i", q.MediaPath,
		"-t", fmt.Sprintf("%.3f", duration),
	}

	if req.ExportVideo {
		args = append(args, videoCodecArgs(req.EncodingProfile)...)
		if req.FormatWidth > 0 && req.FormatHeight > 0 {
			args = append(args, "-s", fmt.Sprintf("%dx%d", req.FormatWidth, req.FormatHeight))
		}
		args = append(args, "-r", strconv.FormatFloat(req.FrameRate, 'f', -1, 64))
		if req.VideoQuality > 0 {
			args = append(args, "-b:v", fmt.Sprintf("%dk", req.VideoQuality))
		}
	} else {
		args = append(args, "-vn")
	}

	if req.ExportAudio {
		args = append(args, "-c:a", audioCodec(req.AudioCodec, req.AudioBitDepth))
		if req.AudioSampleRate > 0 {
			args = append(args, "-ar", strconv.Itoa(req.AudioSampleRate))
		}
	} else {
		args = append(args, "-an")
	}

	if req.NetworkOptimization {
		args = append(args, "-movflags", "+faststart")
	}

	return append(args, outPath), nil
}

func videoCodecArgs(profile string) []string {
	switch strings.ToLower(profile) {
	case "main10":
		return []string{"-c:v", "libx265", "-profile:v", "main10", "-pix_fmt", "yuv420p10le"}
	case "":
		return []string{"-c:v", "libx264"}
	default:
		return []string{"-c:v", "libx264", "-profile:v", strings.ToLower(profile)}
	}
}

func audioCodec(codec string, bitDepth int) string {
	codec = strings.ToLower(codec)
	switch {
	case codec == "":
		return "aac"
	case strings.HasPrefix(codec, "pcm") || codec == "lpcm":
		if bitDepth <= 0 {
			bitDepth = 16
		}
		return fmt.Sprintf("pcm_s%dle", bitDepth)
	default:
		return codec
	}
}

// UniqueOutputPath returns dir/name+ext, numbering the name when that file
// already exists. style chooses whether the number is a prefix or a suffix.
func UniqueOutputPath(dir, name, ext string, style int) string {
	path := filepath.Join(dir, name+ext)
	for n := 1; exists(path); n++ {
		numbered := fmt.Sprintf("%d_%s", n, name)
		if style == UniqueSuffix {
			numbered = fmt.Sprintf("%s_%d", name, n)
		}
		path = filepath.Join(dir, numbered+ext)
	}
	return path
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
