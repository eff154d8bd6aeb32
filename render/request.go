package render

import (
	"github.com/user/markerman/clip"
	"github.com/user/markerman/pkg/timecode"
)

// UniqueFilenameStyle values understood by the render host.
const (
	UniquePrefix = 0
	UniqueSuffix = 1
)

// Encoding holds the render settings that do not come from the clip or the
// project. The zero value is not useful; start from DefaultEncoding.
type Encoding struct {
	VideoQuality        int    `yaml:"video_quality"`
	AudioCodec          string `yaml:"audio_codec"`
	AudioBitDepth       int    `yaml:"audio_bit_depth"`
	AudioSampleRate     int    `yaml:"audio_sample_rate"`
	ColorSpaceTag       string `yaml:"color_space_tag"`
	GammaTag            string `yaml:"gamma_tag"`
	EncodingProfile     string `yaml:"encoding_profile"`
	ExportVideo         bool   `yaml:"export_video"`
	ExportAudio         bool   `yaml:"export_audio"`
	ExportAlpha         bool   `yaml:"export_alpha"`
	AlphaMode           int    `yaml:"alpha_mode"`
	MultiPassEncode     bool   `yaml:"multi_pass_encode"`
	NetworkOptimization bool   `yaml:"network_optimization"`
	UniqueFilenameStyle int    `yaml:"unique_filename_style"`
}

// DefaultEncoding returns the settings used when nothing is configured.
func DefaultEncoding() Encoding {
	return Encoding{
		VideoQuality:        0,
		AudioCodec:          "aac",
		AudioBitDepth:       16,
		AudioSampleRate:     44100,
		ColorSpaceTag:       "Same as Project",
		GammaTag:            "Same as Project",
		EncodingProfile:     "Main10",
		ExportVideo:         true,
		ExportAudio:         true,
		UniqueFilenameStyle: UniquePrefix,
	}
}

// Request is one render job in the render host's vocabulary.
// SelectAllFrames is always false so MarkIn and MarkOut apply.
type Request struct {
	SelectAllFrames     bool    `json:"SelectAllFrames"`
	MarkIn              int     `json:"MarkIn"`
	MarkOut             int     `json:"MarkOut"`
	TargetDir           string  `json:"TargetDir"`
	CustomName          string  `json:"CustomName"`
	UniqueFilenameStyle int     `json:"UniqueFilenameStyle"`
	ExportVideo         bool    `json:"ExportVideo"`
	ExportAudio         bool    `json:"ExportAudio"`
	FormatWidth         int     `json:"FormatWidth"`
	FormatHeight        int     `json:"FormatHeight"`
	FrameRate           float64 `json:"FrameRate"`
	PixelAspectRatio    string  `json:"PixelAspectRatio"`
	VideoQuality        int     `json:"VideoQuality"`
	AudioCodec          string  `json:"AudioCodec"`
	AudioBitDepth       int     `json:"AudioBitDepth"`
	AudioSampleRate     int     `json:"AudioSampleRate"`
	ColorSpaceTag       string  `json:"ColorSpaceTag"`
	GammaTag            string  `json:"GammaTag"`
	ExportAlpha         bool    `json:"ExportAlpha"`
	EncodingProfile     string  `json:"EncodingProfile"`
	MultiPassEncode     bool    `json:"MultiPassEncode"`
	AlphaMode           int     `json:"AlphaMode"`
	NetworkOptimization bool    `json:"NetworkOptimization"`
}

// ToRequest builds the render job for c.
func ToRequest(c clip.Clip, p ProjectSettings, targetDir string, enc Encoding) Request {
	return Request{
		SelectAllFrames:     false,
		MarkIn:              c.InPoint,
		MarkOut:             c.OutPoint,
		TargetDir:           targetDir,
		CustomName:          c.Filename,
		UniqueFilenameStyle: enc.UniqueFilenameStyle,
		ExportVideo:         enc.ExportVideo,
		ExportAudio:         enc.ExportAudio,
		FormatWidth:         p.Width,
		FormatHeight:        p.Height,
		FrameRate:           p.FrameRate,
		PixelAspectRatio:    timecode.AspectRatio(p.Height, p.Width),
		VideoQuality:        enc.VideoQuality,
		AudioCodec:          enc.AudioCodec,
		AudioBitDepth:       enc.AudioBitDepth,
		AudioSampleRate:     enc.AudioSampleRate,
		ColorSpaceTag:       enc.ColorSpaceTag,
		GammaTag:            enc.GammaTag,
		ExportAlpha:         enc.ExportAlpha,
		EncodingProfile:     enc.EncodingProfile,
		MultiPassEncode:     enc.MultiPassEncode,
		AlphaMode:           enc.AlphaMode,
		NetworkOptimization: enc.NetworkOptimization,
	}
}

// Frames is the length of the requested range.
func (r Request) Frames() int {
	return r.MarkOut - r.MarkIn
}
