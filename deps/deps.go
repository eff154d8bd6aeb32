package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	Binary     string
	InstallURL string
}

func (e *DependencyError) Error() string {
	if e.Binary != "" && e.Binary != e.Name {
		return fmt.Sprintf("%s not found at %q. Install from: %s", e.Name, e.Binary, e.InstallURL)
	}
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Resolve returns the full path of binary, falling back to name when binary
// is empty.
func Resolve(name, binary, installURL string) (string, error) {
	if binary == "" {
		binary = name
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", &DependencyError{Name: name, Binary: binary, InstallURL: installURL}
	}
	return path, nil
}

// CheckMpv checks if mpv is installed. An empty binary means "mpv" on PATH.
func CheckMpv(binary string) error {
	_, err := Resolve("mpv", binary, MpvInstallURL)
	return err
}

// CheckFfmpeg checks if ffmpeg is installed. An empty binary means "ffmpeg" on PATH.
func CheckFfmpeg(binary string) error {
	_, err := Resolve("ffmpeg", binary, FfmpegInstallURL)
	return err
}

// CheckAll checks all dependencies and returns a slice of errors for missing ones
func CheckAll(ffmpegBinary, mpvBinary string) []error {
	var errors []error

	if err := CheckFfmpeg(ffmpegBinary); err != nil {
		errors = append(errors, err)
	}

	if err := CheckMpv(mpvBinary); err != nil {
		errors = append(errors, err)
	}

	return errors
}
