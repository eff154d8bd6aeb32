package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotWritable means the render location exists but refuses new files.
var ErrNotWritable = errors.New("render location is not writable")

// NormalizeDir cleans a user-supplied directory and expands a leading "~".
func NormalizeDir(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "", errors.New("render location is empty")
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return filepath.Clean(dir), nil
}

// ProbeWritable checks that dir is a directory where a file can be created.
// Permission problems yield ErrNotWritable; anything else is returned as is.
func ProbeWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("render location %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("render location %s is not a directory", dir)
	}

	f, err := os.CreateTemp(dir, ".markerman-probe-*")
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: %s", ErrNotWritable, dir)
		}
		return fmt.Errorf("probe %s: %w", dir, err)
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return nil
}
