package mpv

import (
	"os/exec"

	"github.com/user/markerman/deps"
)

// LaunchMpv starts mpv on videoPath with the IPC socket enabled. Empty binary
// and socketPath fall back to "mpv" on PATH and DefaultSocketPath.
// Returns the *exec.Cmd for the running process which can be used for cleanup.
func LaunchMpv(binary, socketPath, videoPath string) (*exec.Cmd, error) {
	bin, err := deps.Resolve("mpv", binary, deps.MpvInstallURL)
	if err != nil {
		return nil, err
	}
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}

	cmd := exec.Command(bin,
		"--input-ipc-server="+socketPath,
		"--keep-open=yes",
		videoPath,
	)

	// Start the process (non-blocking)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}
