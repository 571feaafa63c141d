//go:build windows

package runner

import "os/exec"

// setProcessGroup is a no-op on Windows; ffmpeg/ffprobe do not fork helper
// processes there, so killing the direct child is sufficient.
func setProcessGroup(cmd *exec.Cmd) {}

func killGroup(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}
