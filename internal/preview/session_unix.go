//go:build !windows

package preview

import (
	"os/exec"
	"syscall"
)

// setNewSession starts cmd in its own session so the preview process
// group can be killed as a whole instead of leaking orphaned grandchildren
// when the spawner replaces it.
func setNewSession(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Cancel = func() error { return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL) }
}
