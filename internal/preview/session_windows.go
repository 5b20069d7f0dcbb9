//go:build windows

package preview

import "os/exec"

// setNewSession is a no-op on Windows, which has no POSIX session concept;
// the spawner relies on context cancellation to terminate the child.
func setNewSession(cmd *exec.Cmd) {}
