//go:build unix

package pyimport

import (
	"os/exec"
	"syscall"
)

// killProcessGroup runs cmd as a process group leader and makes cancellation
// kill the whole group, so processes started during the import die with it.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
