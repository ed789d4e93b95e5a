//go:build !unix

package pyimport

import "os/exec"

// killProcessGroup is a no-op without process groups. The default cancel
// kills the interpreter and WaitDelay bounds the wait for its children.
func killProcessGroup(_ *exec.Cmd) {}
