package pyimport

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// WaitDelay bounds how long a finished or cancelled interpreter may keep its
// output pipes open through processes it started.
const WaitDelay = 2 * time.Second

// Runner abstracts interpreter execution for testability.
type Runner interface {
	LookPath(file string) (string, error)
	// RunCommandContext runs name with args. A nil env inherits the current
	// process environment.
	RunCommandContext(ctx context.Context, env []string, name string, args ...string) (stdout, stderr string, err error)
}

// RealRunner implements Runner using os/exec.
type RealRunner struct{}

// LookPath searches for an executable in PATH.
func (r *RealRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// RunCommandContext executes a command and returns its output.
func (r *RealRunner) RunCommandContext(ctx context.Context, env []string, name string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- interpreter path comes from trusted config
	cmd.Env = env
	cmd.WaitDelay = WaitDelay
	killProcessGroup(cmd)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// MockRunner is a test double for Runner.
type MockRunner struct {
	LookPathFunc   func(file string) (string, error)
	RunCommandFunc func(ctx context.Context, env []string, name string, args ...string) (string, string, error)
}

// LookPath calls the mock function.
func (m *MockRunner) LookPath(file string) (string, error) {
	return m.LookPathFunc(file)
}

// RunCommandContext calls the mock function.
func (m *MockRunner) RunCommandContext(ctx context.Context, env []string, name string, args ...string) (stdout, stderr string, err error) {
	return m.RunCommandFunc(ctx, env, name, args...)
}
