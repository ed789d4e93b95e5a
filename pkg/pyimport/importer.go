// Package pyimport imports Python modules by running each import in a fresh
// interpreter and reading back a one-line JSON verdict.
package pyimport

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/vertti/importcheck/pkg/importcheck"
	"github.com/vertti/importcheck/pkg/logging"
	"github.com/vertti/importcheck/pkg/netguard"
)

// DefaultPython is the interpreter used when none is configured.
const DefaultPython = "python3"

var (
	//go:embed probe.py
	probeScript string

	//go:embed noconnect.py
	noConnectPrelude string
)

// Importer implements importcheck.Importer on top of a Python interpreter.
//
// When the process-wide network guard is held, or BlockNetwork is set, the
// child interpreter gets a prelude that makes socket connect fail with
// NetworkBlockedError, so the guard covers the import itself.
type Importer struct {
	Python       string         // interpreter name or path (default: python3)
	Env          []string       // child environment, nil inherits the current one
	BlockNetwork bool           // always install the no-connect prelude
	Runner       Runner         // injected for testing
	Logger       logging.Logger // nil discards logs
}

// Script returns the program passed to "python -c".
func (i *Importer) Script() string {
	if i.BlockNetwork || netguard.Active() {
		return noConnectPrelude + "\n" + probeScript
	}
	return probeScript
}

// Import runs the probe for name.
func (i *Importer) Import(ctx context.Context, name string) (importcheck.Module, error) {
	python := i.Python
	if python == "" {
		python = DefaultPython
	}
	logger := i.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	path, err := i.Runner.LookPath(python)
	if err != nil {
		return importcheck.Module{}, &importcheck.ImportError{
			Module:  name,
			Kind:    importcheck.KindRunner,
			Message: fmt.Sprintf("python interpreter %q not found: %v", python, err),
			Cause:   err,
		}
	}

	script := i.Script()
	logger.Debug("running import probe", "module", name, "python", path, "network_blocked", script != probeScript)

	start := time.Now()
	stdout, stderr, runErr := i.Runner.RunCommandContext(ctx, i.Env, path, "-c", script, name)
	elapsed := time.Since(start)

	if ctx.Err() != nil {
		return importcheck.Module{}, ctx.Err()
	}

	verdict, ok := lastJSONLine(stdout)
	if !ok {
		return importcheck.Module{}, probeError(name, stderr, runErr)
	}

	if !gjson.Get(verdict, "ok").Bool() {
		return importcheck.Module{}, &importcheck.ImportError{
			Module:    name,
			Kind:      gjson.Get(verdict, "type").String(),
			Message:   gjson.Get(verdict, "message").String(),
			Traceback: strings.TrimRight(gjson.Get(verdict, "traceback").String(), "\n"),
		}
	}

	return importcheck.Module{
		Name:     name,
		Version:  gjson.Get(verdict, "version").String(),
		Duration: elapsed,
	}, nil
}

// lastJSONLine returns the last non-empty stdout line if it is a JSON object.
func lastJSONLine(stdout string) (string, bool) {
	lines := strings.Split(strings.TrimRight(stdout, "\r\n"), "\n")
	line := strings.TrimSpace(lines[len(lines)-1])
	if line == "" || !gjson.Valid(line) || !gjson.Get(line, "ok").Exists() {
		return "", false
	}
	return line, true
}

// probeError describes an interpreter that died without a verdict,
// e.g. a segfault in a native extension or a SystemExit during import.
func probeError(name, stderr string, runErr error) *importcheck.ImportError {
	msg := "import probe produced no result"
	if runErr != nil {
		msg = fmt.Sprintf("interpreter failed: %v", runErr)
	}
	if tail := lastLine(stderr); tail != "" {
		msg += ": " + tail
	}
	return &importcheck.ImportError{
		Module:    name,
		Kind:      importcheck.KindProbe,
		Message:   msg,
		Traceback: strings.TrimRight(stderr, "\n"),
		Cause:     runErr,
	}
}

func lastLine(s string) string {
	s = strings.TrimRight(s, "\r\n")
	if idx := strings.LastIndex(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	return strings.TrimSpace(s)
}
