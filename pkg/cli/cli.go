// Package cli holds the flag handling and exit-code plumbing shared by the
// checker binaries.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vertti/importcheck/pkg/config"
)

// Flags are the ambient command-line options. Set flags override values
// loaded from the environment and config file.
type Flags struct {
	ConfigPath     string
	Python         string
	Timeout        time.Duration
	LogLevel       string
	MetricsFile    string
	PushgatewayURL string
	Verbose        bool
}

// Register adds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "config file (yaml, toml, json or env)")
	fs.StringVar(&f.Python, "python", "", "python interpreter (default: $IMPORTCHECK_PYTHON or python3)")
	fs.DurationVar(&f.Timeout, "timeout", 0, "per-module import timeout (default: $IMPORTCHECK_TIMEOUT or 2m)")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.MetricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
	fs.StringVar(&f.PushgatewayURL, "pushgateway-url", "", "push metrics to this Prometheus Pushgateway")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "print module version and import time under each line")
}

// Load reads the configuration and applies the flags that were set on cmd.
func (f *Flags) Load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("python") {
		cfg.Python = f.Python
	}
	if fs.Changed("timeout") {
		cfg.Timeout = f.Timeout
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.LogLevel
	}
	if fs.Changed("metrics-file") {
		cfg.Metrics.File = f.MetricsFile
	}
	if fs.Changed("pushgateway-url") {
		cfg.Metrics.PushgatewayURL = f.PushgatewayURL
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.Verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExitError carries a process exit code out of a cobra RunE.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns nil for 0 and an *ExitError otherwise.
func ExitCode(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitError{Code: code}
}

// Code maps the error returned by Execute to a process exit code.
// An *ExitError yields its own code, any other error yields 1.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Exit terminates the process for err. Errors other than *ExitError are
// printed to stderr first. Codes above 255 are truncated by the platform.
func Exit(err error) {
	exit(err, os.Stderr, os.Exit)
}

func exit(err error, stderr io.Writer, osExit func(int)) {
	code := Code(err)
	if code == 0 {
		return
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	osExit(code)
}
