package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vertti/importcheck/pkg/check"
	"github.com/vertti/importcheck/pkg/config"
	"github.com/vertti/importcheck/pkg/importcheck"
	"github.com/vertti/importcheck/pkg/logging"
	"github.com/vertti/importcheck/pkg/metrics"
	"github.com/vertti/importcheck/pkg/output"
	"github.com/vertti/importcheck/pkg/pyimport"
)

// ImporterFactory builds the importer for a run.
type ImporterFactory func(cfg *config.Config, logger logging.Logger) importcheck.Importer

// NewPythonImporter is the production ImporterFactory.
func NewPythonImporter(cfg *config.Config, logger logging.Logger) importcheck.Importer {
	return &pyimport.Importer{
		Python: cfg.Python,
		Runner: &pyimport.RealRunner{},
		Logger: logger,
	}
}

// Session wires config, logging, metrics and output for one run.
type Session struct {
	Config    *config.Config
	Logger    logging.Logger
	Collector metrics.Collector
	Printer   *output.Printer
}

// NewSession loads configuration for cmd and builds the run's collaborators.
// Result lines go to cmd's stdout, traces to its stderr.
func NewSession(cmd *cobra.Command, flags *Flags) (*Session, error) {
	cfg, err := flags.Load(cmd)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(cfg.LoggingSettings()).With("checker", cmd.Name())
	logger.Debug("config loaded", "python", cfg.Python, "timeout", cfg.Timeout)

	collector, err := metrics.NewCollector(cfg.MetricsSettings(cmd.Name()), logger)
	if err != nil {
		return nil, err
	}

	return &Session{
		Config:    cfg,
		Logger:    logger,
		Collector: collector,
		Printer: &output.Printer{
			Out:     cmd.OutOrStdout(),
			Err:     cmd.ErrOrStderr(),
			Verbose: cfg.Verbose,
		},
	}, nil
}

// Run imports modules in order, printing and recording each result as it
// arrives.
func (s *Session) Run(ctx context.Context, modules []string, importer importcheck.Importer) importcheck.Summary {
	return importcheck.Run(ctx, modules, importer, importcheck.Options{
		Timeout: s.Config.Timeout,
		Logger:  s.Logger,
		OnResult: func(r check.Result) {
			s.Printer.PrintResult(r)
			s.Collector.RecordImport(r.Name, r.Duration, r.OK())
		},
	})
}

// Finish records the batch outcome and publishes metrics. Publishing
// failures are logged and never change the exit code.
func (s *Session) Finish(ctx context.Context, summary importcheck.Summary) {
	s.Collector.RecordRun(summary.Failures)
	if err := s.Collector.Publish(ctx); err != nil {
		s.Logger.Warn("publishing metrics failed", "error", err)
	}
	s.Logger.Info("import check finished", "passed", summary.Passed(), "failed", summary.Failures)
}
