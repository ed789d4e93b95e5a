package importcheck

import (
	"context"
	"time"

	"github.com/vertti/importcheck/pkg/check"
	"github.com/vertti/importcheck/pkg/logging"
)

// Options configures a batch run.
type Options struct {
	Timeout  time.Duration      // per-module timeout, 0 uses DefaultTimeout
	OnResult func(check.Result) // called after each module, in input order
	Logger   logging.Logger     // nil discards logs
}

// Summary is the outcome of a batch run.
type Summary struct {
	Results  []check.Result // one per module, in input order
	Failures int
}

// Passed returns the number of modules that imported cleanly.
func (s Summary) Passed() int {
	return len(s.Results) - s.Failures
}

// OK reports whether every module imported.
func (s Summary) OK() bool {
	return s.Failures == 0
}

// Run imports each module in order. A failure is recorded and the batch
// continues with the next module.
func Run(ctx context.Context, modules []string, importer Importer, opts Options) Summary {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	summary := Summary{Results: make([]check.Result, 0, len(modules))}
	for _, name := range modules {
		c := &Check{Module: name, Timeout: opts.Timeout, Importer: importer}

		result := c.Run(ctx)
		if result.OK() {
			logger.Debug("import succeeded", "module", name, "duration", result.Duration)
		} else {
			summary.Failures++
			logger.Debug("import failed", "module", name, "duration", result.Duration, "error", result.Message())
		}

		summary.Results = append(summary.Results, result)
		if opts.OnResult != nil {
			opts.OnResult(result)
		}
	}
	return summary
}
