package importcheck

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/vertti/importcheck/pkg/check"
)

// DefaultTimeout bounds a single import.
const DefaultTimeout = 2 * time.Minute

var _ check.Checker = (*Check)(nil)

// Check verifies that one module can be imported.
type Check struct {
	Module   string        // module name, e.g. "torch"
	Timeout  time.Duration // per-import timeout (default: 2m)
	Importer Importer      // injected for testing
}

// Run attempts the import exactly once. Any error or panic from the importer
// becomes a failed result carrying an *ImportError.
func (c *Check) Run(ctx context.Context) (result check.Result) {
	result = check.Result{Name: c.Module}
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			result = check.Result{Name: c.Module}
			ie := &ImportError{
				Module:    c.Module,
				Kind:      KindPanic,
				Message:   fmt.Sprintf("panic: %v", r),
				Traceback: string(debug.Stack()),
			}
			result = result.Fail(ie.Message, ie)
		}
	}()

	mod, err := c.Importer.Import(ctx, c.Module)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			ie := &ImportError{
				Module:  c.Module,
				Kind:    KindTimeout,
				Message: fmt.Sprintf("import timed out after %s", timeout),
				Cause:   err,
			}
			return result.Fail(ie.Message, ie)
		}
		ie := asImportError(c.Module, err)
		return result.Fail(ie.Message, ie)
	}

	if mod.Version != "" {
		result.AddDetailf("version: %s", mod.Version)
	}
	if mod.Duration > 0 {
		result.AddDetailf("import took: %s", mod.Duration.Round(time.Millisecond))
	}
	return result.Pass()
}
