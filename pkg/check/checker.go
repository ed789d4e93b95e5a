package check

import "context"

// Checker is implemented by all check types.
// Each check validates one aspect of the runtime environment
// and returns a Result indicating success or failure.
//
// Implementations:
//   - importcheck.Check: verifies a module can be imported
type Checker interface {
	Run(ctx context.Context) Result
}
