package importcheck

import (
	"errors"
	"fmt"
)

// Error kinds that do not come from the imported module itself.
const (
	KindTimeout = "TimeoutError"
	KindPanic   = "Panic"
	KindProbe   = "ProbeError"
	KindRunner  = "RunnerError"
)

// ImportError is the single error kind reported at the per-module boundary.
// Importers may return any error; Check converts it to an ImportError.
type ImportError struct {
	Module    string // module that failed
	Kind      string // exception class name, or one of the Kind* constants
	Message   string // description printed after "FAIL ->"
	Traceback string // full trace, when the importer captured one
	Cause     error  // underlying error, if any
}

// Error returns the bare message, matching what the interpreter reports,
// e.g. "No module named 'torch'".
func (e *ImportError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *ImportError) Unwrap() error {
	return e.Cause
}

// Format implements fmt.Formatter so "%+v" includes the kind and trace.
func (e *ImportError) Format(s fmt.State, verb rune) {
	switch {
	case verb == 'v' && s.Flag('+'):
		fmt.Fprintf(s, "%s: %s", e.Kind, e.Message)
		if e.Traceback != "" {
			fmt.Fprintf(s, "\n%s", e.Traceback)
		}
	case verb == 'q':
		fmt.Fprintf(s, "%q", e.Message)
	default:
		fmt.Fprint(s, e.Message)
	}
}

// asImportError converts err into an *ImportError for module.
func asImportError(module string, err error) *ImportError {
	var ie *ImportError
	if errors.As(err, &ie) {
		if ie.Module == "" {
			ie.Module = module
		}
		return ie
	}
	return &ImportError{
		Module:  module,
		Kind:    KindRunner,
		Message: err.Error(),
		Cause:   err,
	}
}
