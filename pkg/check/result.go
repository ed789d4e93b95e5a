package check

import "time"

// Status represents the outcome of a check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusFail Status = "FAIL"
)

// Result holds the outcome of a single check.
type Result struct {
	Name     string        // e.g., "torch", "onnxruntime"
	Status   Status        // OK or FAIL
	Details  []string      // human-readable details
	Err      error         // underlying error for failures
	Duration time.Duration // time the check took
}

// OK returns true if the check passed.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Message returns the failure description, or "" for a passing result.
func (r Result) Message() string {
	if r.OK() {
		return ""
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	if len(r.Details) > 0 {
		return r.Details[len(r.Details)-1]
	}
	return "unknown error"
}
