// Package output prints import results in the "NAME: OK" / "NAME: FAIL -> msg"
// format CI logs are searched for.
package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/importcheck/pkg/check"
	"github.com/vertti/importcheck/pkg/importcheck"
)

var (
	green = "\033[32m"
	red   = "\033[31m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, dim, reset = "", "", "", ""
	}
}

// Summary lines printed by PrintSummary.
const (
	SummaryOK   = "All imports OK"
	SummaryFail = "One or more imports failed"
)

// Printer writes results to Out and traces to Err.
type Printer struct {
	Out       io.Writer
	Err       io.Writer
	Traceback bool // write the failure trace to Err after each FAIL line
	Verbose   bool // write result details (version, duration) under each line
}

// PrintResult outputs one result line.
func (p *Printer) PrintResult(r check.Result) {
	if r.OK() {
		fmt.Fprintf(p.Out, "%s: %sOK%s\n", r.Name, green, reset)
	} else {
		fmt.Fprintf(p.Out, "%s: %sFAIL%s -> %s\n", r.Name, red, reset, r.Message())
	}

	if p.Verbose {
		for _, d := range r.Details {
			fmt.Fprintf(p.Out, "    %s%s%s\n", dim, d, reset)
		}
	}

	if p.Traceback && !r.OK() {
		p.printTrace(r)
	}
}

func (p *Printer) printTrace(r check.Result) {
	var ie *importcheck.ImportError
	switch {
	case errors.As(r.Err, &ie) && ie.Traceback != "":
		fmt.Fprintln(p.Err, ie.Traceback)
	case r.Err != nil:
		fmt.Fprintf(p.Err, "%+v\n", r.Err)
	}
}

// PrintSummary outputs a blank line followed by the overall verdict.
func (p *Printer) PrintSummary(ok bool) {
	if ok {
		fmt.Fprintf(p.Out, "\n%s\n", SummaryOK)
		return
	}
	fmt.Fprintf(p.Out, "\n%s\n", SummaryFail)
}
