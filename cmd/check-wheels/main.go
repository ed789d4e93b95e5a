// Command check-wheels verifies that the vector-search and embedding wheels
// installed in the image import cleanly.
package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/importcheck/pkg/cli"
)

// Version is set at build time via ldflags
var Version = "dev"

// failureExitCode is returned when any import fails, regardless of how many.
const failureExitCode = 2

// modules are checked in this order.
var modules = []string{
	"chromadb",
	"onnxruntime",
	"hnswlib",
	"faiss",
	"torch",
	"sentence_transformers",
}

var (
	flags       cli.Flags
	newImporter cli.ImporterFactory = cli.NewPythonImporter
)

var rootCmd = &cobra.Command{
	Use:   "check-wheels",
	Short: "Check that vector-search and embedding wheels import",
	Long: "check-wheels imports a fixed set of packages, printing a trace for each failure. " +
		"It exits 0 when every import succeeds and 2 otherwise.",
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWheels,
}

func init() {
	flags.Register(rootCmd.Flags())
}

func main() {
	cli.Exit(rootCmd.Execute())
}

func runWheels(cmd *cobra.Command, _ []string) error {
	session, err := cli.NewSession(cmd, &flags)
	if err != nil {
		return err
	}
	session.Printer.Traceback = true

	summary := session.Run(cmd.Context(), modules, newImporter(session.Config, session.Logger))
	session.Printer.PrintSummary(summary.OK())
	session.Finish(cmd.Context(), summary)

	if !summary.OK() {
		return cli.ExitCode(failureExitCode)
	}
	return nil
}
