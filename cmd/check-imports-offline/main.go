// Command check-imports-offline verifies that the ML runtime stack imports
// with outbound networking disabled.
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vertti/importcheck/pkg/cli"
	"github.com/vertti/importcheck/pkg/importcheck"
	"github.com/vertti/importcheck/pkg/netguard"
	"github.com/vertti/importcheck/pkg/offlineenv"
)

// Version is set at build time via ldflags
var Version = "dev"

// modules are checked in this order.
var modules = []string{
	"transformers",
	"torch",
	"joblib",
	"onnx",
	"onnxruntime",
}

var (
	flags       cli.Flags
	newImporter cli.ImporterFactory = cli.NewPythonImporter
	environment offlineenv.Env      = &offlineenv.RealEnv{}
)

var rootCmd = &cobra.Command{
	Use:   "check-imports-offline",
	Short: "Check that ML packages import with networking disabled",
	Long: "check-imports-offline sets Hugging Face offline flags, blocks outbound connections " +
		"and imports a fixed set of packages. The exit code is the number of failed imports.",
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runOffline,
}

func init() {
	flags.Register(rootCmd.Flags())
}

func main() {
	cli.Exit(rootCmd.Execute())
}

func runOffline(cmd *cobra.Command, _ []string) error {
	session, err := cli.NewSession(cmd, &flags)
	if err != nil {
		return err
	}
	logger := session.Logger

	set, err := offlineenv.Apply(environment, offlineenv.Defaults)
	if err != nil {
		return err
	}
	for _, name := range set {
		value, _ := environment.LookupEnv(name)
		logger.Debug("offline flag set", "name", name, "value", value)
	}

	summary := runGuarded(cmd.Context(), session, newImporter(session.Config, logger))

	session.Finish(cmd.Context(), summary)
	return cli.ExitCode(summary.Failures)
}

// runGuarded imports every module with the network guard held. The guard is
// released before metrics are published.
func runGuarded(ctx context.Context, session *cli.Session, importer importcheck.Importer) importcheck.Summary {
	release := netguard.Block()
	defer func() {
		release()
		session.Logger.Debug("network guard released")
	}()

	session.Logger.Debug("network guard installed")
	return session.Run(ctx, modules, importer)
}
