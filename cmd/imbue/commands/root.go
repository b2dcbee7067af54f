package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"imbuesvc/internal/config"
	apierrors "imbuesvc/internal/errors"
	"imbuesvc/internal/infrastructure"
	"imbuesvc/pkg/contracts"
)

// options carries the persistent flags and the state loaded before a
// subcommand runs
type options struct {
	configFile string
	verbose    bool

	cfg *config.Config
}

// NewRootCmd builds the imbue command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "imbue",
		Short: "Fill gaps in one-dimensional series",
		Long: `imbue synthesizes the missing integer positions of a sparse series using
one of three strategies: average (linear interpolation), zeroed, or last_known.

It runs as an HTTP service (imbue serve) or fills files directly (imbue fill).`,
		Version:       contracts.GetVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			load := config.Load
			if opts.configFile != "" {
				load = func() (*config.Config, error) { return config.LoadFrom(opts.configFile) }
			}
			cfg, err := load()
			if err != nil {
				return apierrors.NewConfigError("failed to load configuration", err)
			}
			if opts.verbose {
				cfg.Logging.Level = "debug"
			}
			opts.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newFillCmd(opts),
		newStrategiesCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the command tree against os.Args
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// cliLogger logs to stderr so stdout only carries command output
func (o *options) cliLogger(cmd *cobra.Command) *slog.Logger {
	return infrastructure.WithComponent(
		infrastructure.NewLoggerTo(cmd.ErrOrStderr(), o.cfg.Logging), "cli")
}
