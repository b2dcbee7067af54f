package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"imbuesvc/internal/app"
	apierrors "imbuesvc/internal/errors"
	"imbuesvc/internal/infrastructure"
)

func newServeCmd(opts *options) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP imputation service",
		Long: `Run the HTTP imputation service until SIGINT or SIGTERM.

Examples:
  imbue serve
  imbue serve --port 9090
  IMBUE_LOGGING_LEVEL=debug imbue serve --config config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				if port <= 0 || port > 65535 {
					return apierrors.NewAppValidationError(fmt.Sprintf("invalid port: %d", port))
				}
				opts.cfg.Server.Port = port
			}

			logger, err := infrastructure.InitializeLogger(opts.cfg.Logging)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			application, err := app.New(opts.cfg, logger)
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}
