package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/simplehtml/internal/config"
	"github.com/njchilds90/simplehtml/internal/logging"
	"github.com/njchilds90/simplehtml/internal/server"
)

// ServeFunc runs the HTTP API until ctx is done.
type ServeFunc func(ctx context.Context, cfg config.Config, logger *zap.Logger) error

// NewServeCmd creates the serve subcommand. serve is called with the
// loaded config and a logger built from it.
func NewServeCmd(serve ServeFunc) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sanitizer HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			logger, err := logging.New(cfg.Environment, cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			logger.Info("starting simplehtml",
				zap.String("environment", cfg.Environment),
				zap.String("address", cfg.Server.Addr),
				zap.Int64("max_body_bytes", cfg.Server.MaxBodyBytes),
			)
			return serve(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")

	return cmd
}

func runServer(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	return server.New(cfg.Server, logger).ListenAndServe(ctx)
}
