package main

import (
	"nexus/internal/assistant"
	"nexus/internal/logging"
	"nexus/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			logging.Configure(logging.ParseLevel(cfg.Logging.Level), cmd.ErrOrStderr())

			ctx, stop := signalContext()
			defer stop()

			services, err := assistant.Build(ctx, cfg)
			if err != nil {
				return err
			}
			defer services.Close()

			logging.Info("serving", "addr", cfg.Server.Addr, "version", cfg.Version,
				"provider", cfg.Model.Provider, "model", cfg.Model.Name)
			return server.New(services.Assistant, services.Registry, cfg.Server).Listen(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
