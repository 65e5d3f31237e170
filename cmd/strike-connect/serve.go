package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"strike-connect/config"
	"strike-connect/internal/app"
	"strike-connect/pkg/logger"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect to the relay and serve wallet requests",
		Long: `Connect to the configured relay and answer wallet requests until
interrupted. Configuration comes from config.yaml and SC_* environment
variables, e.g. SC_STRIKE_API_KEY.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ring := logger.NewRingBuffer(cfg.Log.BufferSize)
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty, ring)

	log.Info().Str("version", Version).Msg("Starting strike-connect")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log, ring)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	return a.Run(ctx)
}
