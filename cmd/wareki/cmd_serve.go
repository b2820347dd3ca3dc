package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wareki/internal/logging"
	"wareki/internal/server"
	"wareki/internal/wareki"
)

var servePort int

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion API over HTTP",
	Long: `Starts an HTTP server with the conversion API.

Endpoints:
  GET /api/v1/convert?q=令和5   convert a query
  GET /api/v1/convert/{year}    convert a Gregorian year
  GET /api/v1/eras              list eras
  GET /healthz                  health check
  GET /metrics                  Prometheus metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (overrides config and WAREKI_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	log := logging.For(logger, logging.CategoryServer)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			log.Info("Received shutdown signal", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	srv := server.NewServer(server.Options{
		Config:  cfg,
		Logger:  log,
		Table:   wareki.Default,
		Version: Version,
	})
	return srv.Run(ctx)
}
