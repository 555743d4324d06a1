package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/colegiospro/server/internal/config"
	"codeberg.org/colegiospro/server/internal/logger"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and websocket server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply the schema on startup")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(cfg.Environment)
	logger.Info("starting colegiospro server", "environment", cfg.Environment)

	srv, err := NewServer(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if !skipMigrate {
		if err := srv.db.Migrate(cmd.Context()); err != nil {
			srv.Close()
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	// no write timeout, websocket writes manage their own deadlines
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           srv.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	listenErr := make(chan error, 1)

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	if srv.flusher != nil {
		srv.flusher.Start()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-listenErr:
		srv.Close()
		return fmt.Errorf("server failed to start: %w", err)
	}

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// stop accepting new requests first; hijacked websockets are closed by the relay
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.Close()

	logger.Info("server stopped")
	return nil
}
