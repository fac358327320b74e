package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/etivest/rebalancer/internal/config"
	"github.com/etivest/rebalancer/internal/handlers"
	"github.com/etivest/rebalancer/internal/logger"
	"github.com/etivest/rebalancer/internal/server"
	"github.com/etivest/rebalancer/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the rebalancer HTTP API.

Endpoints:
  GET  /                - liveness ("rebalancer")
  GET  /health          - health check
  POST /                - rebalance (same as /api/rebalance)
  POST /api/rebalance   - rebalance a list of assets
  GET  /swagger/        - API documentation`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides SERVER_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	engine := services.EngineFromConfig(cfg.Rebalance)
	rebalanceHandler := handlers.NewRebalanceHandler(services.NewRebalanceService(engine), cfg.MaxBodyBytes)
	srv := server.New(cfg, log, handlers.NewRouter(rebalanceHandler, log))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	return <-errCh
}
