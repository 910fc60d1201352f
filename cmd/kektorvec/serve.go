package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sanonone/kektorvec/internal/config"
	"github.com/sanonone/kektorvec/internal/logging"
	"github.com/sanonone/kektorvec/internal/server"
	"github.com/sanonone/kektorvec/pkg/core/distance"
	"github.com/sanonone/kektorvec/pkg/engine"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(serveConfigPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, cfg)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "path to a YAML config file")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config and ENGINE_PORT)")
}

// runServer serves until ctx is cancelled, then drains in-flight requests
// within cfg.ShutdownTimeout.
func runServer(ctx context.Context, cfg config.Config) error {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	eng, err := engine.New(engine.Options{
		Metric:         distance.Metric(cfg.Metric),
		Precision:      distance.Precision(cfg.Precision),
		M:              cfg.M,
		EfConstruction: cfg.EfConstruction,
		EfSearch:       cfg.EfSearch,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("invalid engine configuration: %w", err)
	}

	srv := server.NewServer(eng, server.Options{
		Addr:       cfg.Addr(),
		AuthToken:  cfg.AuthToken,
		RateLimit:  cfg.RateLimit,
		RateBurst:  cfg.RateBurst,
		MCPEnabled: cfg.MCPEnabled,
		Logger:     logger,
	})

	logger.Info("Starting kektorvec",
		"addr", cfg.Addr(),
		"metric", cfg.Metric,
		"precision", cfg.Precision,
		"m", cfg.M,
		"ef_construction", cfg.EfConstruction,
		"ef_search", cfg.EfSearch,
		"distance_backend", distance.Backend(),
		"mcp", cfg.MCPEnabled,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
