package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Brownie44l1/webserver/internal/config"
	"github.com/Brownie44l1/webserver/internal/server"
	"github.com/Brownie44l1/webserver/internal/website"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the public directory",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	config.RegisterFlags(serveCmd.Flags())
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger := server.NewSlogLogger(cfg.Log.NewLogger(os.Stdout))

	site, err := website.New(cfg.PublicPath, logger)
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server(), site)
	srv.Logger = logger
	srv.Use(
		server.RecoveryMiddleware(logger),
		server.LoggingMiddleware(logger),
	)

	logger.Info("starting server",
		server.Field{Key: "addr", Value: cfg.Addr},
		server.Field{Key: "public_path", Value: site.Root()},
		server.Field{Key: "max_connections", Value: cfg.MaxConnections},
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := srv.ListenAndServe(gctx)
		if errors.Is(err, server.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("server stopped", srv.Metrics.Snapshot().Fields()...)
	return err
}
