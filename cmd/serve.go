package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	logger2 "gitlab.com/codejudge.net/internal/global/logger"
	"gitlab.com/codejudge.net/internal/handlers"
	http2 "gitlab.com/codejudge.net/internal/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the judging HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logger2.Logger
	logger.Info("Starting judge service", "catalog", sysCfg.CatalogConfig.Source, "debug", sysCfg.DebugMode)

	// Set up graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := buildApplication(ctx, sysCfg, true, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	middleware := handlers.NewMiddlewareProvider(sysCfg.JwtConfig, sysCfg.HttpConfig)
	if middleware.AuthEnabled() {
		logger.Info("Submission routes require a bearer token")
	}

	serviceProvider := http2.NewServiceProvider(app.submissionSvc, app.catalog)
	httpServer := http2.NewServer(sysCfg.HttpConfig, *serviceProvider, middleware, logger)
	if err := httpServer.Init(); err != nil {
		return err
	}
	if err := httpServer.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Stop(shutdownCtx); err != nil {
		return err
	}

	logger.Info("successfully shutdown server")
	return nil
}
