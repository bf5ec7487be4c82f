package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thrivecorp/platform/internal/handler"
	"github.com/thrivecorp/platform/internal/middleware"
	"github.com/thrivecorp/platform/internal/report"
	"github.com/thrivecorp/platform/internal/repository"
	"github.com/thrivecorp/platform/internal/service"
	"github.com/thrivecorp/platform/pkg/config"
	"github.com/thrivecorp/platform/pkg/database"
	"github.com/thrivecorp/platform/pkg/jwtutil"
	"github.com/thrivecorp/platform/pkg/logger"
	"github.com/thrivecorp/platform/prometheus"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.InitLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck
	log.Info("Starting ThriveCorp API...", zap.String("environment", cfg.Server.Env))

	db, err := database.InitDB(&cfg.DB, log)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		return err
	}
	defer database.Close(db) //nolint:errcheck
	log.Info("Database connection established")

	prometheus.InitMetrics(cfg.Metrics.Prefix)
	log.Info("Prometheus metrics initialized", zap.String("namespace", cfg.Metrics.Prefix))

	jwt := jwtutil.NewJWTUtil(&cfg.JWT)
	svc := service.New(repository.NewPostgres(db), jwt)
	h := handler.New(svc, report.NewExporter(cfg.Billing), cfg.ServiceName)

	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	h.Register(e, jwt)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
