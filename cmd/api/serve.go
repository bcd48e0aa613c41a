package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/workforce-api/internal/database"
	"github.com/workforce-api/internal/handler"
	"github.com/workforce-api/internal/middleware"
	"github.com/workforce-api/internal/repository"
	"github.com/workforce-api/internal/service"
	"github.com/workforce-api/internal/validation"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, logger, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	// Запуск миграций
	if err := database.Migrate(ctx, db, cfg.Database.Driver); err != nil {
		return err
	}

	uows := repository.NewUnitOfWorkFactory(db, logger)

	if cfg.SeedOnStart {
		if err := database.Seed(ctx, uows, logger); err != nil {
			return err
		}
	}

	// Инициализация сервисов
	deptService := service.NewDepartmentService(uows)
	empService := service.NewEmployeeService(uows)
	projectService := service.NewProjectService(uows)

	// Инициализация хендлеров
	validator := validation.New(uows)
	pages := handler.PageSizes{Default: cfg.Pagination.DefaultSize, Max: cfg.Pagination.MaxSize}
	deptHandler := handler.NewDepartmentHandler(deptService, validator, pages, logger)
	empHandler := handler.NewEmployeeHandler(empService, validator, pages, logger)
	projectHandler := handler.NewProjectHandler(projectService, validator, pages, logger)

	// Метрики
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	// Настройка роутера
	router := handler.NewRouter(deptHandler, empHandler, projectHandler, logger,
		handler.WithCORS(cfg.CORSAllowedOrigins),
		handler.WithMetrics(metrics, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
	)

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		logger.Info("server is shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
	}()

	logger.Info("server is starting", slog.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}
