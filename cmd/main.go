package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"people_api/internal/config"
	"people_api/internal/handlers"
	"people_api/internal/logger"
	"people_api/internal/metrics"
	"people_api/internal/repository"
	"people_api/internal/repository/db"
	"people_api/internal/server"
	"people_api/internal/service"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title        People API
// @version      1.0
// @description  CRUD over people with cookie based sessions.
// @host         localhost:8000
// @BasePath     /
func main() {
	cfg, err := config.Load(config.Options{})
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	// open DB and apply migrations
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	conn, dialect, err := db.InitDB(ctx, cfg.DatabaseURL, log)
	cancel()
	if err != nil {
		log.Fatalw("failed to init database", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()
	log.Infow("database ready", "dialect", dialect)

	// wire dependencies
	repos := repository.NewRepository(conn, dialect)
	services := service.NewService(repos, cfg.Secret)
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		AuthEnabled:    cfg.AuthEnabled,
		LegacyStatus:   cfg.LegacyStatus,
		CookieDomain:   cfg.CookieDomain,
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        metrics.New(),
	})

	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)
	log.Infow("listening", "addr", srv.Addr(), "auth", cfg.AuthEnabled)

	waitForShutdown(srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
