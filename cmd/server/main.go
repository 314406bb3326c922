// Command server runs the job board HTTP API.
//
// Startup sequence:
//  1. Load .env (best effort) and environment configuration.
//  2. Configure zerolog (level, pretty console in dev).
//  3. Open SQLite, migrate the schema, create the reporting views and the
//     auto-withdraw trigger, and seed reference data when configured.
//  4. Set up OpenTelemetry tracing (no-op unless enabled).
//  5. Register routes and serve with sane HTTP timeouts until SIGINT/SIGTERM,
//     then drain in-flight requests and shut down.
//
// @title        Job Board API
// @version      1.0
// @description  REST backend for job search, applications, shortlists, and hiring statistics.
// @license.name MIT
// @BasePath     /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/tbourn/go-jobboard-backend/docs"
	"github.com/tbourn/go-jobboard-backend/internal/config"
	httpapi "github.com/tbourn/go-jobboard-backend/internal/http"
	"github.com/tbourn/go-jobboard-backend/internal/observability"
	"github.com/tbourn/go-jobboard-backend/internal/repo"
	"github.com/tbourn/go-jobboard-backend/internal/sysutil"
)

const version = "1.0.0"

func main() {
	// Best effort: a missing .env is fine in production.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Logging
	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().Str("version", version).Str("port", cfg.Port).Msg("starting job board server")

	// Database
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}
	if err := repo.CreateDatabaseObjects(db); err != nil {
		log.Fatal().Err(err).Msg("create views and triggers")
	}
	if err := repo.SeedReference(context.Background(), db, cfg.SeedPath); err != nil {
		log.Fatal().Err(err).Str("path", cfg.SeedPath).Msg("seed reference data")
	}

	// Tracing
	shutdownOTel, err := observability.SetupOTel(context.Background(), cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("setup tracing")
	}

	// HTTP
	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()
	log.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("serving")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := shutdownOTel(ctx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("bye")
}
