package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/whitespace/internal/analysis"
	"github.com/RMahshie/whitespace/internal/api"
	"github.com/RMahshie/whitespace/internal/config"
	"github.com/RMahshie/whitespace/internal/export"
	"github.com/RMahshie/whitespace/internal/metrics"
	"github.com/RMahshie/whitespace/internal/repository/upstream"
	"github.com/RMahshie/whitespace/internal/storage"
)

func main() {
	// Configure zerolog for structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.Server.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Server.Env != "dev" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	m := metrics.New()

	scans := upstream.NewClient(upstream.Options{
		BaseURL:    cfg.Upstream.BaseURL,
		Timeout:    cfg.Upstream.Timeout,
		Retries:    cfg.Upstream.Retries,
		FetchLimit: cfg.Upstream.FetchLimit,
	}, m)

	analysisSvc := analysis.NewService(scans, m, analysis.Options{
		Plan:           cfg.BandPlan(),
		BandEnd:        cfg.Analysis.BandEndMHz,
		BarCount:       cfg.Analysis.BarCount,
		RecommendLimit: cfg.Analysis.RecommendLimit,
		FetchLimit:     cfg.Upstream.FetchLimit,
	})

	ctx := context.Background()
	store, err := storage.New(ctx, storage.Options{
		Driver: cfg.Export.Driver,
		Local: storage.LocalConfig{
			Dir:       cfg.Export.Dir,
			URLPrefix: "/api/exports/files/",
		},
		S3: storage.S3Config{
			Bucket:    cfg.AWS.S3Bucket,
			Endpoint:  cfg.AWS.S3Endpoint,
			Region:    cfg.AWS.Region,
			AccessKey: cfg.AWS.AccessKeyID,
			SecretKey: cfg.AWS.SecretAccessKey,
			Prefix:    "exports/",
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize export storage")
	}

	router := api.NewRouter(api.RouterConfig{AllowedOrigins: cfg.Server.AllowedOrigins}, api.Dependencies{
		Repo:     scans,
		Analysis: analysisSvc,
		Exporter: export.NewExporter(analysisSvc, store),
		Store:    store,
		Metrics:  m,
	})

	// Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Server.Env).
			Str("upstream", cfg.Upstream.BaseURL).
			Msg("Starting White Space API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
