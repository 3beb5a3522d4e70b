package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"studybuddy/internal/api"
	"studybuddy/internal/config"
	"studybuddy/internal/services"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	var generator services.Generator
	gen, err := services.NewGenerator(context.Background(), cfg)
	switch {
	case errors.Is(err, services.ErrAIUnavailable):
		logger.Warn("no AI API key configured, serving sample data",
			zap.String("provider", cfg.Provider))
	case err != nil:
		logger.Error("AI configuration failed, serving sample data", zap.Error(err))
	default:
		generator = gen
		logger.Info("AI configured", zap.String("provider", cfg.Provider))
		if closer, ok := gen.(interface{ Close() error }); ok {
			defer closer.Close()
		}
	}

	study := services.NewStudyService(generator, logger)
	server := api.NewServer(
		study,
		services.NewTextExtractor(),
		services.NewUploadStore(cfg.UploadDir),
		logger,
		api.Options{
			MaxUploadBytes:   int64(cfg.MaxUploadMB) << 20,
			StaticDir:        cfg.StaticDir,
			APIKeyConfigured: cfg.APIKeyConfigured(),
		},
	)

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     server.Handler(),
		ReadTimeout: 15 * time.Second,
	}

	logger.Info("listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
