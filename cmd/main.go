package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/frontboat/death-mountain-sub001/internal/api"
	"github.com/frontboat/death-mountain-sub001/internal/config"
	"github.com/frontboat/death-mountain-sub001/internal/db"
	"github.com/frontboat/death-mountain-sub001/internal/dispatch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}

	logger, err := newLogger(cfg.LogDev)
	if err != nil {
		config.Exitf("logger: %v", err)
	}
	defer logger.Sync()

	catalogue := dispatch.DefaultCatalogue()
	if cfg.EventCatalogue != "" {
		catalogue, err = dispatch.LoadCatalogue(cfg.EventCatalogue)
		if err != nil {
			logger.Fatal("Failed to load event catalogue", zap.Error(err))
		}
	}

	// Initialize database
	database, err := db.NewDB(cfg.DBPath)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	server := api.NewServer(api.Options{
		DB: database,
		Translator: dispatch.NewTranslator(dispatch.Config{
			Catalogue: catalogue,
			Envelope:  cfg.EnvelopeEvent,
			Logger:    logger.Named("dispatch"),
		}),
		Logger:           logger.Named("api"),
		RecentEventLimit: cfg.RecentEventLimit,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
		MaxBodyBytes:     cfg.MaxBodyBytes,
		JWTSecret:        cfg.JWTSecret,
	})
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty, authentication disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Starting server", zap.String("addr", httpServer.Addr), zap.Int("catalogue_entries", len(catalogue)))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server error", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
