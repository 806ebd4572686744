package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/iudanet/shopkeeper/internal/config"
	"github.com/iudanet/shopkeeper/internal/server"
	"github.com/iudanet/shopkeeper/internal/server/auth"
	"github.com/iudanet/shopkeeper/internal/server/handlers"
	"github.com/iudanet/shopkeeper/internal/server/jwt"
	"github.com/iudanet/shopkeeper/internal/server/media"
	"github.com/iudanet/shopkeeper/internal/server/storage/sqlite"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
)

func main() {
	var configPath string
	var showVersion bool
	flag.StringVar(&configPath, "config", "", "path to config file (optional, env vars are used otherwise)")
	flag.BoolVar(&showVersion, "version", false, "show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Shopkeeper Server\nVersion:    %s\nBuild Date: %s\n", Version, BuildDate)
		os.Exit(0)
	}

	// Локальный .env, если есть
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	cfg := config.MustLoad(configPath)

	logger := setupLogger(cfg.Env)
	logger.Info("starting shopkeeper server",
		slog.String("version", Version),
		slog.String("env", cfg.Env),
		slog.String("auth_flow", cfg.AuthFlow))

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer store.Close()

	tokens := jwt.NewService(jwt.Config{
		AccessSecret:    []byte(cfg.Auth.AccessSecret),
		RefreshSecret:   []byte(cfg.Auth.RefreshSecret),
		AccessTokenTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	})

	flow, err := auth.New(cfg.AuthFlow, logger, store, tokens)
	if err != nil {
		return err
	}

	uploader, err := media.NewS3Uploader(ctx, logger, cfg.Media)
	if err != nil {
		return fmt.Errorf("failed to init media uploader: %w", err)
	}

	router := server.NewRouter(logger, tokens, server.Handlers{
		Auth:    handlers.NewAuthHandler(logger, flow, tokens, cfg.IsProd()),
		Product: handlers.NewProductHandler(logger, store),
		Upload:  handlers.NewUploadHandler(logger, uploader, cfg.Media.UploadDir),
		Health:  handlers.NewHealthHandler(logger),
	}, cfg.HTTPServer.CORSOrigins)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default: // envLocal
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
