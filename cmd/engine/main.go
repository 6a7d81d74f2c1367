package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/montage/montage-engine/internal/api"
	"github.com/montage/montage-engine/internal/config"
	"github.com/montage/montage-engine/internal/db"
	"github.com/montage/montage-engine/internal/editor"
	"github.com/montage/montage-engine/internal/logging"
	"github.com/montage/montage-engine/internal/render"
	"github.com/montage/montage-engine/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	startTime := time.Now()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting montage engine", "version", config.Version, "data_dir", cfg.DataDir())

	database, err := db.New(cfg.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	repo := store.NewRepository(database.Conn())

	authToken, err := ensureAuthToken(repo)
	if err != nil {
		return fmt.Errorf("failed to ensure auth token: %w", err)
	}
	logger.Info("api auth token ready", "token", logging.SanitizeToken(authToken))
	fmt.Printf("API URL:    http://127.0.0.1:%d\n", cfg.Port())
	fmt.Printf("Auth Token: %s\n", authToken)

	editorSvc := editor.NewService(repo, logging.WithComponent(logger, "editor"))
	backend := render.NewStubBackend(logging.WithComponent(logger, "render"))

	server := api.NewServer(api.ServerConfig{
		Port:             cfg.Port(),
		Editor:           editorSvc,
		Repository:       repo,
		Renderer:         backend,
		Logger:           logging.WithComponent(logger, "api"),
		StartTime:        startTime,
		DefaultWidth:     cfg.CanvasWidth(),
		DefaultHeight:    cfg.CanvasHeight(),
		DefaultFrameRate: cfg.FrameRate(),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("montage engine stopped")
	return nil
}

// ensureAuthToken loads the API auth token from config, generating one on
// first run.
func ensureAuthToken(repo store.Repository) (string, error) {
	ctx := context.Background()

	token, err := repo.GetConfig(ctx, "auth_token")
	if err != nil {
		return "", err
	}
	if token != "" {
		return token, nil
	}

	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token = hex.EncodeToString(b)

	if err := repo.SetConfig(ctx, "auth_token", token); err != nil {
		return "", err
	}
	return token, nil
}
