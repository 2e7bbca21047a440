package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/config"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/handler"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/pkg/logger"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/pkg/metrics"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/service"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully", "path", configPath)

	service.InitCaseStore(&cfg.Store)
	store := service.GetCaseStore()

	if cfg.Store.SeedEnabled() {
		n, err := service.LoadSeed(store, time.Now())
		if err != nil {
			return fmt.Errorf("failed to load seed data: %w", err)
		}
		slog.Info("seed data loaded", "denuncias", n)
	}

	m := metrics.New()
	cases := service.NewCaseService(store, cfg.Plazos, m)

	deps := handler.RouterDeps{
		Config:  cfg,
		Cases:   cases,
		Metrics: m,
	}

	if cfg.Minio.Enabled {
		docs, err := setupDocuments(cmd.Context(), cfg, store)
		if err != nil {
			return err
		}
		deps.Docs = docs
	}

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server exited gracefully")
	return nil
}

// setupDocuments connects to MinIO and uploads the documents already in store
func setupDocuments(ctx context.Context, cfg *config.Config, store *service.CaseStore) (*service.DocumentService, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	docs, err := service.NewDocumentService(&cfg.Minio)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MINIO service: %w", err)
	}

	if err := docs.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure MINIO bucket: %w", err)
	}

	n, err := service.PublishDocuments(ctx, store, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to publish documents: %w", err)
	}
	slog.Info("documents published", "count", n, "bucket", docs.PublicURL(""))
	return docs, nil
}
