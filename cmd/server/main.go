package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appservices "joke-demo/internal/application/services"
	"joke-demo/internal/application/usecases"
	"joke-demo/internal/config"
	"joke-demo/internal/domain/repositories"
	domainservices "joke-demo/internal/domain/services"
	"joke-demo/internal/infrastructure/api"
	"joke-demo/internal/infrastructure/external"
	infrarepos "joke-demo/internal/infrastructure/repositories"
	infraservices "joke-demo/internal/infrastructure/services"
	"joke-demo/internal/logging"
)

func main() {
	// a missing API key is fatal: the service refuses to start
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Setup(cfg.SlogLevel())

	slog.Info("[boot]", "model", cfg.Gemini.Model, "previewStore", cfg.PreviewStore, "sessionCapacity", cfg.SessionCapacity)

	// Initialize infrastructure layer
	clientPool := infraservices.NewGenAIClientPool(cfg.Gemini.APIKey, cfg.Gemini.BaseURL)
	defer clientPool.Close()

	aiService := external.NewGeminiAIService(clientPool)

	previews, err := newPreviewStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create preview store: %v", err)
	}

	sessions, err := infrarepos.NewLRUSessionRepository(cfg.SessionCapacity, previews)
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}
	// releases every remaining preview
	defer sessions.Close()

	// Initialize domain layer
	jokeDomainService := domainservices.NewJokeDomainService(aiService, cfg.Gemini.Model)

	// Initialize application layer
	jokeUseCase := usecases.NewJokeUseCase(sessions, previews, domainservices.NewBase64Encoder(), jokeDomainService)
	installUseCase := usecases.NewInstallUseCase(sessions)
	uploadService := appservices.NewUploadService(cfg.MaxUploadBytes)

	// Initialize API layer
	handler := api.NewJokeHandler(jokeUseCase, installUseCase, uploadService, jokeDomainService.Model())

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
}

func newPreviewStore(cfg *config.Config) (repositories.PreviewStore, error) {
	if cfg.PreviewStore != config.PreviewStoreMinio {
		return infrarepos.NewMemoryPreviewStore(), nil
	}

	store, err := infrarepos.NewMinioPreviewStore(infrarepos.MinioConfig{
		Endpoint:  cfg.Minio.Endpoint,
		Region:    cfg.Minio.Region,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Bucket:    cfg.Minio.Bucket,
		UseSSL:    cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}
