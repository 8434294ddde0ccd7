// Command slidesmith-server starts the SlideSmith HTTP API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/slidesmith/slidesmith/internal/config"
	"github.com/slidesmith/slidesmith/internal/export"
	"github.com/slidesmith/slidesmith/internal/migrate"
	"github.com/slidesmith/slidesmith/internal/ollama"
	"github.com/slidesmith/slidesmith/internal/repository/postgres"
	"github.com/slidesmith/slidesmith/internal/server/httpapi"
	"github.com/slidesmith/slidesmith/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, runs migrations, and starts the HTTP server.
func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("port", cfg.Port),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	presentationRepo := postgres.NewPresentationRepo(db)
	slideRepo := postgres.NewSlideRepo(db)
	elementRepo := postgres.NewElementRepo(db)
	templateRepo := postgres.NewTemplateRepo(db)
	assetRepo := postgres.NewAssetRepo(db)

	// Services
	signKey := []byte(cfg.JWTSecret)
	authSvc := service.NewAuthService(userRepo, signKey)
	userSvc := service.NewUserService(userRepo)
	presentationSvc := service.NewPresentationService(presentationRepo)
	slideSvc := service.NewSlideService(slideRepo, presentationRepo)
	elementSvc := service.NewElementService(elementRepo, slideRepo)
	templateSvc := service.NewTemplateService(templateRepo, presentationRepo)
	assetSvc := service.NewAssetService(assetRepo, cfg.UploadDir)
	aiSvc := service.NewAIService(
		ollama.New(cfg.OllamaHost),
		export.NewArtifactWriter(cfg.UploadDir),
		cfg.OllamaModel,
	)

	api := httpapi.New(httpapi.Deps{
		Log:           logger,
		SignKey:       signKey,
		UploadDir:     cfg.UploadDir,
		Auth:          authSvc,
		Users:         userSvc,
		Presentations: presentationSvc,
		Slides:        slideSvc,
		Elements:      elementSvc,
		Templates:     templateSvc,
		Assets:        assetSvc,
		AI:            aiSvc,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
