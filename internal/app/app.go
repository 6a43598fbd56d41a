package app

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

	"teachings-api/internal/config"
	"teachings-api/internal/database"
	"teachings-api/internal/handler"
	"teachings-api/internal/metrics"
	"teachings-api/internal/middleware"
	"teachings-api/internal/repository"
	"teachings-api/internal/router"
	"teachings-api/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("running database migrations")
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	teachingRepo := repository.NewTeachingRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	engagementRepo := repository.NewEngagementRepository(pool)
	slog.Info("database ready")

	authService, err := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}

	teachingService := service.NewTeachingService(teachingRepo, cfg.DefaultPageLimit, cfg.MaxPageLimit)
	seriesService := service.NewSeriesService(teachingRepo)
	tagService := service.NewTagService(teachingRepo)
	commentService := service.NewCommentService(commentRepo, teachingRepo)
	engagementService := service.NewEngagementService(engagementRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService, authService)
	collector := metrics.NewCollector()

	appRouter := router.New(cfg, authMiddleware, collector, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Teaching:   handler.NewTeachingHandler(teachingService),
		Series:     handler.NewSeriesHandler(seriesService),
		Tag:        handler.NewTagHandler(tagService),
		Comment:    handler.NewCommentHandler(commentService),
		Engagement: handler.NewEngagementHandler(engagementService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The pool must outlive Shutdown so draining requests can still reach
	// the database.
	defer a.db.Close()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
