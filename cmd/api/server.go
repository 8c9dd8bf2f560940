package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelfio-backend/internal/adapter/googlebooks"
	"shelfio-backend/internal/bootstrap"
	"shelfio-backend/internal/config"
	bookhandler "shelfio-backend/internal/domains/book/handler"
	bookrepo "shelfio-backend/internal/domains/book/repository"
	bookservice "shelfio-backend/internal/domains/book/service"
	collectionhandler "shelfio-backend/internal/domains/collection/handler"
	collectionrepo "shelfio-backend/internal/domains/collection/repository"
	collectionservice "shelfio-backend/internal/domains/collection/service"
	reviewhandler "shelfio-backend/internal/domains/review/handler"
	reviewrepo "shelfio-backend/internal/domains/review/repository"
	reviewservice "shelfio-backend/internal/domains/review/service"
	"shelfio-backend/internal/infrastructure/cache"
	"shelfio-backend/internal/infrastructure/database"
	"shelfio-backend/pkg/logger"
)

// application bundles the wired handlers and the resources the server
// has to release on shutdown.
type application struct {
	config            *config.Config
	db                *database.PostgresDB
	redis             *cache.RedisCache
	bookHandler       *bookhandler.Handler
	reviewHandler     *reviewhandler.Handler
	collectionHandler *collectionhandler.Handler
}

func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Environment)

	db := database.New(&cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if err := bootstrap.Seed(ctx, db.Pool); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed reference data: %w", err)
	}

	bookRepository := bookrepo.NewPostgresBookRepository(db.Pool)
	reviewRepository := reviewrepo.NewPostgresRepository(db.Pool)
	collectionRepository := collectionrepo.NewPostgresRepository(db.Pool)

	metadataClient := googlebooks.NewClient(&cfg.GoogleBooks)

	reviewSvc := reviewservice.NewService(reviewRepository, redisCache)
	bookSvc := bookservice.NewService(bookRepository, reviewRepository, reviewSvc, metadataClient, redisCache)
	collectionSvc := collectionservice.NewService(collectionRepository, bookRepository, reviewRepository)

	return &application{
		config:            cfg,
		db:                db,
		redis:             redisCache,
		bookHandler:       bookhandler.NewHandler(bookSvc),
		reviewHandler:     reviewhandler.NewHandler(reviewSvc),
		collectionHandler: collectionhandler.NewHandler(collectionSvc),
	}, nil
}

func (app *application) cleanup() {
	app.db.Close()
	if err := app.redis.Close(); err != nil {
		logger.Error("failed to close redis connection", err)
	}
}

func Serve() {
	app, err := newApplication(context.Background())
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.cleanup()

	router := SetupRouter(app)

	port := app.config.App.Port
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", port),
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("server starting", map[string]interface{}{
			"port":        port,
			"environment": app.config.App.Environment,
		})

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", err)
	}

	logger.Info("server exited", nil)
}
