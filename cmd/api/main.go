package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeiKhy/url-stats/internal/config"
	"github.com/SergeiKhy/url-stats/internal/handler"
	"github.com/SergeiKhy/url-stats/internal/middleware"
	"github.com/SergeiKhy/url-stats/internal/migrations"
	"github.com/SergeiKhy/url-stats/internal/repository"
	"github.com/SergeiKhy/url-stats/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Загрузка конфига
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Хранилище записей
	recordRepo, closeStore := openRecordStore(cfg, logger)
	defer closeStore()

	// Кэш
	cacheRepo := repository.NewNoopCacheRepository()
	if cfg.Redis.Enabled {
		redis, err := repository.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redis.Close()
		logger.Info("Connected to Redis")
		cacheRepo = repository.NewCacheRepository(redis)
	}

	// Worker pool заполнения кэша
	warmer := service.NewCacheWarmer(cacheRepo, cfg.Cache.TTL, cfg.Cache.Workers, logger)
	warmer.Start()
	defer warmer.Stop()

	statsService := service.NewStatsService(recordRepo, cacheRepo, warmer, logger)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
		CleanupInterval:   time.Minute,
	})
	defer rateLimiter.Stop()

	router := handler.NewRouter(statsService, warmer, rateLimiter, handler.RouterConfig{
		AllowOrigin: cfg.CORS.AllowOrigin,
		DocsDir:     "./docs",
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openRecordStore подключает хранилище по STORAGE_DRIVER
func openRecordStore(cfg *config.Config, logger *zap.Logger) (repository.RecordRepository, func()) {
	if cfg.Storage.Driver == config.DriverSQLite {
		db, err := repository.NewSQLiteDB(cfg.Storage.SQLitePath)
		if err != nil {
			logger.Fatal("Failed to open SQLite", zap.Error(err))
		}
		logger.Info("Opened SQLite", zap.String("path", cfg.Storage.SQLitePath))
		return repository.NewSQLiteRecordRepository(db), func() { db.Close() }
	}

	if cfg.Storage.MigrateOnStart {
		if err := runMigrations(cfg.DB.PostgresURL(), logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	db, err := repository.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Connected to PostgreSQL")

	return repository.NewRecordRepository(db), db.Close
}

func runMigrations(databaseURL string, logger *zap.Logger) error {
	m, err := migrations.New(databaseURL, logger)
	if err != nil {
		return err
	}
	defer m.Close()

	return m.Up()
}
