package handler

import (
	"time"

	"github.com/SergeiKhy/url-stats/internal/middleware"
	"github.com/SergeiKhy/url-stats/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig параметры HTTP-слоя
type RouterConfig struct {
	AllowOrigin string
	DocsDir     string // пусто: документация не отдаётся
}

func NewRouter(
	statsService service.StatsService,
	warmer service.CacheWarmer,
	rateLimiter *middleware.RateLimiter,
	cfg RouterConfig,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// Логирование запросов
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	})

	router.Use(middleware.CORS(cfg.AllowOrigin))
	router.Use(rateLimiter.Middleware())

	statsHandler := NewStatsHandler(statsService, logger)

	// API v.1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", HealthCheck(warmer))
		v1.GET("/stats/:code", statsHandler.GetStats)
	}

	// Исходный путь GET /stats/{code}
	router.GET("/stats/:code", statsHandler.GetStats)

	if cfg.DocsDir != "" {
		AddSwaggerRoutes(router, cfg.DocsDir)
	}

	return router
}
