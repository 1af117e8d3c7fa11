package handler

import (
	"net/http"

	"github.com/SergeiKhy/url-stats/internal/service"
	"github.com/gin-gonic/gin"
)

// HealthCheck godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/health [get]
func HealthCheck(warmer service.CacheWarmer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"cache_warmer": warmer.Stats(),
		})
	}
}
