package handler

import (
	"errors"
	"net/http"

	"github.com/SergeiKhy/url-stats/internal/middleware"
	"github.com/SergeiKhy/url-stats/internal/models"
	"github.com/SergeiKhy/url-stats/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Параметры фильтра и их устаревшие имена
const (
	queryStartDate       = "start_date"
	queryEndDate         = "end_date"
	legacyQueryStartDate = "fechaInicio"
	legacyQueryEndDate   = "fechaFin"
)

type StatsHandler struct {
	service service.StatsService
	logger  *zap.Logger
}

func NewStatsHandler(service service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger,
	}
}

type StatsResponse struct {
	Success bool                      `json:"success"`
	Data    *models.StatisticsSummary `json:"data"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type NotFoundResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// GetStats godoc
// @Summary Get visit statistics for a short link
// @Description Visit statistics, optionally filtered by an inclusive date range
// @Tags stats
// @Produce json
// @Param code path string true "Short code"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} StatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} NotFoundResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/stats/{code} [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	code := c.Param("code")
	startDate := queryWithFallback(c, queryStartDate, legacyQueryStartDate)
	endDate := queryWithFallback(c, queryEndDate, legacyQueryEndDate)

	summary, err := h.service.GetStats(c.Request.Context(), code, startDate, endDate)
	if err != nil {
		h.writeError(c, code, err)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		Success: true,
		Data:    summary,
	})
}

func (h *StatsHandler) writeError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCode):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_code",
			Message: "Missing required parameter: code",
		})
	case errors.Is(err, service.ErrInvalidStartDate):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_start_date",
			Message: "Invalid start_date format. Use YYYY-MM-DD",
		})
	case errors.Is(err, service.ErrInvalidEndDate):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_end_date",
			Message: "Invalid end_date format. Use YYYY-MM-DD",
		})
	case errors.Is(err, service.ErrRecordNotFound):
		h.logger.Info("Stats not found", zap.String("code", code))
		c.JSON(http.StatusNotFound, NotFoundResponse{
			Error:   "not_found",
			Message: "URL code not found",
			Code:    code,
		})
	default:
		h.logger.Error("Failed to get stats",
			zap.String("code", code),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Internal server error",
		})
	}
}

// queryWithFallback читает параметр по основному имени, затем по устаревшему
func queryWithFallback(c *gin.Context, name, legacy string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return c.Query(legacy)
}
