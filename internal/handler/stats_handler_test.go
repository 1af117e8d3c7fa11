package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SergeiKhy/url-stats/internal/handler"
	"github.com/SergeiKhy/url-stats/internal/middleware"
	"github.com/SergeiKhy/url-stats/internal/models"
	"github.com/SergeiKhy/url-stats/internal/service"
	"github.com/SergeiKhy/url-stats/internal/service/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type routerEnv struct {
	router     *gin.Engine
	recordRepo *mocks.MockRecordRepository
}

func setupRouter(t *testing.T) *routerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recordRepo := mocks.NewMockRecordRepository()
	warmer := mocks.NewMockCacheWarmer()
	statsService := service.NewStatsService(recordRepo, mocks.NewMockCacheRepository(), warmer, zap.NewNop())

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: 1000,
		BurstSize:         1000,
		CleanupInterval:   time.Minute,
	})
	t.Cleanup(rateLimiter.Stop)

	url := "https://example.com/landing"
	total := int64(3)
	recordRepo.Put(&models.StoredRecord{
		Code:        "abc123",
		OriginalURL: &url,
		TotalVisits: &total,
		VisitDates:  []byte(`["2024-01-01","2024-01-15","2024-02-01"]`),
	})

	router := handler.NewRouter(statsService, warmer, rateLimiter, handler.RouterConfig{AllowOrigin: "*"}, zap.NewNop())
	return &routerEnv{router: router, recordRepo: recordRepo}
}

func (env *routerEnv) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	env.router.ServeHTTP(w, req)
	return w
}

func TestGetStats_Unfiltered(t *testing.T) {
	env := setupRouter(t)

	w := env.get("/api/v1/stats/abc123")
	require.Equal(t, http.StatusOK, w.Code)

	assert.JSONEq(t, `{
		"success": true,
		"data": {
			"code": "abc123",
			"originalUrl": "https://example.com/landing",
			"totalVisits": 3,
			"visitDates": ["2024-01-01","2024-01-15","2024-02-01"],
			"earliestVisit": "2024-01-01",
			"latestVisit": "2024-02-01"
		}
	}`, w.Body.String())
}

func TestGetStats_Filtered(t *testing.T) {
	env := setupRouter(t)

	w := env.get("/api/v1/stats/abc123?start_date=2024-01-10&end_date=2024-01-20")
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, []string{"2024-01-15"}, resp.Data.VisitDates)
	require.NotNil(t, resp.Data.FilteredVisitCount)
	assert.Equal(t, 1, *resp.Data.FilteredVisitCount)
}

func TestGetStats_LegacyRouteAndParams(t *testing.T) {
	env := setupRouter(t)

	w := env.get("/stats/abc123?fechaInicio=2024-01-10&fechaFin=2024-01-20")
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2024-01-15"}, resp.Data.VisitDates)
}

func TestGetStats_EmptyParamsMeanNoFilter(t *testing.T) {
	env := setupRouter(t)

	w := env.get("/api/v1/stats/abc123?start_date=&end_date=")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "filteredVisitCount")
}

func TestGetStats_InvalidDates(t *testing.T) {
	env := setupRouter(t)

	w := env.get("/api/v1/stats/abc123?start_date=2024-13-01")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid_start_date","message":"Invalid start_date format. Use YYYY-MM-DD"}`, w.Body.String())

	w = env.get("/api/v1/stats/abc123?end_date=2024-02-30")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_end_date")

	assert.Equal(t, 0, env.recordRepo.Calls())
}

func TestGetStats_NotFound(t *testing.T) {
	env := setupRouter(t)

	w := env.get("/api/v1/stats/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not_found","message":"URL code not found","code":"missing"}`, w.Body.String())
}

func TestGetStats_InternalError(t *testing.T) {
	env := setupRouter(t)
	env.recordRepo.Err = errors.New("connection refused")

	w := env.get("/api/v1/stats/abc123")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestGetStats_CORSHeaders(t *testing.T) {
	env := setupRouter(t)

	for _, path := range []string{"/api/v1/stats/abc123", "/api/v1/stats/missing", "/api/v1/stats/abc123?start_date=x"} {
		w := env.get(path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Equal(t, "GET,OPTIONS", w.Header().Get("Access-Control-Allow-Methods"), path)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader), path)
	}
}

func TestPreflight(t *testing.T) {
	env := setupRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/api/v1/stats/abc123", nil)
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, 0, env.recordRepo.Calls())
}

func TestHealthCheck(t *testing.T) {
	env := setupRouter(t)

	w := env.get("/api/v1/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"cache_warmer"`)
}
