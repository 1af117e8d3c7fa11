package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/SergeiKhy/url-stats/internal/models"
	"github.com/SergeiKhy/url-stats/internal/service"
	"github.com/SergeiKhy/url-stats/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCacheWarmer_FillsCache проверяет асинхронную запись в кэш
func TestCacheWarmer_FillsCache(t *testing.T) {
	cacheRepo := mocks.NewMockCacheRepository()
	warmer := service.NewCacheWarmer(cacheRepo, time.Minute, 2, zap.NewNop())
	warmer.Start()
	defer warmer.Stop()

	ctx := context.Background()
	for _, code := range []string{"a", "b", "c"} {
		require.NoError(t, warmer.Enqueue(ctx, &models.VisitRecord{Code: code}))
	}

	assert.Eventually(t, func() bool {
		return cacheRepo.Len() == 3
	}, time.Second, 10*time.Millisecond)

	record, err := cacheRepo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", record.Code)
}

// TestCacheWarmer_SetFailureIsNotFatal проверяет, что ошибки кэша не останавливают воркеров
func TestCacheWarmer_SetFailureIsNotFatal(t *testing.T) {
	cacheRepo := mocks.NewMockCacheRepository()
	cacheRepo.SetErr = errors.New("redis down")

	warmer := service.NewCacheWarmer(cacheRepo, time.Minute, 1, zap.NewNop())
	warmer.Start()

	require.NoError(t, warmer.Enqueue(context.Background(), &models.VisitRecord{Code: "a"}))

	assert.Eventually(t, func() bool {
		return warmer.Stats().BufferUsed == 0
	}, time.Second, 10*time.Millisecond)

	warmer.Stop()
	assert.Equal(t, 0, cacheRepo.Len())
}

// TestCacheWarmer_EnqueueCanceledContext проверяет отмену постановки в очередь
func TestCacheWarmer_EnqueueCanceledContext(t *testing.T) {
	warmer := service.NewCacheWarmer(mocks.NewMockCacheRepository(), time.Minute, 1, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Воркеры не запущены, но буфер свободен: select может выбрать любую ветку
	err := warmer.Enqueue(ctx, &models.VisitRecord{Code: "a"})
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}

	assert.NoError(t, warmer.Enqueue(context.Background(), nil))
}

// TestCacheWarmer_Stats проверяет параметры пула
func TestCacheWarmer_Stats(t *testing.T) {
	warmer := service.NewCacheWarmer(mocks.NewMockCacheRepository(), time.Minute, 0, zap.NewNop())

	stats := warmer.Stats()
	assert.Equal(t, 3, stats.WorkerCount)
	assert.Equal(t, 1000, stats.BufferSize)
	assert.Equal(t, 0, stats.BufferUsed)

	// Stop без Start не должен паниковать
	warmer.Stop()
}
