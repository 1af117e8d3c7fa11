package service

import (
	"context"
	"sync"
	"time"

	"github.com/SergeiKhy/url-stats/internal/models"
	"github.com/SergeiKhy/url-stats/internal/repository"
	"go.uber.org/zap"
)

// Константы worker pool
const (
	defaultWorkerCount   = 3
	defaultChannelBuffer = 1000
	maxRetries           = 3
)

// CacheWarmer асинхронно кладёт прочитанные из хранилища записи в кэш
type CacheWarmer interface {
	Start()
	Stop()
	Enqueue(ctx context.Context, record *models.VisitRecord) error
	Stats() WarmerStats
}

// cacheWarmer реализация на Worker Pool
type cacheWarmer struct {
	cacheRepo   repository.CacheRepository
	ttl         time.Duration
	logger      *zap.Logger
	jobs        chan *models.VisitRecord
	workerCount int
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewCacheWarmer создаёт пул; workers <= 0 означает значение по умолчанию
func NewCacheWarmer(
	cacheRepo repository.CacheRepository,
	ttl time.Duration,
	workers int,
	logger *zap.Logger,
) CacheWarmer {
	if workers <= 0 {
		workers = defaultWorkerCount
	}
	return &cacheWarmer{
		cacheRepo:   cacheRepo,
		ttl:         ttl,
		logger:      logger,
		jobs:        make(chan *models.VisitRecord, defaultChannelBuffer),
		workerCount: workers,
	}
}

// Start запускает воркеров
func (w *cacheWarmer) Start() {
	w.ctx, w.cancel = context.WithCancel(context.Background())

	w.logger.Info("Starting cache warmer workers", zap.Int("count", w.workerCount))

	for i := 0; i < w.workerCount; i++ {
		w.wg.Add(1)
		go w.worker(i)
	}
}

// Stop останавливает воркеров и ждёт их завершения
func (w *cacheWarmer) Stop() {
	if w.cancel == nil {
		return
	}
	w.logger.Info("Stopping cache warmer...")
	w.cancel()
	w.wg.Wait()
	w.logger.Info("Cache warmer stopped")
}

func (w *cacheWarmer) worker(id int) {
	defer w.wg.Done()

	w.logger.Debug("Cache warmer worker started", zap.Int("id", id))

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Debug("Cache warmer worker stopped", zap.Int("id", id))
			return

		case record, ok := <-w.jobs:
			if !ok {
				return
			}
			w.fill(record)
		}
	}
}

// fill пишет запись в кэш с retry
func (w *cacheWarmer) fill(record *models.VisitRecord) {
	ctx, cancel := context.WithTimeout(w.ctx, 2*time.Second)
	defer cancel()

	var err error
	for i := 0; i < maxRetries; i++ {
		if err = w.cacheRepo.Set(ctx, record, w.ttl); err == nil {
			return
		}
		if i < maxRetries-1 {
			w.logger.Debug("Retrying cache fill",
				zap.String("code", record.Code),
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(time.Duration(i+1) * 50 * time.Millisecond)
		}
	}

	w.logger.Warn("Cache fill failed after all retries",
		zap.String("code", record.Code),
		zap.Error(err),
	)
}

// Enqueue ставит запись в очередь, не блокируя запрос.
// При заполненном буфере задача отбрасывается.
func (w *cacheWarmer) Enqueue(ctx context.Context, record *models.VisitRecord) error {
	if record == nil {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case w.jobs <- record:
		return nil
	default:
		w.logger.Warn("Cache warmer buffer is full, job dropped",
			zap.String("code", record.Code),
		)
		return nil
	}
}

// Stats состояние очереди для мониторинга
func (w *cacheWarmer) Stats() WarmerStats {
	return WarmerStats{
		BufferSize:  cap(w.jobs),
		BufferUsed:  len(w.jobs),
		WorkerCount: w.workerCount,
	}
}

// WarmerStats статистика канала worker pool
type WarmerStats struct {
	BufferSize  int `json:"buffer_size"`
	BufferUsed  int `json:"buffer_used"`
	WorkerCount int `json:"worker_count"`
}
