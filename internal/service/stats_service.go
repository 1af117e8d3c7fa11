package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeiKhy/url-stats/internal/models"
	"github.com/SergeiKhy/url-stats/internal/repository"
	"github.com/SergeiKhy/url-stats/internal/stats"
	"go.uber.org/zap"
)

// Ошибки сервиса
var (
	ErrMissingCode      = errors.New("code is required")
	ErrInvalidStartDate = errors.New("invalid start date")
	ErrInvalidEndDate   = errors.New("invalid end date")
	ErrRecordNotFound   = errors.New("record not found")
)

// StatsService интерфейс сервиса статистики
type StatsService interface {
	GetStats(ctx context.Context, code, startDate, endDate string) (*models.StatisticsSummary, error)
}

type statsService struct {
	recordRepo repository.RecordRepository
	cacheRepo  repository.CacheRepository
	warmer     CacheWarmer
	logger     *zap.Logger
}

// NewStatsService создаёт сервис статистики
func NewStatsService(
	recordRepo repository.RecordRepository,
	cacheRepo repository.CacheRepository,
	warmer CacheWarmer,
	logger *zap.Logger,
) StatsService {
	return &statsService{
		recordRepo: recordRepo,
		cacheRepo:  cacheRepo,
		warmer:     warmer,
		logger:     logger,
	}
}

// GetStats валидирует даты, получает запись и строит сводку.
// Запись не запрашивается, пока обе даты не прошли валидацию.
func (s *statsService) GetStats(ctx context.Context, code, startDate, endDate string) (*models.StatisticsSummary, error) {
	if code == "" {
		return nil, ErrMissingCode
	}
	if !stats.IsValidDate(startDate) {
		return nil, ErrInvalidStartDate
	}
	if !stats.IsValidDate(endDate) {
		return nil, ErrInvalidEndDate
	}

	record, err := s.fetchRecord(ctx, code)
	if err != nil {
		return nil, err
	}

	summary := stats.Process(record, startDate, endDate)
	if summary == nil {
		return nil, ErrRecordNotFound
	}

	return summary, nil
}

// fetchRecord ищет запись сначала в кэше, затем в хранилище.
// Отсутствие записи возвращается как (nil, nil).
func (s *statsService) fetchRecord(ctx context.Context, code string) (*models.VisitRecord, error) {
	record, err := s.cacheRepo.Get(ctx, code)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, repository.ErrCacheMiss) {
		// Кэш недоступен, идём в хранилище
		s.logger.Warn("Cache read failed", zap.String("code", code), zap.Error(err))
	}

	stored, err := s.recordRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch record %q: %w", code, err)
	}

	record = stored.ToVisitRecord()

	if err := s.warmer.Enqueue(ctx, record); err != nil {
		s.logger.Debug("Failed to enqueue cache fill (non-blocking)", zap.String("code", code), zap.Error(err))
	}

	return record, nil
}
