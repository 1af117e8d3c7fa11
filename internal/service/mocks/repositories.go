package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/SergeiKhy/url-stats/internal/models"
	"github.com/SergeiKhy/url-stats/internal/repository"
	"github.com/SergeiKhy/url-stats/internal/service"
)

// MockRecordRepository implements repository.RecordRepository for testing
type MockRecordRepository struct {
	mu      sync.RWMutex
	records map[string]*models.StoredRecord
	calls   int

	// Err, if set, is returned by every GetByCode call
	Err error
}

func NewMockRecordRepository() *MockRecordRepository {
	return &MockRecordRepository{
		records: make(map[string]*models.StoredRecord),
	}
}

// Put stores a record keyed by its code
func (m *MockRecordRepository) Put(record *models.StoredRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.Code] = record
}

func (m *MockRecordRepository) GetByCode(ctx context.Context, code string) (*models.StoredRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.Err != nil {
		return nil, m.Err
	}

	record, exists := m.records[code]
	if !exists {
		return nil, repository.ErrRecordNotFound
	}
	return record, nil
}

// Calls returns how many times GetByCode was invoked
func (m *MockRecordRepository) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// MockCacheRepository implements repository.CacheRepository for testing
type MockCacheRepository struct {
	mu    sync.RWMutex
	cache map[string]*models.VisitRecord

	// GetErr, if set, is returned by Get instead of a miss
	GetErr error
	// SetErr, if set, is returned by Set
	SetErr error
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		cache: make(map[string]*models.VisitRecord),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, code string) (*models.VisitRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}

	record, exists := m.cache[code]
	if !exists {
		return nil, repository.ErrCacheMiss
	}
	return record, nil
}

func (m *MockCacheRepository) Set(ctx context.Context, record *models.VisitRecord, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SetErr != nil {
		return m.SetErr
	}
	m.cache[record.Code] = record
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, code)
	return nil
}

// Len returns the number of cached records
func (m *MockCacheRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cache)
}

// MockCacheWarmer implements service.CacheWarmer and records enqueued jobs
type MockCacheWarmer struct {
	mu       sync.Mutex
	enqueued []*models.VisitRecord
}

func NewMockCacheWarmer() *MockCacheWarmer {
	return &MockCacheWarmer{}
}

func (m *MockCacheWarmer) Start() {}

func (m *MockCacheWarmer) Stop() {}

func (m *MockCacheWarmer) Enqueue(ctx context.Context, record *models.VisitRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enqueued = append(m.enqueued, record)
	return nil
}

func (m *MockCacheWarmer) Stats() service.WarmerStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return service.WarmerStats{BufferUsed: len(m.enqueued)}
}

// Enqueued returns the records passed to Enqueue
func (m *MockCacheWarmer) Enqueued() []*models.VisitRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.VisitRecord(nil), m.enqueued...)
}
