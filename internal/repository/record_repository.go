package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeiKhy/url-stats/internal/models"
	"github.com/jackc/pgx/v5"
)

var ErrRecordNotFound = errors.New("record not found")

// RecordRepository источник записей статистики по коду
type RecordRepository interface {
	GetByCode(ctx context.Context, code string) (*models.StoredRecord, error)
}

type postgresRecordRepository struct {
	db *PostgresDB
}

func NewRecordRepository(db *PostgresDB) RecordRepository {
	return &postgresRecordRepository{db: db}
}

func (r *postgresRecordRepository) GetByCode(ctx context.Context, code string) (*models.StoredRecord, error) {
	query := `
		SELECT code, original_url, url, total_visits, visit_dates
		FROM url_visits
		WHERE code = $1
	`

	record := &models.StoredRecord{}
	err := r.db.Pool.QueryRow(ctx, query, code).Scan(
		&record.Code,
		&record.OriginalURL,
		&record.URL,
		&record.TotalVisits,
		&record.VisitDates,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return record, nil
}
