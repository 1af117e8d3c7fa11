package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SergeiKhy/url-stats/internal/models"
	_ "modernc.org/sqlite" // pure-Go драйвер, без CGO
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS url_visits (
	code         TEXT PRIMARY KEY,
	original_url TEXT,
	url          TEXT,
	total_visits INTEGER,
	visit_dates  TEXT
);
`

// SQLiteDB встроенное хранилище для локального запуска без PostgreSQL
type SQLiteDB struct {
	DB *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, _ = db.Exec("PRAGMA busy_timeout = 5000;")
	_, _ = db.Exec("PRAGMA journal_mode = WAL;")

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	return &SQLiteDB{DB: db}, nil
}

func (db *SQLiteDB) Close() error {
	return db.DB.Close()
}

type sqliteRecordRepository struct {
	db *SQLiteDB
}

func NewSQLiteRecordRepository(db *SQLiteDB) RecordRepository {
	return &sqliteRecordRepository{db: db}
}

func (r *sqliteRecordRepository) GetByCode(ctx context.Context, code string) (*models.StoredRecord, error) {
	query := `SELECT code, original_url, url, total_visits, visit_dates FROM url_visits WHERE code = ?`

	var (
		record      models.StoredRecord
		originalURL sql.NullString
		legacyURL   sql.NullString
		totalVisits sql.NullInt64
		visitDates  sql.NullString
	)

	err := r.db.DB.QueryRowContext(ctx, query, code).Scan(
		&record.Code,
		&originalURL,
		&legacyURL,
		&totalVisits,
		&visitDates,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	if originalURL.Valid {
		record.OriginalURL = &originalURL.String
	}
	if legacyURL.Valid {
		record.URL = &legacyURL.String
	}
	if totalVisits.Valid {
		record.TotalVisits = &totalVisits.Int64
	}
	if visitDates.Valid {
		record.VisitDates = []byte(visitDates.String)
	}

	return &record, nil
}
