package models

import (
	"encoding/json"
)

// VisitRecord запись статистики короткой ссылки, прошедшая нормализацию
type VisitRecord struct {
	Code        string   `json:"code"`
	OriginalURL *string  `json:"originalUrl,omitempty"`
	TotalVisits int64    `json:"totalVisits"`
	VisitDates  []string `json:"visitDates"`
}

// StoredRecord строка хранилища в исходном виде.
// URL устаревшая колонка, используется, если OriginalURL пуст.
// VisitDates сырой JSON-документ: ожидается массив строк, но хранилище
// это не гарантирует.
type StoredRecord struct {
	Code        string
	OriginalURL *string
	URL         *string
	TotalVisits *int64
	VisitDates  []byte
}

// ToVisitRecord приводит строку хранилища к VisitRecord
func (s *StoredRecord) ToVisitRecord() *VisitRecord {
	if s == nil {
		return nil
	}

	record := &VisitRecord{
		Code:        s.Code,
		OriginalURL: ResolveOriginalURL(s.OriginalURL, s.URL),
		VisitDates:  DecodeVisitDates(s.VisitDates),
	}
	if s.TotalVisits != nil && *s.TotalVisits > 0 {
		record.TotalVisits = *s.TotalVisits
	}

	return record
}

// ResolveOriginalURL возвращает первый непустой адрес из цепочки
// original_url -> url, либо nil
func ResolveOriginalURL(candidates ...*string) *string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			v := *c
			return &v
		}
	}
	return nil
}

// DecodeVisitDates разбирает JSON-документ с метками визитов.
// Всё, что не является массивом, даёт пустой список. Элементы-строки
// берутся как есть, прочие элементы сохраняются в виде JSON-текста.
func DecodeVisitDates(raw []byte) []string {
	dates := []string{}
	if len(raw) == 0 {
		return dates
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return dates
	}

	for _, item := range items {
		var s string
		if len(item) > 0 && item[0] == '"' && json.Unmarshal(item, &s) == nil {
			dates = append(dates, s)
			continue
		}
		dates = append(dates, string(item))
	}

	return dates
}
