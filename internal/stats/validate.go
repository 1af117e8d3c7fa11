// Package stats строит сводку посещений короткой ссылки: фильтрация по
// диапазону дат, подсчёт и поиск первой/последней визиты.
//
// Все функции пакета чистые и безопасны для параллельного вызова.
package stats

import (
	"regexp"
	"time"
)

// DateLayout формат дат в параметрах запроса (YYYY-MM-DD)
const DateLayout = "2006-01-02"

var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate проверяет необязательный параметр даты.
// Пустая строка означает, что параметр не передан, и считается валидной.
func IsValidDate(s string) bool {
	if s == "" {
		return true
	}

	if !dateShape.MatchString(s) {
		return false
	}

	// time.Parse отклоняет несуществующие даты вроде 2024-02-30
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
