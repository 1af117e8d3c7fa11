package stats_test

import (
	"testing"

	"github.com/SergeiKhy/url-stats/internal/stats"
	"github.com/stretchr/testify/assert"
)

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"пустая строка = не передан", "", true},
		{"обычная дата", "2024-01-15", true},
		{"високосный день", "2024-02-29", true},
		{"несуществующий месяц", "2024-13-01", false},
		{"несуществующий день", "2024-02-30", false},
		{"29 февраля невисокосного года", "2023-02-29", false},
		{"обратный порядок", "15-01-2024", false},
		{"без ведущих нулей", "2024-1-15", false},
		{"с временем", "2024-01-15T10:00:00", false},
		{"пробел в конце", "2024-01-15 ", false},
		{"слэши", "2024/01/15", false},
		{"мусор", "yesterday", false},
		{"нулевой день", "2024-01-00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stats.IsValidDate(tt.input))
		})
	}
}
