package stats

import "time"

// Форматы меток визитов, в порядке проверки.
// Значения без зоны интерпретируются как UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	DateLayout,
}

// ParseTimestamp разбирает метку визита в момент времени (UTC).
// ok == false для строк, не являющихся валидной датой.
func ParseTimestamp(s string) (t time.Time, ok bool) {
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}
