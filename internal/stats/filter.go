package stats

import "time"

// endOfDay смещение конца дня относительно его начала (23:59:59.999)
const endOfDay = 24*time.Hour - time.Millisecond

// DateRange необязательный диапазон дат в формате YYYY-MM-DD.
// Пустая граница означает отсутствие ограничения с этой стороны.
type DateRange struct {
	Start string
	End   string
}

// IsSet сообщает, запрошена ли фильтрация хотя бы по одной границе
func (r DateRange) IsSet() bool {
	return r.Start != "" || r.End != ""
}

type bounds struct {
	from, to       time.Time
	hasFrom, hasTo bool
}

// bounds переводит границы в моменты времени: начало дня start и конец дня end.
// Граница, не являющаяся календарной датой, не ограничивает выборку.
func (r DateRange) bounds() bounds {
	var b bounds
	if r.Start != "" {
		if t, err := time.Parse(DateLayout, r.Start); err == nil {
			b.from, b.hasFrom = t, true
		}
	}
	if r.End != "" {
		if t, err := time.Parse(DateLayout, r.End); err == nil {
			b.to, b.hasTo = t.Add(endOfDay), true
		}
	}
	return b
}

func (b bounds) contains(t time.Time) bool {
	if b.hasFrom && t.Before(b.from) {
		return false
	}
	if b.hasTo && t.After(b.to) {
		return false
	}
	return true
}

// FilterByRange возвращает метки, попадающие в диапазон включительно,
// сохраняя исходный порядок. Нераспознанные метки отбрасываются.
// Результат никогда не nil.
func FilterByRange(dates []string, r DateRange) []string {
	b := r.bounds()

	filtered := make([]string, 0, len(dates))
	for _, d := range dates {
		t, ok := ParseTimestamp(d)
		if !ok {
			continue
		}
		if b.contains(t) {
			filtered = append(filtered, d)
		}
	}

	return filtered
}
