package stats

import (
	"github.com/SergeiKhy/url-stats/internal/models"
)

// Process строит сводку статистики по записи и необязательному диапазону дат.
// Возвращает nil, если записи нет. Запись не изменяется: сводка
// создаётся заново на каждый вызов.
func Process(record *models.VisitRecord, startDate, endDate string) *models.StatisticsSummary {
	if record == nil {
		return nil
	}

	summary := &models.StatisticsSummary{
		Code:        record.Code,
		OriginalURL: copyString(record.OriginalURL),
		TotalVisits: record.TotalVisits,
	}

	dateRange := DateRange{Start: startDate, End: endDate}
	if dateRange.IsSet() {
		summary.VisitDates = FilterByRange(record.VisitDates, dateRange)
		count := len(summary.VisitDates)
		summary.FilteredVisitCount = &count
	} else {
		summary.VisitDates = append(make([]string, 0, len(record.VisitDates)), record.VisitDates...)
	}

	if earliest, ok := Earliest(summary.VisitDates); ok {
		summary.EarliestVisit = &earliest
	}
	if latest, ok := Latest(summary.VisitDates); ok {
		summary.LatestVisit = &latest
	}

	return summary
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
