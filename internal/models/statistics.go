package models

// StatisticsSummary сводка статистики, отдаваемая клиенту.
// FilteredVisitCount заполнен только при запросе с диапазоном дат,
// EarliestVisit и LatestVisit только при непустом VisitDates.
type StatisticsSummary struct {
	Code               string   `json:"code"`
	OriginalURL        *string  `json:"originalUrl"`
	TotalVisits        int64    `json:"totalVisits"`
	VisitDates         []string `json:"visitDates"`
	FilteredVisitCount *int     `json:"filteredVisitCount,omitempty"`
	EarliestVisit      *string  `json:"earliestVisit,omitempty"`
	LatestVisit        *string  `json:"latestVisit,omitempty"`
}
