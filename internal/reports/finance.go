package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cynemos/smileinventory/pkg/db/models"
	"github.com/cynemos/smileinventory/pkg/enums"
)

// FinanceStatsDTO summarizes treatment revenue for a reporting window.
type FinanceStatsDTO struct {
	Period        string                     `json:"period"`
	Total         decimal.Decimal            `json:"total"`
	Average       decimal.Decimal            `json:"average"`
	Count         int                        `json:"count"`
	CountByType   map[string]int             `json:"count_by_type"`
	RevenueByType map[string]decimal.Decimal `json:"revenue_by_type"`
}

// PeriodStart returns the inclusive lower bound of the reporting window.
// Day means midnight of the reference time; the rest are rolling windows.
func PeriodStart(period enums.FinancePeriod, now time.Time) time.Time {
	switch period {
	case enums.FinancePeriodDay:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case enums.FinancePeriodWeek:
		return now.AddDate(0, 0, -7)
	case enums.FinancePeriodMonth:
		return now.AddDate(0, -1, 0)
	default:
		return now.AddDate(-1, 0, 0)
	}
}

// FilterTreatmentsByPeriod keeps treatments dated inside the window.
func FilterTreatmentsByPeriod(treatments []models.Treatment, period enums.FinancePeriod, now time.Time) []models.Treatment {
	start := PeriodStart(period, now)
	filtered := make([]models.Treatment, 0, len(treatments))
	for _, t := range treatments {
		if !t.Date.Before(start) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// ComputeFinanceStats aggregates revenue over the filtered window. Average is
// the zero decimal when nothing matched.
func ComputeFinanceStats(treatments []models.Treatment, period enums.FinancePeriod, now time.Time) FinanceStatsDTO {
	matched := FilterTreatmentsByPeriod(treatments, period, now)

	stats := FinanceStatsDTO{
		Period:        period.String(),
		Total:         decimal.Zero,
		Average:       decimal.Zero,
		Count:         len(matched),
		CountByType:   make(map[string]int),
		RevenueByType: make(map[string]decimal.Decimal),
	}
	for _, t := range matched {
		kind := t.Type.String()
		stats.Total = stats.Total.Add(t.Cost)
		stats.CountByType[kind]++
		stats.RevenueByType[kind] = stats.RevenueByType[kind].Add(t.Cost)
	}
	if len(matched) > 0 {
		stats.Average = stats.Total.Div(decimal.NewFromInt(int64(len(matched))))
	}
	return stats
}
