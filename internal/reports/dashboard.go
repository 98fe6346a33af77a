package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cynemos/smileinventory/internal/stockledger"
	"github.com/cynemos/smileinventory/pkg/db/models"
	"github.com/cynemos/smileinventory/pkg/enums"
)

const checkupDateLayout = "2006-01-02"

// DashboardStatsDTO is the landing-page snapshot.
type DashboardStatsDTO struct {
	TodayPatients         int             `json:"today_patients"`
	NewPatients           int             `json:"new_patients"`
	LowStockCount         int             `json:"low_stock_count"`
	RevenueLastThirtyDays decimal.Decimal `json:"revenue_last_thirty_days"`
	PatientStats          PatientStatsDTO `json:"patient_stats"`
}

// PatientStatsDTO breaks the register down by clinical markers.
type PatientStatsDTO struct {
	Total         int `json:"total"`
	WithImplants  int `json:"with_implants"`
	WithAllergies int `json:"with_allergies"`
}

// ComputeDashboardStats derives the dashboard snapshot from fetched data.
// Everything is a function of the snapshot and the injected reference time.
func ComputeDashboardStats(
	patients []models.Patient,
	products []models.Product,
	treatments []models.Treatment,
	now time.Time,
) DashboardStatsDTO {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	nextMidnight := midnight.AddDate(0, 0, 1)
	thirtyDaysAgo := midnight.AddDate(0, 0, -30)

	stats := DashboardStatsDTO{
		RevenueLastThirtyDays: decimal.Zero,
		PatientStats:          PatientStatsDTO{Total: len(patients)},
	}

	for _, p := range patients {
		if !p.CreatedAt.Before(thirtyDaysAgo) {
			stats.NewPatients++
		}
		if len(p.DentalHistory.Implants) > 0 {
			stats.PatientStats.WithImplants++
		}
		if len(p.MedicalHistory.Allergies) > 0 {
			stats.PatientStats.WithAllergies++
		}
		if p.DentalHistory.LastCheckup != nil {
			if checkup, err := time.ParseInLocation(checkupDateLayout, *p.DentalHistory.LastCheckup, now.Location()); err == nil {
				if !checkup.Before(midnight) && checkup.Before(nextMidnight) {
					stats.TodayPatients++
				}
			}
		}
	}

	// unlike the alerts listing, the dashboard counter only considers
	// products still marked ACTIVE
	for _, product := range products {
		if product.Status == enums.ProductStatusActive && stockledger.IsLowStock(&product, product.Inventory) {
			stats.LowStockCount++
		}
	}

	for _, t := range treatments {
		if !t.Date.Before(thirtyDaysAgo) {
			stats.RevenueLastThirtyDays = stats.RevenueLastThirtyDays.Add(t.Cost)
		}
	}
	return stats
}

// LowStockProducts filters the catalog down to products needing reorder,
// keeping the incoming name order. A non-empty result is the signal behind
// the low-stock indicator.
func LowStockProducts(products []models.Product) []models.Product {
	low := make([]models.Product, 0)
	for _, product := range products {
		if stockledger.IsLowStock(&product, product.Inventory) {
			low = append(low, product)
		}
	}
	return low
}
