package service

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/footprint/backend/internal/domain"
	"github.com/pkordes/footprint/backend/internal/emissions"
)

// ledgerPlaces is the number of decimal places kept in exported amounts.
const ledgerPlaces = 4

// ExportService assembles a flat ledger of every record in a window.
type ExportService struct {
	summary *SummaryService
}

// NewExportService constructs an ExportService that shares the summary's
// repositories and window rules.
func NewExportService(summary *SummaryService) *ExportService {
	return &ExportService{summary: summary}
}

// Export returns one LedgerRow per trip, product scan and energy reading in
// the window, oldest first. Rows from the same instant keep the order
// travel, food, energy.
func (s *ExportService) Export(ctx context.Context, period emissions.Period, date *time.Time) ([]domain.LedgerRow, error) {
	w, err := s.summary.Window(period, date)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	trips, products, readings, err := s.summary.load(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.LedgerRow, 0, len(trips)+len(products)+len(readings))
	for _, t := range trips {
		if !w.Contains(t.CreatedAt) {
			continue
		}
		rows = append(rows, domain.LedgerRow{
			Category:    domain.CategoryTravel,
			OccurredAt:  t.CreatedAt,
			Description: fmt.Sprintf("%s → %s (%s)", t.From, t.To, t.Mode),
			Quantity:    round(t.DistanceKm),
			Unit:        "km",
			EmissionsKg: round(t.EmissionsKg),
		})
	}
	for _, p := range products {
		if !w.Contains(p.CreatedAt) {
			continue
		}
		rows = append(rows, domain.LedgerRow{
			Category:    domain.CategoryFood,
			OccurredAt:  p.CreatedAt,
			Description: productLabel(p),
			Quantity:    1,
			Unit:        "item",
			EmissionsKg: round(emissions.NormalizeCarbonFootprint(p.CarbonFootprint)),
		})
	}
	for _, r := range readings {
		if !w.Contains(r.CreatedAt) {
			continue
		}
		rows = append(rows, domain.LedgerRow{
			Category:    domain.CategoryEnergy,
			OccurredAt:  r.CreatedAt,
			Description: energyLabel(r),
			Quantity:    round(r.BilledUnitsKWh),
			Unit:        "kWh",
			EmissionsKg: round(r.EmissionsKg),
		})
	}

	slices.SortStableFunc(rows, func(a, b domain.LedgerRow) int {
		return cmp.Compare(a.OccurredAt.UnixNano(), b.OccurredAt.UnixNano())
	})
	return rows, nil
}

func productLabel(p domain.ProductScan) string {
	if p.Brand == "" {
		return p.Name
	}
	return p.Brand + " " + p.Name
}

func energyLabel(r domain.EnergyReading) string {
	parts := []string{"electricity", string(r.Region)}
	if r.AccountName != "" {
		parts = append(parts, r.AccountName)
	}
	return strings.Join(parts, " · ")
}

// round keeps ledgerPlaces decimals, rounding half away from zero.
// NaN and infinities become 0.
func round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(ledgerPlaces).InexactFloat64()
}
