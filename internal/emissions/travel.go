package emissions

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/pkordes/footprint/backend/internal/domain"
)

// SummarizeTravel totals distance and emissions of the trips inside w,
// broken down by mode. Modes are ordered by emissions descending, then by
// name so zero-emission modes still have a stable order.
func SummarizeTravel(w Window, trips []domain.Trip) domain.TravelSummary {
	type acc struct {
		distance  decimal.Decimal
		emissions decimal.Decimal
		trips     int
	}

	byMode := make(map[domain.TransportMode]*acc)
	totalDistance, totalEmissions := decimal.Zero, decimal.Zero
	count := 0

	for _, t := range trips {
		if !w.Contains(t.CreatedAt) {
			continue
		}
		d, e := nonNegative(t.DistanceKm), nonNegative(t.EmissionsKg)

		a, ok := byMode[t.Mode]
		if !ok {
			a = &acc{distance: decimal.Zero, emissions: decimal.Zero}
			byMode[t.Mode] = a
		}
		a.distance = a.distance.Add(d)
		a.emissions = a.emissions.Add(e)
		a.trips++

		totalDistance = totalDistance.Add(d)
		totalEmissions = totalEmissions.Add(e)
		count++
	}

	modes := make([]domain.ModeTotal, 0, len(byMode))
	for mode, a := range byMode {
		modes = append(modes, domain.ModeTotal{
			Mode:        mode,
			DistanceKm:  a.distance.InexactFloat64(),
			EmissionsKg: a.emissions.InexactFloat64(),
			Trips:       a.trips,
			DefaultRate: !mode.Known(),
		})
	}
	slices.SortFunc(modes, func(a, b domain.ModeTotal) int {
		if c := cmp.Compare(b.EmissionsKg, a.EmissionsKg); c != 0 {
			return c
		}
		return cmp.Compare(a.Mode, b.Mode)
	})

	return domain.TravelSummary{
		WindowStart:     w.Start,
		WindowEnd:       w.End,
		TotalDistanceKm: totalDistance.InexactFloat64(),
		TotalEmissions:  totalEmissions.InexactFloat64(),
		TripCount:       count,
		ByMode:          modes,
	}
}
