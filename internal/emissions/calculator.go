package emissions

import (
	"math"

	"github.com/pkordes/footprint/backend/internal/domain"
)

// TripEmissions returns the kg CO2e for travelling distanceKm with mode.
//
// Unknown modes use DefaultKgPerKm instead of failing. A distance that is
// negative, NaN or infinite yields 0; the service layer rejects such input
// before it reaches here.
func TripEmissions(distanceKm float64, mode domain.TransportMode) float64 {
	if !validQuantity(distanceKm) {
		return 0
	}
	return distanceKm * TransportRate(mode)
}

// EnergyEmissions returns the kg CO2e for consuming kwh in region.
// Same lenient policy as TripEmissions.
func EnergyEmissions(kwh float64, region domain.Region) float64 {
	if !validQuantity(kwh) {
		return 0
	}
	return kwh * GridRate(region)
}

func validQuantity(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
