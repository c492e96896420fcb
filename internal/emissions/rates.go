// Package emissions converts activity records into kg CO2e and aggregates
// them over time windows.
//
// Everything here is pure: no I/O, no package-level mutable state. Callers
// load records from storage and pass them in.
package emissions

import "github.com/pkordes/footprint/backend/internal/domain"

// Transport emission factors in kg CO2e per passenger-km.
const (
	CarKgPerKm      = 0.12
	BusKgPerKm      = 0.05
	TrainKgPerKm    = 0.03
	AirplaneKgPerKm = 0.25

	// DefaultKgPerKm applies to any mode not in the table.
	DefaultKgPerKm = 0.1
)

// Electricity grid factors in kg CO2e per kWh.
const (
	GlobalKgPerKWh = 0.707
	IndiaKgPerKWh  = 0.82
	USAKgPerKWh    = 0.43
	EUKgPerKWh     = 0.23
)

//nolint:gochecknoglobals // read-only lookup tables
var (
	transportRates = map[domain.TransportMode]float64{
		domain.ModeCar:      CarKgPerKm,
		domain.ModeBus:      BusKgPerKm,
		domain.ModeTrain:    TrainKgPerKm,
		domain.ModeAirplane: AirplaneKgPerKm,
		domain.ModeCycle:    0,
		domain.ModeWalk:     0,
	}

	gridRates = map[domain.Region]float64{
		domain.RegionGlobal: GlobalKgPerKWh,
		domain.RegionIndia:  IndiaKgPerKWh,
		domain.RegionUSA:    USAKgPerKWh,
		domain.RegionEU:     EUKgPerKWh,
	}
)

// TransportRate returns the kg CO2e/km factor for mode.
// Unknown modes get DefaultKgPerKm.
func TransportRate(mode domain.TransportMode) float64 {
	if r, ok := transportRates[mode]; ok {
		return r
	}
	return DefaultKgPerKm
}

// GridRate returns the kg CO2e/kWh factor for region.
// Unknown regions get the global average.
func GridRate(region domain.Region) float64 {
	if r, ok := gridRates[region]; ok {
		return r
	}
	return GlobalKgPerKWh
}
