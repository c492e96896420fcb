package domain

import "time"

// Category names used by the summary service.
const (
	CategoryTravel = "travel"
	CategoryFood   = "food"
	CategoryEnergy = "energy"
)

// CategoryTotal is one line of a Summary breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Count    int     `json:"count"`
}

// Summary is the emissions total for a time window, split by category.
// It is derived on demand and never persisted.
// Total is the exact decimal sum of the breakdown; each figure is converted
// to float64 separately, so adding the floats back up may differ in the last
// bits.
type Summary struct {
	WindowStart time.Time       `json:"window_start"`
	WindowEnd   time.Time       `json:"window_end"`
	Total       float64         `json:"total"`
	Breakdown   []CategoryTotal `json:"breakdown"`
}

// Value returns the subtotal for category, or 0 if it is absent.
func (s Summary) Value(category string) float64 {
	for _, c := range s.Breakdown {
		if c.Category == category {
			return c.Value
		}
	}
	return 0
}

// Dominant returns the category with the largest non-zero subtotal.
// Ties go to the category listed first. Returns "" when every value is zero.
func (s Summary) Dominant() string {
	var (
		best  string
		value float64
	)
	for _, c := range s.Breakdown {
		if c.Value > value {
			best, value = c.Category, c.Value
		}
	}
	return best
}

// ModeTotal is the distance and emissions travelled with one mode.
// DefaultRate marks modes outside the canonical set.
type ModeTotal struct {
	Mode        TransportMode `json:"mode"`
	DistanceKm  float64       `json:"distance_km"`
	EmissionsKg float64       `json:"emissions_kg"`
	Trips       int           `json:"trips"`
	DefaultRate bool          `json:"default_rate,omitempty"`
}

// TravelSummary aggregates the trips in a window.
type TravelSummary struct {
	WindowStart     time.Time   `json:"window_start"`
	WindowEnd       time.Time   `json:"window_end"`
	TotalDistanceKm float64     `json:"total_distance_km"`
	TotalEmissions  float64     `json:"total_emissions_kg"`
	TripCount       int         `json:"trip_count"`
	ByMode          []ModeTotal `json:"by_mode"`
}
