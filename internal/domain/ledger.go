package domain

import "time"

// LedgerRow is one record in the flat emissions export.
// Every trip, product scan and energy reading in the window yields one row,
// ordered by OccurredAt ascending.
type LedgerRow struct {
	Category    string    `json:"category"`
	OccurredAt  time.Time `json:"occurred_at"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"` // "km", "item" or "kWh"
	EmissionsKg float64   `json:"emissions_kg"`
}
