package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Region selects the grid emission factor applied to electricity usage.
type Region string

const (
	RegionGlobal Region = "global"
	RegionIndia  Region = "india"
	RegionUSA    Region = "usa"
	RegionEU     Region = "eu"
)

// ParseRegion maps client input to a Region. Empty or unrecognized input
// falls back to RegionGlobal.
func ParseRegion(s string) Region {
	switch r := Region(strings.ToLower(strings.TrimSpace(s))); r {
	case RegionGlobal, RegionIndia, RegionUSA, RegionEU:
		return r
	case "us", "united states":
		return RegionUSA
	case "europe", "european union":
		return RegionEU
	}
	return RegionGlobal
}

// EnergyReading is one electricity bill. BilledUnitsKWh comes from the bill
// (the client extracts it); EmissionsKg is computed at write time.
type EnergyReading struct {
	ID             uuid.UUID  `json:"id"`
	AccountName    string     `json:"account_name,omitempty"`
	BillDate       *time.Time `json:"bill_date,omitempty"`
	BilledUnitsKWh float64    `json:"billed_units_kwh"`
	Region         Region     `json:"region"`
	EmissionsKg    float64    `json:"emissions_kg"`
	CreatedAt      time.Time  `json:"created_at"`
}
