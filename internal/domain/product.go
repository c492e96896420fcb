package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Unavailable is the sentinel the product lookup service uses for missing data.
const Unavailable = "N/A"

// maxCarbonMagnitude is the largest decimal order of magnitude a Known value
// may have; anything from 1e308 up would overflow a float64.
const maxCarbonMagnitude = 308

// CarbonValue is a product carbon footprint in kg CO2e that may be unknown.
// The zero value is Unknown.
type CarbonValue struct {
	kg    decimal.Decimal
	known bool
}

// KnownCarbon returns a CarbonValue holding kg.
func KnownCarbon(kg decimal.Decimal) CarbonValue {
	return CarbonValue{kg: kg, known: true}
}

// UnknownCarbon returns a CarbonValue with no data.
func UnknownCarbon() CarbonValue {
	return CarbonValue{}
}

// ParseCarbonValue parses upstream text such as "12.5", "N/A" or "".
// Only non-negative decimals below 1e308 are Known; everything else is
// Unknown. Values too small for a float64 are Known zero.
func ParseCarbonValue(raw string) CarbonValue {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, Unavailable) {
		return UnknownCarbon()
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return UnknownCarbon()
	}
	if d.IsZero() {
		return KnownCarbon(decimal.Zero)
	}
	switch magnitude := len(d.Coefficient().String()) + int(d.Exponent()); {
	case magnitude > maxCarbonMagnitude:
		return UnknownCarbon()
	case magnitude < -maxCarbonMagnitude:
		return KnownCarbon(decimal.Zero)
	}
	return KnownCarbon(d)
}

// Kg returns the value and whether it is known.
func (v CarbonValue) Kg() (decimal.Decimal, bool) {
	return v.kg, v.known
}

// IsKnown reports whether v carries a value.
func (v CarbonValue) IsKnown() bool {
	return v.known
}

// String returns the decimal text, or "N/A" when unknown.
func (v CarbonValue) String() string {
	if !v.known {
		return Unavailable
	}
	return v.kg.String()
}

// MarshalJSON encodes a known value as a JSON number and an unknown one as "N/A".
func (v CarbonValue) MarshalJSON() ([]byte, error) {
	if !v.known {
		return json.Marshal(Unavailable)
	}
	return []byte(v.kg.String()), nil
}

// UnmarshalJSON accepts a number, a numeric string, "N/A", or null.
// Anything it cannot read becomes Unknown rather than an error.
func (v *CarbonValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = UnknownCarbon()
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*v = UnknownCarbon()
			return nil
		}
		*v = ParseCarbonValue(s)
		return nil
	}
	*v = ParseCarbonValue(string(b))
	return nil
}

// ProductScan is a product the user scanned. Barcode is the natural key:
// the first scan of a barcode is stored and later scans never overwrite it.
type ProductScan struct {
	ID              uuid.UUID   `json:"id"`
	Barcode         string      `json:"barcode"`
	Name            string      `json:"name"`
	Brand           string      `json:"brand"`
	Category        string      `json:"category,omitempty"`
	ImageURL        string      `json:"image_url,omitempty"`
	GreenScore      *int        `json:"green_score"`  // nil when unavailable
	ImpactGrade     *string     `json:"impact_grade"` // single letter, nil when unavailable
	CarbonFootprint CarbonValue `json:"carbon_footprint"`
	CreatedAt       time.Time   `json:"created_at"`
}
