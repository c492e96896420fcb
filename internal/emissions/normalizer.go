package emissions

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"

	"github.com/pkordes/footprint/backend/internal/domain"
)

// NormalizeCarbonFootprint returns the kg value of v, or 0 when v is unknown.
// It never fails: a product without data contributes nothing to a total.
// The result is always finite and non-negative.
func NormalizeCarbonFootprint(v domain.CarbonValue) float64 {
	kg, ok := v.Kg()
	if !ok {
		return 0
	}
	f := kg.InexactFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// NormalizeRaw coerces an untyped carbon footprint as decoded from JSON
// (string, number, nil) to kg. Anything that is not a finite, non-negative
// number comes back as 0.
func NormalizeRaw(raw any) float64 {
	return NormalizeCarbonFootprint(carbonFromRaw(raw))
}

func carbonFromRaw(raw any) domain.CarbonValue {
	switch v := raw.(type) {
	case nil:
		return domain.UnknownCarbon()
	case domain.CarbonValue:
		return v
	case string:
		return domain.ParseCarbonValue(v)
	case json.Number:
		return domain.ParseCarbonValue(v.String())
	case float64:
		return carbonFromFloat(v)
	case float32:
		return carbonFromFloat(float64(v))
	case int:
		return carbonFromFloat(float64(v))
	case int64:
		return carbonFromFloat(float64(v))
	default:
		return domain.UnknownCarbon()
	}
}

func carbonFromFloat(f float64) domain.CarbonValue {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return domain.UnknownCarbon()
	}
	return domain.KnownCarbon(decimal.NewFromFloat(f))
}
