package emissions

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// EPA greenhouse gas equivalency factors (2024 edition), kg CO2e per unit.
// equivalency = kg / factor.
const (
	MilesDrivenKgFactor       = 0.192   // per mile, average passenger vehicle
	SmartphoneChargeKgFactor  = 0.00822 // per full charge
	TreeSeedlingKgFactor      = 60.0    // absorbed per seedling over 10 years
	MinEquivalencyThresholdKg = 1.0
)

// Display thresholds for abbreviated numbers.
const (
	millionThreshold = 1_000_000
	billionThreshold = 1_000_000_000
)

//nolint:gochecknoglobals // message.Printer is safe for concurrent use
var printer = message.NewPrinter(language.English)

// Equivalency is one relatable translation of a carbon amount.
type Equivalency struct {
	Kind      string  `json:"kind"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
	Label     string  `json:"label"`
}

// Equivalencies translates kg CO2e into miles driven, smartphones charged
// and tree seedlings grown. Below MinEquivalencyThresholdKg the numbers are
// meaninglessly small and an empty slice is returned.
func Equivalencies(kg float64) []Equivalency {
	if kg < MinEquivalencyThresholdKg || math.IsInf(kg, 0) || math.IsNaN(kg) {
		return []Equivalency{}
	}

	miles := kg / MilesDrivenKgFactor
	phones := kg / SmartphoneChargeKgFactor
	trees := kg / TreeSeedlingKgFactor

	return []Equivalency{
		{Kind: "miles_driven", Value: miles, Formatted: FormatLarge(miles), Label: "miles driven"},
		{Kind: "smartphones_charged", Value: phones, Formatted: FormatLarge(phones), Label: "smartphones charged"},
		{Kind: "tree_seedlings", Value: trees, Formatted: FormatLarge(trees), Label: "tree seedlings grown for 10 years"},
	}
}

// EquivalencyText renders equivalencies as a sentence for display, e.g.
// "Equivalent to driving ~1,000 miles or charging ~23,358 smartphones".
// Returns "" when there is nothing to say.
func EquivalencyText(eqs []Equivalency) string {
	var miles, phones string
	for _, e := range eqs {
		switch e.Kind {
		case "miles_driven":
			miles = e.Formatted
		case "smartphones_charged":
			phones = e.Formatted
		}
	}
	if miles == "" || phones == "" {
		return ""
	}
	return fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones", miles, phones)
}

// FormatNumber formats n with thousand separators: 18248 → "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatLarge rounds v to an integer with separators, switching to
// "~1.5 million" / "~2.3 billion" above a million.
func FormatLarge(v float64) string {
	switch {
	case v >= billionThreshold:
		return fmt.Sprintf("~%.1f billion", v/billionThreshold)
	case v >= millionThreshold:
		return fmt.Sprintf("~%.1f million", v/millionThreshold)
	default:
		return FormatNumber(int64(math.Round(v)))
	}
}
