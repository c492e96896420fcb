package emissions

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/footprint/backend/internal/domain"
)

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Entry is one timestamped emission amount.
type Entry struct {
	At time.Time
	Kg float64
}

// Category is a named sequence of entries. The aggregator does not know
// which categories exist; it sums whatever the caller hands it.
type Category struct {
	Name    string
	Entries []Entry
}

// TravelCategory builds the travel category from stored trip emissions.
func TravelCategory(trips []domain.Trip) Category {
	entries := make([]Entry, len(trips))
	for i, t := range trips {
		entries[i] = Entry{At: t.CreatedAt, Kg: t.EmissionsKg}
	}
	return Category{Name: domain.CategoryTravel, Entries: entries}
}

// FoodCategory builds the food category, normalizing each product's
// carbon footprint so missing data counts as 0.
func FoodCategory(products []domain.ProductScan) Category {
	entries := make([]Entry, len(products))
	for i, p := range products {
		entries[i] = Entry{At: p.CreatedAt, Kg: NormalizeCarbonFootprint(p.CarbonFootprint)}
	}
	return Category{Name: domain.CategoryFood, Entries: entries}
}

// EnergyCategory builds the energy category from stored reading emissions.
func EnergyCategory(readings []domain.EnergyReading) Category {
	entries := make([]Entry, len(readings))
	for i, r := range readings {
		entries[i] = Entry{At: r.CreatedAt, Kg: r.EmissionsKg}
	}
	return Category{Name: domain.CategoryEnergy, Entries: entries}
}

// Aggregate sums each category's entries that fall inside w and returns
// the per-category breakdown and grand total.
//
// The breakdown preserves the order of categories. Entries outside the
// window contribute nothing. Negative or non-finite amounts are treated as
// 0, so neither a subtotal nor the total can be negative. With no entries
// in range every value is 0.
//
// Sums are accumulated as decimals; the result is a pure function of the
// arguments.
func Aggregate(w Window, categories ...Category) domain.Summary {
	summary := domain.Summary{
		WindowStart: w.Start,
		WindowEnd:   w.End,
		Breakdown:   make([]domain.CategoryTotal, 0, len(categories)),
	}

	total := decimal.Zero
	for _, c := range categories {
		subtotal := decimal.Zero
		count := 0
		for _, e := range c.Entries {
			if !w.Contains(e.At) {
				continue
			}
			subtotal = subtotal.Add(nonNegative(e.Kg))
			count++
		}
		total = total.Add(subtotal)
		summary.Breakdown = append(summary.Breakdown, domain.CategoryTotal{
			Category: c.Name,
			Value:    subtotal.InexactFloat64(),
			Count:    count,
		})
	}
	summary.Total = total.InexactFloat64()

	return summary
}

// nonNegative converts v to decimal, mapping negative and non-finite values to zero.
func nonNegative(v float64) decimal.Decimal {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
