package emissions_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/footprint/backend/internal/domain"
	"github.com/pkordes/footprint/backend/internal/emissions"
)

func TestNormalizeRaw(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{name: "numeric string", raw: "12.5", want: 12.5},
		{name: "padded numeric string", raw: " 3.4 ", want: 3.4},
		{name: "float", raw: 7.25, want: 7.25},
		{name: "int", raw: 3, want: 3},
		{name: "json number", raw: json.Number("0.8"), want: 0.8},
		{name: "N/A sentinel", raw: "N/A", want: 0},
		{name: "lowercase n/a", raw: "n/a", want: 0},
		{name: "empty string", raw: "", want: 0},
		{name: "nil", raw: nil, want: 0},
		{name: "garbage text", raw: "about five", want: 0},
		{name: "negative string", raw: "-2", want: 0},
		{name: "negative float", raw: -2.0, want: 0},
		{name: "NaN", raw: math.NaN(), want: 0},
		{name: "infinity", raw: math.Inf(1), want: 0},
		{name: "string beyond float64 range", raw: "1e400", want: 0},
		{name: "json number beyond float64 range", raw: json.Number("1e400"), want: 0},
		{name: "huge exponent", raw: "1e100000", want: 0},
		{name: "below float64 precision", raw: "1e-400", want: 0},
		{name: "unsupported type", raw: []string{"1"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, emissions.NormalizeRaw(tt.raw), 1e-12)
		})
	}
}

func TestNormalizeCarbonFootprint(t *testing.T) {
	assert.Equal(t, 12.5, emissions.NormalizeCarbonFootprint(domain.KnownCarbon(decimal.RequireFromString("12.5"))))
	assert.Zero(t, emissions.NormalizeCarbonFootprint(domain.UnknownCarbon()))
	assert.Zero(t, emissions.NormalizeCarbonFootprint(domain.CarbonValue{}), "zero value is unknown")
}

func TestNormalizeCarbonFootprint_OverflowIsZero(t *testing.T) {
	// A Known value built directly, as a repository scan would, that does
	// not fit in a float64.
	huge := domain.KnownCarbon(decimal.New(1, 400))

	got := emissions.NormalizeCarbonFootprint(huge)

	assert.Zero(t, got)
	assert.False(t, math.IsInf(got, 0))
}

func TestNormalizeRaw_DecodedJSON(t *testing.T) {
	var body struct {
		C domain.CarbonValue `json:"carbon_footprint"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"carbon_footprint": 1e400}`), &body))

	assert.False(t, body.C.IsKnown())
	assert.Zero(t, emissions.NormalizeRaw(body.C))
}
