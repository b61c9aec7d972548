package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		vatIncluded bool
		wantBase    string
		wantTax     string
	}{
		{
			name:        "inclusive_extracts_base",
			amount:      "122.00",
			vatIncluded: true,
			wantBase:    "100.00",
			wantTax:     "22.00",
		},
		{
			name:        "inclusive_rounds_base_then_derives_tax",
			amount:      "80.00",
			vatIncluded: true,
			wantBase:    "65.57", // 80 / 1.22 = 65.5737...
			wantTax:     "14.43", // 80 - 65.57, not a separate division
		},
		{
			name:        "exclusive_adds_tax_on_top",
			amount:      "100.00",
			vatIncluded: false,
			wantBase:    "100.00",
			wantTax:     "22.00",
		},
		{
			name:        "exclusive_rounds_tax",
			amount:      "33.33",
			vatIncluded: false,
			wantBase:    "33.33",
			wantTax:     "7.33", // 33.33 * 0.22 = 7.3326
		},
		{
			name:        "zero_amount",
			amount:      "0.00",
			vatIncluded: true,
			wantBase:    "0.00",
			wantTax:     "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := Decompose(d(tt.amount), tt.vatIncluded)
			assert.Equal(t, tt.wantBase, parts.Base.StringFixed(2))
			assert.Equal(t, tt.wantTax, parts.Tax.StringFixed(2))
		})
	}
}

func TestDecomposeInclusiveBaseAndTaxSumToAmount(t *testing.T) {
	// The inclusive split must reassemble exactly, whatever the rounding
	// of the base did.
	for _, amount := range []string{"80.00", "0.01", "99.99", "123.45", "1000000.37"} {
		parts := Decompose(d(amount), true)
		assert.Equal(t, amount, parts.Base.Add(parts.Tax).StringFixed(2), "amount %s", amount)
	}
}

func TestComposeMatchesExclusiveDecompose(t *testing.T) {
	base := d("65.57")
	composed := Compose(base)
	decomposed := Decompose(base, false)
	assert.True(t, composed.Tax.Equal(decomposed.Tax))
	assert.Equal(t, "80.00", composed.Total().StringFixed(2))
}
