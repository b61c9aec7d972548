// Package calc implements the financial calculation and reconciliation engine:
// price decomposition under the sale's tax regime, discount application, sale
// totals, payment-split reconciliation, return refunds with restocking fees,
// exchange settlement, and receipt reconciliation of persisted sales.
//
// Every function is a pure function of its inputs. Monetary values are
// decimal amounts rounded to 2 fractional digits after every arithmetic
// composition, not only at display time; repeated unrounded accumulation is
// the dominant source of off-by-a-cent drift this engine exists to prevent.
package calc

import "github.com/shopspring/decimal"

const (
	// MoneyPrecision is the number of fractional digits every monetary
	// intermediate carries.
	MoneyPrecision = 2

	// NewReturnGraceDays is the window during which items in new condition
	// are returnable without a restocking fee.
	NewReturnGraceDays = 14
)

var (
	// TaxRate is the fixed VAT rate (22%) applied to every sale.
	TaxRate = decimal.RequireFromString("0.22")

	// Tolerance is the single maximum discrepancy allowed between two
	// independently computed totals before they are treated as unequal.
	// Used both for hybrid payment validation and receipt reconciliation.
	Tolerance = decimal.RequireFromString("0.01")

	onePlusTaxRate = decimal.NewFromInt(1).Add(TaxRate)
	hundred        = decimal.NewFromInt(100)
)

// round normalizes a monetary intermediate to MoneyPrecision digits
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPrecision)
}

// FromCents converts a persisted cents value into a decimal amount
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -MoneyPrecision)
}

// ToCents converts a decimal amount into cents for persistence
func ToCents(d decimal.Decimal) int64 {
	return round(d).Shift(MoneyPrecision).IntPart()
}

// withinTolerance reports whether |a-b| < Tolerance
func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}
