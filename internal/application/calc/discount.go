package calc

import (
	"fmt"

	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Discount describes the single discount applied to a sale.
type Discount struct {
	Kind  enum.DiscountKind
	Value decimal.Decimal
}

// NoDiscount is the zero discount
var NoDiscount = Discount{Kind: enum.DiscountNone}

// Validate checks the discount value against the bounds of its kind.
// Percentage discounts must lie in [0, 100]; amount discounts must be
// non-negative. An amount discount larger than the pre-discount total is not
// an error here: it is clamped during application.
func (d Discount) Validate() error {
	switch d.Kind {
	case enum.DiscountNone:
		return nil
	case enum.DiscountPercentage:
		if d.Value.IsNegative() || d.Value.GreaterThan(hundred) {
			return newValidationError(KindInvalidDiscount,
				fmt.Sprintf("percentage discount must be between 0 and 100, got %s", d.Value))
		}
		return nil
	case enum.DiscountAmount:
		if d.Value.IsNegative() {
			return newValidationError(KindInvalidDiscount,
				fmt.Sprintf("amount discount must not be negative, got %s", d.Value))
		}
		return nil
	default:
		return newValidationError(KindInvalidDiscount,
			fmt.Sprintf("unknown discount kind %d", d.Kind))
	}
}

// applyDiscount applies the discount to an already decomposed subtotal.
//
// A percentage discount is applied before tax: it reduces the tax base and
// the tax is recomputed on the discounted subtotal. A fixed-amount discount
// is applied after tax against the tax-inclusive total: the reported
// subtotal and tax stay untouched and only the grand total shrinks, because
// a flat discount is modeled as a settlement adjustment rather than a price
// change. The amount discount is clamped to the pre-discount total so the
// final total never goes negative; the clamp is a hard invariant.
func applyDiscount(parts TaxParts, d Discount) SaleTotals {
	switch d.Kind {
	case enum.DiscountPercentage:
		discountAmount := round(parts.Base.Mul(d.Value).Div(hundred))
		finalSubtotal := round(parts.Base.Sub(discountAmount))
		taxAmount := round(finalSubtotal.Mul(TaxRate))
		return SaleTotals{
			Subtotal:       parts.Base,
			DiscountAmount: discountAmount,
			FinalSubtotal:  finalSubtotal,
			TaxAmount:      taxAmount,
			FinalTotal:     round(finalSubtotal.Add(taxAmount)),
		}
	case enum.DiscountAmount:
		totalBeforeDiscount := parts.Total()
		discountAmount := round(d.Value)
		if discountAmount.GreaterThan(totalBeforeDiscount) {
			discountAmount = totalBeforeDiscount
		}
		return SaleTotals{
			Subtotal:       parts.Base,
			DiscountAmount: discountAmount,
			FinalSubtotal:  parts.Base,
			TaxAmount:      parts.Tax,
			FinalTotal:     round(totalBeforeDiscount.Sub(discountAmount)),
		}
	default:
		return SaleTotals{
			Subtotal:       parts.Base,
			DiscountAmount: decimal.Zero,
			FinalSubtotal:  parts.Base,
			TaxAmount:      parts.Tax,
			FinalTotal:     parts.Total(),
		}
	}
}
