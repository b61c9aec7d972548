package calc

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one line of a sale as seen by the engine.
// SerialNumber is set iff the unit is individually tracked, in which case
// Quantity must equal 1.
type LineItem struct {
	ProductID    uuid.UUID
	Quantity     int
	UnitPrice    decimal.Decimal
	SerialNumber string
}

// SaleTotals is the full monetary breakdown of a sale.
type SaleTotals struct {
	Subtotal       decimal.Decimal // tax-exclusive base before discount
	DiscountAmount decimal.Decimal
	FinalSubtotal  decimal.Decimal // tax-exclusive base after a percentage discount
	TaxAmount      decimal.Decimal
	FinalTotal     decimal.Decimal
}

// ValidateLineItems range-checks every line item before any arithmetic runs:
// quantity > 0, unit price >= 0, serialized units carry quantity 1, and no
// serial number appears twice in the same sale.
func ValidateLineItems(items []LineItem) error {
	if len(items) == 0 {
		return newValidationError(KindInvalidLineItem, "sale must contain at least one line item")
	}

	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			return newValidationError(KindInvalidLineItem,
				fmt.Sprintf("line %d: quantity must be positive, got %d", i+1, item.Quantity))
		}
		if item.UnitPrice.IsNegative() {
			return newValidationError(KindInvalidLineItem,
				fmt.Sprintf("line %d: unit price must not be negative, got %s", i+1, item.UnitPrice))
		}
		if item.SerialNumber == "" {
			continue
		}
		if item.Quantity != 1 {
			return newValidationError(KindInvalidLineItem,
				fmt.Sprintf("line %d: serialized unit %s must have quantity 1", i+1, item.SerialNumber))
		}
		if _, dup := seen[item.SerialNumber]; dup {
			return newValidationError(KindDuplicateSerialInSale,
				fmt.Sprintf("serial number %s appears on more than one line", item.SerialNumber))
		}
		seen[item.SerialNumber] = struct{}{}
	}
	return nil
}

// ComputeSaleTotals composes decomposition and discount application across
// all line items:
//
//  1. itemsTotal = sum of quantity*unitPrice, rounded after the sum
//  2. itemsTotal is decomposed into a tax-exclusive subtotal and raw tax
//     under the sale's regime
//  3. the discount is applied, yielding the final subtotal, tax and total
//
// Every intermediate is rounded to 2 decimals before being used in the next
// step. The result is reproducible bit-for-bit from the same inputs, which
// is what lets receipt reconciliation detect drift in persisted totals.
func ComputeSaleTotals(items []LineItem, discount Discount, vatIncluded bool) (SaleTotals, error) {
	if err := ValidateLineItems(items); err != nil {
		return SaleTotals{}, err
	}
	if err := discount.Validate(); err != nil {
		return SaleTotals{}, err
	}

	itemsTotal := decimal.Zero
	for _, item := range items {
		itemsTotal = itemsTotal.Add(round(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))))
	}
	itemsTotal = round(itemsTotal)

	parts := Decompose(itemsTotal, vatIncluded)
	return applyDiscount(parts, discount), nil
}

// LineTotal returns the rounded extended price of a single line item
func LineTotal(item LineItem) decimal.Decimal {
	return round(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
}
