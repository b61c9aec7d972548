package calc

import (
	"fmt"
	"time"

	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	feeRateNewLate = decimal.RequireFromString("0.05")
	feeRateGood    = decimal.RequireFromString("0.10")
	feeRateDamaged = decimal.RequireFromString("0.30")
)

// ReturnItem is one line of a return request as seen by the engine.
type ReturnItem struct {
	SaleItemID uuid.UUID
	UnitPrice  decimal.Decimal
	Quantity   int
	Condition  enum.ReturnCondition
}

// ReturnLine is the computed breakdown for one returned line item.
type ReturnLine struct {
	SaleItemID    uuid.UUID
	Quantity      int
	Condition     enum.ReturnCondition
	ItemTotal     decimal.Decimal
	FeeRate       decimal.Decimal
	RestockingFee decimal.Decimal
	RefundAmount  decimal.Decimal
}

// ReturnTotals aggregates the per-line breakdown of a return.
type ReturnTotals struct {
	OriginalAmount decimal.Decimal
	RestockingFee  decimal.Decimal
	RefundAmount   decimal.Decimal
	Breakdown      []ReturnLine
}

// RestockingFeeRate returns the fee rate for a returned item: defective
// items are always fee-free (warranty), new items are fee-free within the
// grace window and 5% after it, good items pay 10% and damaged items 30%.
func RestockingFeeRate(condition enum.ReturnCondition, daysSincePurchase int) decimal.Decimal {
	switch condition {
	case enum.ConditionDefective:
		return decimal.Zero
	case enum.ConditionNew:
		if daysSincePurchase <= NewReturnGraceDays {
			return decimal.Zero
		}
		return feeRateNewLate
	case enum.ConditionGood:
		return feeRateGood
	case enum.ConditionDamaged:
		return feeRateDamaged
	default:
		return decimal.Zero
	}
}

// DaysSincePurchase returns the whole days elapsed between the sale date and
// now. It is captured once per return computation so a calculation spanning
// midnight cannot see two different values.
func DaysSincePurchase(saleDate, now time.Time) int {
	return int(now.Sub(saleDate).Hours() / 24)
}

// ComputeReturn computes the per-item restocking fees and refund amounts for
// a return and their aggregates. The refund never exceeds the original
// amount: every fee rate lies in [0, 1] and each line refund is its total
// minus its fee.
func ComputeReturn(saleDate, now time.Time, items []ReturnItem) (ReturnTotals, error) {
	if len(items) == 0 {
		return ReturnTotals{}, newValidationError(KindReturnNotEligible,
			"return must contain at least one item")
	}

	days := DaysSincePurchase(saleDate, now)

	totals := ReturnTotals{Breakdown: make([]ReturnLine, 0, len(items))}
	originalAmount := decimal.Zero
	restockingFee := decimal.Zero

	for i, item := range items {
		if item.Quantity <= 0 {
			return ReturnTotals{}, newValidationError(KindReturnNotEligible,
				fmt.Sprintf("line %d: return quantity must be positive, got %d", i+1, item.Quantity))
		}
		if item.UnitPrice.IsNegative() {
			return ReturnTotals{}, newValidationError(KindReturnNotEligible,
				fmt.Sprintf("line %d: unit price must not be negative, got %s", i+1, item.UnitPrice))
		}
		if !item.Condition.Known() {
			return ReturnTotals{}, newValidationError(KindReturnNotEligible,
				fmt.Sprintf("line %d: unknown return condition %d", i+1, item.Condition))
		}

		itemTotal := round(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		rate := RestockingFeeRate(item.Condition, days)
		itemFee := round(itemTotal.Mul(rate))
		itemRefund := round(itemTotal.Sub(itemFee))

		totals.Breakdown = append(totals.Breakdown, ReturnLine{
			SaleItemID:    item.SaleItemID,
			Quantity:      item.Quantity,
			Condition:     item.Condition,
			ItemTotal:     itemTotal,
			FeeRate:       rate,
			RestockingFee: itemFee,
			RefundAmount:  itemRefund,
		})
		originalAmount = round(originalAmount.Add(itemTotal))
		restockingFee = round(restockingFee.Add(itemFee))
	}

	totals.OriginalAmount = originalAmount
	totals.RestockingFee = restockingFee
	totals.RefundAmount = round(originalAmount.Sub(restockingFee))
	return totals, nil
}

// ReturnableItem summarizes a persisted sale line for eligibility checks.
type ReturnableItem struct {
	SaleItemID       uuid.UUID
	SoldQuantity     int
	ReturnedQuantity int
}

// ValidateReturnEligibility rejects a return before any refund arithmetic
// runs: the sale must still accept returns, every requested line must exist
// in the sale, and the requested quantity must not exceed what was sold
// minus what was already returned.
func ValidateReturnEligibility(status enum.SaleStatus, sold []ReturnableItem, requested []ReturnItem) error {
	if status.IsClosed() {
		return newValidationError(KindReturnNotEligible,
			fmt.Sprintf("sale is %s and no longer accepts returns", status))
	}

	byID := make(map[uuid.UUID]ReturnableItem, len(sold))
	for _, s := range sold {
		byID[s.SaleItemID] = s
	}

	for i, req := range requested {
		line, ok := byID[req.SaleItemID]
		if !ok {
			return newValidationError(KindReturnNotEligible,
				fmt.Sprintf("line %d: sale item %s does not belong to this sale", i+1, req.SaleItemID))
		}
		remaining := line.SoldQuantity - line.ReturnedQuantity
		if req.Quantity > remaining {
			return newValidationError(KindReturnNotEligible,
				fmt.Sprintf("line %d: requested %d units but only %d remain returnable", i+1, req.Quantity, remaining))
		}
	}
	return nil
}
