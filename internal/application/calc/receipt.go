package calc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PersistedSale is the slice of a stored sale the reconciliation validator
// needs: the inputs the totals were computed from, plus the totals that were
// persisted alongside them.
type PersistedSale struct {
	Items       []LineItem
	Discount    Discount
	VatIncluded bool

	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

// ReconciliationReport lists every persisted field that no longer matches a
// recomputation of the sale's totals.
type ReconciliationReport struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// ValidateReceipt recomputes a persisted sale's totals from its line items,
// discount and tax regime and compares every derived field against the
// stored value within Tolerance.
//
// Mismatches are reported, never raised: a historical record must remain
// viewable even if a past calculation used a now-superseded rule, and the
// stored numbers stay authoritative for accounting. This is the one
// deliberately permissive path in the engine; payment validation at
// submission time fails hard instead.
func ValidateReceipt(sale PersistedSale) ReconciliationReport {
	report := ReconciliationReport{IsValid: true, Errors: []string{}}

	recomputed, err := ComputeSaleTotals(sale.Items, sale.Discount, sale.VatIncluded)
	if err != nil {
		report.IsValid = false
		report.Errors = append(report.Errors,
			fmt.Sprintf("stored line items no longer form a computable sale: %v", err))
		return report
	}

	check := func(field string, stored, computed decimal.Decimal) {
		if !withinTolerance(stored, computed) {
			report.IsValid = false
			report.Errors = append(report.Errors,
				fmt.Sprintf("%s: stored %s, recomputed %s", field, round(stored), computed))
		}
	}

	check("subtotal", sale.Subtotal, recomputed.Subtotal)
	check("discount_amount", sale.DiscountAmount, recomputed.DiscountAmount)
	check("tax_amount", sale.TaxAmount, recomputed.TaxAmount)
	check("total_amount", sale.TotalAmount, recomputed.FinalTotal)

	return report
}
