package calc

import (
	"testing"

	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func persistedSaleFixture(t *testing.T) PersistedSale {
	t.Helper()
	items := []LineItem{item("50.00", 1), item("30.00", 1)}
	totals, err := ComputeSaleTotals(items, NoDiscount, true)
	require.NoError(t, err)
	return PersistedSale{
		Items:          items,
		Discount:       NoDiscount,
		VatIncluded:    true,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		TotalAmount:    totals.FinalTotal,
	}
}

func TestValidateReceiptAcceptsConsistentSale(t *testing.T) {
	report := ValidateReceipt(persistedSaleFixture(t))
	assert.True(t, report.IsValid)
	assert.Empty(t, report.Errors)
}

func TestValidateReceiptDetectsDriftedTotals(t *testing.T) {
	sale := persistedSaleFixture(t)
	// Simulate a record written under a superseded rule: the stored tax
	// no longer matches a recomputation.
	sale.TaxAmount = sale.TaxAmount.Add(d("1.50"))
	sale.TotalAmount = sale.TotalAmount.Add(d("1.50"))

	report := ValidateReceipt(sale)
	assert.False(t, report.IsValid)
	assert.Len(t, report.Errors, 2)
}

func TestValidateReceiptToleratesSubCentDrift(t *testing.T) {
	sale := persistedSaleFixture(t)
	sale.TotalAmount = sale.TotalAmount.Add(d("0.005"))

	report := ValidateReceipt(sale)
	assert.True(t, report.IsValid, "drift below tolerance must not be reported")
}

func TestValidateReceiptReportsInsteadOfFailingOnBadItems(t *testing.T) {
	// Even a record whose stored line items no longer validate must stay
	// viewable; the validator reports and never raises.
	sale := persistedSaleFixture(t)
	sale.Items[0].Quantity = 0

	report := ValidateReceipt(sale)
	assert.False(t, report.IsValid)
	assert.NotEmpty(t, report.Errors)
}

func TestValidateReceiptChecksEveryField(t *testing.T) {
	items := []LineItem{item("100.00", 1)}
	totals, err := ComputeSaleTotals(items, Discount{Kind: enum.DiscountPercentage, Value: d("10")}, false)
	require.NoError(t, err)

	sale := PersistedSale{
		Items:          items,
		Discount:       Discount{Kind: enum.DiscountPercentage, Value: d("10")},
		VatIncluded:    false,
		Subtotal:       totals.Subtotal.Add(d("5.00")),
		DiscountAmount: totals.DiscountAmount.Sub(d("2.00")),
		TaxAmount:      totals.TaxAmount,
		TotalAmount:    totals.FinalTotal,
	}

	report := ValidateReceipt(sale)
	assert.False(t, report.IsValid)
	assert.Len(t, report.Errors, 2, "one error per drifted field")
}
