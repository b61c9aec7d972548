package calc

import (
	"testing"

	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(price string, qty int) LineItem {
	return LineItem{ProductID: uuid.New(), Quantity: qty, UnitPrice: d(price)}
}

func TestComputeSaleTotalsScenarios(t *testing.T) {
	tests := []struct {
		name        string
		items       []LineItem
		discount    Discount
		vatIncluded bool
		want        map[string]string
	}{
		{
			// Two tax-inclusive items, no discount: the stored total must
			// reproduce the entered amount exactly.
			name:        "inclusive_no_discount",
			items:       []LineItem{item("50.00", 1), item("30.00", 1)},
			discount:    NoDiscount,
			vatIncluded: true,
			want: map[string]string{
				"subtotal":       "65.57",
				"discountAmount": "0.00",
				"finalSubtotal":  "65.57",
				"taxAmount":      "14.43",
				"finalTotal":     "80.00",
			},
		},
		{
			// Percentage discount reduces the tax base; tax is recomputed
			// on the discounted subtotal.
			name:        "exclusive_percentage_discount",
			items:       []LineItem{item("100.00", 1)},
			discount:    Discount{Kind: enum.DiscountPercentage, Value: d("10")},
			vatIncluded: false,
			want: map[string]string{
				"subtotal":       "100.00",
				"discountAmount": "10.00",
				"finalSubtotal":  "90.00",
				"taxAmount":      "19.80",
				"finalTotal":     "109.80",
			},
		},
		{
			// Amount discount is a post-tax settlement adjustment: subtotal
			// and tax are reported untouched, only the grand total shrinks.
			name:        "exclusive_amount_discount",
			items:       []LineItem{item("100.00", 1)},
			discount:    Discount{Kind: enum.DiscountAmount, Value: d("20.00")},
			vatIncluded: false,
			want: map[string]string{
				"subtotal":       "100.00",
				"discountAmount": "20.00",
				"finalSubtotal":  "100.00",
				"taxAmount":      "22.00",
				"finalTotal":     "102.00",
			},
		},
		{
			name:        "quantity_multiplies_before_sum",
			items:       []LineItem{item("19.99", 3), item("5.50", 2)},
			discount:    NoDiscount,
			vatIncluded: false,
			want: map[string]string{
				"subtotal":       "70.97",
				"discountAmount": "0.00",
				"finalSubtotal":  "70.97",
				"taxAmount":      "15.61",
				"finalTotal":     "86.58",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeSaleTotals(tt.items, tt.discount, tt.vatIncluded)
			require.NoError(t, err)
			assert.Equal(t, tt.want["subtotal"], got.Subtotal.StringFixed(2), "subtotal")
			assert.Equal(t, tt.want["discountAmount"], got.DiscountAmount.StringFixed(2), "discountAmount")
			assert.Equal(t, tt.want["finalSubtotal"], got.FinalSubtotal.StringFixed(2), "finalSubtotal")
			assert.Equal(t, tt.want["taxAmount"], got.TaxAmount.StringFixed(2), "taxAmount")
			assert.Equal(t, tt.want["finalTotal"], got.FinalTotal.StringFixed(2), "finalTotal")
		})
	}
}

func TestComputeSaleTotalsIsDeterministic(t *testing.T) {
	items := []LineItem{item("33.33", 3), item("0.07", 13), item("199.90", 1)}
	discount := Discount{Kind: enum.DiscountPercentage, Value: d("7.5")}

	first, err := ComputeSaleTotals(items, discount, true)
	require.NoError(t, err)
	second, err := ComputeSaleTotals(items, discount, true)
	require.NoError(t, err)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
	assert.True(t, first.FinalSubtotal.Equal(second.FinalSubtotal))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.FinalTotal.Equal(second.FinalTotal))
}

func TestTaxIdentityHoldsForPercentageAndNoDiscount(t *testing.T) {
	discounts := []Discount{
		NoDiscount,
		{Kind: enum.DiscountPercentage, Value: d("10")},
		{Kind: enum.DiscountPercentage, Value: d("33.33")},
	}
	for _, vatIncluded := range []bool{true, false} {
		for _, discount := range discounts {
			totals, err := ComputeSaleTotals([]LineItem{item("123.45", 2), item("9.99", 1)}, discount, vatIncluded)
			require.NoError(t, err)
			diff := totals.FinalSubtotal.Add(totals.TaxAmount).Sub(totals.FinalTotal).Abs()
			assert.True(t, diff.LessThan(Tolerance),
				"finalSubtotal+taxAmount should equal finalTotal, diff %s (discount %s, vatIncluded %v)",
				diff, discount.Kind, vatIncluded)
		}
	}
}

func TestAmountDiscountIdentity(t *testing.T) {
	// For amount discounts the grand total is the pre-discount total minus
	// the discount; subtotal and tax stay untouched.
	totals, err := ComputeSaleTotals([]LineItem{item("123.45", 2)}, Discount{Kind: enum.DiscountAmount, Value: d("15.00")}, false)
	require.NoError(t, err)
	expected := totals.FinalSubtotal.Add(totals.TaxAmount).Sub(totals.DiscountAmount)
	assert.True(t, expected.Equal(totals.FinalTotal))
}

func TestAmountDiscountClampedToTotal(t *testing.T) {
	totals, err := ComputeSaleTotals([]LineItem{item("10.00", 1)}, Discount{Kind: enum.DiscountAmount, Value: d("9999.00")}, false)
	require.NoError(t, err)
	assert.Equal(t, "12.20", totals.DiscountAmount.StringFixed(2), "discount clamps to the pre-discount total")
	assert.Equal(t, "0.00", totals.FinalTotal.StringFixed(2))
	assert.False(t, totals.FinalTotal.IsNegative())
}

func TestComputeSaleTotalsRejectsInvalidInputs(t *testing.T) {
	valid := item("10.00", 1)

	tests := []struct {
		name     string
		items    []LineItem
		discount Discount
		kind     ErrorKind
	}{
		{
			name:     "empty_sale",
			items:    nil,
			discount: NoDiscount,
			kind:     KindInvalidLineItem,
		},
		{
			name:     "zero_quantity",
			items:    []LineItem{item("10.00", 0)},
			discount: NoDiscount,
			kind:     KindInvalidLineItem,
		},
		{
			name:     "negative_unit_price",
			items:    []LineItem{item("-1.00", 1)},
			discount: NoDiscount,
			kind:     KindInvalidLineItem,
		},
		{
			name: "serialized_item_with_quantity_two",
			items: []LineItem{
				{ProductID: uuid.New(), Quantity: 2, UnitPrice: d("10.00"), SerialNumber: "SN-1"},
			},
			discount: NoDiscount,
			kind:     KindInvalidLineItem,
		},
		{
			name: "duplicate_serial",
			items: []LineItem{
				{ProductID: uuid.New(), Quantity: 1, UnitPrice: d("10.00"), SerialNumber: "SN-1"},
				{ProductID: uuid.New(), Quantity: 1, UnitPrice: d("12.00"), SerialNumber: "SN-1"},
			},
			discount: NoDiscount,
			kind:     KindDuplicateSerialInSale,
		},
		{
			name:     "percentage_above_hundred",
			items:    []LineItem{valid},
			discount: Discount{Kind: enum.DiscountPercentage, Value: d("101")},
			kind:     KindInvalidDiscount,
		},
		{
			name:     "negative_percentage",
			items:    []LineItem{valid},
			discount: Discount{Kind: enum.DiscountPercentage, Value: d("-1")},
			kind:     KindInvalidDiscount,
		},
		{
			name:     "negative_amount",
			items:    []LineItem{valid},
			discount: Discount{Kind: enum.DiscountAmount, Value: d("-0.01")},
			kind:     KindInvalidDiscount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeSaleTotals(tt.items, tt.discount, false)
			require.Error(t, err)
			assert.True(t, IsKind(err, tt.kind), "expected %s, got %v", tt.kind, err)
		})
	}
}
