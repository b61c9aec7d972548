package calc

import (
	"testing"
	"time"

	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestockingFeeRate(t *testing.T) {
	tests := []struct {
		name      string
		condition enum.ReturnCondition
		days      int
		want      string
	}{
		{"defective_always_free", enum.ConditionDefective, 365, "0"},
		{"new_within_grace", enum.ConditionNew, 14, "0"},
		{"new_after_grace", enum.ConditionNew, 15, "0.05"},
		{"good", enum.ConditionGood, 0, "0.1"},
		{"damaged", enum.ConditionDamaged, 0, "0.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RestockingFeeRate(tt.condition, tt.days)
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestComputeReturnGoodCondition(t *testing.T) {
	saleDate := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := saleDate.AddDate(0, 0, 30)

	totals, err := ComputeReturn(saleDate, now, []ReturnItem{
		{SaleItemID: uuid.New(), UnitPrice: d("200.00"), Quantity: 1, Condition: enum.ConditionGood},
	})
	require.NoError(t, err)

	assert.Equal(t, "200.00", totals.OriginalAmount.StringFixed(2))
	assert.Equal(t, "20.00", totals.RestockingFee.StringFixed(2))
	assert.Equal(t, "180.00", totals.RefundAmount.StringFixed(2))
	require.Len(t, totals.Breakdown, 1)
	assert.Equal(t, "20.00", totals.Breakdown[0].RestockingFee.StringFixed(2))
}

func TestComputeReturnMixedConditions(t *testing.T) {
	saleDate := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := saleDate.AddDate(0, 0, 20) // past the grace window

	totals, err := ComputeReturn(saleDate, now, []ReturnItem{
		{SaleItemID: uuid.New(), UnitPrice: d("100.00"), Quantity: 2, Condition: enum.ConditionNew},      // 5% of 200
		{SaleItemID: uuid.New(), UnitPrice: d("50.00"), Quantity: 1, Condition: enum.ConditionDamaged},   // 30% of 50
		{SaleItemID: uuid.New(), UnitPrice: d("80.00"), Quantity: 1, Condition: enum.ConditionDefective}, // free
	})
	require.NoError(t, err)

	assert.Equal(t, "330.00", totals.OriginalAmount.StringFixed(2))
	assert.Equal(t, "25.00", totals.RestockingFee.StringFixed(2)) // 10.00 + 15.00 + 0
	assert.Equal(t, "305.00", totals.RefundAmount.StringFixed(2))
}

func TestDaysSincePurchaseBoundary(t *testing.T) {
	saleDate := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// 14 whole days elapsed: still inside the grace window.
	within := saleDate.AddDate(0, 0, 14)
	totals, err := ComputeReturn(saleDate, within, []ReturnItem{
		{SaleItemID: uuid.New(), UnitPrice: d("100.00"), Quantity: 1, Condition: enum.ConditionNew},
	})
	require.NoError(t, err)
	assert.Equal(t, "100.00", totals.RefundAmount.StringFixed(2))

	// One more day and the 5% fee kicks in.
	after := saleDate.AddDate(0, 0, 15)
	totals, err = ComputeReturn(saleDate, after, []ReturnItem{
		{SaleItemID: uuid.New(), UnitPrice: d("100.00"), Quantity: 1, Condition: enum.ConditionNew},
	})
	require.NoError(t, err)
	assert.Equal(t, "95.00", totals.RefundAmount.StringFixed(2))
}

func TestRefundMonotonicity(t *testing.T) {
	saleDate := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := saleDate.AddDate(0, 0, 60)

	for _, condition := range []enum.ReturnCondition{
		enum.ConditionNew, enum.ConditionGood, enum.ConditionDamaged, enum.ConditionDefective,
	} {
		totals, err := ComputeReturn(saleDate, now, []ReturnItem{
			{SaleItemID: uuid.New(), UnitPrice: d("149.99"), Quantity: 3, Condition: condition},
		})
		require.NoError(t, err)
		assert.True(t, totals.RefundAmount.LessThanOrEqual(totals.OriginalAmount),
			"refund must never exceed the original amount (condition %s)", condition)

		fullRefund := totals.RefundAmount.Equal(totals.OriginalAmount)
		if condition == enum.ConditionDefective {
			assert.True(t, fullRefund, "defective items always refund in full")
		} else {
			assert.False(t, fullRefund, "condition %s past the grace window must carry a fee", condition)
		}
	}
}

func TestComputeReturnRejectsBadInput(t *testing.T) {
	saleDate := time.Now().AddDate(0, 0, -5)

	tests := []struct {
		name  string
		items []ReturnItem
	}{
		{"no_items", nil},
		{"zero_quantity", []ReturnItem{{SaleItemID: uuid.New(), UnitPrice: d("10.00"), Quantity: 0, Condition: enum.ConditionGood}}},
		{"negative_price", []ReturnItem{{SaleItemID: uuid.New(), UnitPrice: d("-10.00"), Quantity: 1, Condition: enum.ConditionGood}}},
		{"unknown_condition", []ReturnItem{{SaleItemID: uuid.New(), UnitPrice: d("10.00"), Quantity: 1, Condition: enum.ReturnCondition(9)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeReturn(saleDate, time.Now(), tt.items)
			require.Error(t, err)
			assert.True(t, IsKind(err, KindReturnNotEligible), "expected ReturnNotEligible, got %v", err)
		})
	}
}

func TestValidateReturnEligibility(t *testing.T) {
	itemA := uuid.New()
	itemB := uuid.New()
	sold := []ReturnableItem{
		{SaleItemID: itemA, SoldQuantity: 3, ReturnedQuantity: 1},
		{SaleItemID: itemB, SoldQuantity: 1, ReturnedQuantity: 0},
	}

	t.Run("accepts_remaining_quantity", func(t *testing.T) {
		err := ValidateReturnEligibility(enum.SaleStatusCompleted, sold, []ReturnItem{
			{SaleItemID: itemA, Quantity: 2, Condition: enum.ConditionGood},
		})
		assert.NoError(t, err)
	})

	t.Run("rejects_over_quantity", func(t *testing.T) {
		err := ValidateReturnEligibility(enum.SaleStatusCompleted, sold, []ReturnItem{
			{SaleItemID: itemA, Quantity: 3, Condition: enum.ConditionGood},
		})
		assert.True(t, IsKind(err, KindReturnNotEligible))
	})

	t.Run("rejects_unknown_line_item", func(t *testing.T) {
		err := ValidateReturnEligibility(enum.SaleStatusCompleted, sold, []ReturnItem{
			{SaleItemID: uuid.New(), Quantity: 1, Condition: enum.ConditionGood},
		})
		assert.True(t, IsKind(err, KindReturnNotEligible))
	})

	t.Run("rejects_cancelled_sale", func(t *testing.T) {
		err := ValidateReturnEligibility(enum.SaleStatusCancelled, sold, []ReturnItem{
			{SaleItemID: itemA, Quantity: 1, Condition: enum.ConditionGood},
		})
		assert.True(t, IsKind(err, KindReturnNotEligible))
	})

	t.Run("rejects_refunded_sale", func(t *testing.T) {
		err := ValidateReturnEligibility(enum.SaleStatusRefunded, sold, []ReturnItem{
			{SaleItemID: itemA, Quantity: 1, Condition: enum.ConditionGood},
		})
		assert.True(t, IsKind(err, KindReturnNotEligible))
	})

	t.Run("partially_returned_sale_still_accepts", func(t *testing.T) {
		err := ValidateReturnEligibility(enum.SaleStatusPartiallyReturned, sold, []ReturnItem{
			{SaleItemID: itemB, Quantity: 1, Condition: enum.ConditionNew},
		})
		assert.NoError(t, err)
	})
}
