package service

import (
	"context"
	"testing"
	"time"

	"github.com/bottegasoft/bottega-api/internal/domain/entity"
	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/bottegasoft/bottega-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sellTwoLamps creates a sale of 2 units at 100.00 each, VAT included,
// so the persisted total is 200.00
func sellTwoLamps(t *testing.T, env *testEnv) (*entity.Product, *entity.Sale) {
	t.Helper()
	p := env.seedProduct(t, "lamp", 10000, 10, false)

	sale, err := env.saleSvc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:      env.userID,
		VatIncluded: true,
		Payment:     singleCash(),
		Items: []SaleItemInput{
			{ProductID: p.ID, Quantity: 2, UnitPrice: 100.00},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(20000), sale.TotalAmount)
	return p, sale
}

func TestCreateReturnGoodConditionChargesTenPercent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	p, sale := sellTwoLamps(t, env)
	env.clock.Advance(30 * 24 * time.Hour)

	ret, err := env.returnSvc.CreateReturn(ctx, &CreateReturnInput{
		UserID: env.userID,
		SaleID: sale.ID,
		Items: []ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: 2, Condition: enum.ConditionGood},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "CN-000001", ret.CreditNoteNo)
	assert.Equal(t, int64(20000), ret.OriginalAmount)
	assert.Equal(t, int64(2000), ret.RestockingFee)
	assert.Equal(t, int64(18000), ret.RefundAmount)
	require.Len(t, ret.Items, 1)
	assert.Equal(t, enum.ConditionGood, ret.Items[0].Condition)

	// Full return moves the sale to refunded and restocks the units
	updated, err := env.sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusRefunded, updated.Status)

	got, err := env.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
}

func TestCreateReturnNewWithinGraceWindowIsFeeFree(t *testing.T) {
	env := newTestEnv()
	_, sale := sellTwoLamps(t, env)
	env.clock.Advance(5 * 24 * time.Hour)

	ret, err := env.returnSvc.CreateReturn(context.Background(), &CreateReturnInput{
		UserID: env.userID,
		SaleID: sale.ID,
		Items: []ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: 1, Condition: enum.ConditionNew},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), ret.RestockingFee)
	assert.Equal(t, int64(10000), ret.RefundAmount)
}

func TestCreateReturnNewAfterGraceWindowChargesFivePercent(t *testing.T) {
	env := newTestEnv()
	_, sale := sellTwoLamps(t, env)
	env.clock.Advance(20 * 24 * time.Hour)

	ret, err := env.returnSvc.CreateReturn(context.Background(), &CreateReturnInput{
		UserID: env.userID,
		SaleID: sale.ID,
		Items: []ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: 1, Condition: enum.ConditionNew},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(500), ret.RestockingFee)
	assert.Equal(t, int64(9500), ret.RefundAmount)
}

func TestCreateReturnPartialLeavesSalePartiallyReturned(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, sale := sellTwoLamps(t, env)

	_, err := env.returnSvc.CreateReturn(ctx, &CreateReturnInput{
		UserID: env.userID,
		SaleID: sale.ID,
		Items: []ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: 1, Condition: enum.ConditionDefective},
		},
	})
	require.NoError(t, err)

	updated, err := env.sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusPartiallyReturned, updated.Status)
}

func TestCreateReturnOverQuantityRejected(t *testing.T) {
	env := newTestEnv()
	_, sale := sellTwoLamps(t, env)

	_, err := env.returnSvc.CreateReturn(context.Background(), &CreateReturnInput{
		UserID: env.userID,
		SaleID: sale.ID,
		Items: []ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: 3, Condition: enum.ConditionGood},
		},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Equal(t, "ReturnNotEligible", appErr.Message)
}

func TestCreateReturnAgainstCancelledSaleRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, sale := sellTwoLamps(t, env)
	require.NoError(t, env.saleSvc.CancelSale(ctx, env.userID, sale.ID))

	_, err := env.returnSvc.CreateReturn(ctx, &CreateReturnInput{
		UserID: env.userID,
		SaleID: sale.ID,
		Items: []ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: 1, Condition: enum.ConditionGood},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "ReturnNotEligible", apperror.GetAppError(err).Message)
}

func TestCreateReturnSecondReturnHonorsAlreadyReturnedQuantity(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, sale := sellTwoLamps(t, env)

	_, err := env.returnSvc.CreateReturn(ctx, &CreateReturnInput{
		UserID: env.userID,
		SaleID: sale.ID,
		Items: []ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: 1, Condition: enum.ConditionGood},
		},
	})
	require.NoError(t, err)

	// Only one unit remains returnable
	_, err = env.returnSvc.CreateReturn(ctx, &CreateReturnInput{
		UserID: env.userID,
		SaleID: sale.ID,
		Items: []ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: 2, Condition: enum.ConditionGood},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "ReturnNotEligible", apperror.GetAppError(err).Message)

	_, err = env.returnSvc.CreateReturn(ctx, &CreateReturnInput{
		UserID: env.userID,
		SaleID: sale.ID,
		Items: []ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: 1, Condition: enum.ConditionGood},
		},
	})
	require.NoError(t, err)
}

func TestQuoteReturnDoesNotPersist(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	p, sale := sellTwoLamps(t, env)

	quote, err := env.returnSvc.QuoteReturn(ctx, &CreateReturnInput{
		UserID: env.userID,
		SaleID: sale.ID,
		Items: []ReturnItemInput{
			{SaleItemID: sale.Items[0].ID, Quantity: 2, Condition: enum.ConditionGood},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "180", quote.Totals.RefundAmount.String())

	// No return was created, no stock restored, status unchanged
	got, err := env.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Quantity)

	updated, err := env.sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusCompleted, updated.Status)
}
