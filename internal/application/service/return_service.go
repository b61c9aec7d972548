package service

import (
	"context"
	"time"

	"github.com/bottegasoft/bottega-api/internal/application/calc"
	"github.com/bottegasoft/bottega-api/internal/domain/entity"
	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/bottegasoft/bottega-api/internal/domain/repository"
	"github.com/bottegasoft/bottega-api/pkg/apperror"
	"github.com/bottegasoft/bottega-api/pkg/pagination"
	"github.com/bottegasoft/bottega-api/pkg/sequence"
	"github.com/google/uuid"
)

// ReturnService handles return eligibility, refund computation and persistence
type ReturnService struct {
	returnRepo     repository.ReturnRepository
	returnItemRepo repository.ReturnItemRepository
	saleRepo       repository.SaleRepository
	saleItemRepo   repository.SaleItemRepository
	productRepo    repository.ProductRepository
	creditNoteSeq  sequence.Generator
	now            func() time.Time
}

// NewReturnService creates a new return service. The clock is injected so
// grace-window tests can pin the current time.
func NewReturnService(
	returnRepo repository.ReturnRepository,
	returnItemRepo repository.ReturnItemRepository,
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	productRepo repository.ProductRepository,
	creditNoteSeq sequence.Generator,
	now func() time.Time,
) *ReturnService {
	if now == nil {
		now = time.Now
	}
	return &ReturnService{
		returnRepo:     returnRepo,
		returnItemRepo: returnItemRepo,
		saleRepo:       saleRepo,
		saleItemRepo:   saleItemRepo,
		productRepo:    productRepo,
		creditNoteSeq:  creditNoteSeq,
		now:            now,
	}
}

// ReturnItemInput represents one line of a return request
type ReturnItemInput struct {
	SaleItemID uuid.UUID
	Quantity   int
	Condition  enum.ReturnCondition
}

// CreateReturnInput represents the create return input
type CreateReturnInput struct {
	UserID uuid.UUID
	SaleID uuid.UUID
	Items  []ReturnItemInput
}

// ReturnQuote is the computed refund breakdown before anything is persisted
type ReturnQuote struct {
	Sale   *entity.Sale
	Totals calc.ReturnTotals
}

// QuoteReturn checks eligibility and computes the refund breakdown without
// persisting anything. CreateReturn runs the same computation and then
// persists it, so the quote shown to the clerk always matches the final
// credit note.
func (s *ReturnService) QuoteReturn(ctx context.Context, input *CreateReturnInput) (*ReturnQuote, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	items, err := engineReturnItems(sale, input.Items)
	if err != nil {
		return nil, err
	}

	sold := make([]calc.ReturnableItem, 0, len(sale.Items))
	for _, si := range sale.Items {
		sold = append(sold, calc.ReturnableItem{
			SaleItemID:       si.ID,
			SoldQuantity:     si.Quantity,
			ReturnedQuantity: si.ReturnedQuantity,
		})
	}

	if err := calc.ValidateReturnEligibility(sale.Status, sold, items); err != nil {
		return nil, engineError(err)
	}

	totals, err := calc.ComputeReturn(sale.SaleDate, s.now(), items)
	if err != nil {
		return nil, engineError(err)
	}

	return &ReturnQuote{Sale: sale, Totals: totals}, nil
}

// CreateReturn validates, computes and persists a return, restocks the
// returned units and advances the sale status.
func (s *ReturnService) CreateReturn(ctx context.Context, input *CreateReturnInput) (*entity.SaleReturn, error) {
	quote, err := s.QuoteReturn(ctx, input)
	if err != nil {
		return nil, err
	}
	sale := quote.Sale

	ret := &entity.SaleReturn{
		SaleID:         sale.ID,
		UserID:         input.UserID,
		CreditNoteNo:   s.creditNoteSeq.Next(),
		ReturnDate:     s.now(),
		OriginalAmount: calc.ToCents(quote.Totals.OriginalAmount),
		RestockingFee:  calc.ToCents(quote.Totals.RestockingFee),
		RefundAmount:   calc.ToCents(quote.Totals.RefundAmount),
	}
	if err := s.returnRepo.Create(ctx, ret); err != nil {
		return nil, err
	}

	itemByID := make(map[uuid.UUID]*entity.SaleItem, len(sale.Items))
	for i := range sale.Items {
		itemByID[sale.Items[i].ID] = &sale.Items[i]
	}

	returnItems := make([]entity.SaleReturnItem, 0, len(quote.Totals.Breakdown))
	stockIncrements := make(map[uuid.UUID]int)
	for _, line := range quote.Totals.Breakdown {
		saleItem := itemByID[line.SaleItemID]
		returnItems = append(returnItems, entity.SaleReturnItem{
			ReturnID:      ret.ID,
			SaleItemID:    line.SaleItemID,
			Quantity:      line.Quantity,
			Condition:     line.Condition,
			UnitPrice:     saleItem.UnitPrice,
			ItemTotal:     calc.ToCents(line.ItemTotal),
			RestockingFee: calc.ToCents(line.RestockingFee),
			RefundAmount:  calc.ToCents(line.RefundAmount),
		})
		stockIncrements[saleItem.ProductID] += line.Quantity
	}

	if err := s.returnItemRepo.CreateBatch(ctx, returnItems); err != nil {
		return nil, err
	}

	for _, line := range quote.Totals.Breakdown {
		if err := s.saleItemRepo.AddReturnedQuantity(ctx, line.SaleItemID, line.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return nil, err
	}

	if err := s.saleRepo.UpdateStatus(ctx, sale.ID, nextSaleStatus(sale, quote.Totals.Breakdown)); err != nil {
		return nil, err
	}

	return s.returnRepo.GetWithItems(ctx, ret.ID)
}

// GetReturn retrieves a return with its items
func (s *ReturnService) GetReturn(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error) {
	ret, err := s.returnRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Return")
	}
	return ret, nil
}

// ListReturns lists returns for a user
func (s *ReturnService) ListReturns(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.SaleReturn], error) {
	returns, total, err := s.returnRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}

// engineReturnItems resolves requested lines against the sale's items,
// carrying over the persisted unit prices
func engineReturnItems(sale *entity.Sale, inputs []ReturnItemInput) ([]calc.ReturnItem, error) {
	itemByID := make(map[uuid.UUID]*entity.SaleItem, len(sale.Items))
	for i := range sale.Items {
		itemByID[sale.Items[i].ID] = &sale.Items[i]
	}

	items := make([]calc.ReturnItem, 0, len(inputs))
	for _, in := range inputs {
		item := calc.ReturnItem{
			SaleItemID: in.SaleItemID,
			Quantity:   in.Quantity,
			Condition:  in.Condition,
		}
		if saleItem, ok := itemByID[in.SaleItemID]; ok {
			item.UnitPrice = calc.FromCents(saleItem.UnitPrice)
		}
		items = append(items, item)
	}
	return items, nil
}

// nextSaleStatus returns the status the sale moves to after a return: fully
// returned sales become refunded, anything less is partially returned.
func nextSaleStatus(sale *entity.Sale, returned []calc.ReturnLine) enum.SaleStatus {
	returnedNow := make(map[uuid.UUID]int, len(returned))
	for _, line := range returned {
		returnedNow[line.SaleItemID] += line.Quantity
	}

	for _, item := range sale.Items {
		if item.ReturnedQuantity+returnedNow[item.ID] < item.Quantity {
			return enum.SaleStatusPartiallyReturned
		}
	}
	return enum.SaleStatusRefunded
}
