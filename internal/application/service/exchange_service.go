package service

import (
	"context"

	"github.com/bottegasoft/bottega-api/internal/application/calc"
	"github.com/bottegasoft/bottega-api/internal/domain/entity"
	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/bottegasoft/bottega-api/internal/domain/repository"
	"github.com/bottegasoft/bottega-api/pkg/apperror"
	"github.com/bottegasoft/bottega-api/pkg/pagination"
	"github.com/bottegasoft/bottega-api/pkg/sequence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeService settles a return against a replacement sale. It composes
// the return and sale services so both halves run through the same engine
// paths as standalone returns and sales.
type ExchangeService struct {
	exchangeRepo repository.ExchangeRepository
	returnSvc    *ReturnService
	saleSvc      *SaleService
	exchangeSeq  sequence.Generator
}

// NewExchangeService creates a new exchange service
func NewExchangeService(
	exchangeRepo repository.ExchangeRepository,
	returnSvc *ReturnService,
	saleSvc *SaleService,
	exchangeSeq sequence.Generator,
) *ExchangeService {
	return &ExchangeService{
		exchangeRepo: exchangeRepo,
		returnSvc:    returnSvc,
		saleSvc:      saleSvc,
		exchangeSeq:  exchangeSeq,
	}
}

// CreateExchangeInput represents the create exchange input. The replacement
// sale inherits the original sale's tax regime; it is not re-chosen.
type CreateExchangeInput struct {
	UserID        uuid.UUID
	SaleID        uuid.UUID
	ReturnItems   []ReturnItemInput
	NewItems      []SaleItemInput
	DiscountKind  enum.DiscountKind
	DiscountValue float64
	Payment       PaymentInput
}

// ExchangeQuote is the computed settlement before anything is persisted
type ExchangeQuote struct {
	ReturnTotals calc.ReturnTotals       `json:"return_totals"`
	NewTotals    calc.SaleTotals         `json:"new_totals"`
	Settlement   calc.ExchangeSettlement `json:"settlement"`
}

// QuoteExchange computes the settlement for an exchange without persisting
// anything
func (s *ExchangeService) QuoteExchange(ctx context.Context, input *CreateExchangeInput) (*ExchangeQuote, error) {
	returnQuote, err := s.returnSvc.QuoteReturn(ctx, &CreateReturnInput{
		UserID: input.UserID,
		SaleID: input.SaleID,
		Items:  input.ReturnItems,
	})
	if err != nil {
		return nil, err
	}

	newTotals, err := s.computeNewTotals(input, returnQuote.Sale.VatIncluded)
	if err != nil {
		return nil, err
	}

	settlement := calc.ComputeExchange(returnQuote.Totals.RefundAmount, newTotals.FinalTotal)
	return &ExchangeQuote{
		ReturnTotals: returnQuote.Totals,
		NewTotals:    newTotals,
		Settlement:   settlement,
	}, nil
}

// CreateExchange validates and persists an exchange: the return, the
// replacement sale with the return credit applied, and the settlement record
// linking the two.
func (s *ExchangeService) CreateExchange(ctx context.Context, input *CreateExchangeInput) (*entity.Exchange, error) {
	quote, err := s.QuoteExchange(ctx, input)
	if err != nil {
		return nil, err
	}

	ret, err := s.returnSvc.CreateReturn(ctx, &CreateReturnInput{
		UserID: input.UserID,
		SaleID: input.SaleID,
		Items:  input.ReturnItems,
	})
	if err != nil {
		return nil, err
	}

	originalSale, err := s.saleSvc.saleRepo.GetByID(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}

	sale, err := s.saleSvc.CreateSale(ctx, &CreateSaleInput{
		UserID:        input.UserID,
		CustomerID:    originalSale.CustomerID,
		VatIncluded:   originalSale.VatIncluded,
		DiscountKind:  input.DiscountKind,
		DiscountValue: input.DiscountValue,
		Payment:       input.Payment,
		CreditApplied: quote.Settlement.CreditApplied.InexactFloat64(),
		Items:         input.NewItems,
	})
	if err != nil {
		return nil, err
	}

	exchange := &entity.Exchange{
		UserID:             input.UserID,
		ReturnID:           ret.ID,
		NewSaleID:          sale.ID,
		ExchangeNo:         s.exchangeSeq.Next(),
		ReturnRefundAmount: ret.RefundAmount,
		NewItemsTotal:      sale.TotalAmount,
		NetDifference:      calc.ToCents(quote.Settlement.NetDifference),
		AdditionalPayment:  calc.ToCents(quote.Settlement.AdditionalPayment),
		RefundIssued:       calc.ToCents(quote.Settlement.RefundIssued),
		CreditApplied:      calc.ToCents(quote.Settlement.CreditApplied),
	}
	if err := s.exchangeRepo.Create(ctx, exchange); err != nil {
		return nil, err
	}

	return s.exchangeRepo.GetByID(ctx, exchange.ID)
}

// GetExchange retrieves an exchange
func (s *ExchangeService) GetExchange(ctx context.Context, id uuid.UUID) (*entity.Exchange, error) {
	exchange, err := s.exchangeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exchange == nil {
		return nil, apperror.NewNotFoundError("Exchange")
	}
	return exchange, nil
}

// ListExchanges lists exchanges for a user
func (s *ExchangeService) ListExchanges(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Exchange], error) {
	exchanges, total, err := s.exchangeRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(exchanges, pag), nil
}

// computeNewTotals runs the replacement items through the sale engine under
// the original sale's tax regime
func (s *ExchangeService) computeNewTotals(input *CreateExchangeInput, vatIncluded bool) (calc.SaleTotals, error) {
	lineItems := make([]calc.LineItem, 0, len(input.NewItems))
	for _, item := range input.NewItems {
		lineItems = append(lineItems, calc.LineItem{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    decimal.NewFromFloat(item.UnitPrice).Round(calc.MoneyPrecision),
			SerialNumber: item.SerialNumber,
		})
	}

	discount := calc.Discount{
		Kind:  input.DiscountKind,
		Value: decimal.NewFromFloat(input.DiscountValue).Round(calc.MoneyPrecision),
	}

	totals, err := calc.ComputeSaleTotals(lineItems, discount, vatIncluded)
	if err != nil {
		return calc.SaleTotals{}, engineError(err)
	}
	return totals, nil
}
