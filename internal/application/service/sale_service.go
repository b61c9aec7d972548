package service

import (
	"context"
	"fmt"
	"time"

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

// SaleService handles sale composition, submission and redisplay
type SaleService struct {
	saleRepo     repository.SaleRepository
	saleItemRepo repository.SaleItemRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	invoiceSeq   sequence.Generator
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	invoiceSeq sequence.Generator,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		saleItemRepo: saleItemRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		invoiceSeq:   invoiceSeq,
	}
}

// SaleItemInput represents one line item of a sale being composed
type SaleItemInput struct {
	ProductID    uuid.UUID
	Quantity     int
	UnitPrice    float64
	SerialNumber string
}

// PaymentInput represents the payment split chosen at submission
type PaymentInput struct {
	Type         enum.PaymentType
	Channel      enum.PaymentChannel // channel settling a single payment
	Cash         float64
	Card         float64
	BankTransfer float64
}

func (p PaymentInput) split() calc.PaymentSplit {
	return calc.PaymentSplit{
		Cash:         decimal.NewFromFloat(p.Cash).Round(calc.MoneyPrecision),
		Card:         decimal.NewFromFloat(p.Card).Round(calc.MoneyPrecision),
		BankTransfer: decimal.NewFromFloat(p.BankTransfer).Round(calc.MoneyPrecision),
	}
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	UserID        uuid.UUID
	CustomerID    *uuid.UUID
	VatIncluded   bool
	DiscountKind  enum.DiscountKind
	DiscountValue float64
	Payment       PaymentInput
	// CreditApplied is return credit consumed by this sale (exchanges);
	// the payment split must cover the total minus this credit.
	CreditApplied float64
	Items         []SaleItemInput
}

// CreateSale validates, computes and persists a new sale.
// Totals are computed top-down by the engine on the final inputs; nothing is
// patched incrementally.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	// Validate customer if provided
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	lineItems := make([]calc.LineItem, 0, len(input.Items))
	stockDecrements := make(map[uuid.UUID]int)
	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if product.Serialized && item.SerialNumber == "" {
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("Product %s is serialized and requires a serial number", product.Name))
		}

		lineItems = append(lineItems, calc.LineItem{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    decimal.NewFromFloat(item.UnitPrice).Round(calc.MoneyPrecision),
			SerialNumber: item.SerialNumber,
		})
		stockDecrements[product.ID] += item.Quantity
	}

	discount := calc.Discount{
		Kind:  input.DiscountKind,
		Value: decimal.NewFromFloat(input.DiscountValue).Round(calc.MoneyPrecision),
	}

	totals, err := calc.ComputeSaleTotals(lineItems, discount, input.VatIncluded)
	if err != nil {
		return nil, engineError(err)
	}

	// The payment split covers the total minus any return credit applied
	credit := decimal.NewFromFloat(input.CreditApplied).Round(calc.MoneyPrecision)
	due := totals.FinalTotal.Sub(credit)
	if due.IsNegative() {
		due = decimal.Zero
	}
	split, err := calc.ReconcilePayment(due, input.Payment.Type, input.Payment.Channel, input.Payment.split())
	if err != nil {
		return nil, engineError(err)
	}

	// Atomically decrement stock; if any product has insufficient stock
	// the entire operation fails
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewAppError(400, fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	sale := &entity.Sale{
		UserID:             input.UserID,
		CustomerID:         input.CustomerID,
		InvoiceNo:          s.invoiceSeq.Next(),
		SaleDate:           time.Now(),
		Status:             enum.SaleStatusCompleted,
		VatIncluded:        input.VatIncluded,
		DiscountKind:       input.DiscountKind,
		DiscountValue:      calc.ToCents(discount.Value),
		PaymentType:        input.Payment.Type,
		CashAmount:         calc.ToCents(split.Cash),
		CardAmount:         calc.ToCents(split.Card),
		BankTransferAmount: calc.ToCents(split.BankTransfer),
		SubTotal:           calc.ToCents(totals.Subtotal),
		DiscountAmount:     calc.ToCents(totals.DiscountAmount),
		TaxAmount:          calc.ToCents(totals.TaxAmount),
		TotalAmount:        calc.ToCents(totals.FinalTotal),
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		// Stock was already decremented; restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	saleItems := make([]entity.SaleItem, 0, len(lineItems))
	for _, li := range lineItems {
		var serial *string
		if li.SerialNumber != "" {
			sn := li.SerialNumber
			serial = &sn
		}
		saleItems = append(saleItems, entity.SaleItem{
			SaleID:       sale.ID,
			ProductID:    li.ProductID,
			Quantity:     li.Quantity,
			UnitPrice:    calc.ToCents(li.UnitPrice),
			Total:        calc.ToCents(calc.LineTotal(li)),
			SerialNumber: serial,
		})
	}

	if err := s.saleItemRepo.CreateBatch(ctx, saleItems); err != nil {
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// GetSale retrieves a sale and reconciles its persisted totals against a
// recomputation. Drift is reported as a warning on the response, never as an
// error: the stored numbers remain authoritative.
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, *calc.ReconciliationReport, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, apperror.NewNotFoundError("Sale")
	}

	report := calc.ValidateReceipt(persistedSale(sale))
	return sale, &report, nil
}

// ValidateReceipt recomputes a persisted sale's totals and reports drift
func (s *SaleService) ValidateReceipt(ctx context.Context, id uuid.UUID) (*calc.ReconciliationReport, error) {
	_, report, err := s.GetSale(ctx, id)
	return report, err
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// CancelSale cancels a sale and restores stock
func (s *SaleService) CancelSale(ctx context.Context, userID, saleID uuid.UUID) error {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}
	if sale.UserID != userID {
		return apperror.ErrForbidden
	}
	if sale.Status == enum.SaleStatusCancelled {
		return apperror.NewAppError(400, "Sale is already cancelled")
	}
	if sale.Status == enum.SaleStatusPartiallyReturned || sale.Status == enum.SaleStatusRefunded {
		return apperror.NewAppError(400, "Sale with returns cannot be cancelled")
	}

	stockIncrements := make(map[uuid.UUID]int)
	for _, item := range sale.Items {
		stockIncrements[item.ProductID] += item.Quantity
	}
	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return err
	}

	return s.saleRepo.UpdateStatus(ctx, saleID, enum.SaleStatusCancelled)
}

// RemainderInput represents the "pay the remainder" helper input
type RemainderInput struct {
	TotalAmount float64
	Channel     enum.PaymentChannel
	Payment     PaymentInput
}

// RemainderResult is the filled payment split
type RemainderResult struct {
	Cash         float64 `json:"cash"`
	Card         float64 `json:"card"`
	BankTransfer float64 `json:"bank_transfer"`
}

// FillRemainder assigns the unpaid remainder of a total to the requested
// channel, clamped to [0, total]
func (s *SaleService) FillRemainder(input *RemainderInput) *RemainderResult {
	total := decimal.NewFromFloat(input.TotalAmount).Round(calc.MoneyPrecision)
	split := calc.FillRemainder(total, input.Payment.split(), input.Channel)
	return &RemainderResult{
		Cash:         split.Cash.InexactFloat64(),
		Card:         split.Card.InexactFloat64(),
		BankTransfer: split.BankTransfer.InexactFloat64(),
	}
}

// persistedSale converts a stored sale into the engine's validator input
func persistedSale(sale *entity.Sale) calc.PersistedSale {
	items := make([]calc.LineItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		serial := ""
		if item.SerialNumber != nil {
			serial = *item.SerialNumber
		}
		items = append(items, calc.LineItem{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    calc.FromCents(item.UnitPrice),
			SerialNumber: serial,
		})
	}

	return calc.PersistedSale{
		Items: items,
		Discount: calc.Discount{
			Kind:  sale.DiscountKind,
			Value: calc.FromCents(sale.DiscountValue),
		},
		VatIncluded:    sale.VatIncluded,
		Subtotal:       calc.FromCents(sale.SubTotal),
		DiscountAmount: calc.FromCents(sale.DiscountAmount),
		TaxAmount:      calc.FromCents(sale.TaxAmount),
		TotalAmount:    calc.FromCents(sale.TotalAmount),
	}
}
