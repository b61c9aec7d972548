package service

import (
	"context"
	"sync"
	"time"

	"github.com/bottegasoft/bottega-api/internal/domain/entity"
	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/bottegasoft/bottega-api/internal/domain/repository"
	"github.com/bottegasoft/bottega-api/pkg/pagination"
	"github.com/google/uuid"
)

// In-memory repository fakes. Each fake holds its rows behind a mutex and
// copies on read so tests cannot mutate stored state by accident.

type fakeSaleRepo struct {
	mu    sync.Mutex
	sales map[uuid.UUID]*entity.Sale
	items *fakeSaleItemRepo
}

func newFakeSaleRepo(items *fakeSaleItemRepo) *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*entity.Sale), items: items}
}

func (r *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sale, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *fakeSaleRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sale := range r.sales {
		if sale.InvoiceNo == invoiceNo {
			cp := *sale
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := r.GetByID(ctx, id)
	if err != nil || sale == nil {
		return sale, err
	}
	items, err := r.items.GetBySaleID(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

func (r *fakeSaleRepo) List(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Sale
	for _, sale := range r.sales {
		if params.SkipUserFilter || sale.UserID == userID {
			out = append(out, *sale)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sale, ok := r.sales[id]; ok {
		sale.Status = status
	}
	return nil
}

func (r *fakeSaleRepo) SummarizeRange(ctx context.Context, from, to time.Time) (*repository.SaleSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summary := &repository.SaleSummary{}
	for _, sale := range r.sales {
		if sale.SaleDate.Before(from) || sale.SaleDate.After(to) {
			continue
		}
		if sale.Status == enum.SaleStatusCancelled {
			continue
		}
		summary.SaleCount++
		summary.TotalCents += sale.TotalAmount
		summary.TaxCents += sale.TaxAmount
	}
	return summary, nil
}

type fakeSaleItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.SaleItem
}

func newFakeSaleItemRepo() *fakeSaleItemRepo {
	return &fakeSaleItemRepo{items: make(map[uuid.UUID]*entity.SaleItem)}
}

func (r *fakeSaleItemRepo) CreateBatch(ctx context.Context, items []entity.SaleItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		cp := items[i]
		r.items[cp.ID] = &cp
	}
	return nil
}

func (r *fakeSaleItemRepo) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.SaleItem
	for _, item := range r.items {
		if item.SaleID == saleID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeSaleItemRepo) AddReturnedQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[id]; ok {
		item.ReturnedQuantity += quantity
	}
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) put(p *entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.products[p.ID] = &cp
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.put(product)
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *product
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.products {
		if product.Code == code {
			cp := *product
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.put(product)
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, product := range r.products {
		out = append(out, *product)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var failed []uuid.UUID
	for id, qty := range decrements {
		product, ok := r.products[id]
		if !ok || product.Quantity < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, qty := range decrements {
		r.products[id].Quantity -= qty
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, qty := range increments {
		if product, ok := r.products[id]; ok {
			product.Quantity += qty
		}
	}
	return nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *customer
	return &cp, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Customer
	for _, customer := range r.customers {
		out = append(out, *customer)
	}
	return out, int64(len(out)), nil
}

type fakeReturnRepo struct {
	mu      sync.Mutex
	returns map[uuid.UUID]*entity.SaleReturn
	items   *fakeReturnItemRepo
}

func newFakeReturnRepo(items *fakeReturnItemRepo) *fakeReturnRepo {
	return &fakeReturnRepo{returns: make(map[uuid.UUID]*entity.SaleReturn), items: items}
}

func (r *fakeReturnRepo) Create(ctx context.Context, ret *entity.SaleReturn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ret.ID == uuid.Nil {
		ret.ID = uuid.New()
	}
	cp := *ret
	r.returns[ret.ID] = &cp
	return nil
}

func (r *fakeReturnRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret, ok := r.returns[id]
	if !ok {
		return nil, nil
	}
	cp := *ret
	return &cp, nil
}

func (r *fakeReturnRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error) {
	ret, err := r.GetByID(ctx, id)
	if err != nil || ret == nil {
		return ret, err
	}
	items, err := r.items.GetByReturnID(ctx, id)
	if err != nil {
		return nil, err
	}
	ret.Items = items
	return ret, nil
}

func (r *fakeReturnRepo) ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.SaleReturn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.SaleReturn
	for _, ret := range r.returns {
		if ret.SaleID == saleID {
			out = append(out, *ret)
		}
	}
	return out, nil
}

func (r *fakeReturnRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.SaleReturn, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.SaleReturn
	for _, ret := range r.returns {
		if ret.UserID == userID {
			out = append(out, *ret)
		}
	}
	return out, int64(len(out)), nil
}

type fakeReturnItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.SaleReturnItem
}

func newFakeReturnItemRepo() *fakeReturnItemRepo {
	return &fakeReturnItemRepo{items: make(map[uuid.UUID]*entity.SaleReturnItem)}
}

func (r *fakeReturnItemRepo) CreateBatch(ctx context.Context, items []entity.SaleReturnItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		cp := items[i]
		r.items[cp.ID] = &cp
	}
	return nil
}

func (r *fakeReturnItemRepo) GetByReturnID(ctx context.Context, returnID uuid.UUID) ([]entity.SaleReturnItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.SaleReturnItem
	for _, item := range r.items {
		if item.ReturnID == returnID {
			out = append(out, *item)
		}
	}
	return out, nil
}

type fakeExchangeRepo struct {
	mu        sync.Mutex
	exchanges map[uuid.UUID]*entity.Exchange
}

func newFakeExchangeRepo() *fakeExchangeRepo {
	return &fakeExchangeRepo{exchanges: make(map[uuid.UUID]*entity.Exchange)}
}

func (r *fakeExchangeRepo) Create(ctx context.Context, exchange *entity.Exchange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if exchange.ID == uuid.Nil {
		exchange.ID = uuid.New()
	}
	cp := *exchange
	r.exchanges[exchange.ID] = &cp
	return nil
}

func (r *fakeExchangeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Exchange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exchange, ok := r.exchanges[id]
	if !ok {
		return nil, nil
	}
	cp := *exchange
	return &cp, nil
}

func (r *fakeExchangeRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Exchange, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Exchange
	for _, exchange := range r.exchanges {
		if exchange.UserID == userID {
			out = append(out, *exchange)
		}
	}
	return out, int64(len(out)), nil
}
