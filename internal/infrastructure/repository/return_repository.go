package repository

import (
	"context"
	"errors"

	"github.com/bottegasoft/bottega-api/internal/domain/entity"
	domainRepo "github.com/bottegasoft/bottega-api/internal/domain/repository"
	"github.com/bottegasoft/bottega-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type returnRepository struct {
	db *gorm.DB
}

// NewReturnRepository creates a new return repository
func NewReturnRepository(db *gorm.DB) domainRepo.ReturnRepository {
	return &returnRepository{db: db}
}

func (r *returnRepository) Create(ctx context.Context, ret *entity.SaleReturn) error {
	return r.db.WithContext(ctx).Omit("Items", "Sale", "User").Create(ret).Error
}

func (r *returnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error) {
	var ret entity.SaleReturn
	err := r.db.WithContext(ctx).First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *returnRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error) {
	var ret entity.SaleReturn
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *returnRepository) ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.SaleReturn, error) {
	var returns []entity.SaleReturn
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("return_date DESC").
		Find(&returns).Error
	return returns, err
}

func (r *returnRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.SaleReturn, int64, error) {
	var returns []entity.SaleReturn
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SaleReturn{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("return_date DESC").
		Find(&returns).Error

	return returns, total, err
}

type returnItemRepository struct {
	db *gorm.DB
}

// NewReturnItemRepository creates a new return item repository
func NewReturnItemRepository(db *gorm.DB) domainRepo.ReturnItemRepository {
	return &returnItemRepository{db: db}
}

func (r *returnItemRepository) CreateBatch(ctx context.Context, items []entity.SaleReturnItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Return", "SaleItem").Create(&items).Error
}

func (r *returnItemRepository) GetByReturnID(ctx context.Context, returnID uuid.UUID) ([]entity.SaleReturnItem, error) {
	var items []entity.SaleReturnItem
	err := r.db.WithContext(ctx).
		Where("return_id = ?", returnID).
		Find(&items).Error
	return items, err
}

type exchangeRepository struct {
	db *gorm.DB
}

// NewExchangeRepository creates a new exchange repository
func NewExchangeRepository(db *gorm.DB) domainRepo.ExchangeRepository {
	return &exchangeRepository{db: db}
}

func (r *exchangeRepository) Create(ctx context.Context, exchange *entity.Exchange) error {
	return r.db.WithContext(ctx).Omit("Return", "NewSale", "User").Create(exchange).Error
}

func (r *exchangeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Exchange, error) {
	var exchange entity.Exchange
	err := r.db.WithContext(ctx).
		Preload("Return").Preload("NewSale").
		First(&exchange, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &exchange, err
}

func (r *exchangeRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Exchange, int64, error) {
	var exchanges []entity.Exchange
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Exchange{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&exchanges).Error

	return exchanges, total, err
}
