package repository

import (
	"context"

	"github.com/bottegasoft/bottega-api/internal/domain/entity"
	"github.com/bottegasoft/bottega-api/pkg/pagination"
	"github.com/google/uuid"
)

// ReturnRepository defines the interface for sale return data operations
type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.SaleReturn) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error)
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.SaleReturn, error)
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.SaleReturn, int64, error)
}

// ReturnItemRepository defines the interface for returned line items
type ReturnItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.SaleReturnItem) error
	GetByReturnID(ctx context.Context, returnID uuid.UUID) ([]entity.SaleReturnItem, error)
}

// ExchangeRepository defines the interface for exchange data operations
type ExchangeRepository interface {
	Create(ctx context.Context, exchange *entity.Exchange) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Exchange, error)
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Exchange, int64, error)
}
