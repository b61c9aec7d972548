package request

import "github.com/google/uuid"

// SaleItemRequest represents one line item of a sale request
type SaleItemRequest struct {
	ProductID    uuid.UUID `json:"product_id" binding:"required"`
	Quantity     int       `json:"quantity" binding:"required,min=1"`
	UnitPrice    float64   `json:"unit_price" binding:"min=0"`
	SerialNumber string    `json:"serial_number" binding:"omitempty,max=100"`
}

// PaymentRequest represents the payment split of a sale request.
// Type is "single" or "hybrid"; Channel picks the settling channel for
// single payments.
type PaymentRequest struct {
	Type         string  `json:"type" binding:"required,oneof=single hybrid"`
	Channel      string  `json:"channel" binding:"omitempty,oneof=cash card bank_transfer"`
	Cash         float64 `json:"cash" binding:"min=0"`
	Card         float64 `json:"card" binding:"min=0"`
	BankTransfer float64 `json:"bank_transfer" binding:"min=0"`
}

// CreateSaleRequest represents a sale creation request
type CreateSaleRequest struct {
	CustomerID    *uuid.UUID        `json:"customer_id"`
	VatIncluded   bool              `json:"vat_included"`
	DiscountKind  string            `json:"discount_kind" binding:"omitempty,oneof=none percentage amount"`
	DiscountValue float64           `json:"discount_value" binding:"min=0"`
	Payment       PaymentRequest    `json:"payment" binding:"required"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// RemainderRequest represents a "pay the remainder" helper request
type RemainderRequest struct {
	TotalAmount  float64 `json:"total_amount" binding:"min=0"`
	Channel      string  `json:"channel" binding:"required,oneof=cash card bank_transfer"`
	Cash         float64 `json:"cash" binding:"min=0"`
	Card         float64 `json:"card" binding:"min=0"`
	BankTransfer float64 `json:"bank_transfer" binding:"min=0"`
}
