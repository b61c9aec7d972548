package request

import "github.com/google/uuid"

// ReturnItemRequest represents one line of a return request.
// Condition is one of new, good, damaged or defective.
type ReturnItemRequest struct {
	SaleItemID uuid.UUID `json:"sale_item_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
	Condition  string    `json:"condition" binding:"required,oneof=new good damaged defective"`
}

// CreateReturnRequest represents a return creation request
type CreateReturnRequest struct {
	SaleID uuid.UUID           `json:"sale_id" binding:"required"`
	Items  []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateExchangeRequest represents an exchange creation request: the items
// going back and the replacement items, settled in one operation
type CreateExchangeRequest struct {
	SaleID        uuid.UUID           `json:"sale_id" binding:"required"`
	ReturnItems   []ReturnItemRequest `json:"return_items" binding:"required,min=1,dive"`
	NewItems      []SaleItemRequest   `json:"new_items" binding:"required,min=1,dive"`
	DiscountKind  string              `json:"discount_kind" binding:"omitempty,oneof=none percentage amount"`
	DiscountValue float64             `json:"discount_value" binding:"min=0"`
	Payment       PaymentRequest      `json:"payment" binding:"required"`
}
