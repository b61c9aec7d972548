package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exchange links a return to the replacement sale and records the net
// settlement between the two. Exactly one of AdditionalPayment and
// RefundIssued is non-zero unless the exchange is even.
type Exchange struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ReturnID   uuid.UUID `gorm:"type:uuid;not null;index" json:"return_id"`
	NewSaleID  uuid.UUID `gorm:"type:uuid;not null;index" json:"new_sale_id"`
	ExchangeNo string    `gorm:"size:100;unique;not null" json:"exchange_no"`

	ReturnRefundAmount int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	NewItemsTotal      int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	NetDifference      int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	AdditionalPayment  int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	RefundIssued       int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreditApplied      int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User    User       `gorm:"foreignKey:UserID" json:"-"`
	Return  SaleReturn `gorm:"foreignKey:ReturnID" json:"return,omitempty"`
	NewSale Sale       `gorm:"foreignKey:NewSaleID" json:"new_sale,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e Exchange) MarshalJSON() ([]byte, error) {
	type Alias Exchange
	return json.Marshal(&struct {
		Alias
		ReturnRefundAmount float64 `json:"return_refund_amount"`
		NewItemsTotal      float64 `json:"new_items_total"`
		NetDifference      float64 `json:"net_difference"`
		AdditionalPayment  float64 `json:"additional_payment"`
		RefundIssued       float64 `json:"refund_issued"`
		CreditApplied      float64 `json:"credit_applied"`
	}{
		Alias:              Alias(e),
		ReturnRefundAmount: float64(e.ReturnRefundAmount) / 100,
		NewItemsTotal:      float64(e.NewItemsTotal) / 100,
		NetDifference:      float64(e.NetDifference) / 100,
		AdditionalPayment:  float64(e.AdditionalPayment) / 100,
		RefundIssued:       float64(e.RefundIssued) / 100,
		CreditApplied:      float64(e.CreditApplied) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new exchange
func (e *Exchange) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Exchange model
func (Exchange) TableName() string {
	return "exchanges"
}
