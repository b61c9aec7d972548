package entity

import (
	"encoding/json"
	"time"

	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleReturn represents a customer return against a persisted sale
type SaleReturn struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID       uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CreditNoteNo string    `gorm:"size:100;unique;not null" json:"credit_note_no"`
	ReturnDate   time.Time `gorm:"not null" json:"return_date"`

	OriginalAmount int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	RestockingFee  int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	RefundAmount   int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale  Sale             `gorm:"foreignKey:SaleID" json:"-"`
	User  User             `gorm:"foreignKey:UserID" json:"-"`
	Items []SaleReturnItem `gorm:"foreignKey:ReturnID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r SaleReturn) MarshalJSON() ([]byte, error) {
	type Alias SaleReturn
	return json.Marshal(&struct {
		Alias
		OriginalAmount float64 `json:"original_amount"`
		RestockingFee  float64 `json:"restocking_fee"`
		RefundAmount   float64 `json:"refund_amount"`
	}{
		Alias:          Alias(r),
		OriginalAmount: float64(r.OriginalAmount) / 100,
		RestockingFee:  float64(r.RestockingFee) / 100,
		RefundAmount:   float64(r.RefundAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new return
func (r *SaleReturn) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleReturn model
func (SaleReturn) TableName() string {
	return "sale_returns"
}

// SaleReturnItem represents one returned line item with its computed fee split
type SaleReturnItem struct {
	ID         uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	ReturnID   uuid.UUID            `gorm:"type:uuid;not null;index" json:"return_id"`
	SaleItemID uuid.UUID            `gorm:"type:uuid;not null;index" json:"sale_item_id"`
	Quantity   int                  `gorm:"not null" json:"quantity"`
	Condition  enum.ReturnCondition `gorm:"not null" json:"condition"`

	UnitPrice     int64 `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	ItemTotal     int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	RestockingFee int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	RefundAmount  int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Return   SaleReturn `gorm:"foreignKey:ReturnID" json:"-"`
	SaleItem SaleItem   `gorm:"foreignKey:SaleItemID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ri SaleReturnItem) MarshalJSON() ([]byte, error) {
	type Alias SaleReturnItem
	return json.Marshal(&struct {
		Alias
		UnitPrice     float64 `json:"unit_price"`
		ItemTotal     float64 `json:"item_total"`
		RestockingFee float64 `json:"restocking_fee"`
		RefundAmount  float64 `json:"refund_amount"`
	}{
		Alias:         Alias(ri),
		UnitPrice:     float64(ri.UnitPrice) / 100,
		ItemTotal:     float64(ri.ItemTotal) / 100,
		RestockingFee: float64(ri.RestockingFee) / 100,
		RefundAmount:  float64(ri.RefundAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new return item
func (ri *SaleReturnItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleReturnItem model
func (SaleReturnItem) TableName() string {
	return "sale_return_items"
}
