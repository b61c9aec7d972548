package entity

import (
	"encoding/json"
	"time"

	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale represents a completed sale. Its monetary fields are computed once at
// creation time by the calculation engine and persisted verbatim; redisplay
// recomputes them from the line items only to detect drift, never to overwrite
// the stored values.
type Sale struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID  *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	InvoiceNo   string          `gorm:"size:100;unique;not null" json:"invoice_no"`
	SaleDate    time.Time       `gorm:"not null" json:"sale_date"`
	Status      enum.SaleStatus `gorm:"default:0" json:"status"`
	VatIncluded bool            `gorm:"not null" json:"vat_included"` // Tax regime fixed at creation, never re-inferred

	DiscountKind  enum.DiscountKind `gorm:"default:0" json:"discount_kind"`
	DiscountValue int64             `gorm:"default:0" json:"-"` // Scaled by 100: percent with 2 decimals or cents

	PaymentType        enum.PaymentType `gorm:"default:0" json:"payment_type"`
	CashAmount         int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CardAmount         int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	BankTransferAmount int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON

	SubTotal       int64 `gorm:"default:0" json:"-"` // Tax-exclusive base before discount, in cents
	DiscountAmount int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxAmount      int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TotalAmount    int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		DiscountValue      float64 `json:"discount_value"`
		CashAmount         float64 `json:"cash_amount"`
		CardAmount         float64 `json:"card_amount"`
		BankTransferAmount float64 `json:"bank_transfer_amount"`
		SubTotal           float64 `json:"sub_total"`
		DiscountAmount     float64 `json:"discount_amount"`
		TaxAmount          float64 `json:"tax_amount"`
		TotalAmount        float64 `json:"total_amount"`
	}{
		Alias:              Alias(s),
		DiscountValue:      float64(s.DiscountValue) / 100,
		CashAmount:         float64(s.CashAmount) / 100,
		CardAmount:         float64(s.CardAmount) / 100,
		BankTransferAmount: float64(s.BankTransferAmount) / 100,
		SubTotal:           float64(s.SubTotal) / 100,
		DiscountAmount:     float64(s.DiscountAmount) / 100,
		TaxAmount:          float64(s.TaxAmount) / 100,
		TotalAmount:        float64(s.TotalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// GetTotalDecimal returns the total as a decimal
func (s *Sale) GetTotalDecimal() float64 {
	return float64(s.TotalAmount) / 100
}

// SaleItem represents a line item in a sale. Immutable once the sale is
// persisted; ReturnedQuantity is the only field updated afterwards.
type SaleItem struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity         int            `gorm:"not null" json:"quantity"`
	UnitPrice        int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total            int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	SerialNumber     *string        `gorm:"size:100" json:"serial_number,omitempty"`
	ReturnedQuantity int            `gorm:"default:0" json:"returned_quantity"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(si),
		UnitPrice: float64(si.UnitPrice) / 100,
		Total:     float64(si.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// RemainingQuantity returns how many units can still be returned
func (si *SaleItem) RemainingQuantity() int {
	return si.Quantity - si.ReturnedQuantity
}
