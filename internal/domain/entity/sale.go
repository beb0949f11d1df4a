package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmuthomi/tillpoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents one checkout transaction. All monetary amounts are
// stored in cents. A sale is created once at checkout completion and is
// only ever mutated for refund processing and due-payment recording.
type Sale struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo  string             `gorm:"size:100;unique;not null" json:"invoice_no"`
	CashierID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"cashier_id"`
	CustomerID *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	SaleDate   time.Time          `gorm:"not null;index" json:"sale_date"`
	SaleType   enum.SaleType      `gorm:"size:20;default:'retail'" json:"sale_type"`
	Status     enum.SaleStatus    `gorm:"size:20;default:'pending';index" json:"status"`

	SubTotal int64 `gorm:"default:0" json:"-"` // Cents; sum of line totals
	Discount int64 `gorm:"default:0" json:"-"` // Cents; header-level discount
	Tax      int64 `gorm:"default:0" json:"-"` // Cents; header-level tax
	Shipping int64 `gorm:"default:0" json:"-"` // Cents
	Total    int64 `gorm:"default:0" json:"-"` // Cents; negative means refund due to customer

	PaymentMethod enum.PaymentMethod `gorm:"size:20;default:'cash'" json:"payment_method"`
	PaymentStatus enum.PaymentStatus `gorm:"size:20;default:'pending'" json:"payment_status"`
	AmountPaid    int64              `gorm:"default:0" json:"-"` // Cents
	Change        int64              `gorm:"default:0" json:"-"` // Cents; negative means balance due

	RefundedByID *uuid.UUID `gorm:"type:uuid" json:"refunded_by,omitempty"`
	RefundedAt   *time.Time `json:"refunded_at,omitempty"`
	RefundReason *string    `gorm:"type:text" json:"refund_reason,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Cashier    User       `gorm:"foreignKey:CashierID" json:"-"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	RefundedBy *User      `gorm:"foreignKey:RefundedByID" json:"-"`
	Items      []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON converts cent amounts to decimal values for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SubTotal   float64 `json:"sub_total"`
		Discount   float64 `json:"discount"`
		Tax        float64 `json:"tax"`
		Shipping   float64 `json:"shipping"`
		Total      float64 `json:"total"`
		AmountPaid float64 `json:"amount_paid"`
		Change     float64 `json:"change"`
		BalanceDue float64 `json:"balance_due"`
	}{
		Alias:      Alias(s),
		SubTotal:   float64(s.SubTotal) / 100,
		Discount:   float64(s.Discount) / 100,
		Tax:        float64(s.Tax) / 100,
		Shipping:   float64(s.Shipping) / 100,
		Total:      float64(s.Total) / 100,
		AmountPaid: float64(s.AmountPaid) / 100,
		Change:     float64(s.Change) / 100,
		BalanceDue: float64(s.BalanceDue()) / 100,
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

// BalanceDue returns the outstanding amount in cents, zero when settled.
// Change and balance due are the two signs of the same quantity: a
// negative change means the customer still owes money.
func (s *Sale) BalanceDue() int64 {
	if s.Change >= 0 {
		return 0
	}
	return -s.Change
}

// IsRefund reports whether the sale's total is negative, i.e. money
// flows back to the customer rather than being collected.
func (s *Sale) IsRefund() bool {
	return s.Total < 0
}

// SaleItem represents a line item in a sale. Quantity may be negative
// for return lines; the line total then carries the same sign.
type SaleItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Cents
	Discount  int64          `gorm:"default:0" json:"-"` // Cents
	Tax       int64          `gorm:"default:0" json:"-"` // Cents
	Total     int64          `gorm:"not null" json:"-"`  // Cents
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON converts cent amounts to decimal values for API responses
func (i SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Discount  float64 `json:"discount"`
		Tax       float64 `json:"tax"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		Discount:  float64(i.Discount) / 100,
		Tax:       float64(i.Tax) / 100,
		Total:     float64(i.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// InvoiceCounter holds the per-day sequence used for invoice numbering.
// Day is the calendar date formatted as YYYYMMDD. The sequence is only
// ever advanced through an atomic upsert-increment, never read-then-write.
type InvoiceCounter struct {
	Day      string `gorm:"size:8;primary_key"`
	Sequence int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for the InvoiceCounter model
func (InvoiceCounter) TableName() string {
	return "invoice_counters"
}
