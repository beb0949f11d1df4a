package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmuthomi/tillpoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Expense represents an outgoing recorded by a cashier or manager
type Expense struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Category      string             `gorm:"size:100;not null" json:"category"`
	Description   string             `gorm:"size:255;not null" json:"description"`
	Amount        int64              `gorm:"not null" json:"-"` // Cents
	ExpenseDate   time.Time          `gorm:"type:date;not null;index" json:"expense_date"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20;default:'cash'" json:"payment_method"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON converts the cent amount to a decimal value for API responses
func (e Expense) MarshalJSON() ([]byte, error) {
	type Alias Expense
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(e),
		Amount: float64(e.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
