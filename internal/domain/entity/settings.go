package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreSettings holds the store profile used on receipts and reports.
// One row per installation; GetOrCreate semantics in the repository.
type StoreSettings struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StoreName     string         `gorm:"size:255;default:'TillPoint Store'" json:"store_name"`
	Address       *string        `gorm:"type:text" json:"address,omitempty"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	TaxID         *string        `gorm:"size:50" json:"tax_id,omitempty"`
	Currency      string         `gorm:"size:10;default:'KES'" json:"currency"`
	ReceiptFooter string         `gorm:"size:255;default:'Thank you for your business!'" json:"receipt_footer"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *StoreSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoreSettings model
func (StoreSettings) TableName() string {
	return "store_settings"
}
