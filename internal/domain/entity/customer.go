package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmuthomi/tillpoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Tier promotion thresholds on cumulative spend, in cents. A customer is
// promoted when totalSpent meets a threshold; downgrades never happen
// automatically.
const (
	TierThresholdVIP       int64 = 100_000_00 // 100,000.00
	TierThresholdWholesale int64 = 500_000_00 // 500,000.00
)

// LoyaltyEarnDivisor converts spend to points: one point per 100.00 spent.
const LoyaltyEarnDivisor int64 = 100_00

// Customer represents a customer with a cumulative commerce profile.
// The profile fields (loyalty points, spend, order count) are only
// mutated through RecordPurchase and the loyalty operations so the
// averageOrderValue invariant holds.
type Customer struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	Email        *string           `gorm:"size:255" json:"email,omitempty"`
	Phone        *string           `gorm:"size:50" json:"phone,omitempty"`
	Address      *string           `gorm:"type:text" json:"address,omitempty"`
	CustomerType enum.CustomerType `gorm:"size:20;default:'regular'" json:"customer_type"`

	LoyaltyPoints int64      `gorm:"default:0" json:"loyalty_points"`
	TotalSpent    int64      `gorm:"default:0" json:"-"` // Cents
	TotalOrders   int64      `gorm:"default:0" json:"total_orders"`
	AverageOrder  int64      `gorm:"column:average_order_value;default:0" json:"-"` // Cents
	LastPurchase  *time.Time `json:"last_purchase,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Sales []Sale `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON converts cent amounts to decimal values for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		TotalSpent   float64 `json:"total_spent"`
		AverageOrder float64 `json:"average_order_value"`
	}{
		Alias:        Alias(c),
		TotalSpent:   float64(c.TotalSpent) / 100,
		AverageOrder: float64(c.AverageOrder) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// RecordPurchase applies one completed sale of orderValue cents to the
// customer's cumulative profile: order count, spend, recomputed average,
// earned loyalty points, last purchase timestamp, and tier promotion.
func (c *Customer) RecordPurchase(orderValue int64, at time.Time) {
	c.TotalOrders++
	c.TotalSpent += orderValue
	c.AverageOrder = c.TotalSpent / c.TotalOrders
	c.LoyaltyPoints += PointsEarned(orderValue)
	c.LastPurchase = &at

	if promoted := TierFor(c.TotalSpent); promoted.Rank() > c.CustomerType.Rank() {
		c.CustomerType = promoted
	}
}

// PointsEarned returns the loyalty points earned for a spend in cents.
// Negative order values (refunds) earn nothing.
func PointsEarned(orderValue int64) int64 {
	if orderValue <= 0 {
		return 0
	}
	return orderValue / LoyaltyEarnDivisor
}

// TierFor returns the tier a cumulative spend qualifies for.
func TierFor(totalSpent int64) enum.CustomerType {
	switch {
	case totalSpent >= TierThresholdWholesale:
		return enum.CustomerTypeWholesale
	case totalSpent >= TierThresholdVIP:
		return enum.CustomerTypeVIP
	default:
		return enum.CustomerTypeRegular
	}
}
