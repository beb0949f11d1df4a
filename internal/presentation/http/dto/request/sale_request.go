package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItemRequest represents one line of a checkout. Quantity must be
// non-zero; a negative quantity marks a return line.
type SaleItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"` // Zero falls back to the catalog price
	Discount  decimal.Decimal `json:"discount"`
	TaxRate   int             `json:"tax_rate" binding:"min=0,max=100"`
}

// CreateSaleRequest represents a checkout request
type CreateSaleRequest struct {
	CustomerID    *uuid.UUID        `json:"customer_id"`
	SaleType      string            `json:"sale_type" binding:"omitempty,oneof=retail wholesale online"`
	PaymentMethod string            `json:"payment_method" binding:"omitempty,oneof=cash card upi credit bank_transfer"`
	Discount      decimal.Decimal   `json:"discount"`
	Tax           decimal.Decimal   `json:"tax"`
	Shipping      decimal.Decimal   `json:"shipping"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentMethod string `form:"payment_method"`
	SaleType      string `form:"sale_type"`
	CustomerID    string `form:"customer_id"`
	CashierID     string `form:"cashier_id"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
	Cursor        string `form:"cursor"`
	Limit         int    `form:"limit"` // For cursor-based pagination
}

// RefundSaleRequest represents a refund request
type RefundSaleRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

// PayDueRequest represents a due payment on a credit sale
type PayDueRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}
