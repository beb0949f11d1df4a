package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID    *uuid.UUID      `json:"category_id"`
	Name          string          `json:"name" binding:"required,min=2,max=255"`
	Code          string          `json:"code" binding:"omitempty,max=100"`
	Quantity      int             `json:"quantity" binding:"min=0"`
	QuantityAlert int             `json:"quantity_alert" binding:"min=0"`
	BuyingPrice   decimal.Decimal `json:"buying_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	TaxRate       int             `json:"tax_rate" binding:"min=0,max=100"`
	Notes         *string         `json:"notes"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID    *uuid.UUID       `json:"category_id"`
	Name          *string          `json:"name" binding:"omitempty,min=2,max=255"`
	QuantityAlert *int             `json:"quantity_alert" binding:"omitempty,min=0"`
	BuyingPrice   *decimal.Decimal `json:"buying_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	TaxRate       *int             `json:"tax_rate" binding:"omitempty,min=0,max=100"`
	Notes         *string          `json:"notes"`
}

// UpdateStockRequest represents a stocktake correction request
type UpdateStockRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Cursor     string `form:"cursor"`
	Limit      int    `form:"limit"` // For cursor-based pagination
}

// CategoryRequest represents a category create or update request
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}
