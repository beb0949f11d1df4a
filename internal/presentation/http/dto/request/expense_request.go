package request

import "github.com/shopspring/decimal"

// CreateExpenseRequest represents an expense creation request
type CreateExpenseRequest struct {
	Category      string          `json:"category" binding:"required,min=2,max=100"`
	Description   string          `json:"description" binding:"required,min=2,max=255"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate   string          `json:"expense_date" binding:"omitempty,datetime=2006-01-02"`
	PaymentMethod string          `json:"payment_method" binding:"omitempty,oneof=cash card upi credit bank_transfer"`
	Notes         *string         `json:"notes"`
}

// UpdateExpenseRequest represents an expense update request
type UpdateExpenseRequest struct {
	Category      *string          `json:"category" binding:"omitempty,min=2,max=100"`
	Description   *string          `json:"description" binding:"omitempty,min=2,max=255"`
	Amount        *decimal.Decimal `json:"amount"`
	ExpenseDate   *string          `json:"expense_date" binding:"omitempty,datetime=2006-01-02"`
	PaymentMethod *string          `json:"payment_method" binding:"omitempty,oneof=cash card upi credit bank_transfer"`
	Notes         *string          `json:"notes"`
}

// ExpenseFilterRequest represents expense filter parameters
type ExpenseFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
