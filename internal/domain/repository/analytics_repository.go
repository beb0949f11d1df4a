package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	ProductCode  string
	QuantitySold int
	Revenue      int64 // Cents
}

// CategorySalesResult represents sales aggregated by category
type CategorySalesResult struct {
	CategoryID   uuid.UUID
	CategoryName string
	TotalSales   int64 // Cents
	SaleCount    int
	Percentage   float64
}

// TopCustomerResult represents a customer's spending data
type TopCustomerResult struct {
	CustomerID   uuid.UUID
	CustomerName string
	TotalSpent   int64 // Cents
	SaleCount    int
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date    time.Time
	Revenue int64 // Cents
	Profit  int64 // Cents
}

// PaymentMethodResult represents takings aggregated by payment method
type PaymentMethodResult struct {
	PaymentMethod string
	Total         int64 // Cents
	SaleCount     int
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetTopProducts returns top selling products by revenue
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)

	// GetSalesByCategory returns sales aggregated by category with percentages
	GetSalesByCategory(ctx context.Context) ([]CategorySalesResult, error)

	// GetTopCustomers returns top customers by total spending
	GetTopCustomers(ctx context.Context, limit int) ([]TopCustomerResult, error)

	// GetDailySales returns daily sales data for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetSalesByPaymentMethod returns takings by payment method for the period
	GetSalesByPaymentMethod(ctx context.Context, start, end time.Time) ([]PaymentMethodResult, error)

	// GetTotalRevenue returns total revenue (cents) from completed sales
	GetTotalRevenue(ctx context.Context) (int64, error)

	// GetMonthlyRevenue returns revenue (cents) for the current month
	GetMonthlyRevenue(ctx context.Context) (int64, error)
}
