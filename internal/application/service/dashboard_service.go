package service

import (
	"context"
	"time"

	"github.com/jmuthomi/tillpoint-api/internal/domain/enum"
	"github.com/jmuthomi/tillpoint-api/internal/domain/repository"
	"github.com/jmuthomi/tillpoint-api/pkg/pagination"
)

// DashboardService aggregates store-wide statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	saleRepo      repository.SaleRepository
	purchaseRepo  repository.PurchaseRepository
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
	expenseRepo   repository.ExpenseRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	expenseRepo repository.ExpenseRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		saleRepo:      saleRepo,
		purchaseRepo:  purchaseRepo,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		expenseRepo:   expenseRepo,
	}
}

// DashboardStats represents dashboard statistics. Monetary values are
// decimal amounts, converted from cents at this boundary.
type DashboardStats struct {
	TotalCustomers   int64   `json:"total_customers"`
	TotalProducts    int64   `json:"total_products"`
	TotalSales       int64   `json:"total_sales"`
	TotalPurchases   int64   `json:"total_purchases"`
	TotalRevenue     float64 `json:"total_revenue"`
	MonthlyRevenue   float64 `json:"monthly_revenue"`
	MonthlyExpenses  float64 `json:"monthly_expenses"`
	LowStockCount    int64   `json:"low_stock_count"`
	PendingPurchases int64   `json:"pending_purchases"`
	RefundCount      int64   `json:"refund_count"`
	OutstandingDue   float64 `json:"outstanding_due"`

	DailySalesData    []DailySalesPoint    `json:"daily_sales_data"`
	CategorySalesData []CategorySalesPoint `json:"category_sales_data"`
	TopProducts       []TopProductPoint    `json:"top_products"`
	TopCustomers      []TopCustomerPoint   `json:"top_customers"`
	PaymentBreakdown  []PaymentMethodPoint `json:"payment_breakdown"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// CategorySalesPoint represents sales by category
type CategorySalesPoint struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	SaleCount  int     `json:"sale_count"`
	Percentage float64 `json:"percentage"`
}

// TopProductPoint represents a top selling product
type TopProductPoint struct {
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// TopCustomerPoint represents a top spending customer
type TopCustomerPoint struct {
	Name       string  `json:"name"`
	TotalSpent float64 `json:"total_spent"`
	SaleCount  int     `json:"sale_count"`
}

// PaymentMethodPoint represents takings by payment method
type PaymentMethodPoint struct {
	Method    string  `json:"method"`
	Total     float64 `json:"total"`
	SaleCount int     `json:"sale_count"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	countParams := pagination.DefaultPagination()
	countParams.PerPage = 1 // Only the count matters

	_, customerCount, err := s.customerRepo.List(ctx, countParams, "")
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = customerCount

	_, productCount, err := s.productRepo.List(ctx, &repository.ProductFilterParams{Pagination: countParams})
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = productCount

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = int64(len(lowStock))

	saleSummary, err := s.saleRepo.Summarize(ctx, &repository.SaleFilterParams{Pagination: countParams})
	if err != nil {
		return nil, err
	}
	stats.TotalSales = saleSummary.SaleCount
	stats.RefundCount = saleSummary.RefundCount
	stats.OutstandingDue = float64(saleSummary.TotalDue) / 100

	_, purchaseCount, err := s.purchaseRepo.List(ctx, &repository.PurchaseFilterParams{Pagination: countParams})
	if err != nil {
		return nil, err
	}
	stats.TotalPurchases = purchaseCount

	pendingStatus := enum.PurchaseStatusPending
	_, pendingCount, err := s.purchaseRepo.List(ctx, &repository.PurchaseFilterParams{
		Pagination: countParams,
		Status:     &pendingStatus,
	})
	if err != nil {
		return nil, err
	}
	stats.PendingPurchases = pendingCount

	totalRevenue, err := s.analyticsRepo.GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = float64(totalRevenue) / 100

	monthlyRevenue, err := s.analyticsRepo.GetMonthlyRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.MonthlyRevenue = float64(monthlyRevenue) / 100

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthlyExpenses, err := s.expenseRepo.TotalForPeriod(ctx, startOfMonth, now)
	if err != nil {
		return nil, err
	}
	stats.MonthlyExpenses = float64(monthlyExpenses) / 100

	dailySales, err := s.analyticsRepo.GetDailySales(ctx, 7)
	if err != nil {
		return nil, err
	}
	stats.DailySalesData = make([]DailySalesPoint, 0, len(dailySales))
	for _, d := range dailySales {
		stats.DailySalesData = append(stats.DailySalesData, DailySalesPoint{
			Date:    d.Date.Format("Jan 02"),
			Revenue: float64(d.Revenue) / 100,
			Profit:  float64(d.Profit) / 100,
		})
	}

	categorySales, err := s.analyticsRepo.GetSalesByCategory(ctx)
	if err != nil {
		return nil, err
	}
	stats.CategorySalesData = make([]CategorySalesPoint, 0, len(categorySales))
	for _, c := range categorySales {
		stats.CategorySalesData = append(stats.CategorySalesData, CategorySalesPoint{
			Category:   c.CategoryName,
			Amount:     float64(c.TotalSales) / 100,
			SaleCount:  c.SaleCount,
			Percentage: c.Percentage,
		})
	}

	topProducts, err := s.analyticsRepo.GetTopProducts(ctx, 5)
	if err != nil {
		return nil, err
	}
	stats.TopProducts = make([]TopProductPoint, 0, len(topProducts))
	for _, p := range topProducts {
		stats.TopProducts = append(stats.TopProducts, TopProductPoint{
			Name:         p.ProductName,
			Code:         p.ProductCode,
			QuantitySold: p.QuantitySold,
			Revenue:      float64(p.Revenue) / 100,
		})
	}

	topCustomers, err := s.analyticsRepo.GetTopCustomers(ctx, 5)
	if err != nil {
		return nil, err
	}
	stats.TopCustomers = make([]TopCustomerPoint, 0, len(topCustomers))
	for _, c := range topCustomers {
		stats.TopCustomers = append(stats.TopCustomers, TopCustomerPoint{
			Name:       c.CustomerName,
			TotalSpent: float64(c.TotalSpent) / 100,
			SaleCount:  c.SaleCount,
		})
	}

	paymentBreakdown, err := s.analyticsRepo.GetSalesByPaymentMethod(ctx, startOfMonth, now)
	if err != nil {
		return nil, err
	}
	stats.PaymentBreakdown = make([]PaymentMethodPoint, 0, len(paymentBreakdown))
	for _, p := range paymentBreakdown {
		stats.PaymentBreakdown = append(stats.PaymentBreakdown, PaymentMethodPoint{
			Method:    p.PaymentMethod,
			Total:     float64(p.Total) / 100,
			SaleCount: p.SaleCount,
		})
	}

	return stats, nil
}
