package repository

import (
	"context"
	"time"

	"github.com/jmuthomi/tillpoint-api/internal/domain/entity"
	"github.com/jmuthomi/tillpoint-api/internal/domain/enum"
	domainRepo "github.com/jmuthomi/tillpoint-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// GetTopProducts returns top selling products by revenue from completed sales
func (r *analyticsRepository) GetTopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Table("sale_items").
		Select(`
			sale_items.product_id,
			products.name AS product_name,
			products.code AS product_code,
			SUM(sale_items.quantity) AS quantity_sold,
			SUM(sale_items.total) AS revenue`).
		Joins("JOIN products ON products.id = sale_items.product_id").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.status = ?", enum.SaleStatusCompleted).
		Where("sale_items.deleted_at IS NULL").
		Group("sale_items.product_id, products.name, products.code").
		Order("revenue DESC").
		Limit(limit).
		Scan(&results).Error

	return results, err
}

// GetSalesByCategory returns sales aggregated by category with percentages
func (r *analyticsRepository) GetSalesByCategory(ctx context.Context) ([]domainRepo.CategorySalesResult, error) {
	var results []domainRepo.CategorySalesResult

	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Table("sale_items").
		Select(`
			categories.id AS category_id,
			categories.name AS category_name,
			SUM(sale_items.total) AS total_sales,
			COUNT(DISTINCT sale_items.sale_id) AS sale_count`).
		Joins("JOIN products ON products.id = sale_items.product_id").
		Joins("JOIN categories ON categories.id = products.category_id").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.status = ?", enum.SaleStatusCompleted).
		Where("sale_items.deleted_at IS NULL").
		Group("categories.id, categories.name").
		Order("total_sales DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	var grandTotal int64
	for _, res := range results {
		grandTotal += res.TotalSales
	}
	if grandTotal > 0 {
		for i := range results {
			results[i].Percentage = float64(results[i].TotalSales) / float64(grandTotal) * 100
		}
	}

	return results, nil
}

// GetTopCustomers returns top customers by total spending
func (r *analyticsRepository) GetTopCustomers(ctx context.Context, limit int) ([]domainRepo.TopCustomerResult, error) {
	var results []domainRepo.TopCustomerResult

	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Table("customers").
		Select(`
			customers.id AS customer_id,
			customers.name AS customer_name,
			customers.total_spent,
			customers.total_orders AS sale_count`).
		Where("customers.deleted_at IS NULL").
		Order("customers.total_spent DESC").
		Limit(limit).
		Scan(&results).Error

	return results, err
}

// GetDailySales returns revenue and profit per day for the last N days
func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult

	since := time.Now().AddDate(0, 0, -days)
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Table("sales").
		Select(`
			DATE(sales.sale_date) AS date,
			SUM(sales.total) AS revenue,
			COALESCE(SUM(items.profit), 0) AS profit`).
		Joins(`LEFT JOIN (
			SELECT sale_items.sale_id,
				SUM(sale_items.total - sale_items.quantity * products.buying_price) AS profit
			FROM sale_items
			JOIN products ON products.id = sale_items.product_id
			WHERE sale_items.deleted_at IS NULL
			GROUP BY sale_items.sale_id
		) items ON items.sale_id = sales.id`).
		Where("sales.status = ?", enum.SaleStatusCompleted).
		Where("sales.sale_date >= ?", since).
		Where("sales.deleted_at IS NULL").
		Group("DATE(sales.sale_date)").
		Order("date ASC").
		Scan(&results).Error

	return results, err
}

// GetSalesByPaymentMethod returns takings by payment method for the period
func (r *analyticsRepository) GetSalesByPaymentMethod(ctx context.Context, start, end time.Time) ([]domainRepo.PaymentMethodResult, error) {
	var results []domainRepo.PaymentMethodResult

	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.Sale{}).
		Select(`
			payment_method,
			SUM(total) AS total,
			COUNT(*) AS sale_count`).
		Where("status = ?", enum.SaleStatusCompleted).
		Where("sale_date >= ? AND sale_date <= ?", start, end).
		Group("payment_method").
		Order("total DESC").
		Scan(&results).Error

	return results, err
}

// GetTotalRevenue returns total revenue in cents from completed sales
func (r *analyticsRepository) GetTotalRevenue(ctx context.Context) (int64, error) {
	var revenue int64
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.Sale{}).
		Select("COALESCE(SUM(total), 0)").
		Where("status = ?", enum.SaleStatusCompleted).
		Scan(&revenue).Error
	return revenue, err
}

// GetMonthlyRevenue returns revenue in cents for the current month
func (r *analyticsRepository) GetMonthlyRevenue(ctx context.Context) (int64, error) {
	var revenue int64
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.Sale{}).
		Select("COALESCE(SUM(total), 0)").
		Where("status = ?", enum.SaleStatusCompleted).
		Where("sale_date >= ?", startOfMonth).
		Scan(&revenue).Error
	return revenue, err
}
