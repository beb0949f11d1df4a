package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jmuthomi/tillpoint-api/internal/domain/repository"
	"github.com/jmuthomi/tillpoint-api/pkg/export"
	"github.com/jmuthomi/tillpoint-api/pkg/pagination"
)

// reportPageSize caps how many rows a single export fetches per page.
const reportPageSize = 500

// ReportService produces CSV exports for back-office use
type ReportService struct {
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository
	productRepo repository.ProductRepository
}

// NewReportService creates a new report service
func NewReportService(
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	productRepo repository.ProductRepository,
) *ReportService {
	return &ReportService{
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
		productRepo: productRepo,
	}
}

// ExportSalesCSV writes a CSV of sales in the period to w
func (s *ReportService) ExportSalesCSV(ctx context.Context, w io.Writer, start, end *time.Time) error {
	table := export.Table{
		Headers: []string{
			"Invoice No", "Date", "Status", "Payment Method", "Payment Status",
			"Customer", "Sub Total", "Discount", "Tax", "Shipping", "Total",
			"Paid", "Balance Due",
		},
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: reportPageSize},
		StartDate:  start,
		EndDate:    end,
		SortBy:     "sale_date",
		SortOrder:  "asc",
	}

	for {
		sales, total, err := s.saleRepo.List(ctx, params)
		if err != nil {
			return err
		}

		for _, sale := range sales {
			customer := ""
			if sale.Customer != nil {
				customer = sale.Customer.Name
			}
			table.Rows = append(table.Rows, []string{
				sale.InvoiceNo,
				sale.SaleDate.Format("2006-01-02 15:04"),
				sale.Status.String(),
				sale.PaymentMethod.String(),
				sale.PaymentStatus.String(),
				customer,
				export.Money(sale.SubTotal),
				export.Money(sale.Discount),
				export.Money(sale.Tax),
				export.Money(sale.Shipping),
				export.Money(sale.Total),
				export.Money(sale.AmountPaid),
				export.Money(sale.BalanceDue()),
			})
		}

		if int64(params.Pagination.Page*params.Pagination.PerPage) >= total {
			break
		}
		params.Pagination.Page++
	}

	return export.WriteCSV(w, table)
}

// ExportExpensesCSV writes a CSV of expenses in the period to w
func (s *ReportService) ExportExpensesCSV(ctx context.Context, w io.Writer, start, end *time.Time) error {
	table := export.Table{
		Headers: []string{"Date", "Category", "Description", "Payment Method", "Amount"},
	}

	params := &repository.ExpenseFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: reportPageSize},
		StartDate:  start,
		EndDate:    end,
		SortBy:     "expense_date",
		SortOrder:  "asc",
	}

	for {
		expenses, total, err := s.expenseRepo.List(ctx, params)
		if err != nil {
			return err
		}

		for _, expense := range expenses {
			table.Rows = append(table.Rows, []string{
				expense.ExpenseDate.Format("2006-01-02"),
				expense.Category,
				expense.Description,
				expense.PaymentMethod.String(),
				export.Money(expense.Amount),
			})
		}

		if int64(params.Pagination.Page*params.Pagination.PerPage) >= total {
			break
		}
		params.Pagination.Page++
	}

	return export.WriteCSV(w, table)
}

// ExportInventoryCSV writes a CSV snapshot of the product catalog to w
func (s *ReportService) ExportInventoryCSV(ctx context.Context, w io.Writer) error {
	table := export.Table{
		Headers: []string{
			"Code", "Name", "Category", "Quantity", "Alert Level",
			"Buying Price", "Selling Price", "Stock Value",
		},
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: reportPageSize},
		SortBy:     "name",
		SortOrder:  "asc",
	}

	for {
		products, total, err := s.productRepo.List(ctx, params)
		if err != nil {
			return err
		}

		for _, product := range products {
			category := ""
			if product.Category != nil {
				category = product.Category.Name
			}
			table.Rows = append(table.Rows, []string{
				product.Code,
				product.Name,
				category,
				strconv.Itoa(product.Quantity),
				strconv.Itoa(product.QuantityAlert),
				export.Money(product.BuyingPrice),
				export.Money(product.SellingPrice),
				export.Money(product.BuyingPrice * int64(product.Quantity)),
			})
		}

		if int64(params.Pagination.Page*params.Pagination.PerPage) >= total {
			break
		}
		params.Pagination.Page++
	}

	return export.WriteCSV(w, table)
}

// ExportFilename builds a dated attachment name for a report
func ExportFilename(report string) string {
	return fmt.Sprintf("%s-%s.csv", report, time.Now().Format("20060102"))
}
