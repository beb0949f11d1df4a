package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmuthomi/tillpoint-api/internal/domain/entity"
	"github.com/jmuthomi/tillpoint-api/internal/domain/enum"
	"github.com/jmuthomi/tillpoint-api/internal/domain/repository"
	"github.com/jmuthomi/tillpoint-api/pkg/apperror"
	"github.com/jmuthomi/tillpoint-api/pkg/pagination"
	"github.com/jmuthomi/tillpoint-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService handles the sale transaction lifecycle: checkout,
// refunds, due payments and lookups.
type SaleService struct {
	saleRepo     repository.SaleRepository
	saleItemRepo repository.SaleItemRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	tx           repository.TxManager
	log          *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	tx repository.TxManager,
	log *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		saleItemRepo: saleItemRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		tx:           tx,
		log:          log,
	}
}

// SaleItemInput represents one line of a checkout. Quantity may be
// negative for return lines.
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	TaxRate   decimal.Decimal
}

// CreateSaleInput represents the checkout input
type CreateSaleInput struct {
	CashierID     uuid.UUID
	CustomerID    *uuid.UUID
	SaleType      enum.SaleType
	PaymentMethod enum.PaymentMethod
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Shipping      decimal.Decimal
	AmountPaid    decimal.Decimal
	Items         []SaleItemInput
}

// CreateSale runs the whole checkout in one transaction: stock moves,
// invoice numbering, the sale insert and the customer stat update
// either all commit or none do.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.ErrEmptySale
	}

	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown payment method %q", input.PaymentMethod))
	}

	if input.SaleType == "" {
		input.SaleType = enum.SaleTypeRetail
	}
	if !input.SaleType.IsValid() {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown sale type %q", input.SaleType))
	}

	for _, item := range input.Items {
		if item.Quantity == 0 {
			return nil, apperror.NewBadRequestError("Item quantity cannot be zero")
		}
	}

	var created *entity.Sale

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// Validate customer if provided
		var customer *entity.Customer
		if input.CustomerID != nil {
			var err error
			customer, err = s.customerRepo.GetByID(ctx, *input.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return apperror.NewNotFoundError("Customer")
			}
		}

		// Batch fetch all products in one query (prevents N+1)
		productIDs := make([]uuid.UUID, len(input.Items))
		for i, item := range input.Items {
			productIDs[i] = item.ProductID
		}

		products, err := s.productRepo.GetByIDs(ctx, productIDs)
		if err != nil {
			return err
		}

		productMap := make(map[uuid.UUID]*entity.Product, len(products))
		for i := range products {
			productMap[products[i].ID] = &products[i]
		}

		items := make([]entity.SaleItem, 0, len(input.Items))
		lineTotals := make([]int64, 0, len(input.Items))
		stockDecrements := make(map[uuid.UUID]int)
		stockIncrements := make(map[uuid.UUID]int)

		for _, item := range input.Items {
			product, exists := productMap[item.ProductID]
			if !exists {
				return apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
			}

			unitPrice := item.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = decimal.NewFromInt(product.SellingPrice).Div(cent100)
			}

			amounts := ComputeLine(unitPrice, item.Quantity, item.Discount, item.TaxRate)
			lineTotals = append(lineTotals, amounts.Total)

			items = append(items, entity.SaleItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: amounts.UnitPrice,
				Discount:  amounts.Discount,
				Tax:       amounts.Tax,
				Total:     amounts.Total,
			})

			// Sales consume stock, return lines restore it
			if item.Quantity > 0 {
				stockDecrements[product.ID] += item.Quantity
			} else {
				stockIncrements[product.ID] += -item.Quantity
			}
		}

		// Atomic stock movement; insufficient stock fails the checkout
		if len(stockDecrements) > 0 {
			failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
			if err != nil {
				return err
			}
			if len(failedIDs) > 0 {
				var failedNames []string
				for _, id := range failedIDs {
					if product, exists := productMap[id]; exists {
						failedNames = append(failedNames, product.Name)
					}
				}
				return apperror.NewAppError(422, fmt.Sprintf("Insufficient stock for: %v", failedNames))
			}
		}

		if len(stockIncrements) > 0 {
			if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
				return err
			}
		}

		totals := ComputeSaleTotals(lineTotals, input.Discount, input.Tax, input.Shipping, input.AmountPaid)

		now := time.Now()
		seq, err := s.saleRepo.NextInvoiceSequence(ctx, utils.InvoiceDayKey(now))
		if err != nil {
			return err
		}

		sale := &entity.Sale{
			InvoiceNo:     utils.FormatInvoiceNo(now, seq),
			CashierID:     input.CashierID,
			CustomerID:    input.CustomerID,
			SaleDate:      now,
			SaleType:      input.SaleType,
			Status:        enum.SaleStatusPending,
			SubTotal:      totals.SubTotal,
			Discount:      totals.Discount,
			Tax:           totals.Tax,
			Shipping:      totals.Shipping,
			Total:         totals.Total,
			PaymentMethod: input.PaymentMethod,
			PaymentStatus: enum.PaymentStatusPending,
			AmountPaid:    totals.Paid,
			Change:        totals.Change,
		}

		switch {
		case totals.Change >= 0:
			sale.Status = enum.SaleStatusCompleted
			sale.PaymentStatus = enum.PaymentStatusPaid
		case totals.Paid > 0:
			sale.PaymentStatus = enum.PaymentStatusPartial
		}

		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		for i := range items {
			items[i].SaleID = sale.ID
		}
		if err := s.saleItemRepo.CreateBatch(ctx, items); err != nil {
			return err
		}

		// Update the customer's running stats; tier promotion and
		// loyalty earn happen inside RecordPurchase
		if customer != nil {
			customer.RecordPurchase(totals.Total, now)
			if err := s.customerRepo.Update(ctx, customer); err != nil {
				return err
			}
		}

		created = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("sale created",
		zap.String("invoice_no", created.InvoiceNo),
		zap.Int64("total_cents", created.Total),
		zap.String("payment_method", created.PaymentMethod.String()),
	)

	return s.saleRepo.GetWithItems(ctx, created.ID)
}

// GetSale retrieves a sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetSaleByInvoiceNo retrieves a sale by its invoice number
func (s *SaleService) GetSaleByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// SaleListResult bundles a page of sales with the aggregate summary
// computed over the same filters
type SaleListResult struct {
	Sales   *pagination.PaginatedResult[entity.Sale]
	Summary *repository.SaleSummary
}

// ListSales lists sales with filtering plus the filter-wide summary
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*SaleListResult, error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	summary, err := s.saleRepo.Summarize(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return &SaleListResult{
		Sales:   pagination.NewPaginatedResult(sales, pag),
		Summary: summary,
	}, nil
}

// ListSalesWithCursor lists sales with cursor-based pagination
func (s *SaleService) ListSalesWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Sale], error) {
	sales, err := s.saleRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(sales, params.Cursor.Limit,
		func(s entity.Sale) string { return s.ID.String() },
		func(s entity.Sale) time.Time { return s.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// RefundSale marks a sale refunded and restores the stock its lines
// consumed. Monetary fields stay untouched; only the status and refund
// metadata change, so the sale remains an accurate record of what was
// originally charged.
func (s *SaleService) RefundSale(ctx context.Context, refundedBy, saleID uuid.UUID, reason string) (*entity.Sale, error) {
	var refunded *entity.Sale

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.GetWithItems(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		if sale.Status == enum.SaleStatusRefunded || sale.Status == enum.SaleStatusCancelled {
			return apperror.ErrSaleNotRefundable
		}

		// Restore stock consumed by sold lines; return lines already
		// put stock back at checkout, so they are skipped here
		stockIncrements := make(map[uuid.UUID]int)
		for _, item := range sale.Items {
			if item.Quantity > 0 {
				stockIncrements[item.ProductID] += item.Quantity
			}
		}
		if len(stockIncrements) > 0 {
			if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
				return err
			}
		}

		now := time.Now()
		sale.Status = enum.SaleStatusRefunded
		sale.PaymentStatus = enum.PaymentStatusRefunded
		sale.RefundedByID = &refundedBy
		sale.RefundedAt = &now
		if reason != "" {
			sale.RefundReason = &reason
		}

		if err := s.saleRepo.Update(ctx, sale); err != nil {
			return err
		}

		refunded = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("sale refunded",
		zap.String("invoice_no", refunded.InvoiceNo),
		zap.String("refunded_by", refundedBy.String()),
	)

	return refunded, nil
}

// PayDue records a payment towards a credit sale's outstanding balance
func (s *SaleService) PayDue(ctx context.Context, saleID uuid.UUID, amount decimal.Decimal) (*entity.Sale, error) {
	if !amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	var updated *entity.Sale

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		sale, err := s.saleRepo.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		if sale.BalanceDue() == 0 {
			return apperror.ErrSaleAlreadyPaid
		}

		amountCents := toCents(amount)
		sale.AmountPaid += amountCents
		sale.Change += amountCents

		if sale.Change >= 0 {
			sale.PaymentStatus = enum.PaymentStatusPaid
			sale.Status = enum.SaleStatusCompleted
		} else {
			sale.PaymentStatus = enum.PaymentStatusPartial
		}

		if err := s.saleRepo.Update(ctx, sale); err != nil {
			return err
		}

		updated = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// GetDueSales returns credit sales with an outstanding balance
func (s *SaleService) GetDueSales(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.GetDueSales(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}
