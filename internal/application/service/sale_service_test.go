package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jmuthomi/tillpoint-api/internal/domain/entity"
	"github.com/jmuthomi/tillpoint-api/internal/domain/enum"
	"github.com/jmuthomi/tillpoint-api/internal/domain/repository"
	"github.com/jmuthomi/tillpoint-api/pkg/apperror"
	"github.com/jmuthomi/tillpoint-api/pkg/pagination"
)

// --- Mock implementations ---

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockSaleRepo struct {
	sales   map[uuid.UUID]*entity.Sale
	seq     int64
	created *entity.Sale
	updated *entity.Sale
}

func newMockSaleRepo() *mockSaleRepo {
	return &mockSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (m *mockSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	m.sales[sale.ID] = sale
	m.created = sale
	return nil
}

func (m *mockSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return m.sales[id], nil
}

func (m *mockSaleRepo) GetByInvoiceNo(_ context.Context, invoiceNo string) (*entity.Sale, error) {
	for _, s := range m.sales {
		if s.InvoiceNo == invoiceNo {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockSaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	m.sales[sale.ID] = sale
	m.updated = sale
	return nil
}

func (m *mockSaleRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (m *mockSaleRepo) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}

func (m *mockSaleRepo) ListWithCursor(_ context.Context, _ *repository.SaleCursorFilterParams) ([]entity.Sale, error) {
	return nil, nil
}

func (m *mockSaleRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return m.sales[id], nil
}

func (m *mockSaleRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ enum.SaleStatus) error {
	return nil
}

func (m *mockSaleRepo) Summarize(_ context.Context, _ *repository.SaleFilterParams) (*repository.SaleSummary, error) {
	return &repository.SaleSummary{}, nil
}

func (m *mockSaleRepo) GetDueSales(_ context.Context, _ *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}

func (m *mockSaleRepo) NextInvoiceSequence(_ context.Context, _ string) (int64, error) {
	m.seq++
	return m.seq, nil
}

type mockSaleItemRepo struct {
	batches [][]entity.SaleItem
}

func (m *mockSaleItemRepo) Create(_ context.Context, _ *entity.SaleItem) error { return nil }

func (m *mockSaleItemRepo) CreateBatch(_ context.Context, items []entity.SaleItem) error {
	m.batches = append(m.batches, items)
	return nil
}

func (m *mockSaleItemRepo) GetBySaleID(_ context.Context, _ uuid.UUID) ([]entity.SaleItem, error) {
	return nil, nil
}

func (m *mockSaleItemRepo) Delete(_ context.Context, _ uuid.UUID) error         { return nil }
func (m *mockSaleItemRepo) DeleteBySaleID(_ context.Context, _ uuid.UUID) error { return nil }

type mockProductRepo struct {
	products    map[uuid.UUID]*entity.Product
	failStock   []uuid.UUID
	decremented map[uuid.UUID]int
	incremented map[uuid.UUID]int
}

func newMockProductRepo(products ...*entity.Product) *mockProductRepo {
	m := &mockProductRepo{
		products:    make(map[uuid.UUID]*entity.Product),
		decremented: make(map[uuid.UUID]int),
		incremented: make(map[uuid.UUID]int),
	}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) Create(_ context.Context, _ *entity.Product) error       { return nil }
func (m *mockProductRepo) CreateBatch(_ context.Context, _ []entity.Product) error { return nil }

func (m *mockProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return m.products[id], nil
}

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) GetBySlug(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) GetByCode(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }
func (m *mockProductRepo) Delete(_ context.Context, _ uuid.UUID) error       { return nil }

func (m *mockProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

func (m *mockProductRepo) ListWithCursor(_ context.Context, _ *repository.ProductCursorFilterParams) ([]entity.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) GetLowStock(_ context.Context) ([]entity.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) UpdateQuantity(_ context.Context, _ uuid.UUID, _ int) error { return nil }

func (m *mockProductRepo) AtomicDecrementQuantity(_ context.Context, _ uuid.UUID, _ int) (bool, error) {
	return true, nil
}

func (m *mockProductRepo) AtomicDecrementBatch(_ context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	if len(m.failStock) > 0 {
		return m.failStock, nil
	}
	for id, qty := range decrements {
		m.decremented[id] += qty
	}
	return nil, nil
}

func (m *mockProductRepo) AtomicIncrementBatch(_ context.Context, increments map[uuid.UUID]int) error {
	for id, qty := range increments {
		m.incremented[id] += qty
	}
	return nil
}

type mockCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
	updated   *entity.Customer
}

func newMockCustomerRepo(customers ...*entity.Customer) *mockCustomerRepo {
	m := &mockCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range customers {
		m.customers[c.ID] = c
	}
	return m
}

func (m *mockCustomerRepo) Create(_ context.Context, _ *entity.Customer) error { return nil }

func (m *mockCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return m.customers[id], nil
}

func (m *mockCustomerRepo) GetByEmail(_ context.Context, _ string) (*entity.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepo) GetByPhone(_ context.Context, _ string) (*entity.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	m.customers[customer.ID] = customer
	m.updated = customer
	return nil
}

func (m *mockCustomerRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (m *mockCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

func (m *mockCustomerRepo) ListWithCursor(_ context.Context, _ *pagination.CursorParams, _ string) ([]entity.Customer, error) {
	return nil, nil
}

// --- Helpers ---

func newTestProduct(name string, sellingPriceCents int64, quantity int) *entity.Product {
	return &entity.Product{
		ID:           uuid.New(),
		Name:         name,
		SellingPrice: sellingPriceCents,
		Quantity:     quantity,
	}
}

func newSaleService(t *testing.T, saleRepo *mockSaleRepo, productRepo *mockProductRepo, customerRepo *mockCustomerRepo) (*SaleService, *mockSaleItemRepo) {
	t.Helper()
	itemRepo := &mockSaleItemRepo{}
	svc := NewSaleService(saleRepo, itemRepo, productRepo, customerRepo, passthroughTx{}, zaptest.NewLogger(t))
	return svc, itemRepo
}

// --- Tests ---

func TestCreateSale_EmptyItems(t *testing.T) {
	svc, _ := newSaleService(t, newMockSaleRepo(), newMockProductRepo(), newMockCustomerRepo())

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID:     uuid.New(),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.ErrorIs(t, err, apperror.ErrEmptySale)
}

func TestCreateSale_InvalidPaymentMethod(t *testing.T) {
	svc, _ := newSaleService(t, newMockSaleRepo(), newMockProductRepo(), newMockCustomerRepo())

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID:     uuid.New(),
		PaymentMethod: enum.PaymentMethod("cheque"),
		Items:         []SaleItemInput{{ProductID: uuid.New(), Quantity: 1}},
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestCreateSale_ZeroQuantityItem(t *testing.T) {
	svc, _ := newSaleService(t, newMockSaleRepo(), newMockProductRepo(), newMockCustomerRepo())

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID:     uuid.New(),
		PaymentMethod: enum.PaymentMethodCash,
		Items:         []SaleItemInput{{ProductID: uuid.New(), Quantity: 0}},
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestCreateSale_ProductNotFound(t *testing.T) {
	svc, _ := newSaleService(t, newMockSaleRepo(), newMockProductRepo(), newMockCustomerRepo())

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID:     uuid.New(),
		PaymentMethod: enum.PaymentMethodCash,
		Items:         []SaleItemInput{{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	product := newTestProduct("Soda", 1000, 1)
	productRepo := newMockProductRepo(product)
	productRepo.failStock = []uuid.UUID{product.ID}
	svc, _ := newSaleService(t, newMockSaleRepo(), productRepo, newMockCustomerRepo())

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID:     uuid.New(),
		PaymentMethod: enum.PaymentMethodCash,
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 5}},
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 422, appErr.Code)
	assert.Contains(t, appErr.Message, "Soda")
}

func TestCreateSale_FullyPaidCash(t *testing.T) {
	product := newTestProduct("Soda", 1000, 20)
	saleRepo := newMockSaleRepo()
	productRepo := newMockProductRepo(product)
	svc, itemRepo := newSaleService(t, saleRepo, productRepo, newMockCustomerRepo())

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID:     uuid.New(),
		PaymentMethod: enum.PaymentMethodCash,
		AmountPaid:    decimal.RequireFromString("50.00"),
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 3, UnitPrice: decimal.RequireFromString("10.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
	assert.Equal(t, enum.PaymentStatusPaid, sale.PaymentStatus)
	assert.Equal(t, int64(3000), sale.Total)
	assert.Equal(t, int64(2000), sale.Change)
	assert.Equal(t, int64(0), sale.BalanceDue())
	assert.Regexp(t, `^INV-\d{8}-0001$`, sale.InvoiceNo)

	assert.Equal(t, 3, productRepo.decremented[product.ID])
	require.Len(t, itemRepo.batches, 1)
	assert.Equal(t, sale.ID, itemRepo.batches[0][0].SaleID)
}

func TestCreateSale_PartialPaymentCreditSale(t *testing.T) {
	product := newTestProduct("Flour", 25000, 50)
	svc, _ := newSaleService(t, newMockSaleRepo(), newMockProductRepo(product), newMockCustomerRepo())

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID:     uuid.New(),
		PaymentMethod: enum.PaymentMethodCredit,
		AmountPaid:    decimal.RequireFromString("100.00"),
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("250.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.SaleStatusPending, sale.Status)
	assert.Equal(t, enum.PaymentStatusPartial, sale.PaymentStatus)
	assert.Equal(t, int64(15000), sale.BalanceDue())
}

func TestCreateSale_DefaultsUnitPriceFromProduct(t *testing.T) {
	product := newTestProduct("Soap", 550, 10)
	svc, itemRepo := newSaleService(t, newMockSaleRepo(), newMockProductRepo(product), newMockCustomerRepo())

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID:     uuid.New(),
		PaymentMethod: enum.PaymentMethodCash,
		AmountPaid:    decimal.RequireFromString("11.00"),
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1100), sale.Total)
	require.Len(t, itemRepo.batches, 1)
	assert.Equal(t, int64(550), itemRepo.batches[0][0].UnitPrice)
}

func TestCreateSale_ReturnLineRestoresStock(t *testing.T) {
	sold := newTestProduct("Milk", 600, 30)
	returned := newTestProduct("Bread", 500, 10)
	productRepo := newMockProductRepo(sold, returned)
	svc, _ := newSaleService(t, newMockSaleRepo(), productRepo, newMockCustomerRepo())

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID:     uuid.New(),
		PaymentMethod: enum.PaymentMethodCash,
		AmountPaid:    decimal.RequireFromString("7.00"),
		Items: []SaleItemInput{
			{ProductID: sold.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("6.00")},
			{ProductID: returned.ID, Quantity: -1, UnitPrice: decimal.RequireFromString("5.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(700), sale.Total)
	assert.Equal(t, 2, productRepo.decremented[sold.ID])
	assert.Equal(t, 1, productRepo.incremented[returned.ID])
}

func TestCreateSale_UpdatesCustomerProfile(t *testing.T) {
	product := newTestProduct("TV", 100_000_00, 5)
	customer := &entity.Customer{ID: uuid.New(), Name: "Jane", CustomerType: enum.CustomerTypeRegular}
	customerRepo := newMockCustomerRepo(customer)
	svc, _ := newSaleService(t, newMockSaleRepo(), newMockProductRepo(product), customerRepo)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID:     uuid.New(),
		CustomerID:    &customer.ID,
		PaymentMethod: enum.PaymentMethodCard,
		AmountPaid:    decimal.RequireFromString("100000.00"),
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("100000.00")},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, customerRepo.updated)
	assert.Equal(t, int64(1), customerRepo.updated.TotalOrders)
	assert.Equal(t, int64(100_000_00), customerRepo.updated.TotalSpent)
	assert.Equal(t, int64(1000), customerRepo.updated.LoyaltyPoints)
	assert.Equal(t, enum.CustomerTypeVIP, customerRepo.updated.CustomerType)
}

func TestCreateSale_UnknownCustomer(t *testing.T) {
	product := newTestProduct("Soda", 1000, 20)
	svc, _ := newSaleService(t, newMockSaleRepo(), newMockProductRepo(product), newMockCustomerRepo())

	missing := uuid.New()
	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		CashierID:     uuid.New(),
		CustomerID:    &missing,
		PaymentMethod: enum.PaymentMethodCash,
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestRefundSale(t *testing.T) {
	product := newTestProduct("Soda", 1000, 20)
	saleRepo := newMockSaleRepo()
	productRepo := newMockProductRepo(product)
	svc, _ := newSaleService(t, saleRepo, productRepo, newMockCustomerRepo())

	sale := &entity.Sale{
		ID:            uuid.New(),
		InvoiceNo:     "INV-20260828-0001",
		Status:        enum.SaleStatusCompleted,
		PaymentStatus: enum.PaymentStatusPaid,
		Total:         3000,
		AmountPaid:    3000,
		Items: []entity.SaleItem{
			{ProductID: product.ID, Quantity: 3, Total: 3000},
		},
	}
	saleRepo.sales[sale.ID] = sale

	cashier := uuid.New()
	refunded, err := svc.RefundSale(context.Background(), cashier, sale.ID, "damaged goods")
	require.NoError(t, err)

	assert.Equal(t, enum.SaleStatusRefunded, refunded.Status)
	assert.Equal(t, enum.PaymentStatusRefunded, refunded.PaymentStatus)
	require.NotNil(t, refunded.RefundReason)
	assert.Equal(t, "damaged goods", *refunded.RefundReason)
	assert.Equal(t, &cashier, refunded.RefundedByID)
	assert.NotNil(t, refunded.RefundedAt)
	// Monetary fields untouched
	assert.Equal(t, int64(3000), refunded.Total)
	// Sold quantities restored
	assert.Equal(t, 3, productRepo.incremented[product.ID])
}

func TestRefundSale_AlreadyRefunded(t *testing.T) {
	saleRepo := newMockSaleRepo()
	svc, _ := newSaleService(t, saleRepo, newMockProductRepo(), newMockCustomerRepo())

	sale := &entity.Sale{ID: uuid.New(), Status: enum.SaleStatusRefunded}
	saleRepo.sales[sale.ID] = sale

	_, err := svc.RefundSale(context.Background(), uuid.New(), sale.ID, "")
	require.ErrorIs(t, err, apperror.ErrSaleNotRefundable)
}

func TestRefundSale_SkipsReturnLines(t *testing.T) {
	product := newTestProduct("Bread", 500, 10)
	saleRepo := newMockSaleRepo()
	productRepo := newMockProductRepo(product)
	svc, _ := newSaleService(t, saleRepo, productRepo, newMockCustomerRepo())

	sale := &entity.Sale{
		ID:     uuid.New(),
		Status: enum.SaleStatusCompleted,
		Items: []entity.SaleItem{
			{ProductID: product.ID, Quantity: -2, Total: -1000},
		},
	}
	saleRepo.sales[sale.ID] = sale

	_, err := svc.RefundSale(context.Background(), uuid.New(), sale.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 0, productRepo.incremented[product.ID])
}

func TestPayDue(t *testing.T) {
	saleRepo := newMockSaleRepo()
	svc, _ := newSaleService(t, saleRepo, newMockProductRepo(), newMockCustomerRepo())

	sale := &entity.Sale{
		ID:            uuid.New(),
		Status:        enum.SaleStatusPending,
		PaymentStatus: enum.PaymentStatusPartial,
		Total:         10000,
		AmountPaid:    6000,
		Change:        -4000,
	}
	saleRepo.sales[sale.ID] = sale

	// Partial payment leaves a smaller balance
	updated, err := svc.PayDue(context.Background(), sale.ID, decimal.RequireFromString("15.00"))
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartial, updated.PaymentStatus)
	assert.Equal(t, int64(2500), updated.BalanceDue())

	// Settling the rest completes the sale
	updated, err = svc.PayDue(context.Background(), sale.ID, decimal.RequireFromString("25.00"))
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, enum.SaleStatusCompleted, updated.Status)
	assert.Equal(t, int64(0), updated.BalanceDue())
}

func TestPayDue_NoBalance(t *testing.T) {
	saleRepo := newMockSaleRepo()
	svc, _ := newSaleService(t, saleRepo, newMockProductRepo(), newMockCustomerRepo())

	sale := &entity.Sale{ID: uuid.New(), Total: 5000, AmountPaid: 5000, Change: 0}
	saleRepo.sales[sale.ID] = sale

	_, err := svc.PayDue(context.Background(), sale.ID, decimal.RequireFromString("10.00"))
	require.ErrorIs(t, err, apperror.ErrSaleAlreadyPaid)
}

func TestPayDue_NonPositiveAmount(t *testing.T) {
	svc, _ := newSaleService(t, newMockSaleRepo(), newMockProductRepo(), newMockCustomerRepo())

	_, err := svc.PayDue(context.Background(), uuid.New(), decimal.Zero)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestGetSale_NotFound(t *testing.T) {
	svc, _ := newSaleService(t, newMockSaleRepo(), newMockProductRepo(), newMockCustomerRepo())

	_, err := svc.GetSale(context.Background(), uuid.New())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestCreateSale_SequentialInvoiceNumbers(t *testing.T) {
	product := newTestProduct("Soda", 1000, 100)
	saleRepo := newMockSaleRepo()
	svc, _ := newSaleService(t, saleRepo, newMockProductRepo(product), newMockCustomerRepo())

	day := time.Now().Format("20060102")
	for i := 1; i <= 3; i++ {
		sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
			CashierID:     uuid.New(),
			PaymentMethod: enum.PaymentMethodCash,
			AmountPaid:    decimal.RequireFromString("10.00"),
			Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")}},
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%s-%04d", day, i), sale.InvoiceNo)
	}
}
