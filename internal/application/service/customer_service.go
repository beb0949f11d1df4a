package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmuthomi/tillpoint-api/internal/domain/entity"
	"github.com/jmuthomi/tillpoint-api/internal/domain/enum"
	"github.com/jmuthomi/tillpoint-api/internal/domain/repository"
	"github.com/jmuthomi/tillpoint-api/pkg/apperror"
	"github.com/jmuthomi/tillpoint-api/pkg/pagination"
)

// CustomerService handles customer profiles and the loyalty ledger
type CustomerService struct {
	customerRepo repository.CustomerRepository
	tx           repository.TxManager
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, tx repository.TxManager) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, tx: tx}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	UserID       uuid.UUID
	Name         string
	Email        *string
	Phone        *string
	Address      *string
	CustomerType string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	customerType := enum.CustomerTypeRegular
	if input.CustomerType != "" {
		customerType = enum.CustomerType(input.CustomerType)
		if !customerType.IsValid() {
			return nil, apperror.NewBadRequestError("Unknown customer type")
		}
	}

	customer := &entity.Customer{
		UserID:       input.UserID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		CustomerType: customerType,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with page-based pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// ListCustomersWithCursor lists customers using cursor-based pagination
func (s *CustomerService) ListCustomersWithCursor(ctx context.Context, params *pagination.CursorParams, search string) (*pagination.CursorPaginatedResult[entity.Customer], error) {
	customers, err := s.customerRepo.ListWithCursor(ctx, params, search)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(customers, params.Limit,
		func(c entity.Customer) string { return c.ID.String() },
		func(c entity.Customer) time.Time { return c.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID           uuid.UUID
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	CustomerType *string
}

// UpdateCustomer updates a customer's profile fields. The cumulative
// stats (spend, orders, points) are never writable through this path.
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.CustomerType != nil {
		customerType := enum.CustomerType(*input.CustomerType)
		if !customerType.IsValid() {
			return nil, apperror.NewBadRequestError("Unknown customer type")
		}
		customer.CustomerType = customerType
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	return s.customerRepo.Delete(ctx, id)
}

// AddLoyaltyPoints credits points to a customer (manual adjustment,
// promotions). Points must be positive.
func (s *CustomerService) AddLoyaltyPoints(ctx context.Context, id uuid.UUID, points int64) (*entity.Customer, error) {
	if points <= 0 {
		return nil, apperror.NewBadRequestError("Points must be positive")
	}

	var updated *entity.Customer
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		customer.LoyaltyPoints += points
		if err := s.customerRepo.Update(ctx, customer); err != nil {
			return err
		}
		updated = customer
		return nil
	})
	return updated, err
}

// RedeemLoyaltyPoints deducts points from a customer's balance. An
// insufficient balance fails the whole call; the balance is never
// driven negative or partially deducted.
func (s *CustomerService) RedeemLoyaltyPoints(ctx context.Context, id uuid.UUID, points int64) (*entity.Customer, error) {
	if points <= 0 {
		return nil, apperror.NewBadRequestError("Points must be positive")
	}

	var updated *entity.Customer
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		if customer.LoyaltyPoints < points {
			return apperror.ErrInsufficientPoints
		}

		customer.LoyaltyPoints -= points
		if err := s.customerRepo.Update(ctx, customer); err != nil {
			return err
		}
		updated = customer
		return nil
	})
	return updated, err
}

// SupplierService handles supplier-related operations
type SupplierService struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// CreateSupplierInput represents the create supplier input
type CreateSupplierInput struct {
	UserID   uuid.UUID
	Name     string
	Email    *string
	Phone    *string
	Address  *string
	ShopName *string
	TaxPin   *string
	Type     string
}

// CreateSupplier creates a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *CreateSupplierInput) (*entity.Supplier, error) {
	supplierType := enum.SupplierTypeDistributor
	if input.Type != "" {
		supplierType = enum.SupplierType(input.Type)
		if !supplierType.IsValid() {
			return nil, apperror.NewBadRequestError("Unknown supplier type")
		}
	}

	supplier := &entity.Supplier{
		UserID:   input.UserID,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		ShopName: input.ShopName,
		TaxPin:   input.TaxPin,
		Type:     supplierType,
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// ListSuppliers lists suppliers
func (s *SupplierService) ListSuppliers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Supplier], error) {
	suppliers, total, err := s.supplierRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(suppliers, pag), nil
}

// UpdateSupplierInput represents the update supplier input
type UpdateSupplierInput struct {
	ID       uuid.UUID
	Name     *string
	Email    *string
	Phone    *string
	Address  *string
	ShopName *string
	TaxPin   *string
	Type     *string
}

// UpdateSupplier updates a supplier
func (s *SupplierService) UpdateSupplier(ctx context.Context, input *UpdateSupplierInput) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.Email != nil {
		supplier.Email = input.Email
	}
	if input.Phone != nil {
		supplier.Phone = input.Phone
	}
	if input.Address != nil {
		supplier.Address = input.Address
	}
	if input.ShopName != nil {
		supplier.ShopName = input.ShopName
	}
	if input.TaxPin != nil {
		supplier.TaxPin = input.TaxPin
	}
	if input.Type != nil {
		supplierType := enum.SupplierType(*input.Type)
		if !supplierType.IsValid() {
			return nil, apperror.NewBadRequestError("Unknown supplier type")
		}
		supplier.Type = supplierType
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// DeleteSupplier deletes a supplier
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return apperror.NewNotFoundError("Supplier")
	}

	return s.supplierRepo.Delete(ctx, id)
}
