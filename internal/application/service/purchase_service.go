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
)

// PurchaseService handles stock-in documents from suppliers
type PurchaseService struct {
	purchaseRepo       repository.PurchaseRepository
	purchaseDetailRepo repository.PurchaseDetailRepository
	productRepo        repository.ProductRepository
	supplierRepo       repository.SupplierRepository
	tx                 repository.TxManager
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	purchaseDetailRepo repository.PurchaseDetailRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	tx repository.TxManager,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:       purchaseRepo,
		purchaseDetailRepo: purchaseDetailRepo,
		productRepo:        productRepo,
		supplierRepo:       supplierRepo,
		tx:                 tx,
	}
}

// PurchaseItemInput represents an item in a purchase
type PurchaseItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitCost  decimal.Decimal
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	UserID     uuid.UUID
	SupplierID *uuid.UUID
	Items      []PurchaseItemInput
}

// CreatePurchase creates a pending purchase with its details. Stock is
// not touched until the purchase is approved.
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("A purchase requires at least one item")
	}

	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, apperror.NewNotFoundError("Supplier")
		}
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var totalAmount int64
	purchaseDetails := make([]entity.PurchaseDetail, 0, len(input.Items))

	for _, item := range input.Items {
		if _, exists := productMap[item.ProductID]; !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Purchase item quantity must be positive")
		}

		unitCost := toCents(item.UnitCost)
		itemTotal := unitCost * int64(item.Quantity)
		totalAmount += itemTotal

		purchaseDetails = append(purchaseDetails, entity.PurchaseDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  unitCost,
			Total:     itemTotal,
		})
	}

	purchase := &entity.Purchase{
		UserID:      input.UserID,
		SupplierID:  input.SupplierID,
		Date:        time.Now(),
		PurchaseNo:  utils.GeneratePurchaseNo(),
		Status:      enum.PurchaseStatusPending,
		TotalAmount: totalAmount,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}

		for i := range purchaseDetails {
			purchaseDetails[i].PurchaseID = purchase.ID
		}

		return s.purchaseDetailRepo.CreateBatch(ctx, purchaseDetails)
	})
	if err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetWithDetails(ctx, purchase.ID)
}

// GetPurchase retrieves a purchase by ID
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases with filtering
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

// ApprovePurchase approves a pending purchase and adds the purchased
// quantities to stock in the same transaction.
func (s *PurchaseService) ApprovePurchase(ctx context.Context, approvedBy, purchaseID uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithDetails(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}

	if purchase.Status == enum.PurchaseStatusApproved {
		return nil, apperror.NewBadRequestError("Purchase is already approved")
	}

	stockIncrements := make(map[uuid.UUID]int)
	for _, detail := range purchase.Details {
		stockIncrements[detail.ProductID] += detail.Quantity
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
			return err
		}
		return s.purchaseRepo.UpdateStatus(ctx, purchaseID, enum.PurchaseStatusApproved, approvedBy)
	})
	if err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetWithDetails(ctx, purchaseID)
}

// DeletePurchase deletes a pending purchase. Approved purchases are
// immutable since their stock has already moved.
func (s *PurchaseService) DeletePurchase(ctx context.Context, purchaseID uuid.UUID) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil {
		return apperror.NewNotFoundError("Purchase")
	}

	if purchase.Status == enum.PurchaseStatusApproved {
		return apperror.NewBadRequestError("Cannot delete an approved purchase")
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.purchaseDetailRepo.DeleteByPurchaseID(ctx, purchaseID); err != nil {
			return err
		}
		return s.purchaseRepo.Delete(ctx, purchaseID)
	})
}

// GetPendingPurchases returns purchases awaiting approval
func (s *PurchaseService) GetPendingPurchases(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.GetPendingPurchases(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}
