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
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense tracking
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	UserID        uuid.UUID
	Category      string
	Description   string
	Amount        decimal.Decimal
	ExpenseDate   time.Time
	PaymentMethod enum.PaymentMethod
	Notes         *string
}

// CreateExpense records a new expense
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Expense amount must be positive")
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = enum.PaymentMethodCash
	}
	if !paymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	expenseDate := input.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	expense := &entity.Expense{
		UserID:        input.UserID,
		Category:      input.Category,
		Description:   input.Description,
		Amount:        toCents(input.Amount),
		ExpenseDate:   expenseDate,
		PaymentMethod: paymentMethod,
		Notes:         input.Notes,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// UpdateExpenseInput represents the update expense input
type UpdateExpenseInput struct {
	ID            uuid.UUID
	Category      *string
	Description   *string
	Amount        *decimal.Decimal
	ExpenseDate   *time.Time
	PaymentMethod *enum.PaymentMethod
	Notes         *string
}

// UpdateExpense updates an expense
func (s *ExpenseService) UpdateExpense(ctx context.Context, input *UpdateExpenseInput) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}

	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, apperror.NewBadRequestError("Expense amount must be positive")
		}
		expense.Amount = toCents(*input.Amount)
	}
	if input.ExpenseDate != nil {
		expense.ExpenseDate = *input.ExpenseDate
	}
	if input.PaymentMethod != nil {
		if !input.PaymentMethod.IsValid() {
			return nil, apperror.NewBadRequestError("Unknown payment method")
		}
		expense.PaymentMethod = *input.PaymentMethod
	}
	if input.Notes != nil {
		expense.Notes = input.Notes
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// DeleteExpense deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}

	return s.expenseRepo.Delete(ctx, id)
}
