package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmuthomi/tillpoint-api/internal/domain/entity"
	domainRepo "github.com/jmuthomi/tillpoint-api/internal/domain/repository"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Expense{})

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("description ILIKE ? OR category ILIKE ?", search, search)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.StartDate != nil {
		query = query.Where("expense_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("expense_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "expense_date"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&expenses).Error

	return expenses, total, err
}

func (r *expenseRepository) SumByCategory(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	var rows []struct {
		Category string
		Total    int64
	}
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("expense_date >= ? AND expense_date <= ?", start, end).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Category] = row.Total
	}
	return result, nil
}

func (r *expenseRepository) TotalForPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("expense_date >= ? AND expense_date <= ?", start, end).
		Scan(&total).Error
	return total, err
}
