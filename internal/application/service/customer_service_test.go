package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmuthomi/tillpoint-api/internal/domain/entity"
	"github.com/jmuthomi/tillpoint-api/internal/domain/enum"
	"github.com/jmuthomi/tillpoint-api/pkg/apperror"
)

func TestCreateCustomer_InvalidType(t *testing.T) {
	svc := NewCustomerService(newMockCustomerRepo(), passthroughTx{})

	_, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		UserID:       uuid.New(),
		Name:         "Jane",
		CustomerType: "platinum",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestCreateCustomer_DefaultsToRegular(t *testing.T) {
	svc := NewCustomerService(newMockCustomerRepo(), passthroughTx{})

	customer, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		UserID: uuid.New(),
		Name:   "Jane",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.CustomerTypeRegular, customer.CustomerType)
}

func TestAddLoyaltyPoints(t *testing.T) {
	customer := &entity.Customer{ID: uuid.New(), Name: "Jane", LoyaltyPoints: 10}
	repo := newMockCustomerRepo(customer)
	svc := NewCustomerService(repo, passthroughTx{})

	updated, err := svc.AddLoyaltyPoints(context.Background(), customer.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(35), updated.LoyaltyPoints)
}

func TestAddLoyaltyPoints_NonPositive(t *testing.T) {
	svc := NewCustomerService(newMockCustomerRepo(), passthroughTx{})

	_, err := svc.AddLoyaltyPoints(context.Background(), uuid.New(), 0)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestRedeemLoyaltyPoints(t *testing.T) {
	customer := &entity.Customer{ID: uuid.New(), Name: "Jane", LoyaltyPoints: 50}
	repo := newMockCustomerRepo(customer)
	svc := NewCustomerService(repo, passthroughTx{})

	updated, err := svc.RedeemLoyaltyPoints(context.Background(), customer.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(20), updated.LoyaltyPoints)
}

func TestRedeemLoyaltyPoints_InsufficientBalance(t *testing.T) {
	customer := &entity.Customer{ID: uuid.New(), Name: "Jane", LoyaltyPoints: 5}
	repo := newMockCustomerRepo(customer)
	svc := NewCustomerService(repo, passthroughTx{})

	_, err := svc.RedeemLoyaltyPoints(context.Background(), customer.ID, 10)
	require.ErrorIs(t, err, apperror.ErrInsufficientPoints)

	// Balance untouched after the failed redemption
	assert.Equal(t, int64(5), repo.customers[customer.ID].LoyaltyPoints)
}

func TestUpdateCustomer_StatsNotWritable(t *testing.T) {
	customer := &entity.Customer{
		ID:            uuid.New(),
		Name:          "Jane",
		LoyaltyPoints: 40,
		TotalSpent:    9000,
		TotalOrders:   3,
	}
	repo := newMockCustomerRepo(customer)
	svc := NewCustomerService(repo, passthroughTx{})

	name := "Jane Doe"
	updated, err := svc.UpdateCustomer(context.Background(), &UpdateCustomerInput{
		ID:   customer.ID,
		Name: &name,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", updated.Name)
	assert.Equal(t, int64(40), updated.LoyaltyPoints)
	assert.Equal(t, int64(9000), updated.TotalSpent)
	assert.Equal(t, int64(3), updated.TotalOrders)
}
