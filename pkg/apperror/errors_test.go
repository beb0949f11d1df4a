package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Sale")
	assert.Equal(t, http.StatusNotFound, err.Code)
	assert.Equal(t, "Sale not found", err.Message)
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(ErrEmptySale))
	assert.True(t, IsAppError(fmt.Errorf("wrapped: %w", ErrSaleNotRefundable)))
	assert.False(t, IsAppError(errors.New("plain error")))
}

func TestGetAppError(t *testing.T) {
	appErr := GetAppError(fmt.Errorf("wrapped: %w", ErrSaleAlreadyPaid))
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)

	fallback := GetAppError(errors.New("database exploded"))
	assert.Equal(t, http.StatusInternalServerError, fallback.Code)
	assert.Equal(t, "database exploded", fallback.Message)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "email", Message: "is required"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	require.Len(t, err.Errors, 1)
	assert.Equal(t, "email", err.Errors[0].Field)
}
