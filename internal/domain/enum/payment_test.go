package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethodIsValid(t *testing.T) {
	valid := []PaymentMethod{
		PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI,
		PaymentMethodCredit, PaymentMethodBankTransfer,
	}
	for _, m := range valid {
		assert.True(t, m.IsValid(), "%s should be valid", m)
	}

	assert.False(t, PaymentMethod("cheque").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}

func TestPaymentStatusIsValid(t *testing.T) {
	valid := []PaymentStatus{
		PaymentStatusPending, PaymentStatusPaid,
		PaymentStatusPartial, PaymentStatusRefunded,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "%s should be valid", s)
	}

	assert.False(t, PaymentStatus("overdue").IsValid())
}
