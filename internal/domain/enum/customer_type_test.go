package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerTypeRank(t *testing.T) {
	assert.Equal(t, 0, CustomerTypeRegular.Rank())
	assert.Equal(t, 1, CustomerTypeVIP.Rank())
	assert.Equal(t, 2, CustomerTypeWholesale.Rank())
	assert.Equal(t, 0, CustomerType("unknown").Rank())

	assert.Greater(t, CustomerTypeWholesale.Rank(), CustomerTypeVIP.Rank())
	assert.Greater(t, CustomerTypeVIP.Rank(), CustomerTypeRegular.Rank())
}

func TestCustomerTypeIsValid(t *testing.T) {
	assert.True(t, CustomerTypeRegular.IsValid())
	assert.True(t, CustomerTypeVIP.IsValid())
	assert.True(t, CustomerTypeWholesale.IsValid())
	assert.False(t, CustomerType("platinum").IsValid())
}
