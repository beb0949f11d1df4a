package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"whole amount", "100", 10000},
		{"two decimals", "19.99", 1999},
		{"rounds half up", "10.005", 1001},
		{"rounds down", "10.004", 1000},
		{"zero", "0", 0},
		{"negative", "-5.50", -550},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toCents(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestComputeLine(t *testing.T) {
	// 3 x 10.00 with 2.00 discount and 16% tax:
	// net 28.00, tax 4.48, total 32.48
	amounts := ComputeLine(
		decimal.RequireFromString("10.00"), 3,
		decimal.RequireFromString("2.00"),
		decimal.RequireFromString("16"),
	)

	assert.Equal(t, int64(1000), amounts.UnitPrice)
	assert.Equal(t, int64(200), amounts.Discount)
	assert.Equal(t, int64(448), amounts.Tax)
	assert.Equal(t, int64(3248), amounts.Total)
}

func TestComputeLine_NoTaxNoDiscount(t *testing.T) {
	amounts := ComputeLine(decimal.RequireFromString("7.50"), 2, decimal.Zero, decimal.Zero)

	assert.Equal(t, int64(750), amounts.UnitPrice)
	assert.Equal(t, int64(0), amounts.Discount)
	assert.Equal(t, int64(0), amounts.Tax)
	assert.Equal(t, int64(1500), amounts.Total)
}

func TestComputeLine_ReturnLine(t *testing.T) {
	// Negative quantity carries a negative total, tax included
	amounts := ComputeLine(
		decimal.RequireFromString("10.00"), -2,
		decimal.Zero,
		decimal.RequireFromString("10"),
	)

	assert.Equal(t, int64(-2200), amounts.Total)
	assert.Equal(t, int64(-200), amounts.Tax)
}

func TestComputeSaleTotals(t *testing.T) {
	totals := ComputeSaleTotals(
		[]int64{3248, 1500},
		decimal.RequireFromString("5.00"),
		decimal.RequireFromString("1.00"),
		decimal.RequireFromString("2.00"),
		decimal.RequireFromString("50.00"),
	)

	assert.Equal(t, int64(4748), totals.SubTotal)
	// 47.48 - 5.00 + 1.00 + 2.00 = 45.48
	assert.Equal(t, int64(4548), totals.Total)
	assert.Equal(t, int64(5000), totals.Paid)
	assert.Equal(t, int64(452), totals.Change)
}

func TestComputeSaleTotals_BalanceDue(t *testing.T) {
	totals := ComputeSaleTotals(
		[]int64{10000},
		decimal.Zero, decimal.Zero, decimal.Zero,
		decimal.RequireFromString("60.00"),
	)

	assert.Equal(t, int64(10000), totals.Total)
	assert.Equal(t, int64(-4000), totals.Change, "negative change is the outstanding balance")
}

func TestComputeSaleTotals_ReturnHeavySale(t *testing.T) {
	// Returns outweigh sold lines, the total goes negative and change
	// surfaces the refund owed even with nothing collected
	totals := ComputeSaleTotals(
		[]int64{1000, -3000},
		decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero,
	)

	assert.Equal(t, int64(-2000), totals.Total)
	assert.Equal(t, int64(2000), totals.Change)
}
