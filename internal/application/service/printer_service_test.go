package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmuthomi/tillpoint-api/internal/domain/entity"
)

func testReceipt() *entity.Receipt {
	return &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "TillPoint Store",
			Phone:     "+254700000000",
		},
		InvoiceNo:     "INV-20260828-0042",
		Date:          "2026-08-28 14:30",
		Cashier:       "John Kamau",
		PaymentMethod: "cash",
		Items: []entity.ReceiptItem{
			{Name: "Fresh Milk", Quantity: 2, UnitPrice: 6.00, Total: 12.00},
			{Name: "Bread", Quantity: 1, UnitPrice: 5.00, Total: 5.00},
		},
		SubTotal: 17.00,
		Total:    17.00,
		Paid:     20.00,
		Change:   3.00,
		Footer:   "Thank you!",
	}
}

func TestFormatReceipt(t *testing.T) {
	out := string(FormatReceipt(testReceipt()))

	assert.Contains(t, out, "TillPoint Store")
	assert.Contains(t, out, "INV-20260828-0042")
	assert.Contains(t, out, "John Kamau")
	assert.Contains(t, out, "2x Fresh Milk")
	assert.Contains(t, out, "@ 6.00 each", "multi-quantity lines show the unit price")
	assert.Contains(t, out, "1x Bread")
	assert.NotContains(t, out, "@ 5.00 each", "single-quantity lines skip the unit price")
	assert.Contains(t, out, "Change:")
	assert.NotContains(t, out, "Due:")
	assert.Contains(t, out, "Thank you!")
}

func TestFormatReceipt_BalanceDue(t *testing.T) {
	r := testReceipt()
	r.Paid = 10.00
	r.Change = 0
	r.BalanceDue = 7.00

	out := string(FormatReceipt(r))
	assert.Contains(t, out, "Due:")
	assert.NotContains(t, out, "Change:")
}

func TestFormatReceipt_RefundDue(t *testing.T) {
	r := testReceipt()
	r.Items = []entity.ReceiptItem{
		{Name: "Bread", Quantity: -2, UnitPrice: 5.00, Total: -10.00},
	}
	r.SubTotal = -10.00
	r.Total = -10.00
	r.Paid = 0
	r.Change = 0
	r.RefundDue = 10.00

	out := string(FormatReceipt(r))
	assert.Contains(t, out, "-2x Bread")
	assert.Contains(t, out, "@ 5.00 each", "return lines with multiple units show the unit price")
	assert.Contains(t, out, "Refund due:")
}

func TestFormatReceipt_EndsWithCut(t *testing.T) {
	out := FormatReceipt(testReceipt())

	// ESC/POS partial cut trailer
	assert.Equal(t, []byte{0x1D, 'V', 0x01}, out[len(out)-3:])
	assert.True(t, strings.HasPrefix(string(out), string([]byte{0x1B, '@'})))
}
