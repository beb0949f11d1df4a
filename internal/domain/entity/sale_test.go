package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleBalanceDue(t *testing.T) {
	assert.Equal(t, int64(0), (&Sale{Change: 500}).BalanceDue())
	assert.Equal(t, int64(0), (&Sale{Change: 0}).BalanceDue())
	assert.Equal(t, int64(2500), (&Sale{Change: -2500}).BalanceDue())
}

func TestSaleIsRefund(t *testing.T) {
	assert.False(t, (&Sale{Total: 1000}).IsRefund())
	assert.False(t, (&Sale{Total: 0}).IsRefund())
	assert.True(t, (&Sale{Total: -1000}).IsRefund())
}

func TestSaleMarshalJSON_CentsToDecimal(t *testing.T) {
	sale := Sale{
		InvoiceNo:  "INV-20260828-0007",
		SubTotal:   4748,
		Total:      4548,
		AmountPaid: 5000,
		Change:     452,
	}

	data, err := json.Marshal(sale)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "INV-20260828-0007", out["invoice_no"])
	assert.InDelta(t, 47.48, out["sub_total"], 0.001)
	assert.InDelta(t, 45.48, out["total"], 0.001)
	assert.InDelta(t, 50.00, out["amount_paid"], 0.001)
	assert.InDelta(t, 4.52, out["change"], 0.001)
	assert.InDelta(t, 0.0, out["balance_due"], 0.001)
}
