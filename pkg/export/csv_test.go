package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, Table{
		Headers: []string{"Invoice No", "Total"},
		Rows: [][]string{
			{"INV-20260828-0001", "45.48"},
			{"INV-20260828-0002", "12.00"},
		},
	})
	require.NoError(t, err)

	want := "Invoice No,Total\nINV-20260828-0001,45.48\nINV-20260828-0002,12.00\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_QuotesCommas(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, Table{
		Headers: []string{"Name"},
		Rows:    [][]string{{"Bread, sliced"}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"Bread, sliced"`)
}

func TestWriteCSV_RowWidthMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"only-one"}},
	})
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "0.00", Money(0))
	assert.Equal(t, "45.48", Money(4548))
	assert.Equal(t, "0.05", Money(5))
	assert.Equal(t, "-12.50", Money(-1250))
	assert.Equal(t, "1000.00", Money(100000))
}
