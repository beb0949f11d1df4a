package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Fresh Milk 500ml", "fresh-milk-500ml"},
		{"Coca-Cola", "coca-cola"},
		{"  Spaced  Out  ", "spaced-out"},
		{"Special!@#Chars", "specialchars"},
		{"UPPER case", "upper-case"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.input), "input %q", tt.input)
	}
}

func TestInvoiceDayKey(t *testing.T) {
	day := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "20260828", InvoiceDayKey(day))
}

func TestFormatInvoiceNo(t *testing.T) {
	day := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "INV-20260828-0001", FormatInvoiceNo(day, 1))
	assert.Equal(t, "INV-20260828-0042", FormatInvoiceNo(day, 42))
	assert.Equal(t, "INV-20260828-9999", FormatInvoiceNo(day, 9999))
	// Past four digits the number widens instead of wrapping
	assert.Equal(t, "INV-20260828-10000", FormatInvoiceNo(day, 10000))
}

func TestGeneratePurchaseNo(t *testing.T) {
	a := GeneratePurchaseNo()
	b := GeneratePurchaseNo()

	assert.Regexp(t, `^PUR-[0-9A-F]{8}$`, a)
	assert.NotEqual(t, a, b)
}

func TestGenerateProductCode(t *testing.T) {
	assert.Regexp(t, `^PROD-[0-9A-F]{8}$`, GenerateProductCode())
}
