package service

import (
	"github.com/shopspring/decimal"
)

var cent100 = decimal.NewFromInt(100)

// toCents converts a decimal currency amount to integer cents, rounding
// half away from zero at two decimal places.
func toCents(d decimal.Decimal) int64 {
	return d.Round(2).Mul(cent100).IntPart()
}

// LineAmounts holds the computed cent amounts for one sale line
type LineAmounts struct {
	UnitPrice int64
	Discount  int64
	Tax       int64
	Total     int64
}

// ComputeLine computes a line's amounts from the decimal request
// values. Quantity may be negative for return lines, in which case the
// total carries the same sign. Tax is applied on the discounted amount;
// taxRate is a percentage (16 means 16%).
func ComputeLine(unitPrice decimal.Decimal, quantity int, discount, taxRate decimal.Decimal) LineAmounts {
	qty := decimal.NewFromInt(int64(quantity))

	gross := unitPrice.Mul(qty)
	net := gross.Sub(discount)
	tax := net.Mul(taxRate).Div(decimal.NewFromInt(100))
	total := net.Add(tax)

	return LineAmounts{
		UnitPrice: toCents(unitPrice),
		Discount:  toCents(discount),
		Tax:       toCents(tax),
		Total:     toCents(total),
	}
}

// SaleAmounts holds the computed header-level cent amounts of a sale
type SaleAmounts struct {
	SubTotal int64
	Discount int64
	Tax      int64
	Shipping int64
	Total    int64
	Paid     int64
	Change   int64
}

// ComputeSaleTotals folds the line totals with the header-level
// adjustments. The grand total is subtotal minus discount plus tax plus
// shipping; change is paid minus total, negative when a balance
// remains. A negative total (return-heavy sale) yields a refund due,
// which also surfaces as change when nothing was collected.
func ComputeSaleTotals(lineTotals []int64, discount, tax, shipping, paid decimal.Decimal) SaleAmounts {
	var subTotal int64
	for _, t := range lineTotals {
		subTotal += t
	}

	discountCents := toCents(discount)
	taxCents := toCents(tax)
	shippingCents := toCents(shipping)
	paidCents := toCents(paid)

	total := subTotal - discountCents + taxCents + shippingCents

	return SaleAmounts{
		SubTotal: subTotal,
		Discount: discountCents,
		Tax:      taxCents,
		Shipping: shippingCents,
		Total:    total,
		Paid:     paidCents,
		Change:   paidCents - total,
	}
}
