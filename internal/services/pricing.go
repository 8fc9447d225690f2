package services

import "github.com/shopspring/decimal"

// UnitPrice applies the percentage discount to the base price and
// rounds to cents. Order lines freeze this value at checkout time.
func UnitPrice(price, discount float64) float64 {
	p := decimal.NewFromFloat(price)
	d := decimal.NewFromFloat(discount).Div(decimal.NewFromInt(100))
	unit := p.Mul(decimal.NewFromInt(1).Sub(d))
	f, _ := unit.Round(2).Float64()
	return f
}

// LineTotal multiplies a cent-rounded unit price by quantity, rounded
// to cents, so that summing line totals reconciles with the order
// total exactly.
func LineTotal(unitPrice float64, qty int) float64 {
	t := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(qty)))
	f, _ := t.Round(2).Float64()
	return f
}

// RefundAmount is the frozen unit price times the refunded quantity.
func RefundAmount(unitPrice float64, qty int) float64 {
	return LineTotal(unitPrice, qty)
}
