package core

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CalculateLineAmounts computes a line's financial breakdown from quantity,
// snapshotted unit price, and tax rate (a percentage in [0,100]).
//
// All three amounts derive from the unrounded tax-exclusive product:
//
//	excl = round(qty × price, 2)
//	tax  = round(qty × price × rate / 100, 2)
//	incl = round(qty × price × (1 + rate/100), 2)
//
// Rounding is half-to-even (banker's), applied once per amount — tax is never
// computed from the already-rounded excl amount.
func CalculateLineAmounts(qty, unitPrice, taxRate decimal.Decimal) (excl, tax, incl decimal.Decimal, err error) {
	zero := decimal.Zero
	if !qty.IsPositive() {
		return zero, zero, zero, invalidArgumentf("quantity must be greater than zero")
	}
	if unitPrice.IsNegative() {
		return zero, zero, zero, invalidArgumentf("unit price must not be negative")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(hundred) {
		return zero, zero, zero, invalidArgumentf("tax rate must be between 0 and 100")
	}

	exclRaw := qty.Mul(unitPrice)
	taxRaw := exclRaw.Mul(taxRate).Div(hundred)
	inclRaw := exclRaw.Add(taxRaw)
	return exclRaw.RoundBank(2), taxRaw.RoundBank(2), inclRaw.RoundBank(2), nil
}

// SumLineAmounts returns the elementwise sums of the lines' excl, tax, and
// incl amounts. An empty line set yields zero totals.
func SumLineAmounts(lines []SalesOrderLine) (excl, tax, incl decimal.Decimal) {
	for _, l := range lines {
		excl = excl.Add(l.ExclAmount)
		tax = tax.Add(l.TaxAmount)
		incl = incl.Add(l.InclAmount)
	}
	return excl, tax, incl
}
