package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Invalid is returned by the rounding helpers when an amount cannot be represented
// as a finite two-place decimal.
const Invalid float64 = -1

// MinorPerMajor is the number of minor units (pence) in one major unit (pound).
const MinorPerMajor = 100

// maxRoundable bounds the magnitudes that still fit in 28 significant digits once
// quantised to two decimal places.
const maxRoundable = 1e26

var minorPerMajor = decimal.NewFromInt(MinorPerMajor)

// Round quantises amount to two decimal places rounding halves up, so 0.005
// becomes 0.01. Non-finite or oversized inputs yield Invalid.
func Round(amount float64) float64 {
	d, ok := toDecimal(amount)
	if !ok {
		return Invalid
	}
	return fromDecimal(d.Round(2))
}

// MinorToMajor converts an amount in minor units to major units and rounds it.
func MinorToMajor(amount float64) float64 {
	d, ok := toDecimal(amount)
	if !ok {
		return Invalid
	}
	return fromDecimal(d.Div(minorPerMajor).Round(2))
}

// Sum adds amounts exactly without rounding the result.
func Sum(amounts ...float64) float64 {
	total, ok := sum(amounts)
	if !ok {
		return Invalid
	}
	return fromDecimal(total)
}

// Total adds amounts and rounds the result to two decimal places.
func Total(amounts ...float64) float64 {
	total, ok := sum(amounts)
	if !ok || total.Abs().GreaterThanOrEqual(decimal.NewFromFloat(maxRoundable)) {
		return Invalid
	}
	return fromDecimal(total.Round(2))
}

// Mul multiplies two amounts exactly.
func Mul(a, b float64) float64 {
	da, ok := toDecimal(a)
	if !ok {
		return Invalid
	}
	db, ok := toDecimal(b)
	if !ok {
		return Invalid
	}
	return fromDecimal(da.Mul(db))
}

// Format renders amount with exactly two decimal places.
func Format(amount float64) string {
	d, ok := toDecimal(amount)
	if !ok {
		return decimal.NewFromFloat(Invalid).StringFixed(2)
	}
	return d.StringFixed(2)
}

func toDecimal(amount float64) (decimal.Decimal, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || math.Abs(amount) >= maxRoundable {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(amount), true
}

func fromDecimal(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func sum(amounts []float64) (decimal.Decimal, bool) {
	total := decimal.Zero
	for _, amount := range amounts {
		d, ok := toDecimal(amount)
		if !ok {
			return decimal.Zero, false
		}
		total = total.Add(d)
	}
	return total, true
}
