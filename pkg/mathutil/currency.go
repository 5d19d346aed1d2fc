// Package mathutil provides common mathematical utility functions for
// currency amounts.
package mathutil

import (
	"github.com/iwvelando/mediation-calc/pkg/constants"
	"github.com/shopspring/decimal"
)

var currencyTolerance = decimal.NewFromFloat(constants.CurrencyTolerance)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for presentation and for making logical comparisons.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.CurrencyPlaces)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance decimal.Decimal) bool {
	return val1.Sub(val2).Abs().LessThanOrEqual(tolerance)
}

// SameCurrency checks if two values agree to the cent.
func SameCurrency(val1, val2 decimal.Decimal) bool {
	return WithinTolerance(val1, val2, currencyTolerance)
}

// ApplyRate multiplies value by a fractional rate, e.g. 0.20 for 20%.
func ApplyRate(value, rate decimal.Decimal) decimal.Decimal {
	return value.Mul(rate)
}

// RemoveRate strips a rate that is included in value, i.e. value / (1 + rate).
func RemoveRate(value, rate decimal.Decimal) decimal.Decimal {
	return value.Div(decimal.NewFromInt(1).Add(rate))
}

// GrossUp returns the amount that leaves value after a rate is deducted,
// i.e. value / (1 - rate).
func GrossUp(value, rate decimal.Decimal) decimal.Decimal {
	return value.Div(decimal.NewFromInt(1).Sub(rate))
}
