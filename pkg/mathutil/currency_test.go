package mathutil

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Round up at midpoint", "1.235", "1.24"},
		{"Round down below midpoint", "1.234", "1.23"},
		{"No rounding needed", "1.23", "1.23"},
		{"Large number", "12345.678", "12345.68"},
		{"Repeating fraction", "83333.3333333333", "83333.33"},
		{"Zero", "0", "0"},
		{"Very small positive", "0.001", "0"},
		{"Nearly two cents", "0.019", "0.02"},
		{"Large negative", "-12345.678", "-12345.68"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(d(tt.input))
			if !result.Equal(d(tt.expected)) {
				t.Errorf("Round(%s) = %s, expected %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      string
		val2      string
		tolerance string
		expected  bool
	}{
		{"Exactly equal", "1.0", "1.0", "0.1", true},
		{"Within tolerance", "1.0", "1.05", "0.1", true},
		{"Outside tolerance", "1.0", "1.15", "0.1", false},
		{"Negative values within tolerance", "-1.0", "-1.05", "0.1", true},
		{"Zero tolerance exact match", "1.0", "1.0", "0", true},
		{"Zero tolerance no match", "1.0", "1.001", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(d(tt.val1), d(tt.val2), d(tt.tolerance))
			if result != tt.expected {
				t.Errorf("WithinTolerance(%s, %s, %s) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestSameCurrency(t *testing.T) {
	if !SameCurrency(d("83333.333333"), d("83333.33")) {
		t.Error("expected amounts equal to the cent")
	}
	if SameCurrency(d("100.00"), d("100.02")) {
		t.Error("expected amounts two cents apart to differ")
	}
}

func TestRateHelpers(t *testing.T) {
	rate := d("0.20")

	tests := []struct {
		name     string
		fn       func(decimal.Decimal, decimal.Decimal) decimal.Decimal
		value    string
		expected string
	}{
		{"ApplyRate", ApplyRate, "100000", "20000"},
		{"RemoveRate", RemoveRate, "120000", "100000"},
		{"GrossUp", GrossUp, "100000", "125000"},
		{"ApplyRate zero", ApplyRate, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.fn(d(tt.value), rate)
			if !SameCurrency(result, d(tt.expected)) {
				t.Errorf("%s(%s) = %s, expected %s", tt.name, tt.value, result, tt.expected)
			}
		})
	}
}
