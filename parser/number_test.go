package parser

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/shibukawa/tmplexpr/ast"
)

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{name: "zero", input: "0", want: int32(0)},
		{name: "integer", input: "42", want: int32(42)},
		{name: "max int32", input: "2147483647", want: int32(math.MaxInt32)},
		{name: "fraction", input: "0.1", want: 0.1},
		{name: "half", input: "0.5", want: 0.5},
		{name: "exponent", input: "1.5e2", want: 150.0},
		{name: "integer with exponent", input: "1E+2", want: 100.0},
		{name: "negative exponent", input: "2.5e-3", want: 0.0025},
		{name: "avogadro", input: "6.02214076e23", want: 6.02214076e23},
		{name: "zero fraction", input: "0.000", want: 0.0},
		{name: "trailing zeros", input: "12.50", want: 12.5},
		{name: "sixteen digits", input: "1234567890.123456", want: 1234567890.123456},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.input, nil)
			assert.NoError(t, err)

			c, ok := expr.(*ast.Constant)
			assert.True(t, ok)
			assert.Equal(t, tt.want, c.Value)
			assert.Equal(t, tt.input, c.Literal)
		})
	}
}

func TestNumberLiteralErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "int32 overflow", input: "2147483648"},
		{name: "negative overflow", input: "-2147483648"},
		{name: "exponent too large", input: "1e400"},
		{name: "exponent too small", input: "1e-400"},
		{name: "infinite result", input: "9.9e308"},
		{name: "missing exponent digits", input: "1e"},
		{name: "missing fraction digits", input: "1."},
		{name: "leading zero", input: "01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, nil)
			assert.IsError(t, err, ErrInvalidExpression)
		})
	}
}

func TestLargeExponents(t *testing.T) {
	v, ok := decimalToDouble("1", "", 308)
	assert.True(t, ok)
	assert.False(t, math.IsInf(v, 0))
	assert.True(t, v > 9.9e307)

	v, ok = decimalToDouble("1", "", -300)
	assert.True(t, ok)
	assert.True(t, v > 0 && v < 1e-299)

	_, ok = decimalToDouble("1", "", 309)
	assert.False(t, ok)
}

func TestFastExponent(t *testing.T) {
	tests := []struct {
		mantissa int64
		exponent int
		want     float64
	}{
		{mantissa: 15, exponent: 1, want: 150},
		{mantissa: 1, exponent: 0, want: 1},
		{mantissa: 25, exponent: -4, want: 0.0025},
		{mantissa: 3, exponent: 7, want: 3e7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fastExponent(tt.mantissa, tt.exponent))
	}
}

func TestReadNumberLength(t *testing.T) {
	tests := []struct {
		input  string
		length int
	}{
		{input: "12+3", length: 2},
		{input: "1.5.x", length: 3},
		{input: "1.x", length: 1},
		{input: "2e3e", length: 3},
		{input: "7e", length: 1},
		{input: "0123", length: 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, n, ok := readNumber([]rune(tt.input))
			assert.True(t, ok)
			assert.Equal(t, tt.length, n)
		})
	}
}

func TestConstantDecimalFromParse(t *testing.T) {
	expr, err := Parse("6.02214076e23", nil)
	assert.NoError(t, err)

	d, ok := expr.(*ast.Constant).Decimal()
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("602214076000000000000000")))
}
