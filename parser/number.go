package parser

import (
	"math"
	"strconv"
	"strings"

	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/tmplexpr/ast"
)

const (
	// mantissaDigits is the number of significant digits kept when a
	// decimal literal is rebuilt as a float64.
	mantissaDigits = 16
	maxExponent    = 308
)

// powersOfTen holds 10^(2^i).
var powersOfTen = [...]float64{1e1, 1e2, 1e4, 1e8, 1e16, 1e32, 1e64, 1e128}

func (g *grammar) numberLiteral() pc.Parser[entity] {
	return g.ws(func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
		start := g.offset(tokens)

		value, n, ok := readNumber(g.src[start:])
		if !ok {
			g.fail(start)
			return 0, nil, pc.ErrNotMatch
		}

		val := entity{start: start, end: start + n}
		val.expr = ast.NewConstant(value, string(g.src[start:start+n]), val.span())

		return n, []pc.Token[entity]{newExprToken(tokens[0].Pos, val)}, nil
	})
}

// readNumber scans the longest numeric literal at the start of src. Integers
// become int32 and fail on overflow; anything with a fraction or exponent
// becomes float64.
func readNumber(src []rune) (any, int, bool) {
	intEnd := scanInteger(src)
	if intEnd == 0 {
		return nil, 0, false
	}

	intDigits := string(src[:intEnd])
	pos := intEnd
	isDecimal := false

	var fraction string

	if pos+1 < len(src) && src[pos] == '.' && isDigit(src[pos+1]) {
		end := pos + 1
		for end < len(src) && isDigit(src[end]) {
			end++
		}

		fraction = string(src[pos+1 : end])
		pos = end
		isDecimal = true
	}

	exponent := 0

	if n, digits, negative, found := scanExponent(src[pos:]); found {
		e, err := strconv.Atoi(digits)
		if err != nil || e > maxExponent {
			return nil, 0, false
		}

		if negative {
			e = -e
		}

		exponent = e
		pos += n
		isDecimal = true
	}

	if !isDecimal {
		v, err := strconv.ParseInt(intDigits, 10, 32)
		if err != nil {
			return nil, 0, false
		}

		return int32(v), pos, true
	}

	v, ok := decimalToDouble(intDigits, fraction, exponent)
	if !ok {
		return nil, 0, false
	}

	return v, pos, true
}

// scanInteger matches "0" or a digit run without a leading zero.
func scanInteger(src []rune) int {
	if len(src) == 0 || !isDigit(src[0]) {
		return 0
	}

	if src[0] == '0' {
		return 1
	}

	end := 1
	for end < len(src) && isDigit(src[end]) {
		end++
	}

	return end
}

// scanExponent matches e|E, an optional sign and at least one digit.
func scanExponent(src []rune) (n int, digits string, negative bool, found bool) {
	if len(src) == 0 || (src[0] != 'e' && src[0] != 'E') {
		return 0, "", false, false
	}

	pos := 1
	if pos < len(src) && (src[pos] == '+' || src[pos] == '-') {
		negative = src[pos] == '-'
		pos++
	}

	end := pos
	for end < len(src) && isDigit(src[end]) {
		end++
	}

	if end == pos {
		return 0, "", false, false
	}

	return end, string(src[pos:end]), negative, true
}

// decimalToDouble rebuilds intDigits.fraction * 10^exponent from a 16 digit
// mantissa and a scale built by binary decomposition of the exponent.
// Literals with exponent zero and no more than 16 significant digits are
// exact.
func decimalToDouble(intDigits, fraction string, exponent int) (float64, bool) {
	if exponent > maxExponent || exponent < -maxExponent {
		return 0, false
	}

	digits := intDigits + fraction
	pointAt := exponent + len(intDigits)

	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return 0, true
	}

	pointAt -= len(digits) - len(trimmed)

	if len(trimmed) > mantissaDigits {
		trimmed = trimmed[:mantissaDigits]
	} else {
		trimmed += strings.Repeat("0", mantissaDigits-len(trimmed))
	}

	mantissa, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, false
	}

	e := pointAt - mantissaDigits
	for mantissa%10 == 0 {
		mantissa /= 10
		e++
	}

	v := fastExponent(mantissa, e)
	if math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// fastExponent returns mantissa * 10^exponent. Negative exponents divide by
// the positive scale.
func fastExponent(mantissa int64, exponent int) float64 {
	result := float64(mantissa)
	if exponent == 0 {
		return result
	}

	magnitude := exponent
	if magnitude < 0 {
		magnitude = -magnitude
	}

	limit := 1 << len(powersOfTen)
	largest := powersOfTen[len(powersOfTen)-1]

	for ; magnitude >= limit; magnitude -= limit {
		if exponent > 0 {
			result *= largest
			result *= largest
		} else {
			result /= largest
			result /= largest
		}
	}

	scale := 1.0

	for i, p := range powersOfTen {
		if magnitude&(1<<i) != 0 {
			scale *= p
		}
	}

	if exponent < 0 {
		return result / scale
	}

	return result * scale
}
