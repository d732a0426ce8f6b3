package parser

import (
	"unicode/utf16"

	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/tmplexpr/ast"
)

func (g *grammar) stringLiteral() pc.Parser[entity] {
	return g.ws(func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
		start := g.offset(tokens)

		value, n, ok := readString(g.src[start:])
		if !ok {
			// n points at the offending rune
			g.fail(start + n)
			return 0, nil, pc.ErrNotMatch
		}

		val := entity{start: start, end: start + n}
		val.expr = ast.NewConstant(value, string(g.src[start:start+n]), val.span())

		return n, []pc.Token[entity]{newExprToken(tokens[0].Pos, val)}, nil
	})
}

// readString decodes a single-quoted literal at the start of src. Escapes are
// \r \n \t \' \\ and \uXXXX (or \UXXXX); an escaped high surrogate must be
// followed by an escaped low surrogate and the pair combines into one code
// point. On failure the returned length is the offset of the problem.
func readString(src []rune) (string, int, bool) {
	if len(src) == 0 || src[0] != '\'' {
		return "", 0, false
	}

	var units []uint16

	// offset of an escaped high surrogate still waiting for its low half
	high := -1

	i := 1
	for i < len(src) {
		r := src[i]

		if high >= 0 && r != '\\' {
			return "", high, false
		}

		switch {
		case r == '\'':
			return string(utf16.Decode(units)), i + 1, true
		case r == '\\':
			decoded, n, ok := readEscape(src[i+1:])
			if !ok {
				return "", i, false
			}

			switch {
			case isHighSurrogate(decoded):
				if high >= 0 {
					return "", high, false
				}

				high = i
			case isLowSurrogate(decoded):
				if high < 0 {
					return "", i, false
				}

				high = -1
			case high >= 0:
				return "", high, false
			}

			units = append(units, decoded)
			i += 1 + n
		case r < 0x1F:
			return "", i, false
		default:
			if r >= 0x10000 {
				hi, lo := utf16.EncodeRune(r)
				units = append(units, uint16(hi), uint16(lo))
			} else {
				units = append(units, uint16(r))
			}

			i++
		}
	}

	return "", len(src), false
}

func isHighSurrogate(u uint16) bool {
	return u >= 0xD800 && u < 0xDC00
}

func isLowSurrogate(u uint16) bool {
	return u >= 0xDC00 && u < 0xE000
}

func readEscape(src []rune) (uint16, int, bool) {
	if len(src) == 0 {
		return 0, 0, false
	}

	switch src[0] {
	case 'r':
		return '\r', 1, true
	case 'n':
		return '\n', 1, true
	case 't':
		return '\t', 1, true
	case '\'':
		return '\'', 1, true
	case '\\':
		return '\\', 1, true
	case 'u', 'U':
		if len(src) < 5 {
			return 0, 0, false
		}

		var v uint16

		for _, r := range src[1:5] {
			d, ok := hexValue(r)
			if !ok {
				return 0, 0, false
			}

			v = v<<4 | d
		}

		return v, 5, true
	}

	return 0, 0, false
}

func hexValue(r rune) (uint16, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint16(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint16(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return uint16(r-'A') + 10, true
	}

	return 0, false
}
