package parser

import (
	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/tmplexpr/ast"
)

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}

func (g *grammar) whitespaceChar() pc.Parser[entity] {
	return func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
		if len(tokens) > 0 && isWhitespace(g.src[g.offset(tokens)]) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

// ws means with space: the token followed by dropped whitespace.
func (g *grammar) ws(token pc.Parser[entity]) pc.Parser[entity] {
	return pc.Seq(token, g.sp)
}

// literal matches text exactly. With boundary set, a match that runs into a
// following identifier character is rejected.
func (g *grammar) literal(text string, boundary bool) pc.Parser[entity] {
	want := []rune(text)
	boundary = boundary && isIdentifierPart(want[len(want)-1])

	return func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
		start := g.offset(tokens)
		if len(tokens) < len(want) {
			g.fail(start)
			return 0, nil, pc.ErrNotMatch
		}

		for i, r := range want {
			if g.src[start+i] != r {
				g.fail(start)
				return 0, nil, pc.ErrNotMatch
			}
		}

		end := start + len(want)
		if boundary && end < len(g.src) && isIdentifierPart(g.src[end]) {
			g.fail(start)
			return 0, nil, pc.ErrNotMatch
		}

		return len(want), []pc.Token[entity]{{
			Type: keywordToken,
			Pos:  tokens[0].Pos,
			Val:  entity{text: text, start: start, end: end},
			Raw:  text,
		}}, nil
	}
}

// keyword checks the identifier boundary only in strict mode, so "a order"
// reads as "a or der" by default.
func (g *grammar) keyword(text string) pc.Parser[entity] {
	return g.ws(g.literal(text, g.strict))
}

// word is a keyword that never matches the start of a longer identifier.
// Prefix keywords tried ahead of identifiers need it: "nothing" is a variable.
func (g *grammar) word(text string) pc.Parser[entity] {
	return g.ws(g.literal(text, true))
}

// operator matches any spelling of op.
func (g *grammar) operator(op ast.BinaryOp, spellings ...string) pc.Parser[entity] {
	alternatives := make([]pc.Parser[entity], len(spellings))
	for i, s := range spellings {
		alternatives[i] = g.keyword(s)
	}

	return pc.Trans(pc.Or(alternatives...), func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
		tokens[0].Type = operatorToken
		tokens[0].Val.op = op

		return tokens[:1], nil
	})
}

func (g *grammar) rawIdentifier() pc.Parser[entity] {
	return func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
		start := g.offset(tokens)
		if len(tokens) == 0 || !isIdentifierStart(g.src[start]) {
			g.fail(start)
			return 0, nil, pc.ErrNotMatch
		}

		end := start + 1
		for end < len(g.src) && isIdentifierPart(g.src[end]) {
			end++
		}

		name := string(g.src[start:end])

		return end - start, []pc.Token[entity]{{
			Type: identifierToken,
			Pos:  tokens[0].Pos,
			Val:  entity{text: name, start: start, end: end},
			Raw:  name,
		}}, nil
	}
}

func (g *grammar) identifier() pc.Parser[entity] {
	return g.ws(g.rawIdentifier())
}
