package parser

import (
	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/tmplexpr/ast"
	"github.com/shibukawa/tmplexpr/classresolver"
)

// Token types produced by grammar rules. Raw input tokens carry one rune each.
const (
	rawToken           = "raw"
	keywordToken       = "keyword"
	identifierToken    = "identifier"
	operatorToken      = "operator"
	exprToken          = "expr"
	typeToken          = "type"
	qualificationToken = "qualification"
	subscriptToken     = "subscript"
	instanceOfToken    = "instanceof"
)

// entity is the value carried by every token. start and end delimit the
// matched source text without trailing whitespace.
type entity struct {
	text  string
	op    ast.BinaryOp
	expr  ast.Expr
	typ   ast.Type
	args  []ast.Expr
	call  bool
	start int
	end   int
}

func (e entity) span() ast.Span {
	return ast.Span{Start: e.start, End: e.end}
}

// grammar holds the rule set for one Parser. Rules are closures over the
// grammar, so src and furthest are per-parse state.
type grammar struct {
	src      []rune
	furthest int
	resolver classresolver.Resolver
	strict   bool

	sp          pc.Parser[entity]
	expression  pc.Parser[entity]
	typ         pc.Parser[entity]
	genericType pc.Parser[entity]
	root        pc.Parser[entity]
	typeRoot    pc.Parser[entity]
}

func newGrammar(resolver classresolver.Resolver, strict bool) *grammar {
	if resolver == nil {
		resolver = classresolver.None
	}

	g := &grammar{resolver: resolver, strict: strict}
	g.sp = pc.Drop(pc.ZeroOrMore("whitespace", g.whitespaceChar()))
	g.buildTypes()
	g.buildExpressions()

	g.root = pc.Seq(g.sp, g.expression, g.endOfInput())
	g.typeRoot = pc.Seq(g.sp, g.typ, g.endOfInput())

	return g
}

func (g *grammar) reset(src []rune) {
	g.src = src
	g.furthest = 0
}

// offset returns the source offset of the first remaining input token.
func (g *grammar) offset(tokens []pc.Token[entity]) int {
	if len(tokens) == 0 {
		return len(g.src)
	}

	return tokens[0].Val.start
}

func (g *grammar) fail(offset int) {
	if offset > g.furthest {
		g.furthest = offset
	}
}

func (g *grammar) endOfInput() pc.Parser[entity] {
	eos := pc.EOS[entity]()

	return func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
		consumed, out, err := eos(pctx, tokens)
		if err != nil {
			g.fail(g.offset(tokens))
		}

		return consumed, out, err
	}
}

func toTokens(src []rune) []pc.Token[entity] {
	tokens := make([]pc.Token[entity], len(src))
	line, col := 1, 1

	for i, r := range src {
		tokens[i] = pc.Token[entity]{
			Type: rawToken,
			Pos:  &pc.Pos{Line: line, Col: col, Index: i},
			Val:  entity{start: i, end: i + 1},
			Raw:  string(r),
		}

		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return tokens
}

func newExprToken(pos *pc.Pos, val entity) pc.Token[entity] {
	return pc.Token[entity]{Type: exprToken, Pos: pos, Val: val}
}

// firstOfType returns the first output token of the given type.
func firstOfType(tokens []pc.Token[entity], tokenType string) (pc.Token[entity], bool) {
	for _, t := range tokens {
		if t.Type == tokenType {
			return t, true
		}
	}

	return pc.Token[entity]{}, false
}
