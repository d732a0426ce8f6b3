package parser

import (
	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/tmplexpr/ast"
)

// buildExpressions defines the precedence grammar, loosest first:
//
//	Or             = And ("or" And)*
//	And            = Not ("and" Not)*
//	Not            = "not" Not | Comparison
//	Comparison     = Additive (compareOp Additive)*
//	Additive       = Multiplicative (("+" | "-") Multiplicative)*
//	Multiplicative = Arithmetic (("*" | "/" | "%") Arithmetic)*
//	Arithmetic     = Path | "-" Arithmetic
//	Path           = "(" Type ")" Primitive Navigation* | Primitive Navigation* ["instanceof" GenericType]
//	Navigation     = "." ident ["(" [Or ("," Or)*] ")"] | "[" Or "]"
func (g *grammar) buildExpressions() {
	expression := pc.Lazy(func() pc.Parser[entity] { return g.expression })

	primitive := pc.Or(
		g.numberLiteral(),
		g.stringLiteral(),
		g.constant("true", true),
		g.constant("false", false),
		g.constant("null", nil),
		g.variable(),
		g.parenthesized(expression),
	)

	qualification := pc.Trans(pc.Seq(
		g.keyword("."),
		g.identifier(),
		pc.Optional(pc.Seq(
			g.keyword("("),
			pc.Optional(pc.Seq(expression, pc.ZeroOrMore("arguments", pc.Seq(g.keyword(","), expression)))),
			g.keyword(")"),
		)),
	), g.qualificationStep)

	subscript := pc.Trans(pc.Seq(g.keyword("["), expression, g.keyword("]")), g.subscriptStep)
	navigation := pc.Or(qualification, subscript)

	instanceOf := pc.Trans(pc.Seq(g.keyword("instanceof"), g.genericType), g.instanceOfStep)

	castOperand := pc.Trans(pc.Seq(primitive, pc.ZeroOrMore("navigation", navigation)), g.reducePath)
	cast := pc.Trans(pc.Seq(g.keyword("("), g.typ, g.keyword(")"), castOperand), g.reduceCast)

	path := pc.Trace("path", pc.Or(
		cast,
		pc.Trans(pc.Seq(primitive, pc.ZeroOrMore("navigation", navigation), pc.Optional(instanceOf)), g.reducePath),
	))

	var arithmetic pc.Parser[entity]
	arithmetic = pc.Or(
		path,
		pc.Trans(pc.Seq(g.keyword("-"), pc.Lazy(func() pc.Parser[entity] { return arithmetic })), g.reduceUnary(ast.Negate)),
	)

	multiplicative := g.binaryLevel("multiplicative", arithmetic,
		g.operator(ast.Multiply, "*"),
		g.operator(ast.Divide, "/"),
		g.operator(ast.Remainder, "%"),
	)

	additive := g.binaryLevel("additive", multiplicative,
		g.operator(ast.Add, "+"),
		g.operator(ast.Subtract, "-"),
	)

	// two-character spellings come first so "<=" is not read as "<"
	comparison := g.binaryLevel("comparison", additive,
		g.operator(ast.Equal, "=="),
		g.operator(ast.NotEqual, "!="),
		g.operator(ast.LessOrEqual, "<=", "loe"),
		g.operator(ast.Less, "<", "less"),
		g.operator(ast.GreaterOrEqual, ">=", "goe"),
		g.operator(ast.Greater, ">", "greater"),
	)

	var not pc.Parser[entity]
	not = pc.Or(
		pc.Trans(pc.Seq(g.word("not"), pc.Lazy(func() pc.Parser[entity] { return not })), g.reduceUnary(ast.Not)),
		comparison,
	)

	and := g.binaryLevel("and", not, g.operator(ast.And, "and"))
	or := g.binaryLevel("or", and, g.operator(ast.Or, "or"))

	g.expression = pc.Trace("expression", or)
}

// binaryLevel matches operand (op operand)* and folds it to the left.
func (g *grammar) binaryLevel(label string, operand pc.Parser[entity], operators ...pc.Parser[entity]) pc.Parser[entity] {
	return pc.Trans(
		pc.Seq(operand, pc.ZeroOrMore(label, pc.Seq(pc.Or(operators...), operand))),
		g.reduceBinary,
	)
}

func (g *grammar) reduceBinary(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
	acc := tokens[0].Val

	for i := 1; i+1 < len(tokens); i += 2 {
		right := tokens[i+1].Val
		next := entity{start: acc.start, end: right.end}
		next.expr = ast.NewBinary(acc.expr, right.expr, tokens[i].Val.op, next.span())
		acc = next
	}

	return []pc.Token[entity]{newExprToken(tokens[0].Pos, acc)}, nil
}

func (g *grammar) reduceUnary(op ast.UnaryOp) func(*pc.ParseContext[entity], []pc.Token[entity]) ([]pc.Token[entity], error) {
	return func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
		operand := tokens[1].Val
		val := entity{start: tokens[0].Val.start, end: operand.end}
		val.expr = ast.NewUnary(operand.expr, op, val.span())

		return []pc.Token[entity]{newExprToken(tokens[0].Pos, val)}, nil
	}
}

func (g *grammar) constant(word string, value any) pc.Parser[entity] {
	return pc.Trans(g.keyword(word), func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
		val := tokens[0].Val
		val.expr = ast.NewConstant(value, word, val.span())

		return []pc.Token[entity]{newExprToken(tokens[0].Pos, val)}, nil
	})
}

func (g *grammar) variable() pc.Parser[entity] {
	return pc.Trans(g.identifier(), func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
		val := tokens[0].Val
		val.expr = ast.NewVariable(val.text, val.span())

		return []pc.Token[entity]{newExprToken(tokens[0].Pos, val)}, nil
	})
}

// parenthesized keeps the inner node and its span; only the match range
// grows to cover the parentheses.
func (g *grammar) parenthesized(expression pc.Parser[entity]) pc.Parser[entity] {
	return pc.Trans(pc.Seq(g.keyword("("), expression, g.keyword(")")), func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
		val := tokens[1].Val
		val.start = tokens[0].Val.start
		val.end = tokens[2].Val.end

		return []pc.Token[entity]{newExprToken(tokens[0].Pos, val)}, nil
	})
}

func (g *grammar) qualificationStep(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
	step := entity{text: tokens[1].Val.text, start: tokens[0].Val.start, end: tokens[1].Val.end}

	if len(tokens) > 2 {
		step.call = true
		step.args = []ast.Expr{}

		for _, t := range tokens[2:] {
			if t.Type == exprToken {
				step.args = append(step.args, t.Val.expr)
			}
		}

		step.end = tokens[len(tokens)-1].Val.end
	}

	return []pc.Token[entity]{{Type: qualificationToken, Pos: tokens[0].Pos, Val: step}}, nil
}

func (g *grammar) subscriptStep(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
	step := entity{expr: tokens[1].Val.expr, start: tokens[0].Val.start, end: tokens[2].Val.end}

	return []pc.Token[entity]{{Type: subscriptToken, Pos: tokens[0].Pos, Val: step}}, nil
}

func (g *grammar) instanceOfStep(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
	step := entity{typ: tokens[1].Val.typ, start: tokens[0].Val.start, end: tokens[1].Val.end}

	return []pc.Token[entity]{{Type: instanceOfToken, Pos: tokens[0].Pos, Val: step}}, nil
}

// reducePath applies navigation steps left to right. Each step's node spans
// from the start of the chain to the end of the step.
func (g *grammar) reducePath(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
	acc := tokens[0].Val

	for _, step := range tokens[1:] {
		span := ast.Span{Start: acc.start, End: step.Val.end}

		switch step.Type {
		case qualificationToken:
			acc.expr = g.qualify(acc.expr, step.Val, span)
		case subscriptToken:
			acc.expr = ast.NewBinary(acc.expr, step.Val.expr, ast.GetElement, span)
		case instanceOfToken:
			target, ok := step.Val.typ.(ast.Generic)
			if !ok {
				return nil, pc.ErrNotMatch
			}

			acc.expr = ast.NewInstanceOf(acc.expr, target, span)
		}

		acc.end = step.Val.end
	}

	return []pc.Token[entity]{newExprToken(tokens[0].Pos, acc)}, nil
}

func (g *grammar) reduceCast(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
	operand := tokens[3].Val
	val := entity{start: tokens[0].Val.start, end: operand.end}
	val.expr = ast.NewCast(operand.expr, tokens[1].Val.typ, val.span())

	return []pc.Token[entity]{newExprToken(tokens[0].Pos, val)}, nil
}
