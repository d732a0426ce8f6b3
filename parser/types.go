package parser

import (
	"strings"

	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/tmplexpr/ast"
)

// buildTypes defines:
//
//	Type        = (primitive | ClassType) ("[" "]")*
//	GenericType = ClassType ("[" "]")*
//	ClassType   = ident ("." ident)* ["<" GenericType ("," GenericType)* ">"]
func (g *grammar) buildTypes() {
	genericType := pc.Lazy(func() pc.Parser[entity] { return g.genericType })

	qualifiedName := pc.Seq(
		g.identifier(),
		pc.ZeroOrMore("qualified name", pc.Seq(g.keyword("."), g.identifier())),
	)

	typeArguments := pc.Seq(
		g.keyword("<"),
		genericType,
		pc.ZeroOrMore("type arguments", pc.Seq(g.keyword(","), genericType)),
		g.keyword(">"),
	)

	classType := pc.Trace("class type", pc.Trans(pc.Seq(qualifiedName, pc.Optional(typeArguments)), g.reduceClass))

	g.typ = pc.Trace("type", g.withArraySuffix(pc.Or(g.primitiveType(), classType)))
	g.genericType = pc.Trace("generic type", g.withArraySuffix(classType))
}

func (g *grammar) primitiveType() pc.Parser[entity] {
	alternatives := make([]pc.Parser[entity], 0, len(ast.PrimitiveKinds))

	for _, kind := range ast.PrimitiveKinds {
		alternatives = append(alternatives, pc.Trans(g.keyword(kind.String()), func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
			tokens[0].Type = typeToken
			tokens[0].Val.typ = ast.NewPrimitive(kind)

			return tokens[:1], nil
		}))
	}

	return pc.Or(alternatives...)
}

func (g *grammar) reduceClass(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
	var (
		names []string
		args  []ast.Generic
	)

	for _, t := range tokens {
		switch t.Type {
		case identifierToken:
			// identifiers inside type arguments were already reduced to type tokens
			names = append(names, t.Val.text)
		case typeToken:
			generic, ok := t.Val.typ.(ast.Generic)
			if !ok {
				return nil, pc.ErrNotMatch
			}

			args = append(args, generic)
		}
	}

	val := entity{start: tokens[0].Val.start, end: tokens[len(tokens)-1].Val.end}
	val.typ = ast.NewClass(strings.Join(names, "."), args)

	return []pc.Token[entity]{{Type: typeToken, Pos: tokens[0].Pos, Val: val}}, nil
}

func (g *grammar) withArraySuffix(element pc.Parser[entity]) pc.Parser[entity] {
	suffix := pc.ZeroOrMore("array suffix", pc.Seq(g.keyword("["), g.keyword("]")))

	return pc.Trans(pc.Seq(element, suffix), func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) ([]pc.Token[entity], error) {
		val := tokens[0].Val

		for _, t := range tokens[1:] {
			if t.Val.text == "]" {
				val.typ = ast.NewArray(val.typ)
				val.end = t.Val.end
			}
		}

		tokens[0].Val = val

		return tokens[:1], nil
	})
}
