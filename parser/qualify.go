package parser

import (
	"github.com/shibukawa/tmplexpr/ast"
	"github.com/shibukawa/tmplexpr/classresolver"
)

// qualify builds the node for instance.name or instance.name(args). When
// instance reads as a dotted name that the resolver knows as a class, the
// member is static.
func (g *grammar) qualify(instance ast.Expr, step entity, span ast.Span) ast.Expr {
	className, static := resolveClass(instance, g.resolver)

	switch {
	case static && step.call:
		return ast.NewStaticInvocation(className, step.text, step.args, span)
	case static:
		return ast.NewStaticProperty(className, step.text, span)
	case step.call:
		return ast.NewInvocation(instance, step.text, step.args, span)
	default:
		return ast.NewProperty(instance, step.text, span)
	}
}

// resolveClass returns the canonical class name for a Variable or a chain of
// Property nodes rooted at a Variable.
func resolveClass(expr ast.Expr, resolver classresolver.Resolver) (string, bool) {
	name, ok := dottedName(expr)
	if !ok {
		return "", false
	}

	return resolver.FindClass(name)
}

func dottedName(expr ast.Expr) (string, bool) {
	switch n := expr.(type) {
	case *ast.Variable:
		return n.Name, true
	case *ast.Property:
		prefix, ok := dottedName(n.Instance)
		if !ok {
			return "", false
		}

		return prefix + "." + n.Name, true
	default:
		return "", false
	}
}
