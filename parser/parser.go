// Package parser turns template expression source text into an ast.Expr.
//
// The grammar is an ordered-choice (PEG) precedence grammar built with
// parsercombinator over a stream of one-rune tokens. Whether a.b.c is a
// property chain or a class name is decided while parsing by asking a
// classresolver.Resolver.
package parser

import (
	"errors"
	"fmt"
	"io"

	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/tmplexpr/ast"
	"github.com/shibukawa/tmplexpr/classresolver"
)

// Option configures a Parser.
type Option func(*options)

type options struct {
	strictKeywords bool
	trace          io.Writer
}

// maxDepth bounds grammar recursion. One level of parentheses costs about
// fourteen rule levels, so this allows well over a thousand.
const maxDepth = 20000

// WithStrictKeywords rejects every keyword that runs into an identifier
// character, so "a order" is an error rather than (a or der). The "not"
// prefix is always checked.
func WithStrictKeywords() Option {
	return func(o *options) {
		o.strictKeywords = true
	}
}

// WithTrace writes the grammar rule trace of each parse to w. Tracing also
// turns on the combinator's ordered-choice check, which reports to stderr
// when a longer alternative was passed over.
func WithTrace(w io.Writer) Option {
	return func(o *options) {
		o.trace = w
	}
}

// Parser parses expressions and types. A Parser keeps per-parse state and is
// not safe for concurrent use; create one per goroutine.
type Parser struct {
	g     *grammar
	trace io.Writer
}

// New returns a Parser that consults resolver to tell class names from
// variables. A nil resolver knows no classes.
func New(resolver classresolver.Resolver, opts ...Option) *Parser {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Parser{g: newGrammar(resolver, o.strictKeywords), trace: o.trace}
}

// Parse parses a complete expression. Leading and trailing whitespace is
// allowed; anything else left over is an error.
func Parse(src string, resolver classresolver.Resolver) (ast.Expr, error) {
	return New(resolver).Parse(src)
}

// Parse parses a complete expression.
func (p *Parser) Parse(src string) (ast.Expr, error) {
	tok, err := p.run(src, p.g.root, exprToken)
	if err != nil {
		return nil, err
	}

	return tok.Val.expr, nil
}

// ParseType parses a complete type such as "int[]" or "java.util.Map<String, Integer>".
func (p *Parser) ParseType(src string) (ast.Type, error) {
	tok, err := p.run(src, p.g.typeRoot, typeToken)
	if err != nil {
		return nil, err
	}

	return tok.Val.typ, nil
}

func (p *Parser) run(src string, rule pc.Parser[entity], want string) (pc.Token[entity], error) {
	runes := []rune(src)
	p.g.reset(runes)

	pctx := pc.NewParseContext[entity]()
	pctx.OrMode = pc.OrModeFast
	pctx.MaxDepth = maxDepth

	if p.trace != nil {
		pctx.OrMode = pc.OrModeTryFast
		pctx.TraceEnable = true

		defer pctx.DumpTraceTo(p.trace)
	}

	_, out, err := rule(pctx, toTokens(runes))
	if err != nil {
		if errors.Is(err, pc.ErrStackOverflow) {
			return pc.Token[entity]{}, fmt.Errorf("%w: more than %d grammar levels", ErrTooDeep, maxDepth)
		}

		parseErr := newParseError(runes, p.g.furthest)
		if !errors.Is(err, pc.ErrNotMatch) {
			return pc.Token[entity]{}, fmt.Errorf("%w: %w", parseErr, err)
		}

		return pc.Token[entity]{}, parseErr
	}

	tok, ok := firstOfType(out, want)
	if !ok {
		return pc.Token[entity]{}, newParseError(runes, p.g.furthest)
	}

	return tok, nil
}
