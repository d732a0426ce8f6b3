package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/tmplexpr/ast"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "primitive", input: "int", want: "int"},
		{name: "every primitive", input: "boolean", want: "boolean"},
		{name: "two dimensional array", input: "int[][]", want: "int[][]"},
		{name: "spaced array", input: "double [ ] ", want: "double[]"},
		{name: "simple class", input: "String", want: "String"},
		{name: "qualified class", input: "java.util.List", want: "java.util.List"},
		{name: "generic", input: "java.util.List<String>", want: "java.util.List<String>"},
		{name: "nested generic", input: "Map<String, List<Integer>>", want: "Map<String, List<Integer>>"},
		{name: "generic array argument", input: "List<String[]>[]", want: "List<String[]>[]"},
		{name: "capitalised primitive name", input: "Integer", want: "Integer"},
	}

	p := New(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := p.ParseType(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, typ.String())
		})
	}
}

func TestParseTypeShapes(t *testing.T) {
	p := New(nil)

	typ, err := p.ParseType("int[][]")
	assert.NoError(t, err)

	arr, ok := typ.(*ast.Array)
	assert.True(t, ok)

	depth, inner := arr.Dimensions()
	assert.Equal(t, 2, depth)
	assert.Equal(t, ast.Type(ast.NewPrimitive(ast.Int)), inner)

	typ, err = p.ParseType("java.util.List<String>")
	assert.NoError(t, err)

	class, ok := typ.(*ast.Class)
	assert.True(t, ok)
	assert.Equal(t, "java.util.List", class.Name)
	assert.Equal(t, 1, len(class.Arguments))
	assert.True(t, ast.TypeEquivalent(ast.NewClass("String", nil), class.Arguments[0]))

	typ, err = p.ParseType("Object")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(typ.(*ast.Class).Arguments))
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "open array", input: "int["},
		{name: "empty type arguments", input: "List<>"},
		{name: "unclosed type arguments", input: "List<String"},
		{name: "trailing dot", input: "java.util."},
		{name: "expression", input: "a + b"},
	}

	p := New(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseType(tt.input)
			assert.IsError(t, err, ErrInvalidExpression)
		})
	}
}

func TestParseTypeKeywordPrefix(t *testing.T) {
	_, err := New(nil).ParseType("integer")
	assert.Error(t, err)

	typ, err := New(nil, WithStrictKeywords()).ParseType("integer")
	assert.NoError(t, err)
	assert.Equal(t, "integer", typ.String())
}
