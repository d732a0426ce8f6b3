package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func sp(start, end int) Span {
	return Span{Start: start, End: end}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{
			name: "binary nesting",
			expr: NewBinary(
				NewConstant(int32(1), "1", sp(0, 1)),
				NewBinary(NewConstant(int32(2), "2", sp(4, 5)), NewConstant(int32(3), "3", sp(8, 9)), Multiply, sp(4, 9)),
				Add, sp(0, 9)),
			want: "(1 + (2 * 3))",
		},
		{
			name: "subscript",
			expr: NewBinary(NewVariable("a", sp(0, 1)), NewConstant(int32(0), "0", sp(2, 3)), GetElement, sp(0, 4)),
			want: "a[0]",
		},
		{
			name: "static invocation",
			expr: NewStaticInvocation("java.lang.Math", "max", []Expr{
				NewConstant(int32(1), "1", sp(0, 1)),
				NewConstant(int32(2), "2", sp(0, 1)),
			}, sp(0, 1)),
			want: "java.lang.Math::max(1, 2)",
		},
		{
			name: "invocation on property",
			expr: NewInvocation(NewProperty(NewVariable("a", sp(0, 1)), "b", sp(0, 3)), "c", nil, sp(0, 7)),
			want: "a.b.c()",
		},
		{
			name: "string escapes",
			expr: NewConstant("it's\n", "'it\\'s\\n'", sp(0, 9)),
			want: `'it\'s\n'`,
		},
		{
			name: "float keeps fraction",
			expr: NewConstant(150.0, "1.5e2", sp(0, 5)),
			want: "150.0",
		},
		{
			name: "null and booleans",
			expr: NewBinary(NewConstant(nil, "null", sp(0, 4)), NewConstant(true, "true", sp(8, 12)), Equal, sp(0, 12)),
			want: "(null == true)",
		},
		{
			name: "unary",
			expr: NewUnary(NewUnary(NewVariable("x", sp(5, 6)), Negate, sp(4, 6)), Not, sp(0, 6)),
			want: "(not (-x))",
		},
		{
			name: "cast and instanceof",
			expr: NewInstanceOf(
				NewCast(NewVariable("x", sp(5, 6)), NewArray(NewPrimitive(Int)), sp(0, 6)),
				NewClass("java.util.List", []Generic{NewClass("String", nil)}), sp(0, 30)),
			want: "(((int[])x) instanceof java.util.List<String>)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
		})
	}
}

func TestEquivalentIgnoresSpans(t *testing.T) {
	a := NewBinary(NewVariable("a", sp(0, 1)), NewVariable("b", sp(4, 5)), Less, sp(0, 5))
	b := NewBinary(NewVariable("a", sp(0, 1)), NewVariable("b", sp(7, 8)), Less, sp(0, 8))
	c := NewBinary(NewVariable("a", sp(0, 1)), NewVariable("b", sp(4, 5)), LessOrEqual, sp(0, 5))

	assert.True(t, Equivalent(a, b))
	assert.False(t, Equivalent(a, c))
	assert.False(t, Equivalent(a, NewVariable("a", sp(0, 1))))
	assert.False(t, Equivalent(NewConstant(int32(1), "1", sp(0, 1)), NewConstant(1.0, "1e0", sp(0, 3))))
}

func TestTypeEquivalent(t *testing.T) {
	list := NewClass("List", []Generic{NewArray(NewClass("String", nil))})

	assert.True(t, TypeEquivalent(list, NewClass("List", []Generic{NewArray(NewClass("String", nil))})))
	assert.False(t, TypeEquivalent(list, NewClass("List", nil)))
	assert.False(t, TypeEquivalent(NewPrimitive(Int), NewPrimitive(Long)))
	assert.False(t, TypeEquivalent(NewArray(NewPrimitive(Int)), NewPrimitive(Int)))
}

func TestChildrenAndWalk(t *testing.T) {
	arg := NewVariable("y", sp(6, 7))
	inv := NewInvocation(NewVariable("x", sp(0, 1)), "f", []Expr{arg}, sp(0, 8))
	root := NewUnary(inv, Not, sp(0, 8))

	assert.Equal(t, []Expr{inv}, Children(root))
	assert.Equal(t, 2, len(Children(inv)))
	assert.Equal(t, 0, len(Children(arg)))

	var names []string

	parents := map[Expr]Expr{}

	Walk(root, func(n, parent Expr) {
		parents[n] = parent
		if v, ok := n.(*Variable); ok {
			names = append(names, v.Name)
		}
	})

	assert.Equal(t, []string{"x", "y"}, names)
	assert.Equal(t, Expr(inv), parents[arg])
	assert.True(t, parents[root] == nil)

	count := 0

	Inspect(root, func(n Expr) bool {
		count++
		_, isInvocation := n.(*Invocation)

		return !isInvocation
	})

	assert.Equal(t, 2, count)
}

func TestConstantDecimal(t *testing.T) {
	d, ok := NewConstant(150.0, "1.5e2", sp(0, 5)).Decimal()
	assert.True(t, ok)
	assert.Equal(t, "150", d.String())

	d, ok = NewConstant(0.1, "0.1", sp(0, 3)).Decimal()
	assert.True(t, ok)
	assert.Equal(t, "0.1", d.String())

	d, ok = NewConstant(int32(42), "", sp(0, 2)).Decimal()
	assert.True(t, ok)
	assert.Equal(t, "42", d.String())

	_, ok = NewConstant("42", "'42'", sp(0, 4)).Decimal()
	assert.False(t, ok)
}

func TestArrayDimensions(t *testing.T) {
	depth, elem := NewArray(NewArray(NewPrimitive(Int))).Dimensions()
	assert.Equal(t, 2, depth)
	assert.Equal(t, Type(NewPrimitive(Int)), elem)
}

func TestDump(t *testing.T) {
	expr := NewStaticProperty("Math", "PI", sp(0, 7))
	assert.Equal(t, map[string]any{
		"kind":  "StaticProperty",
		"class": "Math",
		"name":  "PI",
		"span":  []int{0, 7},
	}, Dump(expr))

	assert.Equal(t, map[string]any{
		"kind":    "Array",
		"element": map[string]any{"kind": "Primitive", "name": "int"},
	}, DumpType(NewArray(NewPrimitive(Int))))
}

func TestSpanContains(t *testing.T) {
	assert.True(t, sp(0, 10).Contains(sp(2, 5)))
	assert.True(t, sp(0, 10).Contains(sp(0, 10)))
	assert.False(t, sp(1, 10).Contains(sp(0, 5)))
	assert.Equal(t, 3, sp(2, 5).Len())
	assert.Equal(t, "[2,5)", sp(2, 5).String())
}
