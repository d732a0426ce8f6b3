// Package ast defines the expression and type trees produced by the parser.
//
// Expression nodes form a closed set: every node implements Expr and the
// unexported marker method keeps other packages from adding variants.
// Nodes are built bottom-up by the parser and are immutable afterwards; the
// span of a node is fixed by its constructor.
package ast

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Span is a half-open range [Start, End) of rune offsets into the source text.
type Span struct {
	Start int
	End   int
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Expr is an expression node.
type Expr interface {
	Span() Span
	Accept(v Visitor)
	String() string
	exprNode()
}

type node struct {
	span Span
}

func (n node) Span() Span { return n.span }
func (node) exprNode()    {}

// Constant is a literal: bool, nil, string, int32 or float64.
type Constant struct {
	node
	Value any
	// Literal is the source text of the literal as written.
	Literal string
}

// NewConstant creates a constant node.
func NewConstant(value any, literal string, span Span) *Constant {
	return &Constant{node: node{span: span}, Value: value, Literal: literal}
}

// IsNumeric reports whether the constant holds an int32 or float64.
func (c *Constant) IsNumeric() bool {
	switch c.Value.(type) {
	case int32, float64:
		return true
	}

	return false
}

// Decimal returns the exact decimal value of a numeric literal as it was
// written in the source, before conversion to a binary floating point value.
func (c *Constant) Decimal() (decimal.Decimal, bool) {
	if !c.IsNumeric() {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(c.Literal)
	if err != nil {
		switch v := c.Value.(type) {
		case int32:
			return decimal.NewFromInt32(v), true
		case float64:
			return decimal.NewFromFloat(v), true
		}

		return decimal.Decimal{}, false
	}

	return d, true
}

// Variable is an unqualified identifier.
type Variable struct {
	node
	Name string
}

func NewVariable(name string, span Span) *Variable {
	return &Variable{node: node{span: span}, Name: name}
}

// Property reads Name from Instance.
type Property struct {
	node
	Instance Expr
	Name     string
}

func NewProperty(instance Expr, name string, span Span) *Property {
	return &Property{node: node{span: span}, Instance: instance, Name: name}
}

// StaticProperty reads a static member of a class.
type StaticProperty struct {
	node
	ClassName string
	Name      string
}

func NewStaticProperty(className, name string, span Span) *StaticProperty {
	return &StaticProperty{node: node{span: span}, ClassName: className, Name: name}
}

// Invocation calls method Name on Instance.
type Invocation struct {
	node
	Instance  Expr
	Name      string
	Arguments []Expr
}

func NewInvocation(instance Expr, name string, args []Expr, span Span) *Invocation {
	return &Invocation{node: node{span: span}, Instance: instance, Name: name, Arguments: args}
}

// StaticInvocation calls a static method of a class.
type StaticInvocation struct {
	node
	ClassName string
	Name      string
	Arguments []Expr
}

func NewStaticInvocation(className, name string, args []Expr, span Span) *StaticInvocation {
	return &StaticInvocation{node: node{span: span}, ClassName: className, Name: name, Arguments: args}
}

// Binary applies Op to Left and Right. GetElement indexes Left by Right.
type Binary struct {
	node
	Left  Expr
	Right Expr
	Op    BinaryOp
}

func NewBinary(left, right Expr, op BinaryOp, span Span) *Binary {
	return &Binary{node: node{span: span}, Left: left, Right: right, Op: op}
}

// Unary applies Op to Operand.
type Unary struct {
	node
	Operand Expr
	Op      UnaryOp
}

func NewUnary(operand Expr, op UnaryOp, span Span) *Unary {
	return &Unary{node: node{span: span}, Operand: operand, Op: op}
}

// Cast converts Operand to Target.
type Cast struct {
	node
	Operand Expr
	Target  Type
}

func NewCast(operand Expr, target Type, span Span) *Cast {
	return &Cast{node: node{span: span}, Operand: operand, Target: target}
}

// InstanceOf tests Operand against a class or array type.
type InstanceOf struct {
	node
	Operand Expr
	Target  Generic
}

func NewInstanceOf(operand Expr, target Generic, span Span) *InstanceOf {
	return &InstanceOf{node: node{span: span}, Operand: operand, Target: target}
}
