package ast

// Visitor receives one call per expression node kind.
type Visitor interface {
	VisitConstant(n *Constant)
	VisitVariable(n *Variable)
	VisitProperty(n *Property)
	VisitStaticProperty(n *StaticProperty)
	VisitInvocation(n *Invocation)
	VisitStaticInvocation(n *StaticInvocation)
	VisitBinary(n *Binary)
	VisitUnary(n *Unary)
	VisitCast(n *Cast)
	VisitInstanceOf(n *InstanceOf)
}

func (n *Constant) Accept(v Visitor)         { v.VisitConstant(n) }
func (n *Variable) Accept(v Visitor)         { v.VisitVariable(n) }
func (n *Property) Accept(v Visitor)         { v.VisitProperty(n) }
func (n *StaticProperty) Accept(v Visitor)   { v.VisitStaticProperty(n) }
func (n *Invocation) Accept(v Visitor)       { v.VisitInvocation(n) }
func (n *StaticInvocation) Accept(v Visitor) { v.VisitStaticInvocation(n) }
func (n *Binary) Accept(v Visitor)           { v.VisitBinary(n) }
func (n *Unary) Accept(v Visitor)            { v.VisitUnary(n) }
func (n *Cast) Accept(v Visitor)             { v.VisitCast(n) }
func (n *InstanceOf) Accept(v Visitor)       { v.VisitInstanceOf(n) }

// TypeVisitor receives one call per type node kind.
type TypeVisitor interface {
	VisitPrimitive(t *Primitive)
	VisitClass(t *Class)
	VisitArray(t *Array)
}

func (t *Primitive) Accept(v TypeVisitor) { v.VisitPrimitive(t) }
func (t *Class) Accept(v TypeVisitor)     { v.VisitClass(t) }
func (t *Array) Accept(v TypeVisitor)     { v.VisitArray(t) }

// Children returns the direct child expressions of e in source order.
func Children(e Expr) []Expr {
	switch n := e.(type) {
	case *Property:
		return []Expr{n.Instance}
	case *Invocation:
		return append([]Expr{n.Instance}, n.Arguments...)
	case *StaticInvocation:
		return append([]Expr(nil), n.Arguments...)
	case *Binary:
		return []Expr{n.Left, n.Right}
	case *Unary:
		return []Expr{n.Operand}
	case *Cast:
		return []Expr{n.Operand}
	case *InstanceOf:
		return []Expr{n.Operand}
	default:
		return nil
	}
}

// Inspect traverses e depth-first in pre-order. Children of a node are
// skipped when fn returns false for it.
func Inspect(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}

	for _, child := range Children(e) {
		Inspect(child, fn)
	}
}

// Walk calls fn for every node of e together with its parent (nil for e).
func Walk(e Expr, fn func(n, parent Expr)) {
	var walk func(n, parent Expr)

	walk = func(n, parent Expr) {
		fn(n, parent)

		for _, child := range Children(n) {
			walk(child, n)
		}
	}

	if e != nil {
		walk(e, nil)
	}
}

// Equivalent reports whether a and b have the same structure and values,
// ignoring spans and literal spelling.
func Equivalent(a, b Expr) bool {
	switch x := a.(type) {
	case *Constant:
		y, ok := b.(*Constant)
		return ok && x.Value == y.Value
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *Property:
		y, ok := b.(*Property)
		return ok && x.Name == y.Name && Equivalent(x.Instance, y.Instance)
	case *StaticProperty:
		y, ok := b.(*StaticProperty)
		return ok && x.ClassName == y.ClassName && x.Name == y.Name
	case *Invocation:
		y, ok := b.(*Invocation)
		return ok && x.Name == y.Name && Equivalent(x.Instance, y.Instance) && equivalentList(x.Arguments, y.Arguments)
	case *StaticInvocation:
		y, ok := b.(*StaticInvocation)
		return ok && x.ClassName == y.ClassName && x.Name == y.Name && equivalentList(x.Arguments, y.Arguments)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equivalent(x.Left, y.Left) && Equivalent(x.Right, y.Right)
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && Equivalent(x.Operand, y.Operand)
	case *Cast:
		y, ok := b.(*Cast)
		return ok && TypeEquivalent(x.Target, y.Target) && Equivalent(x.Operand, y.Operand)
	case *InstanceOf:
		y, ok := b.(*InstanceOf)
		return ok && TypeEquivalent(x.Target, y.Target) && Equivalent(x.Operand, y.Operand)
	case nil:
		return b == nil
	default:
		return false
	}
}

func equivalentList(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !Equivalent(a[i], b[i]) {
			return false
		}
	}

	return true
}

// TypeEquivalent reports whether two type trees are structurally equal.
func TypeEquivalent(a, b Type) bool {
	switch x := a.(type) {
	case *Primitive:
		y, ok := b.(*Primitive)
		return ok && x.Kind == y.Kind
	case *Class:
		y, ok := b.(*Class)
		if !ok || x.Name != y.Name || len(x.Arguments) != len(y.Arguments) {
			return false
		}

		for i := range x.Arguments {
			if !TypeEquivalent(x.Arguments[i], y.Arguments[i]) {
				return false
			}
		}

		return true
	case *Array:
		y, ok := b.(*Array)
		return ok && TypeEquivalent(x.Element, y.Element)
	case nil:
		return b == nil
	default:
		return false
	}
}
