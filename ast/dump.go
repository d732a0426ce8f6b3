package ast

// Dump converts an expression tree into nested maps and slices suitable for
// JSON or YAML encoding. Every node map has "kind" and "span" entries.
func Dump(e Expr) map[string]any {
	if e == nil {
		return nil
	}

	d := &dumper{}
	e.Accept(d)

	d.out["span"] = []int{e.Span().Start, e.Span().End}

	return d.out
}

// DumpType converts a type tree into nested maps.
func DumpType(t Type) map[string]any {
	if t == nil {
		return nil
	}

	d := &typeDumper{}
	t.Accept(d)

	return d.out
}

type dumper struct {
	out map[string]any
}

func (d *dumper) VisitConstant(n *Constant) {
	d.out = map[string]any{"kind": "Constant", "value": n.Value}
	if n.Literal != "" {
		d.out["literal"] = n.Literal
	}

	if exact, ok := n.Decimal(); ok {
		d.out["exact"] = exact.String()
	}
}

func (d *dumper) VisitVariable(n *Variable) {
	d.out = map[string]any{"kind": "Variable", "name": n.Name}
}

func (d *dumper) VisitProperty(n *Property) {
	d.out = map[string]any{"kind": "Property", "instance": Dump(n.Instance), "name": n.Name}
}

func (d *dumper) VisitStaticProperty(n *StaticProperty) {
	d.out = map[string]any{"kind": "StaticProperty", "class": n.ClassName, "name": n.Name}
}

func (d *dumper) VisitInvocation(n *Invocation) {
	d.out = map[string]any{
		"kind":      "Invocation",
		"instance":  Dump(n.Instance),
		"name":      n.Name,
		"arguments": dumpList(n.Arguments),
	}
}

func (d *dumper) VisitStaticInvocation(n *StaticInvocation) {
	d.out = map[string]any{
		"kind":      "StaticInvocation",
		"class":     n.ClassName,
		"name":      n.Name,
		"arguments": dumpList(n.Arguments),
	}
}

func (d *dumper) VisitBinary(n *Binary) {
	d.out = map[string]any{"kind": "Binary", "op": n.Op.String(), "left": Dump(n.Left), "right": Dump(n.Right)}
}

func (d *dumper) VisitUnary(n *Unary) {
	d.out = map[string]any{"kind": "Unary", "op": n.Op.String(), "operand": Dump(n.Operand)}
}

func (d *dumper) VisitCast(n *Cast) {
	d.out = map[string]any{"kind": "Cast", "type": DumpType(n.Target), "operand": Dump(n.Operand)}
}

func (d *dumper) VisitInstanceOf(n *InstanceOf) {
	d.out = map[string]any{"kind": "InstanceOf", "type": DumpType(n.Target), "operand": Dump(n.Operand)}
}

func dumpList(exprs []Expr) []any {
	list := make([]any, len(exprs))
	for i, e := range exprs {
		list[i] = Dump(e)
	}

	return list
}

type typeDumper struct {
	out map[string]any
}

func (d *typeDumper) VisitPrimitive(t *Primitive) {
	d.out = map[string]any{"kind": "Primitive", "name": t.Kind.String()}
}

func (d *typeDumper) VisitClass(t *Class) {
	args := make([]any, len(t.Arguments))
	for i, arg := range t.Arguments {
		args[i] = DumpType(arg)
	}

	d.out = map[string]any{"kind": "Class", "name": t.Name, "arguments": args}
}

func (d *typeDumper) VisitArray(t *Array) {
	d.out = map[string]any{"kind": "Array", "element": DumpType(t.Element)}
}
