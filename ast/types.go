package ast

import "strings"

// Type is a type node: *Primitive, *Class or *Array.
type Type interface {
	Accept(v TypeVisitor)
	String() string
	typeNode()
}

// Generic is a type allowed as a type argument or instanceof target:
// a class or an array.
type Generic interface {
	Type
	genericType()
}

// PrimitiveKind enumerates the primitive type keywords.
type PrimitiveKind int

const (
	Boolean PrimitiveKind = iota
	Char
	Byte
	Short
	Int
	Long
	Float
	Double
)

// PrimitiveKinds lists every primitive kind in keyword order.
var PrimitiveKinds = []PrimitiveKind{Boolean, Char, Byte, Short, Int, Long, Float, Double}

func (k PrimitiveKind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Char:
		return "char"
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// Primitive is one of the primitive types.
type Primitive struct {
	Kind PrimitiveKind
}

func NewPrimitive(kind PrimitiveKind) *Primitive {
	return &Primitive{Kind: kind}
}

func (*Primitive) typeNode() {}

func (p *Primitive) String() string {
	return p.Kind.String()
}

// Class is a qualified class name with optional type arguments.
// Arguments is empty unless explicit <...> was written.
type Class struct {
	Name      string
	Arguments []Generic
}

func NewClass(name string, args []Generic) *Class {
	if args == nil {
		args = []Generic{}
	}

	return &Class{Name: name, Arguments: args}
}

func (*Class) typeNode()    {}
func (*Class) genericType() {}

func (c *Class) String() string {
	if len(c.Arguments) == 0 {
		return c.Name
	}

	args := make([]string, len(c.Arguments))
	for i, arg := range c.Arguments {
		args[i] = arg.String()
	}

	return c.Name + "<" + strings.Join(args, ", ") + ">"
}

// Array is an array of Element.
type Array struct {
	Element Type
}

func NewArray(element Type) *Array {
	return &Array{Element: element}
}

func (*Array) typeNode()    {}
func (*Array) genericType() {}

func (a *Array) String() string {
	return a.Element.String() + "[]"
}

// Dimensions returns the array nesting depth and the innermost non-array type.
func (a *Array) Dimensions() (int, Type) {
	depth := 0

	var t Type = a
	for {
		arr, ok := t.(*Array)
		if !ok {
			return depth, t
		}

		depth++
		t = arr.Element
	}
}
