package ast

// BinaryOp identifies the operation of a Binary node.
type BinaryOp int

const (
	Or BinaryOp = iota
	And
	Equal
	NotEqual
	Less
	LessOrEqual
	Greater
	GreaterOrEqual
	Add
	Subtract
	Multiply
	Divide
	Remainder
	GetElement
)

func (op BinaryOp) String() string {
	switch op {
	case Or:
		return "OR"
	case And:
		return "AND"
	case Equal:
		return "EQUAL"
	case NotEqual:
		return "NOT_EQUAL"
	case Less:
		return "LESS"
	case LessOrEqual:
		return "LESS_OR_EQUAL"
	case Greater:
		return "GREATER"
	case GreaterOrEqual:
		return "GREATER_OR_EQUAL"
	case Add:
		return "ADD"
	case Subtract:
		return "SUBTRACT"
	case Multiply:
		return "MULTIPLY"
	case Divide:
		return "DIVIDE"
	case Remainder:
		return "REMAINDER"
	case GetElement:
		return "GET_ELEMENT"
	default:
		return "UNKNOWN"
	}
}

// Symbol returns the canonical source spelling of the operator.
func (op BinaryOp) Symbol() string {
	switch op {
	case Or:
		return "or"
	case And:
		return "and"
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case Less:
		return "<"
	case LessOrEqual:
		return "<="
	case Greater:
		return ">"
	case GreaterOrEqual:
		return ">="
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Remainder:
		return "%"
	case GetElement:
		return "[]"
	default:
		return "?"
	}
}

// UnaryOp identifies the operation of a Unary node.
type UnaryOp int

const (
	Not UnaryOp = iota
	Negate
)

func (op UnaryOp) String() string {
	switch op {
	case Not:
		return "NOT"
	case Negate:
		return "NEGATE"
	default:
		return "UNKNOWN"
	}
}

// Symbol returns the canonical source spelling of the operator.
func (op UnaryOp) Symbol() string {
	switch op {
	case Not:
		return "not "
	case Negate:
		return "-"
	default:
		return "?"
	}
}
