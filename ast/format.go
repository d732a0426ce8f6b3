package ast

import (
	"strconv"
	"strings"
)

// String renderings are fully parenthesised so that the tree shape can be
// read back unambiguously. Static members are written as Class::member.

func (n *Constant) String() string {
	switch v := n.Value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case string:
		return quote(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}

		return s
	default:
		return "?"
	}
}

func (n *Variable) String() string {
	return n.Name
}

func (n *Property) String() string {
	return n.Instance.String() + "." + n.Name
}

func (n *StaticProperty) String() string {
	return n.ClassName + "::" + n.Name
}

func (n *Invocation) String() string {
	return n.Instance.String() + "." + n.Name + "(" + joinExprs(n.Arguments) + ")"
}

func (n *StaticInvocation) String() string {
	return n.ClassName + "::" + n.Name + "(" + joinExprs(n.Arguments) + ")"
}

func (n *Binary) String() string {
	if n.Op == GetElement {
		return n.Left.String() + "[" + n.Right.String() + "]"
	}

	return "(" + n.Left.String() + " " + n.Op.Symbol() + " " + n.Right.String() + ")"
}

func (n *Unary) String() string {
	return "(" + n.Op.Symbol() + n.Operand.String() + ")"
}

func (n *Cast) String() string {
	return "((" + n.Target.String() + ")" + n.Operand.String() + ")"
}

func (n *InstanceOf) String() string {
	return "(" + n.Operand.String() + " instanceof " + n.Target.String() + ")"
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}

	return strings.Join(parts, ", ")
}

func quote(s string) string {
	var sb strings.Builder

	sb.WriteByte('\'')

	for _, r := range s {
		switch r {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x1F {
				sb.WriteString(`\u`)
				sb.WriteString(leftPad(strconv.FormatInt(int64(r), 16), 4))

				continue
			}

			sb.WriteRune(r)
		}
	}

	sb.WriteByte('\'')

	return sb.String()
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return strings.Repeat("0", width-len(s)) + s
}
