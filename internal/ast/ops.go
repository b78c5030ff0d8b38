package ast

// BinaryOp identifies a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNotEq
	OpLt
	OpGt
	OpLtEq
	OpGtEq
	OpAnd
	OpOr
	OpCons
	OpAppend
	OpCompose
	OpPipe
)

// String returns the source-language spelling of the operator.
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "^"
	case OpEq:
		return "=="
	case OpNotEq:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLtEq:
		return "<="
	case OpGtEq:
		return ">="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpCons:
		return "::"
	case OpAppend:
		return "++"
	case OpCompose:
		return ">>"
	case OpPipe:
		return "|>"
	default:
		return "unknown"
	}
}

// UnaryOp identifies a unary operator.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
	OpLength
	OpHead
	OpTail
	OpReverse
)

// String returns the source-language spelling of the operator.
func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpNot:
		return "!"
	case OpLength:
		return "length"
	case OpHead:
		return "head"
	case OpTail:
		return "tail"
	case OpReverse:
		return "reverse"
	default:
		return "unknown"
	}
}
