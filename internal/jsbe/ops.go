package jsbe

import "github.com/nova-language/lumata/internal/ast"

// Operator text templates for the JavaScript dialect. %[1]s is the rendered
// left operand, %[2]s the right. Changing target dialect means changing
// these tables, not the traversal algorithm.
var binaryTemplates = map[ast.BinaryOp]string{
	ast.OpAdd:     "(%[1]s + %[2]s)",
	ast.OpSub:     "(%[1]s - %[2]s)",
	ast.OpMul:     "(%[1]s * %[2]s)",
	ast.OpDiv:     "(%[1]s / %[2]s)",
	ast.OpMod:     "(%[1]s %% %[2]s)",
	ast.OpPow:     "Math.pow(%[1]s, %[2]s)",
	ast.OpEq:      "(%[1]s === %[2]s)",
	ast.OpNotEq:   "(%[1]s !== %[2]s)",
	ast.OpLt:      "(%[1]s < %[2]s)",
	ast.OpGt:      "(%[1]s > %[2]s)",
	ast.OpLtEq:    "(%[1]s <= %[2]s)",
	ast.OpGtEq:    "(%[1]s >= %[2]s)",
	ast.OpAnd:     "(%[1]s && %[2]s)",
	ast.OpOr:      "(%[1]s || %[2]s)",
	ast.OpCons:    "[%[1]s, ...%[2]s]",
	ast.OpAppend:  "[...%[1]s, ...%[2]s]",
	ast.OpCompose: "((__x) => %[1]s(%[2]s(__x)))",
	ast.OpPipe:    "%[2]s(%[1]s)",
}

var unaryTemplates = map[ast.UnaryOp]string{
	ast.OpNeg:     "(-%s)",
	ast.OpNot:     "(!%s)",
	ast.OpLength:  "%s.length",
	ast.OpHead:    "%s[0]",
	ast.OpTail:    "%s.slice(1)",
	ast.OpReverse: "[...%s].reverse()",
}
