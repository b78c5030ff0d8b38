package ast

import (
	"fmt"
	"strings"
)

// Print returns a tree-like string representation of an expression for
// debugging.
func Print(e Expr) string {
	var sb strings.Builder
	printExpr(&sb, e, 0)
	return sb.String()
}

// PrintPattern returns a tree-like string representation of a pattern.
func PrintPattern(p Pattern) string {
	var sb strings.Builder
	printPattern(&sb, p, 0)
	return sb.String()
}

func printExpr(sb *strings.Builder, e Expr, indent int) {
	if e == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := e.(type) {
	case *IntLit:
		sb.WriteString(fmt.Sprintf("%sIntLit: %d\n", prefix, n.Value))

	case *FloatLit:
		sb.WriteString(fmt.Sprintf("%sFloatLit: %s\n", prefix, n.Value))

	case *StringLit:
		sb.WriteString(fmt.Sprintf("%sStringLit: %q\n", prefix, n.Value))

	case *CharLit:
		sb.WriteString(fmt.Sprintf("%sCharLit: %q\n", prefix, n.Value))

	case *BoolLit:
		sb.WriteString(fmt.Sprintf("%sBoolLit: %t\n", prefix, n.Value))

	case *UnitLit:
		sb.WriteString(prefix + "UnitLit\n")

	case *ListLit:
		sb.WriteString(fmt.Sprintf("%sListLit (%d elements)\n", prefix, len(n.Elements)))
		for _, el := range n.Elements {
			printExpr(sb, el, indent+1)
		}

	case *RecordLit:
		sb.WriteString(prefix + "RecordLit\n")
		for _, f := range n.Fields {
			sb.WriteString(fmt.Sprintf("%s  %s:\n", prefix, f.Name))
			printExpr(sb, f.Value, indent+2)
		}

	case *VarRef:
		sb.WriteString(fmt.Sprintf("%sVarRef: %s\n", prefix, n.Name))

	case *QualifiedRef:
		if n.Space == "" {
			sb.WriteString(fmt.Sprintf("%sQualifiedRef: %s\n", prefix, n.Name))
		} else {
			sb.WriteString(fmt.Sprintf("%sQualifiedRef: %s.%s\n", prefix, n.Space, n.Name))
		}

	case *BinaryExpr:
		sb.WriteString(fmt.Sprintf("%sBinaryExpr: %s\n", prefix, n.Op))
		sb.WriteString(fmt.Sprintf("%s  Left:\n", prefix))
		printExpr(sb, n.Left, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Right:\n", prefix))
		printExpr(sb, n.Right, indent+2)

	case *UnaryExpr:
		sb.WriteString(fmt.Sprintf("%sUnaryExpr: %s\n", prefix, n.Op))
		printExpr(sb, n.Operand, indent+1)

	case *CallExpr:
		sb.WriteString(prefix + "CallExpr\n")
		sb.WriteString(fmt.Sprintf("%s  Callee:\n", prefix))
		printExpr(sb, n.Callee, indent+2)
		if len(n.Args) > 0 {
			sb.WriteString(fmt.Sprintf("%s  Args:\n", prefix))
			for _, arg := range n.Args {
				printExpr(sb, arg, indent+2)
			}
		} else {
			sb.WriteString(fmt.Sprintf("%s  Args: none\n", prefix))
		}

	case *ConstructExpr:
		sb.WriteString(fmt.Sprintf("%sConstructExpr: %s\n", prefix, n.Name))
		for _, arg := range n.Args {
			printExpr(sb, arg, indent+1)
		}

	case *RecordUpdateExpr:
		sb.WriteString(prefix + "RecordUpdateExpr\n")
		sb.WriteString(fmt.Sprintf("%s  Base:\n", prefix))
		printExpr(sb, n.Base, indent+2)
		for _, f := range n.Fields {
			sb.WriteString(fmt.Sprintf("%s  %s:\n", prefix, f.Name))
			printExpr(sb, f.Value, indent+2)
		}

	case *FieldAccessExpr:
		sb.WriteString(fmt.Sprintf("%sFieldAccessExpr: %s\n", prefix, n.Field))
		printExpr(sb, n.Object, indent+1)

	case *IndexExpr:
		sb.WriteString(prefix + "IndexExpr\n")
		sb.WriteString(fmt.Sprintf("%s  Object:\n", prefix))
		printExpr(sb, n.Object, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Index:\n", prefix))
		printExpr(sb, n.Index, indent+2)

	case *IfExpr:
		sb.WriteString(prefix + "IfExpr\n")
		sb.WriteString(fmt.Sprintf("%s  Cond:\n", prefix))
		printExpr(sb, n.Cond, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Then:\n", prefix))
		printExpr(sb, n.Then, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Else:\n", prefix))
		printExpr(sb, n.Else, indent+2)

	case *LetExpr:
		sb.WriteString(prefix + "LetExpr\n")
		for _, b := range n.Bindings {
			sb.WriteString(fmt.Sprintf("%s  %s =\n", prefix, b.Name))
			printExpr(sb, b.Value, indent+2)
		}
		sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
		printExpr(sb, n.Body, indent+2)

	case *LambdaExpr:
		sb.WriteString(fmt.Sprintf("%sLambdaExpr (%s)\n", prefix, strings.Join(n.Params, ", ")))
		printExpr(sb, n.Body, indent+1)

	case *CaseExpr:
		sb.WriteString(prefix + "CaseExpr\n")
		sb.WriteString(fmt.Sprintf("%s  Scrutinee:\n", prefix))
		printExpr(sb, n.Scrutinee, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Arms:\n", prefix))
		for _, arm := range n.Arms {
			printPattern(sb, arm.Pattern, indent+2)
			if arm.Guard != nil {
				sb.WriteString(fmt.Sprintf("%s    Guard:\n", prefix))
				printExpr(sb, arm.Guard, indent+3)
			}
			sb.WriteString(fmt.Sprintf("%s    Body:\n", prefix))
			printExpr(sb, arm.Body, indent+3)
		}

	case *TryExpr:
		sb.WriteString(prefix + "TryExpr\n")
		sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
		printExpr(sb, n.Body, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Catches:\n", prefix))
		for _, arm := range n.Catches {
			printPattern(sb, arm.Pattern, indent+2)
			if arm.Guard != nil {
				sb.WriteString(fmt.Sprintf("%s    Guard:\n", prefix))
				printExpr(sb, arm.Guard, indent+3)
			}
			sb.WriteString(fmt.Sprintf("%s    Body:\n", prefix))
			printExpr(sb, arm.Body, indent+3)
		}

	case *DoExpr:
		sb.WriteString(prefix + "DoExpr\n")
		for _, st := range n.Stmts {
			if st.Name != "" {
				sb.WriteString(fmt.Sprintf("%s  %s =\n", prefix, st.Name))
			} else {
				sb.WriteString(fmt.Sprintf("%s  (effect)\n", prefix))
			}
			printExpr(sb, st.Expr, indent+2)
		}
		sb.WriteString(fmt.Sprintf("%s  Result:\n", prefix))
		printExpr(sb, n.Result, indent+2)

	case *RaiseExpr:
		sb.WriteString(prefix + "RaiseExpr\n")
		printExpr(sb, n.Value, indent+1)

	case *MapExpr:
		sb.WriteString(fmt.Sprintf("%sMapExpr (%s)\n", prefix, n.Var))
		sb.WriteString(fmt.Sprintf("%s  Seq:\n", prefix))
		printExpr(sb, n.Seq, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
		printExpr(sb, n.Body, indent+2)

	case *FilterExpr:
		sb.WriteString(fmt.Sprintf("%sFilterExpr (%s)\n", prefix, n.Var))
		sb.WriteString(fmt.Sprintf("%s  Seq:\n", prefix))
		printExpr(sb, n.Seq, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
		printExpr(sb, n.Body, indent+2)

	case *FoldExpr:
		sb.WriteString(fmt.Sprintf("%sFoldExpr (%s, %s)\n", prefix, n.Acc, n.Var))
		sb.WriteString(fmt.Sprintf("%s  Seq:\n", prefix))
		printExpr(sb, n.Seq, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Init:\n", prefix))
		printExpr(sb, n.Init, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
		printExpr(sb, n.Body, indent+2)

	case *AnnotExpr:
		sb.WriteString(fmt.Sprintf("%sAnnotExpr: %s\n", prefix, n.TypeName))
		printExpr(sb, n.Expr, indent+1)

	default:
		sb.WriteString(fmt.Sprintf("%sUnknown node type: %T\n", prefix, e))
	}
}

func printPattern(sb *strings.Builder, p Pattern, indent int) {
	if p == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := p.(type) {
	case *WildcardPattern:
		sb.WriteString(prefix + "_ (wildcard)\n")

	case *VarPattern:
		sb.WriteString(fmt.Sprintf("%sVarPattern: %s\n", prefix, n.Name))

	case *LiteralPattern:
		sb.WriteString(prefix + "LiteralPattern\n")
		printExpr(sb, n.Value, indent+1)

	case *ConstructorPattern:
		sb.WriteString(fmt.Sprintf("%sConstructorPattern: %s\n", prefix, n.Name))
		for _, arg := range n.Args {
			printPattern(sb, arg, indent+1)
		}

	case *RecordPattern:
		sb.WriteString(prefix + "RecordPattern\n")
		for _, f := range n.Fields {
			sb.WriteString(fmt.Sprintf("%s  %s:\n", prefix, f.Name))
			printPattern(sb, f.Pattern, indent+2)
		}

	case *ListPattern:
		sb.WriteString(fmt.Sprintf("%sListPattern (%d fixed)\n", prefix, len(n.Elements)))
		for _, el := range n.Elements {
			printPattern(sb, el, indent+1)
		}
		if n.Tail != nil {
			sb.WriteString(fmt.Sprintf("%s  Tail:\n", prefix))
			printPattern(sb, n.Tail, indent+2)
		}

	case *AsPattern:
		sb.WriteString(fmt.Sprintf("%sAsPattern: %s\n", prefix, n.Name))
		printPattern(sb, n.Inner, indent+1)

	case *OrPattern:
		sb.WriteString(prefix + "OrPattern\n")
		for _, alt := range n.Alternatives {
			printPattern(sb, alt, indent+1)
		}

	default:
		sb.WriteString(fmt.Sprintf("%sUnknown pattern type: %T\n", prefix, p))
	}
}
