package ast

import (
	"fmt"
)

// Validate checks an expression tree for structural problems a producer may
// introduce: nil sub-expressions, empty arm lists, empty or-patterns. An
// empty slice indicates the tree is well-formed. The renderers do not call
// Validate; they fail on their own when handed a malformed tree.
func Validate(e Expr) []string {
	return validateExpr(e, "root")
}

func validateExpr(e Expr, where string) []string {
	var errors []string

	if e == nil {
		return []string{fmt.Sprintf("%s: nil expression", where)}
	}

	switch n := e.(type) {
	case *IntLit, *FloatLit, *StringLit, *CharLit, *BoolLit, *UnitLit:
		// leaf

	case *ListLit:
		for i, el := range n.Elements {
			errors = append(errors, validateExpr(el, fmt.Sprintf("%s: list element %d", where, i))...)
		}

	case *RecordLit:
		for _, f := range n.Fields {
			if f.Name == "" {
				errors = append(errors, fmt.Sprintf("%s: record field with empty name", where))
			}
			errors = append(errors, validateExpr(f.Value, fmt.Sprintf("%s: record field %s", where, f.Name))...)
		}

	case *VarRef:
		if n.Name == "" {
			errors = append(errors, where+": variable reference with empty name")
		}

	case *QualifiedRef:
		if n.Name == "" {
			errors = append(errors, where+": qualified reference with empty name")
		}

	case *BinaryExpr:
		errors = append(errors, validateExpr(n.Left, where+": binary left operand")...)
		errors = append(errors, validateExpr(n.Right, where+": binary right operand")...)

	case *UnaryExpr:
		errors = append(errors, validateExpr(n.Operand, where+": unary operand")...)

	case *CallExpr:
		errors = append(errors, validateExpr(n.Callee, where+": callee")...)
		for i, arg := range n.Args {
			errors = append(errors, validateExpr(arg, fmt.Sprintf("%s: call argument %d", where, i))...)
		}

	case *ConstructExpr:
		if n.Name == "" {
			errors = append(errors, where+": constructor call with empty name")
		}
		for i, arg := range n.Args {
			errors = append(errors, validateExpr(arg, fmt.Sprintf("%s: constructor argument %d", where, i))...)
		}

	case *RecordUpdateExpr:
		errors = append(errors, validateExpr(n.Base, where+": update base")...)
		if len(n.Fields) == 0 {
			errors = append(errors, where+": record update with no fields")
		}
		for _, f := range n.Fields {
			if f.Name == "" {
				errors = append(errors, fmt.Sprintf("%s: update field with empty name", where))
			}
			errors = append(errors, validateExpr(f.Value, fmt.Sprintf("%s: update field %s", where, f.Name))...)
		}

	case *FieldAccessExpr:
		if n.Field == "" {
			errors = append(errors, where+": field access with empty field name")
		}
		errors = append(errors, validateExpr(n.Object, where+": field access object")...)

	case *IndexExpr:
		errors = append(errors, validateExpr(n.Object, where+": index object")...)
		errors = append(errors, validateExpr(n.Index, where+": index expression")...)

	case *IfExpr:
		errors = append(errors, validateExpr(n.Cond, where+": if condition")...)
		errors = append(errors, validateExpr(n.Then, where+": then branch")...)
		errors = append(errors, validateExpr(n.Else, where+": else branch")...)

	case *LetExpr:
		if len(n.Bindings) == 0 {
			errors = append(errors, where+": let with no bindings")
		}
		for _, b := range n.Bindings {
			if b.Name == "" {
				errors = append(errors, where+": let binding with empty name")
			}
			errors = append(errors, validateExpr(b.Value, fmt.Sprintf("%s: let binding %s", where, b.Name))...)
		}
		errors = append(errors, validateExpr(n.Body, where+": let body")...)

	case *LambdaExpr:
		errors = append(errors, validateExpr(n.Body, where+": lambda body")...)

	case *CaseExpr:
		errors = append(errors, validateExpr(n.Scrutinee, where+": scrutinee")...)
		if len(n.Arms) == 0 {
			errors = append(errors, where+": case with no arms")
		}
		for i, arm := range n.Arms {
			armWhere := fmt.Sprintf("%s: case arm %d", where, i)
			errors = append(errors, validatePattern(arm.Pattern, armWhere)...)
			if arm.Guard != nil {
				errors = append(errors, validateExpr(arm.Guard, armWhere+" guard")...)
			}
			errors = append(errors, validateExpr(arm.Body, armWhere+" body")...)
		}

	case *TryExpr:
		errors = append(errors, validateExpr(n.Body, where+": try body")...)
		if len(n.Catches) == 0 {
			errors = append(errors, where+": try with no catch arms")
		}
		for i, arm := range n.Catches {
			armWhere := fmt.Sprintf("%s: catch arm %d", where, i)
			errors = append(errors, validatePattern(arm.Pattern, armWhere)...)
			if arm.Guard != nil {
				errors = append(errors, validateExpr(arm.Guard, armWhere+" guard")...)
			}
			errors = append(errors, validateExpr(arm.Body, armWhere+" body")...)
		}

	case *DoExpr:
		for i, st := range n.Stmts {
			errors = append(errors, validateExpr(st.Expr, fmt.Sprintf("%s: do statement %d", where, i))...)
		}
		errors = append(errors, validateExpr(n.Result, where+": do result")...)

	case *RaiseExpr:
		errors = append(errors, validateExpr(n.Value, where+": raised value")...)

	case *MapExpr:
		if n.Var == "" {
			errors = append(errors, where+": map with empty iterator name")
		}
		errors = append(errors, validateExpr(n.Seq, where+": map sequence")...)
		errors = append(errors, validateExpr(n.Body, where+": map body")...)

	case *FilterExpr:
		if n.Var == "" {
			errors = append(errors, where+": filter with empty iterator name")
		}
		errors = append(errors, validateExpr(n.Seq, where+": filter sequence")...)
		errors = append(errors, validateExpr(n.Body, where+": filter body")...)

	case *FoldExpr:
		if n.Acc == "" || n.Var == "" {
			errors = append(errors, where+": fold with empty accumulator or iterator name")
		}
		errors = append(errors, validateExpr(n.Seq, where+": fold sequence")...)
		errors = append(errors, validateExpr(n.Init, where+": fold initial value")...)
		errors = append(errors, validateExpr(n.Body, where+": fold body")...)

	case *AnnotExpr:
		if n.TypeName == "" {
			errors = append(errors, where+": annotation with empty type name")
		}
		errors = append(errors, validateExpr(n.Expr, where+": annotated expression")...)

	default:
		errors = append(errors, fmt.Sprintf("%s: unknown expression type %T", where, e))
	}

	return errors
}

func validatePattern(p Pattern, where string) []string {
	var errors []string

	if p == nil {
		return []string{where + ": nil pattern"}
	}

	switch n := p.(type) {
	case *WildcardPattern:
		// leaf

	case *VarPattern:
		if n.Name == "" {
			errors = append(errors, where+": variable pattern with empty name")
		}

	case *LiteralPattern:
		switch n.Value.(type) {
		case *IntLit, *FloatLit, *StringLit, *CharLit, *BoolLit, *UnitLit:
			// literal variants only; anything else would render as an
			// equality test against an arbitrary expression
		case nil:
			errors = append(errors, where+": literal pattern with nil value")
		default:
			errors = append(errors, fmt.Sprintf("%s: literal pattern with non-literal expression %T", where, n.Value))
		}

	case *ConstructorPattern:
		if n.Name == "" {
			errors = append(errors, where+": constructor pattern with empty name")
		}
		for i, arg := range n.Args {
			errors = append(errors, validatePattern(arg, fmt.Sprintf("%s: constructor sub-pattern %d", where, i))...)
		}

	case *RecordPattern:
		for _, f := range n.Fields {
			if f.Name == "" {
				errors = append(errors, where+": record pattern field with empty name")
			}
			errors = append(errors, validatePattern(f.Pattern, fmt.Sprintf("%s: record field %s", where, f.Name))...)
		}

	case *ListPattern:
		for i, el := range n.Elements {
			errors = append(errors, validatePattern(el, fmt.Sprintf("%s: list sub-pattern %d", where, i))...)
		}
		if n.Tail != nil {
			errors = append(errors, validatePattern(n.Tail, where+": tail pattern")...)
		}

	case *AsPattern:
		if n.Name == "" {
			errors = append(errors, where+": as-pattern with empty name")
		}
		errors = append(errors, validatePattern(n.Inner, where+": as-pattern inner")...)

	case *OrPattern:
		if len(n.Alternatives) == 0 {
			errors = append(errors, where+": or-pattern with no alternatives")
		}
		for i, alt := range n.Alternatives {
			errors = append(errors, validatePattern(alt, fmt.Sprintf("%s: or-pattern alternative %d", where, i))...)
		}

	default:
		errors = append(errors, fmt.Sprintf("%s: unknown pattern type %T", where, p))
	}

	return errors
}
