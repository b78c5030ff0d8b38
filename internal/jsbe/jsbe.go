// Package jsbe renders Lumata expression trees to JavaScript source text.
//
// The emitted code assumes a target runtime where constructors are classes
// storing their arguments positionally as _0, _1, ... so that constructor
// patterns can test with instanceof and project payloads by position.
//
// Rendering is a pure, deterministic traversal with no I/O; independent
// trees may be rendered concurrently.
package jsbe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nova-language/lumata/internal/ast"
)

// Generate produces JavaScript source text for a single expression tree.
// It fails with a descriptive error when the tree contains a node, operator
// or pattern kind outside the closed sets; no partial output is returned.
func Generate(e ast.Expr) (string, error) {
	g := &generator{}
	return g.expr(e)
}

type generator struct{}

func (g *generator) expr(e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return strconv.FormatInt(n.Value, 10), nil

	case *ast.FloatLit:
		return n.Value, nil

	case *ast.StringLit:
		return "\"" + escapeString(n.Value) + "\"", nil

	case *ast.CharLit:
		return "\"" + escapeString(string(n.Value)) + "\"", nil

	case *ast.BoolLit:
		if n.Value {
			return "true", nil
		}
		return "false", nil

	case *ast.UnitLit:
		return "null", nil

	case *ast.ListLit:
		elems, err := g.exprList(n.Elements)
		if err != nil {
			return "", err
		}
		return "[" + strings.Join(elems, ", ") + "]", nil

	case *ast.RecordLit:
		fields, err := g.recordFields(n.Fields)
		if err != nil {
			return "", err
		}
		if len(fields) == 0 {
			return "{}", nil
		}
		return "{ " + strings.Join(fields, ", ") + " }", nil

	case *ast.VarRef:
		return n.Name, nil

	case *ast.QualifiedRef:
		if n.Space == "" {
			return n.Name, nil
		}
		return n.Space + "." + n.Name, nil

	case *ast.BinaryExpr:
		return g.binaryExpr(n)

	case *ast.UnaryExpr:
		return g.unaryExpr(n)

	case *ast.CallExpr:
		callee, err := g.expr(n.Callee)
		if err != nil {
			return "", err
		}
		args, err := g.exprList(n.Args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", ")), nil

	case *ast.ConstructExpr:
		args, err := g.exprList(n.Args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("new %s(%s)", n.Name, strings.Join(args, ", ")), nil

	case *ast.RecordUpdateExpr:
		base, err := g.expr(n.Base)
		if err != nil {
			return "", err
		}
		fields, err := g.recordFields(n.Fields)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("{ ...%s, %s }", base, strings.Join(fields, ", ")), nil

	case *ast.FieldAccessExpr:
		obj, err := g.expr(n.Object)
		if err != nil {
			return "", err
		}
		return obj + "." + n.Field, nil

	case *ast.IndexExpr:
		obj, err := g.expr(n.Object)
		if err != nil {
			return "", err
		}
		idx, err := g.expr(n.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%s]", obj, idx), nil

	case *ast.IfExpr:
		return g.ifExpr(n)

	case *ast.LetExpr:
		return g.letExpr(n)

	case *ast.LambdaExpr:
		body, err := g.expr(n.Body)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("((%s) => { return %s; })", strings.Join(n.Params, ", "), body), nil

	case *ast.CaseExpr:
		return g.caseExpr(n)

	case *ast.TryExpr:
		return g.tryExpr(n)

	case *ast.DoExpr:
		return g.doExpr(n)

	case *ast.RaiseExpr:
		value, err := g.expr(n.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(() => { throw %s; })()", value), nil

	case *ast.MapExpr:
		seq, err := g.expr(n.Seq)
		if err != nil {
			return "", err
		}
		body, err := g.expr(n.Body)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.map((%s) => %s)", seq, n.Var, body), nil

	case *ast.FilterExpr:
		seq, err := g.expr(n.Seq)
		if err != nil {
			return "", err
		}
		body, err := g.expr(n.Body)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.filter((%s) => %s)", seq, n.Var, body), nil

	case *ast.FoldExpr:
		seq, err := g.expr(n.Seq)
		if err != nil {
			return "", err
		}
		init, err := g.expr(n.Init)
		if err != nil {
			return "", err
		}
		body, err := g.expr(n.Body)
		if err != nil {
			return "", err
		}
		// Accumulator before element, matching reduce's callback signature.
		return fmt.Sprintf("%s.reduce((%s, %s) => %s, %s)", seq, n.Acc, n.Var, body, init), nil

	case *ast.AnnotExpr:
		inner, err := g.expr(n.Expr)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(/** @type {%s} */ (%s))", n.TypeName, inner), nil

	default:
		return "", fmt.Errorf("jsbe: unhandled node %T", e)
	}
}

func (g *generator) binaryExpr(n *ast.BinaryExpr) (string, error) {
	tmpl, ok := binaryTemplates[n.Op]
	if !ok {
		return "", fmt.Errorf("jsbe: unknown binary operator %d", n.Op)
	}
	left, err := g.expr(n.Left)
	if err != nil {
		return "", err
	}
	right, err := g.expr(n.Right)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(tmpl, left, right), nil
}

func (g *generator) unaryExpr(n *ast.UnaryExpr) (string, error) {
	tmpl, ok := unaryTemplates[n.Op]
	if !ok {
		return "", fmt.Errorf("jsbe: unknown unary operator %d", n.Op)
	}
	operand, err := g.expr(n.Operand)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(tmpl, operand), nil
}

// ifExpr wraps the statement-level if in an immediately-invoked closure so
// the conditional remains usable as a sub-expression.
func (g *generator) ifExpr(n *ast.IfExpr) (string, error) {
	cond, err := g.expr(n.Cond)
	if err != nil {
		return "", err
	}
	then, err := g.expr(n.Then)
	if err != nil {
		return "", err
	}
	els, err := g.expr(n.Else)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("(() => {\n")
	sb.WriteString("  if (" + cond + ") {\n")
	sb.WriteString("    return " + then + ";\n")
	sb.WriteString("  } else {\n")
	sb.WriteString("    return " + els + ";\n")
	sb.WriteString("  }\n")
	sb.WriteString("})()")
	return sb.String(), nil
}

func (g *generator) letExpr(n *ast.LetExpr) (string, error) {
	var sb strings.Builder
	sb.WriteString("(() => {\n")
	for _, b := range n.Bindings {
		value, err := g.expr(b.Value)
		if err != nil {
			return "", err
		}
		sb.WriteString("  const " + b.Name + " = " + value + ";\n")
	}
	body, err := g.expr(n.Body)
	if err != nil {
		return "", err
	}
	sb.WriteString("  return " + body + ";\n")
	sb.WriteString("})()")
	return sb.String(), nil
}

func (g *generator) doExpr(n *ast.DoExpr) (string, error) {
	var sb strings.Builder
	sb.WriteString("(() => {\n")
	for _, st := range n.Stmts {
		value, err := g.expr(st.Expr)
		if err != nil {
			return "", err
		}
		if st.Name != "" {
			sb.WriteString("  const " + st.Name + " = " + value + ";\n")
		} else {
			sb.WriteString("  " + value + ";\n")
		}
	}
	result, err := g.expr(n.Result)
	if err != nil {
		return "", err
	}
	sb.WriteString("  return " + result + ";\n")
	sb.WriteString("})()")
	return sb.String(), nil
}

// caseExpr compiles a case to an if/else-if chain inside a closure
// parameterized by the scrutinee temporary, so the scrutinee is evaluated
// exactly once. Arms are tested in source order; the first matching arm
// wins. An irrefutable arm terminates the chain; otherwise a generated else
// branch raises a runtime error carrying the unmatched value.
func (g *generator) caseExpr(n *ast.CaseExpr) (string, error) {
	if len(n.Arms) == 0 {
		return "", fmt.Errorf("jsbe: case expression with no arms")
	}

	scrutinee, err := g.expr(n.Scrutinee)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("((__subject) => {\n")

	covered := false
	for i, arm := range n.Arms {
		cond, binds, err := g.compilePattern(arm.Pattern, "__subject")
		if err != nil {
			return "", err
		}

		irrefutable := cond == "true" && arm.Guard == nil
		if arm.Guard != nil {
			guard, err := g.expr(arm.Guard)
			if err != nil {
				return "", err
			}
			cond = cond + " && " + guard
		}

		body, err := g.expr(arm.Body)
		if err != nil {
			return "", err
		}

		if irrefutable {
			if i == 0 {
				g.emitArmBody(&sb, "  ", binds, body)
			} else {
				sb.WriteString("  else {\n")
				g.emitArmBody(&sb, "    ", binds, body)
				sb.WriteString("  }\n")
			}
			covered = true
			break
		}

		if i == 0 {
			sb.WriteString("  if (" + cond + ") {\n")
		} else {
			sb.WriteString("  else if (" + cond + ") {\n")
		}
		g.emitArmBody(&sb, "    ", binds, body)
		sb.WriteString("  }\n")
	}

	if !covered {
		sb.WriteString("  else {\n")
		sb.WriteString("    throw new Error(\"unmatched case value: \" + String(__subject));\n")
		sb.WriteString("  }\n")
	}

	sb.WriteString("})(" + scrutinee + ")")
	return sb.String(), nil
}

// tryExpr renders the protected body inside a target try statement with a
// single generic catch that replays the arm-chaining algorithm against the
// caught value. No arm matching re-raises the original exception unchanged.
func (g *generator) tryExpr(n *ast.TryExpr) (string, error) {
	if len(n.Catches) == 0 {
		return "", fmt.Errorf("jsbe: try expression with no catch arms")
	}

	body, err := g.expr(n.Body)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("(() => {\n")
	sb.WriteString("  try {\n")
	sb.WriteString("    return " + body + ";\n")
	sb.WriteString("  } catch (__raised) {\n")

	covered := false
	for i, arm := range n.Catches {
		cond, binds, err := g.compilePattern(arm.Pattern, "__raised")
		if err != nil {
			return "", err
		}

		irrefutable := cond == "true" && arm.Guard == nil
		if arm.Guard != nil {
			guard, err := g.expr(arm.Guard)
			if err != nil {
				return "", err
			}
			cond = cond + " && " + guard
		}

		armBody, err := g.expr(arm.Body)
		if err != nil {
			return "", err
		}

		if irrefutable {
			if i == 0 {
				g.emitArmBody(&sb, "    ", binds, armBody)
			} else {
				sb.WriteString("    else {\n")
				g.emitArmBody(&sb, "      ", binds, armBody)
				sb.WriteString("    }\n")
			}
			covered = true
			break
		}

		if i == 0 {
			sb.WriteString("    if (" + cond + ") {\n")
		} else {
			sb.WriteString("    else if (" + cond + ") {\n")
		}
		g.emitArmBody(&sb, "      ", binds, armBody)
		sb.WriteString("    }\n")
	}

	if !covered {
		sb.WriteString("    throw __raised;\n")
	}

	sb.WriteString("  }\n")
	sb.WriteString("})()")
	return sb.String(), nil
}

// emitArmBody writes the pattern bindings ahead of the arm's returned
// result expression.
func (g *generator) emitArmBody(sb *strings.Builder, indent string, binds []binding, body string) {
	for _, b := range binds {
		sb.WriteString(indent + "const " + b.name + " = " + b.expr + ";\n")
	}
	sb.WriteString(indent + "return " + body + ";\n")
}

func (g *generator) exprList(exprs []ast.Expr) ([]string, error) {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		s, err := g.expr(e)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func (g *generator) recordFields(fields []*ast.RecordField) ([]string, error) {
	out := make([]string, len(fields))
	for i, f := range fields {
		value, err := g.expr(f.Value)
		if err != nil {
			return nil, err
		}
		out[i] = f.Name + ": " + value
	}
	return out, nil
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
