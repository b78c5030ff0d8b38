// Package luabe renders Lumata expression trees to Lua source text.
//
// The emitted code leans on a small runtime table __lum (cons, append,
// slice, reverse, map, filter, fold, merge, islist) and represents
// constructed values as tables carrying a __ctor tag plus positional
// fields _0, _1, ... Lists are plain 1-based Lua sequences.
package luabe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nova-language/lumata/internal/ast"
)

// Operator text templates for the Lua dialect. Same shape as the
// JavaScript tables; only the spellings differ.
var binaryTemplates = map[ast.BinaryOp]string{
	ast.OpAdd:     "(%[1]s + %[2]s)",
	ast.OpSub:     "(%[1]s - %[2]s)",
	ast.OpMul:     "(%[1]s * %[2]s)",
	ast.OpDiv:     "(%[1]s / %[2]s)",
	ast.OpMod:     "(%[1]s %% %[2]s)",
	ast.OpPow:     "(%[1]s ^ %[2]s)",
	ast.OpEq:      "(%[1]s == %[2]s)",
	ast.OpNotEq:   "(%[1]s ~= %[2]s)",
	ast.OpLt:      "(%[1]s < %[2]s)",
	ast.OpGt:      "(%[1]s > %[2]s)",
	ast.OpLtEq:    "(%[1]s <= %[2]s)",
	ast.OpGtEq:    "(%[1]s >= %[2]s)",
	ast.OpAnd:     "(%[1]s and %[2]s)",
	ast.OpOr:      "(%[1]s or %[2]s)",
	ast.OpCons:    "__lum.cons(%[1]s, %[2]s)",
	ast.OpAppend:  "__lum.append(%[1]s, %[2]s)",
	ast.OpCompose: "(function(__x) return %[1]s(%[2]s(__x)) end)",
	ast.OpPipe:    "%[2]s(%[1]s)",
}

var unaryTemplates = map[ast.UnaryOp]string{
	ast.OpNeg:     "(-%s)",
	ast.OpNot:     "(not %s)",
	ast.OpLength:  "#%s",
	ast.OpHead:    "%s[1]",
	ast.OpTail:    "__lum.slice(%s, 2)",
	ast.OpReverse: "__lum.reverse(%s)",
}

// Generate produces Lua source text for a single expression tree. Same
// contract as jsbe.Generate: all-or-nothing, deterministic, no I/O.
func Generate(e ast.Expr) (string, error) {
	g := &generator{}
	return g.expr(e)
}

type generator struct{}

type binding struct {
	name string
	expr string
}

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
		return "nil", nil

	case *ast.ListLit:
		elems, err := g.exprList(n.Elements)
		if err != nil {
			return "", err
		}
		return "{" + strings.Join(elems, ", ") + "}", nil

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
		tmpl, ok := binaryTemplates[n.Op]
		if !ok {
			return "", fmt.Errorf("luabe: unknown binary operator %d", n.Op)
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

	case *ast.UnaryExpr:
		tmpl, ok := unaryTemplates[n.Op]
		if !ok {
			return "", fmt.Errorf("luabe: unknown unary operator %d", n.Op)
		}
		operand, err := g.expr(n.Operand)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(tmpl, operand), nil

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
		return fmt.Sprintf("%s.new(%s)", n.Name, strings.Join(args, ", ")), nil

	case *ast.RecordUpdateExpr:
		base, err := g.expr(n.Base)
		if err != nil {
			return "", err
		}
		fields, err := g.recordFields(n.Fields)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("__lum.merge(%s, { %s })", base, strings.Join(fields, ", ")), nil

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
		// Lumata indexes are zero-based; Lua sequences are 1-based.
		return fmt.Sprintf("%s[%s + 1]", obj, idx), nil

	case *ast.IfExpr:
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
		sb.WriteString("(function()\n")
		sb.WriteString("  if " + cond + " then\n")
		sb.WriteString("    return " + then + "\n")
		sb.WriteString("  else\n")
		sb.WriteString("    return " + els + "\n")
		sb.WriteString("  end\n")
		sb.WriteString("end)()")
		return sb.String(), nil

	case *ast.LetExpr:
		var sb strings.Builder
		sb.WriteString("(function()\n")
		for _, b := range n.Bindings {
			value, err := g.expr(b.Value)
			if err != nil {
				return "", err
			}
			sb.WriteString("  local " + b.Name + " = " + value + "\n")
		}
		body, err := g.expr(n.Body)
		if err != nil {
			return "", err
		}
		sb.WriteString("  return " + body + "\n")
		sb.WriteString("end)()")
		return sb.String(), nil

	case *ast.LambdaExpr:
		body, err := g.expr(n.Body)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(function(%s) return %s end)", strings.Join(n.Params, ", "), body), nil

	case *ast.CaseExpr:
		return g.caseExpr(n)

	case *ast.TryExpr:
		return g.tryExpr(n)

	case *ast.DoExpr:
		var sb strings.Builder
		sb.WriteString("(function()\n")
		for _, st := range n.Stmts {
			value, err := g.expr(st.Expr)
			if err != nil {
				return "", err
			}
			if st.Name != "" {
				sb.WriteString("  local " + st.Name + " = " + value + "\n")
			} else {
				// A bare call is a legal Lua statement; anything else
				// needs a throwaway local.
				sb.WriteString("  local _ = " + value + "\n")
			}
		}
		result, err := g.expr(n.Result)
		if err != nil {
			return "", err
		}
		sb.WriteString("  return " + result + "\n")
		sb.WriteString("end)()")
		return sb.String(), nil

	case *ast.RaiseExpr:
		value, err := g.expr(n.Value)
		if err != nil {
			return "", err
		}
		// Level 0 keeps the raised value as-is; the default level 1
		// would prepend chunk:line: to string payloads and literal
		// catch arms could never match them.
		return fmt.Sprintf("error(%s, 0)", value), nil

	case *ast.MapExpr:
		seq, err := g.expr(n.Seq)
		if err != nil {
			return "", err
		}
		body, err := g.expr(n.Body)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("__lum.map(%s, function(%s) return %s end)", seq, n.Var, body), nil

	case *ast.FilterExpr:
		seq, err := g.expr(n.Seq)
		if err != nil {
			return "", err
		}
		body, err := g.expr(n.Body)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("__lum.filter(%s, function(%s) return %s end)", seq, n.Var, body), nil

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
		return fmt.Sprintf("__lum.fold(%s, %s, function(%s, %s) return %s end)", seq, init, n.Acc, n.Var, body), nil

	case *ast.AnnotExpr:
		inner, err := g.expr(n.Expr)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(--[[ %s ]] %s)", n.TypeName, inner), nil

	default:
		return "", fmt.Errorf("luabe: unhandled node %T", e)
	}
}

func (g *generator) compilePattern(p ast.Pattern, ref string) (string, []binding, error) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return "true", nil, nil

	case *ast.VarPattern:
		return "true", []binding{{name: pat.Name, expr: ref}}, nil

	case *ast.LiteralPattern:
		lit, err := g.expr(pat.Value)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s == %s", ref, lit), nil, nil

	case *ast.ConstructorPattern:
		terms := []string{fmt.Sprintf("(type(%s) == \"table\" and %s.__ctor == \"%s\")", ref, ref, pat.Name)}
		var binds []binding
		for i, sub := range pat.Args {
			subCond, subBinds, err := g.compilePattern(sub, fmt.Sprintf("%s._%d", ref, i))
			if err != nil {
				return "", nil, err
			}
			terms = append(terms, subCond)
			binds = append(binds, subBinds...)
		}
		return conjoin(terms), binds, nil

	case *ast.RecordPattern:
		terms := []string{fmt.Sprintf("type(%s) == \"table\"", ref)}
		var binds []binding
		for _, field := range pat.Fields {
			subCond, subBinds, err := g.compilePattern(field.Pattern, ref+"."+field.Name)
			if err != nil {
				return "", nil, err
			}
			terms = append(terms, subCond)
			binds = append(binds, subBinds...)
		}
		return conjoin(terms), binds, nil

	case *ast.ListPattern:
		terms := []string{fmt.Sprintf("__lum.islist(%s)", ref)}
		var binds []binding
		for i, el := range pat.Elements {
			subCond, subBinds, err := g.compilePattern(el, fmt.Sprintf("%s[%d]", ref, i+1))
			if err != nil {
				return "", nil, err
			}
			terms = append(terms, subCond)
			binds = append(binds, subBinds...)
		}
		if tail := pat.Tail; tail != nil {
			if _, wild := tail.(*ast.WildcardPattern); !wild {
				terms = append(terms, fmt.Sprintf("#%s >= %d", ref, len(pat.Elements)))
			} else {
				terms = append(terms, fmt.Sprintf("#%s == %d", ref, len(pat.Elements)))
			}
			tailCond, tailBinds, err := g.compilePattern(tail, fmt.Sprintf("__lum.slice(%s, %d)", ref, len(pat.Elements)+1))
			if err != nil {
				return "", nil, err
			}
			terms = append(terms, tailCond)
			binds = append(binds, tailBinds...)
		} else {
			terms = append(terms, fmt.Sprintf("#%s == %d", ref, len(pat.Elements)))
		}
		return conjoin(terms), binds, nil

	case *ast.AsPattern:
		innerCond, innerBinds, err := g.compilePattern(pat.Inner, ref)
		if err != nil {
			return "", nil, err
		}
		binds := append([]binding{{name: pat.Name, expr: ref}}, innerBinds...)
		return innerCond, binds, nil

	case *ast.OrPattern:
		parts := make([]string, 0, len(pat.Alternatives))
		for _, alt := range pat.Alternatives {
			altCond, altBinds, err := g.compilePattern(alt, ref)
			if err != nil {
				return "", nil, err
			}
			if len(altBinds) > 0 {
				return "", nil, fmt.Errorf("luabe: or-pattern alternative binds %q; bindings inside or-patterns are not supported", altBinds[0].name)
			}
			parts = append(parts, altCond)
		}
		return "(" + strings.Join(parts, " or ") + ")", nil, nil

	default:
		return "", nil, fmt.Errorf("luabe: unhandled pattern kind %T", p)
	}
}

func (g *generator) caseExpr(n *ast.CaseExpr) (string, error) {
	if len(n.Arms) == 0 {
		return "", fmt.Errorf("luabe: case expression with no arms")
	}

	scrutinee, err := g.expr(n.Scrutinee)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("(function(__subject)\n")

	covered := false
	open := false
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
			cond = cond + " and " + guard
		}

		body, err := g.expr(arm.Body)
		if err != nil {
			return "", err
		}

		if irrefutable {
			if i == 0 {
				g.emitArmBody(&sb, "  ", binds, body)
			} else {
				sb.WriteString("  else\n")
				g.emitArmBody(&sb, "    ", binds, body)
			}
			covered = true
			break
		}

		if i == 0 {
			sb.WriteString("  if " + cond + " then\n")
		} else {
			sb.WriteString("  elseif " + cond + " then\n")
		}
		open = true
		g.emitArmBody(&sb, "    ", binds, body)
	}

	if !covered {
		sb.WriteString("  else\n")
		sb.WriteString("    error(\"unmatched case value\")\n")
	}
	if open {
		sb.WriteString("  end\n")
	}

	sb.WriteString("end)(" + scrutinee + ")")
	return sb.String(), nil
}

func (g *generator) tryExpr(n *ast.TryExpr) (string, error) {
	if len(n.Catches) == 0 {
		return "", fmt.Errorf("luabe: try expression with no catch arms")
	}

	body, err := g.expr(n.Body)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("(function()\n")
	sb.WriteString("  local __ok, __result = pcall(function() return " + body + " end)\n")
	sb.WriteString("  if __ok then\n")
	sb.WriteString("    return __result\n")
	sb.WriteString("  end\n")
	sb.WriteString("  local __raised = __result\n")

	covered := false
	open := false
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
			cond = cond + " and " + guard
		}

		armBody, err := g.expr(arm.Body)
		if err != nil {
			return "", err
		}

		if irrefutable {
			if i == 0 {
				g.emitArmBody(&sb, "  ", binds, armBody)
			} else {
				sb.WriteString("  else\n")
				g.emitArmBody(&sb, "    ", binds, armBody)
			}
			covered = true
			break
		}

		if i == 0 {
			sb.WriteString("  if " + cond + " then\n")
		} else {
			sb.WriteString("  elseif " + cond + " then\n")
		}
		open = true
		g.emitArmBody(&sb, "    ", binds, armBody)
	}

	if open {
		sb.WriteString("  end\n")
	}
	if !covered {
		sb.WriteString("  error(__raised, 0)\n")
	}

	sb.WriteString("end)()")
	return sb.String(), nil
}

func (g *generator) emitArmBody(sb *strings.Builder, indent string, binds []binding, body string) {
	for _, b := range binds {
		sb.WriteString(indent + "local " + b.name + " = " + b.expr + "\n")
	}
	sb.WriteString(indent + "return " + body + "\n")
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
		out[i] = f.Name + " = " + value
	}
	return out, nil
}

func conjoin(terms []string) string {
	if len(terms) == 1 {
		return terms[0]
	}
	return "(" + strings.Join(terms, " and ") + ")"
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
