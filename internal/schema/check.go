package schema

import (
	"fmt"

	"github.com/nova-language/lumata/internal/ast"
	"github.com/nova-language/lumata/internal/diagnostic"
)

// scope is a lexical scope tracking names bound by let, lambda, do,
// comprehension variables, and pattern bindings.
type scope struct {
	parent *scope
	names  map[string]bool
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]bool)}
}

func (s *scope) define(name string) {
	s.names[name] = true
}

func (s *scope) resolve(name string) bool {
	if s.names[name] {
		return true
	}
	if s.parent != nil {
		return s.parent.resolve(name)
	}
	return false
}

// Check walks a tree and reports schema violations: constructors used
// with the wrong arity or never declared, annotations naming unknown
// types, and references to names no enclosing form binds. Record
// patterns are structural and untyped, so their field names are not
// checked against declared records. Undeclared constructors and
// unbound names are warnings since producers may rely on ambient
// runtime definitions; arity mismatches are always errors.
func Check(e ast.Expr, reg *Registry, diags *diagnostic.Diagnostics) {
	c := &checker{reg: reg, diags: diags}
	c.expr(e, newScope(nil), "")
}

type checker struct {
	reg   *Registry
	diags *diagnostic.Diagnostics
}

func (c *checker) expr(e ast.Expr, sc *scope, path string) {
	switch n := e.(type) {
	case *ast.ListLit:
		for i, el := range n.Elements {
			c.expr(el, sc, fmt.Sprintf("%s.elements[%d]", path, i))
		}

	case *ast.RecordLit:
		for i, f := range n.Fields {
			c.expr(f.Value, sc, fmt.Sprintf("%s.fields[%d]", path, i))
		}

	case *ast.VarRef:
		if !sc.resolve(n.Name) {
			c.diags.Warningf(path, "reference to unbound name '%s'", n.Name)
		}

	case *ast.BinaryExpr:
		c.expr(n.Left, sc, path+".left")
		c.expr(n.Right, sc, path+".right")

	case *ast.UnaryExpr:
		c.expr(n.Operand, sc, path+".operand")

	case *ast.CallExpr:
		c.expr(n.Callee, sc, path+".callee")
		for i, a := range n.Args {
			c.expr(a, sc, fmt.Sprintf("%s.args[%d]", path, i))
		}

	case *ast.ConstructExpr:
		info := c.reg.Constructor(n.Name)
		if info == nil {
			c.diags.Warningf(path, "constructor '%s' is not declared", n.Name)
		} else if info.Arity != len(n.Args) {
			c.diags.Errorf(path, "constructor '%s' takes %d arguments, got %d", n.Name, info.Arity, len(n.Args))
		}
		for i, a := range n.Args {
			c.expr(a, sc, fmt.Sprintf("%s.args[%d]", path, i))
		}

	case *ast.RecordUpdateExpr:
		c.expr(n.Base, sc, path+".base")
		for i, f := range n.Fields {
			c.expr(f.Value, sc, fmt.Sprintf("%s.fields[%d]", path, i))
		}

	case *ast.FieldAccessExpr:
		c.expr(n.Object, sc, path+".object")

	case *ast.IndexExpr:
		c.expr(n.Object, sc, path+".object")
		c.expr(n.Index, sc, path+".index")

	case *ast.IfExpr:
		c.expr(n.Cond, sc, path+".cond")
		c.expr(n.Then, sc, path+".then")
		c.expr(n.Else, sc, path+".else")

	case *ast.LetExpr:
		inner := newScope(sc)
		for i, b := range n.Bindings {
			c.expr(b.Value, inner, fmt.Sprintf("%s.bindings[%d].value", path, i))
			inner.define(b.Name)
		}
		c.expr(n.Body, inner, path+".body")

	case *ast.LambdaExpr:
		inner := newScope(sc)
		for _, p := range n.Params {
			inner.define(p)
		}
		c.expr(n.Body, inner, path+".body")

	case *ast.CaseExpr:
		c.expr(n.Scrutinee, sc, path+".scrutinee")
		for i, arm := range n.Arms {
			armPath := fmt.Sprintf("%s.arms[%d]", path, i)
			inner := newScope(sc)
			c.pattern(arm.Pattern, inner, armPath+".pattern")
			if arm.Guard != nil {
				c.expr(arm.Guard, inner, armPath+".guard")
			}
			c.expr(arm.Body, inner, armPath+".body")
		}

	case *ast.TryExpr:
		c.expr(n.Body, sc, path+".body")
		for i, arm := range n.Catches {
			armPath := fmt.Sprintf("%s.catches[%d]", path, i)
			inner := newScope(sc)
			c.pattern(arm.Pattern, inner, armPath+".pattern")
			if arm.Guard != nil {
				c.expr(arm.Guard, inner, armPath+".guard")
			}
			c.expr(arm.Body, inner, armPath+".body")
		}

	case *ast.DoExpr:
		inner := newScope(sc)
		for i, st := range n.Stmts {
			c.expr(st.Expr, inner, fmt.Sprintf("%s.stmts[%d]", path, i))
			if st.Name != "" {
				inner.define(st.Name)
			}
		}
		c.expr(n.Result, inner, path+".result")

	case *ast.RaiseExpr:
		c.expr(n.Value, sc, path+".value")

	case *ast.MapExpr:
		c.expr(n.Seq, sc, path+".seq")
		inner := newScope(sc)
		inner.define(n.Var)
		c.expr(n.Body, inner, path+".body")

	case *ast.FilterExpr:
		c.expr(n.Seq, sc, path+".seq")
		inner := newScope(sc)
		inner.define(n.Var)
		c.expr(n.Body, inner, path+".body")

	case *ast.FoldExpr:
		c.expr(n.Seq, sc, path+".seq")
		c.expr(n.Init, sc, path+".init")
		inner := newScope(sc)
		inner.define(n.Acc)
		inner.define(n.Var)
		c.expr(n.Body, inner, path+".body")

	case *ast.AnnotExpr:
		if !c.reg.KnownType(n.TypeName) {
			c.diags.Warningf(path, "annotation names unknown type '%s'", n.TypeName)
		}
		c.expr(n.Expr, sc, path+".expr")
	}
}

func (c *checker) pattern(p ast.Pattern, sc *scope, path string) {
	switch pat := p.(type) {
	case *ast.VarPattern:
		sc.define(pat.Name)

	case *ast.ConstructorPattern:
		info := c.reg.Constructor(pat.Name)
		if info == nil {
			c.diags.Warningf(path, "constructor '%s' is not declared", pat.Name)
		} else if info.Arity != len(pat.Args) {
			c.diags.Errorf(path, "constructor '%s' takes %d arguments, got %d in pattern", pat.Name, info.Arity, len(pat.Args))
		}
		for i, sub := range pat.Args {
			c.pattern(sub, sc, fmt.Sprintf("%s.args[%d]", path, i))
		}

	case *ast.RecordPattern:
		for i, f := range pat.Fields {
			c.pattern(f.Pattern, sc, fmt.Sprintf("%s.fields[%d]", path, i))
		}

	case *ast.ListPattern:
		for i, el := range pat.Elements {
			c.pattern(el, sc, fmt.Sprintf("%s.elements[%d]", path, i))
		}
		if pat.Tail != nil {
			c.pattern(pat.Tail, sc, path+".tail")
		}

	case *ast.AsPattern:
		sc.define(pat.Name)
		c.pattern(pat.Inner, sc, path+".inner")

	case *ast.OrPattern:
		for i, alt := range pat.Alternatives {
			c.pattern(alt, sc, fmt.Sprintf("%s.alternatives[%d]", path, i))
		}
	}
}
