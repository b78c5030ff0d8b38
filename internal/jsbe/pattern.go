package jsbe

import (
	"fmt"
	"strings"

	"github.com/nova-language/lumata/internal/ast"
)

// binding is one declaration to emit at the top of a matched branch, ahead
// of the branch's result expression.
type binding struct {
	name string
	expr string
}

// compilePattern turns a structural pattern plus a textual reference to the
// value under test into a single boolean condition and the ordered bindings
// to declare once the condition holds. The condition "true" marks an
// irrefutable pattern.
func (g *generator) compilePattern(p ast.Pattern, ref string) (string, []binding, error) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return "true", nil, nil

	case *ast.VarPattern:
		// Always matches; the bind is the only effect.
		return "true", []binding{{name: pat.Name, expr: ref}}, nil

	case *ast.LiteralPattern:
		lit, err := g.expr(pat.Value)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s === %s", ref, lit), nil, nil

	case *ast.ConstructorPattern:
		terms := []string{fmt.Sprintf("%s instanceof %s", ref, pat.Name)}
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
		terms := []string{fmt.Sprintf("%s !== null", ref)}
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
		terms := []string{fmt.Sprintf("Array.isArray(%s)", ref)}
		var binds []binding
		for i, el := range pat.Elements {
			subCond, subBinds, err := g.compilePattern(el, fmt.Sprintf("%s[%d]", ref, i))
			if err != nil {
				return "", nil, err
			}
			terms = append(terms, subCond)
			binds = append(binds, subBinds...)
		}
		// A wildcard tail does not relax the length requirement; only a
		// tail that tests or binds the suffix does.
		if hasNontrivialTail(pat) {
			terms = append(terms, fmt.Sprintf("%s.length >= %d", ref, len(pat.Elements)))
		} else {
			terms = append(terms, fmt.Sprintf("%s.length === %d", ref, len(pat.Elements)))
		}
		if pat.Tail != nil {
			tailCond, tailBinds, err := g.compilePattern(pat.Tail, fmt.Sprintf("%s.slice(%d)", ref, len(pat.Elements)))
			if err != nil {
				return "", nil, err
			}
			terms = append(terms, tailCond)
			binds = append(binds, tailBinds...)
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
				return "", nil, fmt.Errorf("jsbe: or-pattern alternative binds %q; bindings inside or-patterns are not supported", altBinds[0].name)
			}
			parts = append(parts, altCond)
		}
		return "(" + strings.Join(parts, " || ") + ")", nil, nil

	default:
		return "", nil, fmt.Errorf("jsbe: unhandled pattern kind %T", p)
	}
}

func hasNontrivialTail(p *ast.ListPattern) bool {
	if p.Tail == nil {
		return false
	}
	_, wild := p.Tail.(*ast.WildcardPattern)
	return !wild
}

func conjoin(terms []string) string {
	if len(terms) == 1 {
		return terms[0]
	}
	return "(" + strings.Join(terms, " && ") + ")"
}
