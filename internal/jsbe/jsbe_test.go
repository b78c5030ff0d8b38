package jsbe

import (
	"strings"
	"testing"

	"github.com/nova-language/lumata/internal/ast"
)

func TestGenerateLiterals(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"int", &ast.IntLit{Value: 42}, "42"},
		{"negative int", &ast.IntLit{Value: -7}, "-7"},
		{"float", &ast.FloatLit{Value: "3.14"}, "3.14"},
		{"string", &ast.StringLit{Value: "hello"}, "\"hello\""},
		{"string with quote", &ast.StringLit{Value: "say \"hi\""}, "\"say \\\"hi\\\"\""},
		{"char", &ast.CharLit{Value: 'x'}, "\"x\""},
		{"bool true", &ast.BoolLit{Value: true}, "true"},
		{"bool false", &ast.BoolLit{Value: false}, "false"},
		{"unit", &ast.UnitLit{}, "null"},
		{"empty list", &ast.ListLit{}, "[]"},
		{"list", &ast.ListLit{Elements: []ast.Expr{&ast.IntLit{Value: 1}, &ast.IntLit{Value: 2}}}, "[1, 2]"},
		{"empty record", &ast.RecordLit{}, "{}"},
		{"record", &ast.RecordLit{Fields: []*ast.RecordField{
			{Name: "x", Value: &ast.IntLit{Value: 1}},
			{Name: "y", Value: &ast.IntLit{Value: 2}},
		}}, "{ x: 1, y: 2 }"},
		{"variable", &ast.VarRef{Name: "count"}, "count"},
		{"qualified", &ast.QualifiedRef{Space: "List", Name: "empty"}, "List.empty"},
		{"qualified bare", &ast.QualifiedRef{Name: "empty"}, "empty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Generate(tc.expr)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGenerateBinaryAdd(t *testing.T) {
	expr := &ast.BinaryExpr{
		Op:    ast.OpAdd,
		Left:  &ast.IntLit{Value: 1},
		Right: &ast.IntLit{Value: 2},
	}

	got, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "(1 + 2)" {
		t.Errorf("got %q, want %q", got, "(1 + 2)")
	}
}

func TestGenerateBinaryOperators(t *testing.T) {
	cases := []struct {
		op   ast.BinaryOp
		want string
	}{
		{ast.OpSub, "(a - b)"},
		{ast.OpMul, "(a * b)"},
		{ast.OpDiv, "(a / b)"},
		{ast.OpMod, "(a % b)"},
		{ast.OpPow, "Math.pow(a, b)"},
		{ast.OpEq, "(a === b)"},
		{ast.OpNotEq, "(a !== b)"},
		{ast.OpLt, "(a < b)"},
		{ast.OpGt, "(a > b)"},
		{ast.OpLtEq, "(a <= b)"},
		{ast.OpGtEq, "(a >= b)"},
		{ast.OpAnd, "(a && b)"},
		{ast.OpOr, "(a || b)"},
		{ast.OpCons, "[a, ...b]"},
		{ast.OpAppend, "[...a, ...b]"},
		{ast.OpCompose, "((__x) => a(b(__x)))"},
		{ast.OpPipe, "b(a)"},
	}

	for _, tc := range cases {
		t.Run(tc.op.String(), func(t *testing.T) {
			got, err := Generate(&ast.BinaryExpr{
				Op:    tc.op,
				Left:  &ast.VarRef{Name: "a"},
				Right: &ast.VarRef{Name: "b"},
			})
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGenerateUnaryOperators(t *testing.T) {
	cases := []struct {
		op   ast.UnaryOp
		want string
	}{
		{ast.OpNeg, "(-a)"},
		{ast.OpNot, "(!a)"},
		{ast.OpLength, "a.length"},
		{ast.OpHead, "a[0]"},
		{ast.OpTail, "a.slice(1)"},
		{ast.OpReverse, "[...a].reverse()"},
	}

	for _, tc := range cases {
		t.Run(tc.op.String(), func(t *testing.T) {
			got, err := Generate(&ast.UnaryExpr{Op: tc.op, Operand: &ast.VarRef{Name: "a"}})
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGenerateUnknownBinaryOperator(t *testing.T) {
	_, err := Generate(&ast.BinaryExpr{
		Op:    ast.BinaryOp(99),
		Left:  &ast.IntLit{Value: 1},
		Right: &ast.IntLit{Value: 2},
	})
	if err == nil {
		t.Fatal("expected error for unknown binary operator")
	}
	if !strings.Contains(err.Error(), "unknown binary operator") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerateUnknownUnaryOperator(t *testing.T) {
	_, err := Generate(&ast.UnaryExpr{Op: ast.UnaryOp(99), Operand: &ast.IntLit{Value: 1}})
	if err == nil {
		t.Fatal("expected error for unknown unary operator")
	}
	if !strings.Contains(err.Error(), "unknown unary operator") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerateUnhandledNode(t *testing.T) {
	_, err := Generate(nil)
	if err == nil {
		t.Fatal("expected error for nil node")
	}
	if !strings.Contains(err.Error(), "unhandled node") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerateCallAndProjections(t *testing.T) {
	call := &ast.CallExpr{
		Callee: &ast.VarRef{Name: "f"},
		Args:   []ast.Expr{&ast.IntLit{Value: 1}, &ast.VarRef{Name: "x"}},
	}
	got, err := Generate(call)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "f(1, x)" {
		t.Errorf("got %q, want %q", got, "f(1, x)")
	}

	ctor := &ast.ConstructExpr{Name: "Some", Args: []ast.Expr{&ast.IntLit{Value: 5}}}
	got, err = Generate(ctor)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "new Some(5)" {
		t.Errorf("got %q, want %q", got, "new Some(5)")
	}

	access := &ast.FieldAccessExpr{Object: &ast.VarRef{Name: "point"}, Field: "x"}
	got, err = Generate(access)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "point.x" {
		t.Errorf("got %q, want %q", got, "point.x")
	}

	index := &ast.IndexExpr{Object: &ast.VarRef{Name: "xs"}, Index: &ast.IntLit{Value: 3}}
	got, err = Generate(index)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "xs[3]" {
		t.Errorf("got %q, want %q", got, "xs[3]")
	}
}

func TestGenerateRecordUpdate(t *testing.T) {
	update := &ast.RecordUpdateExpr{
		Base: &ast.VarRef{Name: "point"},
		Fields: []*ast.RecordField{
			{Name: "x", Value: &ast.IntLit{Value: 10}},
		},
	}

	got, err := Generate(update)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "{ ...point, x: 10 }" {
		t.Errorf("got %q, want %q", got, "{ ...point, x: 10 }")
	}
}

func TestGenerateIfExpr(t *testing.T) {
	expr := &ast.IfExpr{
		Cond: &ast.BinaryExpr{Op: ast.OpGt, Left: &ast.VarRef{Name: "n"}, Right: &ast.IntLit{Value: 0}},
		Then: &ast.StringLit{Value: "pos"},
		Else: &ast.StringLit{Value: "neg"},
	}

	got, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.HasPrefix(got, "(() => {") || !strings.HasSuffix(got, "})()") {
		t.Errorf("expected IIFE wrapping, got:\n%s", got)
	}
	if !strings.Contains(got, "if ((n > 0)) {") {
		t.Errorf("expected condition, got:\n%s", got)
	}
	if !strings.Contains(got, "return \"pos\";") || !strings.Contains(got, "return \"neg\";") {
		t.Errorf("expected both branch returns, got:\n%s", got)
	}
}

func TestGenerateLetExpr(t *testing.T) {
	expr := &ast.LetExpr{
		Bindings: []*ast.LetBinding{
			{Name: "a", Value: &ast.IntLit{Value: 1}},
			{Name: "b", Value: &ast.BinaryExpr{Op: ast.OpAdd, Left: &ast.VarRef{Name: "a"}, Right: &ast.IntLit{Value: 1}}},
		},
		Body: &ast.VarRef{Name: "b"},
	}

	got, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	aPos := strings.Index(got, "const a = 1;")
	bPos := strings.Index(got, "const b = (a + 1);")
	retPos := strings.Index(got, "return b;")
	if aPos < 0 || bPos < 0 || retPos < 0 {
		t.Fatalf("missing declarations or return, got:\n%s", got)
	}
	if !(aPos < bPos && bPos < retPos) {
		t.Errorf("bindings out of source order, got:\n%s", got)
	}
}

func TestGenerateLambda(t *testing.T) {
	expr := &ast.LambdaExpr{
		Params: []string{"x", "y"},
		Body:   &ast.BinaryExpr{Op: ast.OpMul, Left: &ast.VarRef{Name: "x"}, Right: &ast.VarRef{Name: "y"}},
	}

	got, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "((x, y) => { return (x * y); })" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateDoExpr(t *testing.T) {
	expr := &ast.DoExpr{
		Stmts: []*ast.DoStmt{
			{Name: "x", Expr: &ast.IntLit{Value: 1}},
			{Expr: &ast.CallExpr{Callee: &ast.VarRef{Name: "log"}, Args: []ast.Expr{&ast.VarRef{Name: "x"}}}},
		},
		Result: &ast.VarRef{Name: "x"},
	}

	got, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(got, "const x = 1;") {
		t.Errorf("expected binding statement, got:\n%s", got)
	}
	if !strings.Contains(got, "log(x);") {
		t.Errorf("expected bare effect statement, got:\n%s", got)
	}
	if !strings.Contains(got, "return x;") {
		t.Errorf("expected final return, got:\n%s", got)
	}
}

func TestGenerateRaise(t *testing.T) {
	got, err := Generate(&ast.RaiseExpr{Value: &ast.StringLit{Value: "boom"}})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "(() => { throw \"boom\"; })()" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateCollectionOperators(t *testing.T) {
	mapExpr := &ast.MapExpr{
		Seq:  &ast.VarRef{Name: "xs"},
		Var:  "x",
		Body: &ast.BinaryExpr{Op: ast.OpMul, Left: &ast.VarRef{Name: "x"}, Right: &ast.IntLit{Value: 2}},
	}
	got, err := Generate(mapExpr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "xs.map((x) => (x * 2))" {
		t.Errorf("got %q", got)
	}

	filterExpr := &ast.FilterExpr{
		Seq:  &ast.VarRef{Name: "xs"},
		Var:  "x",
		Body: &ast.BinaryExpr{Op: ast.OpGt, Left: &ast.VarRef{Name: "x"}, Right: &ast.IntLit{Value: 0}},
	}
	got, err = Generate(filterExpr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "xs.filter((x) => (x > 0))" {
		t.Errorf("got %q", got)
	}

	foldExpr := &ast.FoldExpr{
		Seq:  &ast.VarRef{Name: "xs"},
		Acc:  "total",
		Var:  "x",
		Init: &ast.IntLit{Value: 0},
		Body: &ast.BinaryExpr{Op: ast.OpAdd, Left: &ast.VarRef{Name: "total"}, Right: &ast.VarRef{Name: "x"}},
	}
	got, err = Generate(foldExpr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// The accumulator parameter comes before the element parameter.
	if got != "xs.reduce((total, x) => (total + x), 0)" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateAnnotation(t *testing.T) {
	got, err := Generate(&ast.AnnotExpr{TypeName: "Money", Expr: &ast.VarRef{Name: "amount"}})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "(/** @type {Money} */ (amount))" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateCaseConstructorThenWildcard(t *testing.T) {
	expr := &ast.CaseExpr{
		Scrutinee: &ast.VarRef{Name: "x"},
		Arms: []*ast.CaseArm{
			{
				Pattern: &ast.ConstructorPattern{Name: "Some", Args: []ast.Pattern{&ast.VarPattern{Name: "v"}}},
				Body:    &ast.VarRef{Name: "v"},
			},
			{
				Pattern: &ast.WildcardPattern{},
				Body:    &ast.IntLit{Value: 0},
			},
		},
	}

	got, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(got, "((__subject) => {") {
		t.Errorf("expected closure parameterized by temporary, got:\n%s", got)
	}
	if !strings.HasSuffix(got, "})(x)") {
		t.Errorf("expected scrutinee applied once, got:\n%s", got)
	}
	if !strings.Contains(got, "if ((__subject instanceof Some && true)) {") {
		t.Errorf("expected constructor tag test, got:\n%s", got)
	}
	if !strings.Contains(got, "const v = __subject._0;") {
		t.Errorf("expected payload binding, got:\n%s", got)
	}
	if !strings.Contains(got, "else {\n    return 0;") {
		t.Errorf("expected wildcard arm as terminal else, got:\n%s", got)
	}
	// Wildcard covers all remaining cases, so no unmatched-error branch.
	if strings.Contains(got, "unmatched case value") {
		t.Errorf("unexpected unmatched-error branch, got:\n%s", got)
	}
}

func TestGenerateCaseFirstMatchWins(t *testing.T) {
	expr := &ast.CaseExpr{
		Scrutinee: &ast.IntLit{Value: 1},
		Arms: []*ast.CaseArm{
			{
				Pattern: &ast.LiteralPattern{Value: &ast.IntLit{Value: 1}},
				Body:    &ast.StringLit{Value: "a"},
			},
			{
				Pattern: &ast.VarPattern{Name: "x"},
				Body:    &ast.StringLit{Value: "b"},
			},
		},
	}

	got, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	litPos := strings.Index(got, "if (__subject === 1) {")
	varPos := strings.Index(got, "const x = __subject;")
	if litPos < 0 {
		t.Fatalf("expected literal arm test first, got:\n%s", got)
	}
	if varPos < 0 {
		t.Fatalf("expected variable arm binding, got:\n%s", got)
	}
	if litPos > varPos {
		t.Errorf("literal arm must be tested before the catch-all, got:\n%s", got)
	}
	if !strings.Contains(got, "else {\n    const x = __subject;\n    return \"b\";") {
		t.Errorf("expected catch-all as terminal else, got:\n%s", got)
	}
}

func TestGenerateCaseUnmatchedFallback(t *testing.T) {
	expr := &ast.CaseExpr{
		Scrutinee: &ast.VarRef{Name: "x"},
		Arms: []*ast.CaseArm{
			{
				Pattern: &ast.LiteralPattern{Value: &ast.IntLit{Value: 1}},
				Body:    &ast.StringLit{Value: "one"},
			},
			{
				Pattern: &ast.LiteralPattern{Value: &ast.IntLit{Value: 2}},
				Body:    &ast.StringLit{Value: "two"},
			},
		},
	}

	got, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(got, "else if (__subject === 2) {") {
		t.Errorf("expected else-if chaining, got:\n%s", got)
	}
	if !strings.Contains(got, "throw new Error(\"unmatched case value: \" + String(__subject));") {
		t.Errorf("expected unmatched-error else branch, got:\n%s", got)
	}
}

func TestGenerateCaseWithGuard(t *testing.T) {
	expr := &ast.CaseExpr{
		Scrutinee: &ast.VarRef{Name: "x"},
		Arms: []*ast.CaseArm{
			{
				Pattern: &ast.VarPattern{Name: "n"},
				Guard:   &ast.BinaryExpr{Op: ast.OpGt, Left: &ast.VarRef{Name: "x"}, Right: &ast.IntLit{Value: 0}},
				Body:    &ast.StringLit{Value: "pos"},
			},
			{
				Pattern: &ast.WildcardPattern{},
				Body:    &ast.StringLit{Value: "rest"},
			},
		},
	}

	got, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// A guarded catch-all is still a test branch.
	if !strings.Contains(got, "if (true && (x > 0)) {") {
		t.Errorf("expected guard AND-ed onto structural condition, got:\n%s", got)
	}
	if !strings.Contains(got, "const n = __subject;") {
		t.Errorf("expected binding inside guarded branch, got:\n%s", got)
	}
}

func TestGenerateCaseEmptyArms(t *testing.T) {
	_, err := Generate(&ast.CaseExpr{Scrutinee: &ast.VarRef{Name: "x"}})
	if err == nil {
		t.Fatal("expected error for case with no arms")
	}
}

func TestGenerateTryExpr(t *testing.T) {
	expr := &ast.TryExpr{
		Body: &ast.CallExpr{Callee: &ast.VarRef{Name: "risky"}},
		Catches: []*ast.CatchArm{
			{
				Pattern: &ast.ConstructorPattern{Name: "NotFound", Args: []ast.Pattern{&ast.VarPattern{Name: "key"}}},
				Body:    &ast.VarRef{Name: "key"},
			},
		},
	}

	got, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(got, "try {\n    return risky();") {
		t.Errorf("expected protected body with return, got:\n%s", got)
	}
	if !strings.Contains(got, "} catch (__raised) {") {
		t.Errorf("expected generic catch clause, got:\n%s", got)
	}
	if !strings.Contains(got, "if ((__raised instanceof NotFound && true)) {") {
		t.Errorf("expected catch arm tag test, got:\n%s", got)
	}
	if !strings.Contains(got, "const key = __raised._0;") {
		t.Errorf("expected catch binding, got:\n%s", got)
	}
	// No arm matched: the original exception propagates unchanged.
	if !strings.Contains(got, "throw __raised;") {
		t.Errorf("expected rethrow of original value, got:\n%s", got)
	}
}

func TestGenerateTryIrrefutableCatchOmitsRethrow(t *testing.T) {
	expr := &ast.TryExpr{
		Body: &ast.CallExpr{Callee: &ast.VarRef{Name: "risky"}},
		Catches: []*ast.CatchArm{
			{
				Pattern: &ast.VarPattern{Name: "err"},
				Body:    &ast.UnitLit{},
			},
		},
	}

	got, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(got, "const err = __raised;") {
		t.Errorf("expected caught value bound, got:\n%s", got)
	}
	if strings.Contains(got, "throw __raised;") {
		t.Errorf("catch-all arm should not rethrow, got:\n%s", got)
	}
}

func TestGenerateTryEmptyCatches(t *testing.T) {
	_, err := Generate(&ast.TryExpr{Body: &ast.IntLit{Value: 1}})
	if err == nil {
		t.Fatal("expected error for try with no catch arms")
	}
}

func TestGenerateDeterminism(t *testing.T) {
	expr := &ast.CaseExpr{
		Scrutinee: &ast.ListLit{Elements: []ast.Expr{&ast.IntLit{Value: 1}, &ast.IntLit{Value: 2}}},
		Arms: []*ast.CaseArm{
			{
				Pattern: &ast.ListPattern{
					Elements: []ast.Pattern{&ast.VarPattern{Name: "h"}},
					Tail:     &ast.VarPattern{Name: "t"},
				},
				Body: &ast.VarRef{Name: "h"},
			},
			{Pattern: &ast.WildcardPattern{}, Body: &ast.IntLit{Value: 0}},
		},
	}

	first, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if first != second {
		t.Errorf("renders differ:\n%s\n---\n%s", first, second)
	}
}

// Rendering a subtree in isolation and substituting its text into the
// parent must equal rendering the whole tree directly.
func TestGenerateCompositionality(t *testing.T) {
	sub := &ast.IfExpr{
		Cond: &ast.BoolLit{Value: true},
		Then: &ast.IntLit{Value: 1},
		Else: &ast.IntLit{Value: 2},
	}
	parent := &ast.BinaryExpr{Op: ast.OpAdd, Left: sub, Right: &ast.IntLit{Value: 3}}

	subText, err := Generate(sub)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	whole, err := Generate(parent)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if whole != "("+subText+" + 3)" {
		t.Errorf("substituted text differs from direct render:\n%s", whole)
	}
}

func TestGenerateNestedCaseInCallArgument(t *testing.T) {
	inner := &ast.CaseExpr{
		Scrutinee: &ast.VarRef{Name: "opt"},
		Arms: []*ast.CaseArm{
			{
				Pattern: &ast.ConstructorPattern{Name: "Some", Args: []ast.Pattern{&ast.VarPattern{Name: "v"}}},
				Body:    &ast.VarRef{Name: "v"},
			},
			{Pattern: &ast.WildcardPattern{}, Body: &ast.IntLit{Value: 0}},
		},
	}
	call := &ast.CallExpr{Callee: &ast.VarRef{Name: "f"}, Args: []ast.Expr{inner}}

	got, err := Generate(call)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.HasPrefix(got, "f(((__subject) => {") {
		t.Errorf("case must remain usable as a sub-expression, got:\n%s", got)
	}
	if !strings.HasSuffix(got, "})(opt))") {
		t.Errorf("expected closure applied to scrutinee inside call, got:\n%s", got)
	}
}
