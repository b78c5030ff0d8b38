// Package treejson decodes expression trees from JSON. Every node is an
// object with a "kind" discriminator naming one of the closed variant
// sets; anything else is a decode error.
package treejson

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/nova-language/lumata/internal/ast"
)

type rawExpr struct {
	Kind string `json:"kind"`

	// literal payloads
	Int    *int64  `json:"int,omitempty"`
	Float  string  `json:"float,omitempty"`
	String *string `json:"string,omitempty"`
	Char   string  `json:"char,omitempty"`
	Bool   *bool   `json:"bool,omitempty"`

	// names
	Name  string `json:"name,omitempty"`
	Space string `json:"space,omitempty"`
	Field string `json:"field,omitempty"`
	Type  string `json:"type,omitempty"`
	Op    string `json:"op,omitempty"`
	Var   string `json:"var,omitempty"`
	Acc   string `json:"acc,omitempty"`

	// sub-expressions
	Left      *rawExpr   `json:"left,omitempty"`
	Right     *rawExpr   `json:"right,omitempty"`
	Operand   *rawExpr   `json:"operand,omitempty"`
	Callee    *rawExpr   `json:"callee,omitempty"`
	Args      []*rawExpr `json:"args,omitempty"`
	Base      *rawExpr   `json:"base,omitempty"`
	Object    *rawExpr   `json:"object,omitempty"`
	Index     *rawExpr   `json:"index,omitempty"`
	Cond      *rawExpr   `json:"cond,omitempty"`
	Then      *rawExpr   `json:"then,omitempty"`
	Else      *rawExpr   `json:"else,omitempty"`
	Body      *rawExpr   `json:"body,omitempty"`
	Scrutinee *rawExpr   `json:"scrutinee,omitempty"`
	Value     *rawExpr   `json:"value,omitempty"`
	Seq       *rawExpr   `json:"seq,omitempty"`
	Init      *rawExpr   `json:"init,omitempty"`
	Result    *rawExpr   `json:"result,omitempty"`
	Expr      *rawExpr   `json:"expr,omitempty"`
	Elements  []*rawExpr `json:"elements,omitempty"`

	Params   []string      `json:"params,omitempty"`
	Fields   []*rawField   `json:"fields,omitempty"`
	Bindings []*rawBinding `json:"bindings,omitempty"`
	Arms     []*rawArm     `json:"arms,omitempty"`
	Catches  []*rawArm     `json:"catches,omitempty"`
	Stmts    []*rawStmt    `json:"stmts,omitempty"`
}

type rawField struct {
	Name  string   `json:"name"`
	Value *rawExpr `json:"value"`
}

type rawBinding struct {
	Name  string   `json:"name"`
	Value *rawExpr `json:"value"`
}

type rawArm struct {
	Pattern *rawPattern `json:"pattern"`
	Guard   *rawExpr    `json:"guard,omitempty"`
	Body    *rawExpr    `json:"body"`
}

type rawStmt struct {
	Name string   `json:"name,omitempty"`
	Expr *rawExpr `json:"expr"`
}

type rawPattern struct {
	Kind         string             `json:"kind"`
	Name         string             `json:"name,omitempty"`
	Value        *rawExpr           `json:"value,omitempty"`
	Args         []*rawPattern      `json:"args,omitempty"`
	Fields       []*rawFieldPattern `json:"fields,omitempty"`
	Elements     []*rawPattern      `json:"elements,omitempty"`
	Tail         *rawPattern        `json:"tail,omitempty"`
	Inner        *rawPattern        `json:"inner,omitempty"`
	Alternatives []*rawPattern      `json:"alternatives,omitempty"`
}

type rawFieldPattern struct {
	Name    string      `json:"name"`
	Pattern *rawPattern `json:"pattern"`
}

var binaryOps = map[string]ast.BinaryOp{
	"+": ast.OpAdd, "-": ast.OpSub, "*": ast.OpMul, "/": ast.OpDiv,
	"%": ast.OpMod, "^": ast.OpPow,
	"==": ast.OpEq, "!=": ast.OpNotEq,
	"<": ast.OpLt, ">": ast.OpGt, "<=": ast.OpLtEq, ">=": ast.OpGtEq,
	"&&": ast.OpAnd, "||": ast.OpOr,
	"::": ast.OpCons, "++": ast.OpAppend,
	">>": ast.OpCompose, "|>": ast.OpPipe,
}

var unaryOps = map[string]ast.UnaryOp{
	"-": ast.OpNeg, "!": ast.OpNot,
	"length": ast.OpLength, "head": ast.OpHead,
	"tail": ast.OpTail, "reverse": ast.OpReverse,
}

// Decode parses a JSON-encoded expression tree.
func Decode(data []byte) (ast.Expr, error) {
	var root rawExpr
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("treejson: %w", err)
	}
	return decodeExpr(&root)
}

func decodeExpr(r *rawExpr) (ast.Expr, error) {
	if r == nil {
		return nil, fmt.Errorf("treejson: missing expression node")
	}

	switch r.Kind {
	case "int":
		if r.Int == nil {
			return nil, fmt.Errorf("treejson: int node without 'int' field")
		}
		return &ast.IntLit{Value: *r.Int}, nil

	case "float":
		if r.Float == "" {
			return nil, fmt.Errorf("treejson: float node without 'float' field")
		}
		return &ast.FloatLit{Value: r.Float}, nil

	case "string":
		if r.String == nil {
			return nil, fmt.Errorf("treejson: string node without 'string' field")
		}
		return &ast.StringLit{Value: *r.String}, nil

	case "char":
		c, size := utf8.DecodeRuneInString(r.Char)
		if size == 0 || size != len(r.Char) {
			return nil, fmt.Errorf("treejson: char node needs exactly one rune, got %q", r.Char)
		}
		return &ast.CharLit{Value: c}, nil

	case "bool":
		if r.Bool == nil {
			return nil, fmt.Errorf("treejson: bool node without 'bool' field")
		}
		return &ast.BoolLit{Value: *r.Bool}, nil

	case "unit":
		return &ast.UnitLit{}, nil

	case "list":
		elems, err := decodeExprs(r.Elements)
		if err != nil {
			return nil, err
		}
		return &ast.ListLit{Elements: elems}, nil

	case "record":
		fields, err := decodeFields(r.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.RecordLit{Fields: fields}, nil

	case "var":
		return &ast.VarRef{Name: r.Name}, nil

	case "qualified":
		return &ast.QualifiedRef{Space: r.Space, Name: r.Name}, nil

	case "binary":
		op, ok := binaryOps[r.Op]
		if !ok {
			return nil, fmt.Errorf("treejson: unknown binary operator %q", r.Op)
		}
		left, err := decodeExpr(r.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(r.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: op, Left: left, Right: right}, nil

	case "unary":
		op, ok := unaryOps[r.Op]
		if !ok {
			return nil, fmt.Errorf("treejson: unknown unary operator %q", r.Op)
		}
		operand, err := decodeExpr(r.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, Operand: operand}, nil

	case "call":
		callee, err := decodeExpr(r.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(r.Args)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Callee: callee, Args: args}, nil

	case "construct":
		args, err := decodeExprs(r.Args)
		if err != nil {
			return nil, err
		}
		return &ast.ConstructExpr{Name: r.Name, Args: args}, nil

	case "record_update":
		base, err := decodeExpr(r.Base)
		if err != nil {
			return nil, err
		}
		fields, err := decodeFields(r.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.RecordUpdateExpr{Base: base, Fields: fields}, nil

	case "field_access":
		obj, err := decodeExpr(r.Object)
		if err != nil {
			return nil, err
		}
		return &ast.FieldAccessExpr{Object: obj, Field: r.Field}, nil

	case "index":
		obj, err := decodeExpr(r.Object)
		if err != nil {
			return nil, err
		}
		idx, err := decodeExpr(r.Index)
		if err != nil {
			return nil, err
		}
		return &ast.IndexExpr{Object: obj, Index: idx}, nil

	case "if":
		cond, err := decodeExpr(r.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeExpr(r.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeExpr(r.Else)
		if err != nil {
			return nil, err
		}
		return &ast.IfExpr{Cond: cond, Then: then, Else: els}, nil

	case "let":
		bindings := make([]*ast.LetBinding, len(r.Bindings))
		for i, b := range r.Bindings {
			value, err := decodeExpr(b.Value)
			if err != nil {
				return nil, err
			}
			bindings[i] = &ast.LetBinding{Name: b.Name, Value: value}
		}
		body, err := decodeExpr(r.Body)
		if err != nil {
			return nil, err
		}
		return &ast.LetExpr{Bindings: bindings, Body: body}, nil

	case "lambda":
		body, err := decodeExpr(r.Body)
		if err != nil {
			return nil, err
		}
		return &ast.LambdaExpr{Params: r.Params, Body: body}, nil

	case "case":
		scrutinee, err := decodeExpr(r.Scrutinee)
		if err != nil {
			return nil, err
		}
		arms := make([]*ast.CaseArm, len(r.Arms))
		for i, a := range r.Arms {
			arm, err := decodeArm(a)
			if err != nil {
				return nil, err
			}
			arms[i] = arm
		}
		return &ast.CaseExpr{Scrutinee: scrutinee, Arms: arms}, nil

	case "try":
		body, err := decodeExpr(r.Body)
		if err != nil {
			return nil, err
		}
		catches := make([]*ast.CatchArm, len(r.Catches))
		for i, a := range r.Catches {
			arm, err := decodeArm(a)
			if err != nil {
				return nil, err
			}
			catches[i] = &ast.CatchArm{Pattern: arm.Pattern, Guard: arm.Guard, Body: arm.Body}
		}
		return &ast.TryExpr{Body: body, Catches: catches}, nil

	case "do":
		stmts := make([]*ast.DoStmt, len(r.Stmts))
		for i, s := range r.Stmts {
			expr, err := decodeExpr(s.Expr)
			if err != nil {
				return nil, err
			}
			stmts[i] = &ast.DoStmt{Name: s.Name, Expr: expr}
		}
		result, err := decodeExpr(r.Result)
		if err != nil {
			return nil, err
		}
		return &ast.DoExpr{Stmts: stmts, Result: result}, nil

	case "raise":
		value, err := decodeExpr(r.Value)
		if err != nil {
			return nil, err
		}
		return &ast.RaiseExpr{Value: value}, nil

	case "map", "filter":
		seq, err := decodeExpr(r.Seq)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(r.Body)
		if err != nil {
			return nil, err
		}
		if r.Kind == "map" {
			return &ast.MapExpr{Seq: seq, Var: r.Var, Body: body}, nil
		}
		return &ast.FilterExpr{Seq: seq, Var: r.Var, Body: body}, nil

	case "fold":
		seq, err := decodeExpr(r.Seq)
		if err != nil {
			return nil, err
		}
		init, err := decodeExpr(r.Init)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(r.Body)
		if err != nil {
			return nil, err
		}
		return &ast.FoldExpr{Seq: seq, Acc: r.Acc, Var: r.Var, Init: init, Body: body}, nil

	case "annot":
		expr, err := decodeExpr(r.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.AnnotExpr{TypeName: r.Type, Expr: expr}, nil

	case "":
		return nil, fmt.Errorf("treejson: node without 'kind' field")

	default:
		return nil, fmt.Errorf("treejson: unknown expression kind %q", r.Kind)
	}
}

func decodeArm(a *rawArm) (*ast.CaseArm, error) {
	pattern, err := decodePattern(a.Pattern)
	if err != nil {
		return nil, err
	}
	var guard ast.Expr
	if a.Guard != nil {
		guard, err = decodeExpr(a.Guard)
		if err != nil {
			return nil, err
		}
	}
	body, err := decodeExpr(a.Body)
	if err != nil {
		return nil, err
	}
	return &ast.CaseArm{Pattern: pattern, Guard: guard, Body: body}, nil
}

func decodePattern(r *rawPattern) (ast.Pattern, error) {
	if r == nil {
		return nil, fmt.Errorf("treejson: missing pattern node")
	}

	switch r.Kind {
	case "wildcard":
		return &ast.WildcardPattern{}, nil

	case "bind":
		return &ast.VarPattern{Name: r.Name}, nil

	case "literal":
		value, err := decodeExpr(r.Value)
		if err != nil {
			return nil, err
		}
		return &ast.LiteralPattern{Value: value}, nil

	case "constructor":
		args := make([]ast.Pattern, len(r.Args))
		for i, a := range r.Args {
			sub, err := decodePattern(a)
			if err != nil {
				return nil, err
			}
			args[i] = sub
		}
		return &ast.ConstructorPattern{Name: r.Name, Args: args}, nil

	case "record":
		fields := make([]*ast.FieldPattern, len(r.Fields))
		for i, f := range r.Fields {
			sub, err := decodePattern(f.Pattern)
			if err != nil {
				return nil, err
			}
			fields[i] = &ast.FieldPattern{Name: f.Name, Pattern: sub}
		}
		return &ast.RecordPattern{Fields: fields}, nil

	case "list":
		elems := make([]ast.Pattern, len(r.Elements))
		for i, el := range r.Elements {
			sub, err := decodePattern(el)
			if err != nil {
				return nil, err
			}
			elems[i] = sub
		}
		var tail ast.Pattern
		if r.Tail != nil {
			var err error
			tail, err = decodePattern(r.Tail)
			if err != nil {
				return nil, err
			}
		}
		return &ast.ListPattern{Elements: elems, Tail: tail}, nil

	case "as":
		inner, err := decodePattern(r.Inner)
		if err != nil {
			return nil, err
		}
		return &ast.AsPattern{Name: r.Name, Inner: inner}, nil

	case "or":
		alts := make([]ast.Pattern, len(r.Alternatives))
		for i, a := range r.Alternatives {
			sub, err := decodePattern(a)
			if err != nil {
				return nil, err
			}
			alts[i] = sub
		}
		return &ast.OrPattern{Alternatives: alts}, nil

	case "":
		return nil, fmt.Errorf("treejson: pattern without 'kind' field")

	default:
		return nil, fmt.Errorf("treejson: unknown pattern kind %q", r.Kind)
	}
}

func decodeExprs(raw []*rawExpr) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(raw))
	for i, r := range raw {
		e, err := decodeExpr(r)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeFields(raw []*rawField) ([]*ast.RecordField, error) {
	out := make([]*ast.RecordField, len(raw))
	for i, f := range raw {
		value, err := decodeExpr(f.Value)
		if err != nil {
			return nil, err
		}
		out[i] = &ast.RecordField{Name: f.Name, Value: value}
	}
	return out, nil
}
