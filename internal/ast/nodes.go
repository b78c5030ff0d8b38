package ast

// Expr is the interface for all Lumata expression nodes. The set of
// implementations is closed: renderers type-switch over every variant and
// treat anything else as a malformed tree.
type Expr interface {
	exprNode()
}

// --- Literals ---

// IntLit represents an integer literal.
type IntLit struct {
	Value int64
}

func (*IntLit) exprNode() {}

// FloatLit represents a float literal. The original string representation
// is kept for output fidelity.
type FloatLit struct {
	Value string
}

func (*FloatLit) exprNode() {}

// StringLit represents a string literal. Value is the unquoted text.
type StringLit struct {
	Value string
}

func (*StringLit) exprNode() {}

// CharLit represents a single-character literal.
type CharLit struct {
	Value rune
}

func (*CharLit) exprNode() {}

// BoolLit represents a boolean literal.
type BoolLit struct {
	Value bool
}

func (*BoolLit) exprNode() {}

// UnitLit represents the unit value.
type UnitLit struct{}

func (*UnitLit) exprNode() {}

// ListLit represents a list literal.
type ListLit struct {
	Elements []Expr
}

func (*ListLit) exprNode() {}

// RecordField is one name/value pair in a record literal or update.
type RecordField struct {
	Name  string
	Value Expr
}

// RecordLit represents a record construction with named fields.
type RecordLit struct {
	Fields []*RecordField
}

func (*RecordLit) exprNode() {}

// --- Identifiers ---

// VarRef references a variable by name.
type VarRef struct {
	Name string
}

func (*VarRef) exprNode() {}

// QualifiedRef references a namespaced identifier. Space may be empty, in
// which case the reference renders bare.
type QualifiedRef struct {
	Space string
	Name  string
}

func (*QualifiedRef) exprNode() {}

// --- Operators ---

// BinaryExpr represents a binary operation.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a unary operation.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// --- Calls and projections ---

// CallExpr represents a function application.
type CallExpr struct {
	Callee Expr
	Args   []Expr
}

func (*CallExpr) exprNode() {}

// ConstructExpr represents a constructor application. Name is the
// constructor name; the renderer treats it as an opaque string.
type ConstructExpr struct {
	Name string
	Args []Expr
}

func (*ConstructExpr) exprNode() {}

// RecordUpdateExpr represents a pure record update: a copy of Base with
// the named fields replaced.
type RecordUpdateExpr struct {
	Base   Expr
	Fields []*RecordField
}

func (*RecordUpdateExpr) exprNode() {}

// FieldAccessExpr represents a record field projection.
type FieldAccessExpr struct {
	Object Expr
	Field  string
}

func (*FieldAccessExpr) exprNode() {}

// IndexExpr represents a positional list projection.
type IndexExpr struct {
	Object Expr
	Index  Expr
}

func (*IndexExpr) exprNode() {}

// --- Control forms ---

// IfExpr represents a two-armed conditional. Both branches are required;
// an if always yields a value.
type IfExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*IfExpr) exprNode() {}

// LetBinding is one name/value pair in a let expression.
type LetBinding struct {
	Name  string
	Value Expr
}

// LetExpr represents a sequence of bindings scoped over a body expression.
// Bindings are evaluated in source order.
type LetExpr struct {
	Bindings []*LetBinding
	Body     Expr
}

func (*LetExpr) exprNode() {}

// LambdaExpr represents an anonymous function.
type LambdaExpr struct {
	Params []string
	Body   Expr
}

func (*LambdaExpr) exprNode() {}

// CaseArm is one (pattern, optional guard, result) triple in a case
// expression. Guard is nil when the arm is unguarded.
type CaseArm struct {
	Pattern Pattern
	Guard   Expr
	Body    Expr
}

// CaseExpr represents a pattern match over a scrutinee. Arms are tested in
// order; the first structurally-and-guard-matching arm wins. Arms must be
// non-empty.
type CaseExpr struct {
	Scrutinee Expr
	Arms      []*CaseArm
}

func (*CaseExpr) exprNode() {}

// CatchArm is one (pattern, optional guard, result) triple in a try
// expression, matched against the raised value.
type CatchArm struct {
	Pattern Pattern
	Guard   Expr
	Body    Expr
}

// TryExpr represents a protected body with ordered catch arms. If no arm
// matches the raised value, the original raise propagates unchanged.
type TryExpr struct {
	Body    Expr
	Catches []*CatchArm
}

func (*TryExpr) exprNode() {}

// DoStmt is one statement in a do block: a value binding when Name is
// non-empty, otherwise a bare expression evaluated for effect.
type DoStmt struct {
	Name string
	Expr Expr
}

// DoExpr represents a statement sequence yielding the value of Result.
type DoExpr struct {
	Stmts  []*DoStmt
	Result Expr
}

func (*DoExpr) exprNode() {}

// RaiseExpr represents raising a value as an exception.
type RaiseExpr struct {
	Value Expr
}

func (*RaiseExpr) exprNode() {}

// --- Collection operators ---

// MapExpr applies Body to each element of Seq, binding the element to Var.
type MapExpr struct {
	Seq  Expr
	Var  string
	Body Expr
}

func (*MapExpr) exprNode() {}

// FilterExpr keeps the elements of Seq for which Body holds.
type FilterExpr struct {
	Seq  Expr
	Var  string
	Body Expr
}

func (*FilterExpr) exprNode() {}

// FoldExpr left-folds Seq with Body, starting from Init. Acc names the
// running accumulator, Var the current element.
type FoldExpr struct {
	Seq  Expr
	Acc  string
	Var  string
	Init Expr
	Body Expr
}

func (*FoldExpr) exprNode() {}

// --- Annotation ---

// AnnotExpr wraps an expression with an explicit type ascription. TypeName
// is opaque to the renderers.
type AnnotExpr struct {
	TypeName string
	Expr     Expr
}

func (*AnnotExpr) exprNode() {}
