package ast

// Pattern is the interface for all structural patterns. Patterns appear
// only inside case arms and catch arms. Like Expr, the variant set is
// closed.
type Pattern interface {
	patternNode()
}

// WildcardPattern matches any value and binds nothing.
type WildcardPattern struct{}

func (*WildcardPattern) patternNode() {}

// VarPattern matches any value and binds it to Name. It is a catch-all
// with a side-effecting bind, not a test.
type VarPattern struct {
	Name string
}

func (*VarPattern) patternNode() {}

// LiteralPattern matches when the value equals the literal. Value must be
// one of the literal expression variants.
type LiteralPattern struct {
	Value Expr
}

func (*LiteralPattern) patternNode() {}

// ConstructorPattern matches values built by the named constructor, with
// ordered sub-patterns against the constructor's payload positions.
type ConstructorPattern struct {
	Name string
	Args []Pattern
}

func (*ConstructorPattern) patternNode() {}

// FieldPattern is one named sub-pattern inside a record pattern.
type FieldPattern struct {
	Name    string
	Pattern Pattern
}

// RecordPattern matches records by testing the named fields. Fields not
// mentioned are ignored.
type RecordPattern struct {
	Fields []*FieldPattern
}

func (*RecordPattern) patternNode() {}

// ListPattern matches lists positionally. With a nil Tail the list length
// must equal len(Elements) exactly; with a Tail the length must be at
// least len(Elements) and the Tail is matched against the remaining
// suffix.
type ListPattern struct {
	Elements []Pattern
	Tail     Pattern
}

func (*ListPattern) patternNode() {}

// AsPattern binds the whole value to Name and then matches Inner against
// the same value.
type AsPattern struct {
	Name  string
	Inner Pattern
}

func (*AsPattern) patternNode() {}

// OrPattern matches when any alternative matches. Alternatives must not
// bind variables; the pattern compilers reject or-patterns with binding
// alternatives.
type OrPattern struct {
	Alternatives []Pattern
}

func (*OrPattern) patternNode() {}
