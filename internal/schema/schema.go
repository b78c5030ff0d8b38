// Package schema holds the declared shape of the data a tree may
// construct and match on: which constructors exist, their arity and
// owning union, and which record types carry which fields.
package schema

import "fmt"

// ConstructorInfo describes one declared constructor.
type ConstructorInfo struct {
	Name  string
	Arity int
	Owner string // owning union type, e.g. "Option" for Some
}

// RecordInfo describes one declared record type.
type RecordInfo struct {
	Name   string
	Fields []string // declaration order
}

// Registry is a symbol table of constructors, record types, and union
// type names.
type Registry struct {
	constructors map[string]*ConstructorInfo
	records      map[string]*RecordInfo
	unions       map[string][]string // union name -> constructor names
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]*ConstructorInfo),
		records:      make(map[string]*RecordInfo),
		unions:       make(map[string][]string),
	}
}

// Default returns a registry pre-populated with the Option and Result
// unions most producers assume.
func Default() *Registry {
	r := NewRegistry()
	r.DefineConstructor("Option", "Some", 1)
	r.DefineConstructor("Option", "None", 0)
	r.DefineConstructor("Result", "Ok", 1)
	r.DefineConstructor("Result", "Err", 1)
	return r
}

// DefineConstructor registers a constructor under its owning union.
// Returns an error if the constructor name is already taken.
func (r *Registry) DefineConstructor(owner, name string, arity int) error {
	if _, exists := r.constructors[name]; exists {
		return fmt.Errorf("constructor '%s' already defined", name)
	}
	r.constructors[name] = &ConstructorInfo{Name: name, Arity: arity, Owner: owner}
	r.unions[owner] = append(r.unions[owner], name)
	return nil
}

// DefineRecord registers a record type with its ordered field names.
// Returns an error if the record name is already taken.
func (r *Registry) DefineRecord(name string, fields []string) error {
	if _, exists := r.records[name]; exists {
		return fmt.Errorf("record type '%s' already defined", name)
	}
	r.records[name] = &RecordInfo{Name: name, Fields: fields}
	return nil
}

// Constructor looks up a constructor by name.
func (r *Registry) Constructor(name string) *ConstructorInfo {
	return r.constructors[name]
}

// Record looks up a record type by name.
func (r *Registry) Record(name string) *RecordInfo {
	return r.records[name]
}

// Union returns the constructor names of a union type, in declaration
// order, or nil if the union is unknown.
func (r *Registry) Union(name string) []string {
	return r.unions[name]
}

// KnownType reports whether a type name refers to a primitive, a
// declared record, or a declared union.
func (r *Registry) KnownType(name string) bool {
	if IsPrimitive(name) {
		return true
	}
	if _, ok := r.records[name]; ok {
		return true
	}
	if _, ok := r.unions[name]; ok {
		return true
	}
	return false
}
