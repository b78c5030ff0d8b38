package schema

// Primitive maps a source-level primitive type name to its spelling in
// each target dialect.
type Primitive struct {
	Name string
	JS   string
	Lua  string
}

// Primitives is the static catalog of built-in types, in a fixed order.
var Primitives = []Primitive{
	{Name: "Int", JS: "number", Lua: "number"},
	{Name: "Float", JS: "number", Lua: "number"},
	{Name: "String", JS: "string", Lua: "string"},
	{Name: "Char", JS: "string", Lua: "string"},
	{Name: "Bool", JS: "boolean", Lua: "boolean"},
	{Name: "Unit", JS: "undefined", Lua: "nil"},
	{Name: "List", JS: "Array", Lua: "table"},
}

var primitivesByName = func() map[string]Primitive {
	m := make(map[string]Primitive, len(Primitives))
	for _, p := range Primitives {
		m[p.Name] = p
	}
	return m
}()

// IsPrimitive reports whether name is a built-in type.
func IsPrimitive(name string) bool {
	_, ok := primitivesByName[name]
	return ok
}

// Lookup returns the primitive catalog entry for name.
func Lookup(name string) (Primitive, bool) {
	p, ok := primitivesByName[name]
	return p, ok
}
