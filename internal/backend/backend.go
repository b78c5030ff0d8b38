package backend

import (
	"fmt"

	"github.com/nova-language/lumata/internal/ast"
	"github.com/nova-language/lumata/internal/jsbe"
	"github.com/nova-language/lumata/internal/luabe"
)

// Backend is the interface that all code generation backends implement.
type Backend interface {
	// Name returns the backend name (e.g., "js", "lua")
	Name() string
	// Generate produces target source text for a single expression tree.
	Generate(e ast.Expr) (string, error)
}

// JSBackend renders expression trees to JavaScript.
type JSBackend struct{}

func (b *JSBackend) Name() string { return "js" }

func (b *JSBackend) Generate(e ast.Expr) (string, error) {
	return jsbe.Generate(e)
}

// LuaBackend renders expression trees to Lua.
type LuaBackend struct{}

func (b *LuaBackend) Name() string { return "lua" }

func (b *LuaBackend) Generate(e ast.Expr) (string, error) {
	return luabe.Generate(e)
}

// Get returns the backend for the given target name.
func Get(target string) (Backend, error) {
	switch target {
	case "js":
		return &JSBackend{}, nil
	case "lua":
		return &LuaBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown target: %s", target)
	}
}

// FileExtension returns the output file extension for the given target.
func FileExtension(target string) string {
	switch target {
	case "js":
		return ".js"
	case "lua":
		return ".lua"
	default:
		return ""
	}
}
