package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/xyproto/env/v2"

	"github.com/nova-language/lumata/internal/ast"
	"github.com/nova-language/lumata/internal/backend"
	"github.com/nova-language/lumata/internal/diagnostic"
	"github.com/nova-language/lumata/internal/schema"
	"github.com/nova-language/lumata/internal/treejson"
)

const usage = `lumatac - The Lumata expression renderer

Usage:
  lumatac emit [--target js|lua] [--dump] <tree.json>   Render a tree to target source
  lumatac check <tree.json>                             Validate a tree without rendering

Options:
  --target <name>   Output dialect: js or lua (default: LUMATAC_TARGET or js)
  --dump            Dump the decoded tree to stderr before rendering

Examples:
  lumatac emit expr.json                 Write expr.js
  lumatac emit --target lua expr.json    Write expr.lua
  lumatac check expr.json                Report structural and schema problems
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "emit":
		handleEmit(os.Args[2:])
	case "check":
		handleCheck(os.Args[2:])
	case "help", "--help", "-h":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func handleEmit(args []string) {
	target := env.Str("LUMATAC_TARGET", "js")
	dump := false
	var filePath string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--target":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: --target requires a value")
				os.Exit(1)
			}
			i++
			target = args[i]
		case "--dump":
			dump = true
		default:
			if strings.HasPrefix(args[i], "-") {
				fmt.Fprintf(os.Stderr, "Unknown option: %s\n", args[i])
				os.Exit(1)
			}
			filePath = args[i]
		}
	}

	if filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		os.Exit(1)
	}

	tree := decodeTree(filePath)

	if dump {
		spew.Fdump(os.Stderr, tree)
	}

	be, err := backend.Get(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	code, err := be.Generate(tree)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	baseName := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	outPath := baseName + backend.FileExtension(target)
	if err := os.WriteFile(outPath, []byte(code+"\n"), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", outPath)
}

func handleCheck(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		os.Exit(1)
	}

	filePath := args[0]
	tree := decodeTree(filePath)

	if problems := ast.Validate(tree); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "error[%s]: %s\n", filePath, p)
		}
		os.Exit(1)
	}

	diags := diagnostic.New()
	schema.Check(tree, schema.Default(), diags)
	if diags.Count() > 0 {
		fmt.Fprintln(os.Stderr, diags.Format(filePath))
	}
	if diags.HasErrors() {
		os.Exit(1)
	}

	fmt.Println("No errors found.")
}

func decodeTree(filePath string) ast.Expr {
	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %s\n", err)
		os.Exit(1)
	}

	tree, err := treejson.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	return tree
}
