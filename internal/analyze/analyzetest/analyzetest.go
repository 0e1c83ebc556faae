// Package analyzetest builds symbol tables from inline sources for tests.
package analyzetest

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"

	"prefs-generator/internal/analyze"
)

// Load parses and type-checks src as the package at path.
// Imports are resolved from the standard library only.
func Load(t testing.TB, path, src string) *analyze.SymbolTable {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments)
	require.NoError(t, err)

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}

	conf := types.Config{Importer: importer.Default()}
	pkg, err := conf.Check(path, fset, []*ast.File{file}, info)
	require.NoError(t, err)

	return analyze.TableFromSyntax(fset, []*ast.File{file}, pkg, info)
}

// Interface returns the interface name declared at path, failing t if absent.
func Interface(t testing.TB, table *analyze.SymbolTable, path, name string) *analyze.InterfaceInfo {
	t.Helper()

	info := table.Lookup(analyze.TypeID{PkgPath: path, Name: name})
	require.NotNil(t, info, "interface %s.%s not found", path, name)

	return info
}
