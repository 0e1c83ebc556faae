package gen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/astutil"

	"prefs-generator/internal/analyze"
	"prefs-generator/internal/typemap"
)

// checkCarrierDefault type-checks expr as if written at the declaration of
// m, requires it to be assignable to want, and imports the packages it
// references under the names it uses. It returns expr as it must be spelled
// in the generated file: identifiers declared by an ancestor living in
// another package get qualified by that package. Interfaces described
// without syntax only get the syntactic check done by typemap.DefaultLiteral.
func checkCarrierDefault(owner *analyze.InterfaceInfo, m analyze.MethodInfo, expr string, want types.Type, imports *importTracker) (string, error) {
	if owner.Pkg == nil || owner.Fset == nil || !m.At.IsValid() {
		return expr, nil
	}

	fset := token.NewFileSet()

	node, err := parser.ParseExprFrom(fset, "", expr, 0)
	if err != nil {
		return "", fmt.Errorf("%w: %w", typemap.ErrInvalidDefault, err)
	}

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Uses:  make(map[*ast.Ident]types.Object),
	}

	if err := types.CheckExpr(owner.Fset, owner.Pkg, m.At, node, info); err != nil {
		return "", fmt.Errorf("%w: %w", typemap.ErrInvalidDefault, err)
	}

	tv := info.Types[node]
	if !tv.IsValue() || !types.AssignableTo(tv.Type, want) {
		return "", fmt.Errorf("%w: %s (%s) is not assignable to %s", typemap.ErrInvalidDefault, expr, tv.Type, want)
	}

	for _, obj := range info.Uses {
		pkgName, ok := obj.(*types.PkgName)
		if !ok {
			continue
		}

		if err := imports.require(pkgName.Imported().Path(), pkgName.Name()); err != nil {
			return "", fmt.Errorf("%w: %w", typemap.ErrInvalidDefault, err)
		}
	}

	if owner.Pkg.Path() == imports.self {
		return expr, nil
	}

	rewritten, err := qualifyDefault(node, info, owner.Pkg, imports)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, rewritten); err != nil {
		return "", fmt.Errorf("%w: %w", typemap.ErrInvalidDefault, err)
	}

	return buf.String(), nil
}

// qualifyDefault rewrites an expression checked in the scope of pkg so that
// it means the same thing inside the generated package: package-level
// identifiers of pkg become pkg.Ident and selectors on the generated
// package itself lose their qualifier.
func qualifyDefault(node ast.Expr, info *types.Info, pkg *types.Package, imports *importTracker) (ast.Expr, error) {
	var err error

	rewritten := astutil.Apply(node, nil, func(c *astutil.Cursor) bool {
		switch n := c.Node().(type) {
		case *ast.SelectorExpr:
			x, ok := n.X.(*ast.Ident)
			if !ok {
				return true
			}

			if pkgName, ok := info.Uses[x].(*types.PkgName); ok && pkgName.Imported().Path() == imports.self {
				c.Replace(n.Sel)
			}

		case *ast.Ident:
			obj := info.Uses[n]
			if obj == nil || obj.Pkg() != pkg || obj.Parent() != pkg.Scope() {
				return true
			}

			if !obj.Exported() {
				err = fmt.Errorf("%w: %s is not exported by %s", typemap.ErrInvalidDefault, n.Name, pkg.Path())

				return false
			}

			c.Replace(&ast.SelectorExpr{
				X:   ast.NewIdent(imports.add(pkg.Path(), pkg.Name())),
				Sel: ast.NewIdent(n.Name),
			})
		}

		return true
	})
	if err != nil {
		return nil, err
	}

	return rewritten.(ast.Expr), nil
}
