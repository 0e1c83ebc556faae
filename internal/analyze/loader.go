package analyze

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/tools/go/packages"

	"prefs-generator/internal/common"
	"prefs-generator/internal/logctx"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// GenerateTag is the build tag set while loading. Generated files are
// constrained with !GenerateTag so stale output never breaks a reload.
const GenerateTag = "prefsgen"

// Config controls how packages are loaded.
type Config struct {
	// Dir is the working directory for the go command.
	Dir string
	// BuildTags are passed to the go command as -tags.
	BuildTags []string
}

// DefaultConfig returns the default loader configuration.
func DefaultConfig() Config {
	return Config{
		BuildTags: []string{GenerateTag},
	}
}

// BuildFlags returns the go command flags for c.
func (c Config) BuildFlags() []string {
	if len(c.BuildTags) == 0 {
		return nil
	}

	return []string{"-tags=" + strings.Join(c.BuildTags, ",")}
}

// Analyzer loads Go packages and builds a symbol table of their interfaces.
type Analyzer struct {
	config Config
	table  *SymbolTable
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(config Config) *Analyzer {
	return &Analyzer{
		config: config,
		table:  NewSymbolTable(),
	}
}

// LoadPackages loads the specified packages and builds the symbol table.
// Patterns are standard Go package patterns (e.g., "./examples/settings", "./...").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*SymbolTable, error) {
	cfg := &packages.Config{
		Mode:       LoadMode,
		Context:    ctx,
		Dir:        a.config.Dir,
		BuildFlags: a.config.BuildFlags(),
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var merr *multierror.Error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			merr = multierror.Append(merr, e)
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("package errors: %w", err)
	}

	// Process each package
	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		logctx.FromContext(ctx).Debug("loaded package",
			"package", pkg.PkgPath,
			"interfaces", len(a.table.Packages[pkg.PkgPath].Interfaces))
	}

	return a.table, nil
}

// Table returns the current symbol table.
func (a *Analyzer) Table() *SymbolTable {
	return a.table
}

// source is the syntax and type information of one package.
type source struct {
	path  string
	name  string
	dir   string
	fset  *token.FileSet
	files []*ast.File
	types *types.Package
	info  *types.Info
}

// processPackage extracts interface declarations from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if pkg.Types == nil || pkg.TypesInfo == nil {
		return fmt.Errorf("package %s has no type information", pkg.PkgPath)
	}

	src := source{
		path:  pkg.PkgPath,
		name:  pkg.Name,
		fset:  pkg.Fset,
		files: pkg.Syntax,
		types: pkg.Types,
		info:  pkg.TypesInfo,
	}

	if file, ok := common.First(pkg.GoFiles); ok {
		src.dir = filepath.Dir(file)
	}

	addSource(a.table, src)

	return nil
}

// TableFromSyntax builds a symbol table from a package that was parsed and
// type-checked by the caller.
func TableFromSyntax(fset *token.FileSet, files []*ast.File, pkg *types.Package, info *types.Info) *SymbolTable {
	table := NewSymbolTable()
	addSource(table, source{
		path:  pkg.Path(),
		name:  pkg.Name(),
		fset:  fset,
		files: files,
		types: pkg,
		info:  info,
	})

	return table
}

func addSource(table *SymbolTable, src source) {
	pkgInfo := &PackageInfo{
		Path:  src.path,
		Name:  src.name,
		Dir:   src.dir,
		Types: src.types,
	}

	for _, file := range src.files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				info := describeSpec(src, gd, ts)
				if info == nil {
					continue
				}

				info.Dir = src.dir
				table.Add(info)
				pkgInfo.Interfaces = append(pkgInfo.Interfaces, info.ID)
			}
		}
	}

	table.Packages[src.path] = pkgInfo
}

// describeSpec returns nil for anything but a non-generic interface declaration.
func describeSpec(src source, gd *ast.GenDecl, ts *ast.TypeSpec) *InterfaceInfo {
	it, ok := ts.Type.(*ast.InterfaceType)
	if !ok || ts.Assign.IsValid() || ts.TypeParams != nil {
		return nil
	}

	obj, ok := src.info.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil
	}

	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return nil
	}

	// A lone spec in a type (...) group has no doc of its own.
	doc := ts.Doc
	if doc == nil && len(gd.Specs) == 1 {
		doc = gd.Doc
	}

	info := &InterfaceInfo{
		ID:      TypeID{PkgPath: src.path, Name: ts.Name.Name},
		PkgName: src.name,
		Doc:     commentLines(doc),
		Named:   named,
		Origin:  OriginLocal,
		Pos:     src.fset.Position(ts.Name.Pos()),
		Pkg:     src.types,
		Fset:    src.fset,
	}

	explicit := make(map[string]*types.Func, iface.NumExplicitMethods())
	for i := range iface.NumExplicitMethods() {
		m := iface.ExplicitMethod(i)
		explicit[m.Name()] = m
	}

	for _, field := range it.Methods.List {
		if len(field.Names) == 0 {
			typ := src.info.TypeOf(field.Type)
			embed := EmbedInfo{
				Type: typ,
				Expr: types.ExprString(field.Type),
				Pos:  src.fset.Position(field.Type.Pos()),
			}

			if id, ok := interfaceID(typ); ok {
				embed.ID = id
			}

			info.Embeds = append(info.Embeds, embed)

			continue
		}

		for _, name := range field.Names {
			fn, ok := explicit[name.Name]
			if !ok {
				continue
			}

			info.Methods = append(info.Methods, MethodInfo{
				Name:      name.Name,
				Signature: fn.Type().(*types.Signature),
				Doc:       commentLines(field.Doc),
				Pos:       src.fset.Position(name.Pos()),
				At:        name.Pos(),
			})
		}
	}

	return info
}

// describeTypes describes an interface from type information alone.
// Methods come out in go/types order and carry no doc comments.
func describeTypes(named *types.Named, iface *types.Interface, fset *token.FileSet, origin Origin) *InterfaceInfo {
	obj := named.Obj()
	info := &InterfaceInfo{
		ID:      TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()},
		PkgName: obj.Pkg().Name(),
		Named:   named,
		Origin:  origin,
		Pos:     position(fset, obj.Pos()),
	}

	for i := range iface.NumExplicitMethods() {
		m := iface.ExplicitMethod(i)
		info.Methods = append(info.Methods, MethodInfo{
			Name:      m.Name(),
			Signature: m.Type().(*types.Signature),
			Pos:       position(fset, m.Pos()),
		})
	}

	for i := range iface.NumEmbeddeds() {
		typ := iface.EmbeddedType(i)
		embed := EmbedInfo{
			Type: typ,
			Expr: types.TypeString(typ, nil),
			Pos:  info.Pos,
		}

		if id, ok := interfaceID(typ); ok {
			embed.ID = id
		}

		info.Embeds = append(info.Embeds, embed)
	}

	return info
}

// interfaceID returns the TypeID of a named, package-level interface type.
func interfaceID(t types.Type) (TypeID, bool) {
	if t == nil {
		return TypeID{}, false
	}

	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return TypeID{}, false
	}

	if _, ok := named.Underlying().(*types.Interface); !ok {
		return TypeID{}, false
	}

	obj := named.Obj()
	if obj.Pkg() == nil {
		// predeclared, e.g. error
		return TypeID{}, false
	}

	return TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}, true
}

func commentLines(cg *ast.CommentGroup) []string {
	if cg == nil {
		return nil
	}

	lines := make([]string, 0, len(cg.List))
	for _, c := range cg.List {
		lines = append(lines, c.Text)
	}

	return lines
}

func position(fset *token.FileSet, pos token.Pos) token.Position {
	if fset == nil || !pos.IsValid() {
		return token.Position{}
	}

	return fset.Position(pos)
}
