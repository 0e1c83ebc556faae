package gen

import (
	"fmt"
	"go/types"
	"slices"
	"strconv"
	"strings"

	"prefs-generator/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importTracker assigns a local name to every package referenced by one
// generated file. The runtime package always owns the name "prefs".
type importTracker struct {
	self   string
	byPath map[string]string
	byName map[string]string
}

func newImportTracker(selfPkgPath string) *importTracker {
	t := &importTracker{
		self:   selfPkgPath,
		byPath: make(map[string]string),
		byName: make(map[string]string),
	}
	t.bind(common.RuntimePkgPath, common.RuntimePkgName)

	return t
}

func (t *importTracker) bind(pkgPath, name string) {
	t.byPath[pkgPath] = name
	t.byName[name] = pkgPath
}

// add returns the local name for pkgPath, preferring name and falling back
// to name2, name3... when name is taken by another package.
func (t *importTracker) add(pkgPath, name string) string {
	if pkgPath == "" || pkgPath == t.self {
		return ""
	}

	if local, ok := t.byPath[pkgPath]; ok {
		return local
	}

	if name == "" {
		name = common.PkgAlias(pkgPath)
	}

	local := name
	for i := 2; t.byName[local] != ""; i++ {
		local = name + strconv.Itoa(i)
	}

	t.bind(pkgPath, local)

	return local
}

// require binds pkgPath to exactly name. Expressions copied from source
// reference packages by the name used there.
func (t *importTracker) require(pkgPath, name string) error {
	if pkgPath == t.self {
		return nil
	}

	if local, ok := t.byPath[pkgPath]; ok {
		if local != name {
			return fmt.Errorf("package %s is imported as %s, not %s", pkgPath, local, name)
		}

		return nil
	}

	if other, ok := t.byName[name]; ok {
		return fmt.Errorf("name %s refers to both %s and %s", name, other, pkgPath)
	}

	t.bind(pkgPath, name)

	return nil
}

// qualifier is a types.Qualifier recording every package it sees.
func (t *importTracker) qualifier(pkg *types.Package) string {
	if pkg == nil {
		return ""
	}

	return t.add(pkg.Path(), pkg.Name())
}

// typeString renders typ as it must appear in the generated file.
func (t *importTracker) typeString(typ types.Type) string {
	return types.TypeString(typ, t.qualifier)
}

// specs returns the import block, sorted by path. Packages whose local name
// differs from the last path element get an explicit alias.
func (t *importTracker) specs() []importSpec {
	out := make([]importSpec, 0, len(t.byPath))
	for pkgPath, name := range t.byPath {
		spec := importSpec{Path: pkgPath}
		if name != common.PkgAlias(pkgPath) {
			spec.Alias = name
		}

		out = append(out, spec)
	}

	slices.SortFunc(out, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})

	return out
}
