package analyze

import (
	"go/token"
	"go/types"

	"prefs-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "prefs-generator/examples/settings"
	Name    string // e.g., "CacheExample"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns "pkg.Name" using the last element of the package path.
func (t TypeID) Short() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

// IsZero reports whether t identifies nothing.
func (t TypeID) IsZero() bool {
	return t.Name == ""
}

// Origin records which resolver described an interface.
type Origin int

const (
	OriginUnknown Origin = iota
	OriginLocal          // syntax of the current load, with doc comments
	OriginExternal       // export data only
)

// String returns a human-readable representation of the Origin.
func (o Origin) String() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// MethodInfo describes one explicitly declared interface method.
type MethodInfo struct {
	Name      string
	Signature *types.Signature
	// Doc holds the raw comment lines ("// ..." form); empty for external interfaces.
	Doc []string
	Pos token.Position
	// At is the raw position, valid in the owner's Fset.
	At token.Pos
}

// EmbedInfo describes one embedded element of an interface.
type EmbedInfo struct {
	// ID is zero when the element is not a named interface.
	ID   TypeID
	Type types.Type
	// Expr is the element as written (or as printed by go/types).
	Expr string
	Pos  token.Position
}

// InterfaceInfo describes an interface type.
type InterfaceInfo struct {
	ID      TypeID
	PkgName string
	// Dir is the package directory; empty for external interfaces.
	Dir     string
	Doc     []string
	Methods []MethodInfo
	Embeds  []EmbedInfo
	Named   *types.Named
	Origin  Origin
	Pos     token.Position

	// Pkg and Fset allow expressions to be checked in the scope of a
	// local declaration; both are nil for external interfaces.
	Pkg  *types.Package
	Fset *token.FileSet
}

// Method returns the explicitly declared method with the given name.
func (i *InterfaceInfo) Method(name string) (*MethodInfo, bool) {
	for j := range i.Methods {
		if i.Methods[j].Name == name {
			return &i.Methods[j], true
		}
	}

	return nil, false
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path       string   // Import path
	Name       string   // Package name
	Dir        string   // Directory of the package sources
	Interfaces []TypeID // Interfaces defined in this package, in source order
	Types      *types.Package
}

// SymbolTable holds every interface declared in the loaded packages.
type SymbolTable struct {
	// Interfaces maps TypeID to InterfaceInfo for all declared interfaces.
	Interfaces map[TypeID]*InterfaceInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo

	order []TypeID
}

// NewSymbolTable creates a new empty SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Interfaces: make(map[TypeID]*InterfaceInfo),
		Packages:   make(map[string]*PackageInfo),
	}
}

// Lookup returns the InterfaceInfo for a given TypeID, or nil if not found.
func (t *SymbolTable) Lookup(id TypeID) *InterfaceInfo {
	return t.Interfaces[id]
}

// Add records info, keeping declaration order.
func (t *SymbolTable) Add(info *InterfaceInfo) {
	if _, ok := t.Interfaces[info.ID]; !ok {
		t.order = append(t.order, info.ID)
	}

	t.Interfaces[info.ID] = info
}

// Ordered returns all interfaces in load order.
func (t *SymbolTable) Ordered() []*InterfaceInfo {
	out := make([]*InterfaceInfo, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.Interfaces[id])
	}

	return out
}

// Annotated returns the interfaces accepted by match, in load order.
func (t *SymbolTable) Annotated(match func(*InterfaceInfo) bool) []*InterfaceInfo {
	var out []*InterfaceInfo
	for _, info := range t.Ordered() {
		if match(info) {
			out = append(out, info)
		}
	}

	return out
}
