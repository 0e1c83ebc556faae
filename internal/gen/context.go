package gen

import (
	"prefs-generator/internal/analyze"
	"prefs-generator/internal/check"
	"prefs-generator/internal/common"
	"prefs-generator/internal/diagnostic"
	"prefs-generator/internal/directive"
	"prefs-generator/internal/setting"
	"prefs-generator/internal/typemap"
)

// Context is the state of one top-level interface while it is generated.
// Nothing in a Context is shared with another interface.
type Context struct {
	Top *analyze.InterfaceInfo
	// Impl is the name of the generated type.
	Impl string
	// Qualified is the pkgpath.Name key used by overrides and diagnostics.
	Qualified string

	Directives  directive.Interface
	Diagnostics *diagnostic.Diagnostics
	Mapper      *typemap.Mapper
	Descriptors []*setting.Descriptor
	Keys        *check.Keys
	// Cache is nil when the unit is not cached.
	Cache *CacheBinding

	imports *importTracker
}

func newContext(top *analyze.InterfaceInfo, suffix string) *Context {
	impl := top.ID.Name + suffix

	return &Context{
		Top:         top,
		Impl:        impl,
		Qualified:   top.ID.String(),
		Diagnostics: &diagnostic.Diagnostics{},
		Mapper:      typemap.NewMapper(impl),
		imports:     newImportTracker(top.ID.PkgPath),
	}
}

// location attributes a diagnostic to a method of the unit.
func (c *Context) location(d *setting.Descriptor) diagnostic.Location {
	return diagnostic.Location{Interface: c.Qualified, Method: d.Method, Pos: d.Pos}
}

// topLocation attributes a diagnostic to the top-level interface.
func (c *Context) topLocation() diagnostic.Location {
	return diagnostic.Location{Interface: c.Qualified, Pos: c.Top.Pos}
}

// keysVar is the name of the package-level key list.
func (c *Context) keysVar() string {
	return common.LowerFirst(c.Impl) + "Keys"
}
