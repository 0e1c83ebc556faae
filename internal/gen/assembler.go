package gen

import (
	"errors"
	"fmt"
	"strconv"

	"prefs-generator/internal/directive"
	"prefs-generator/prefs"
)

// ErrFinalized is returned when a UnitBuilder is changed after Build.
var ErrFinalized = errors.New("unit already built")

// Field is a name and a type, or a name and an expression.
type Field struct {
	Name string
	Type string
}

// Constructor is the New<Impl> function of a unit.
type Constructor struct {
	Name   string
	Doc    string
	Params string
	// Inits are the struct fields set by the constructor, with expressions as Type.
	Inits []Field
}

// Unit is everything one generated file declares.
type Unit struct {
	Package   string
	Interface string
	Impl      string
	Filename  string

	Imports []importSpec
	// Assertions are the interface types the implementation is checked against.
	Assertions  []string
	KeysVar     string
	Keys        []string
	Carriers    []Field
	Fields      []Field
	Constructor Constructor
	Methods     []Method
	Comments    bool
}

// UnitBuilder accumulates the parts of a Unit.
type UnitBuilder struct {
	unit  Unit
	names map[string]bool
	built bool
}

// NewUnitBuilder starts a unit implementing iface as impl in package pkg.
func NewUnitBuilder(pkg, iface, impl string) *UnitBuilder {
	return &UnitBuilder{
		unit: Unit{
			Package:   pkg,
			Interface: iface,
			Impl:      impl,
		},
		names: make(map[string]bool),
	}
}

func (b *UnitBuilder) check() error {
	if b.built {
		return ErrFinalized
	}

	return nil
}

// SetFilename sets the output file name.
func (b *UnitBuilder) SetFilename(name string) error {
	if err := b.check(); err != nil {
		return err
	}

	b.unit.Filename = name

	return nil
}

// SetComments toggles doc comments on generated declarations.
func (b *UnitBuilder) SetComments(on bool) error {
	if err := b.check(); err != nil {
		return err
	}

	b.unit.Comments = on

	return nil
}

// AddAssertion records a compile-time check that the implementation satisfies typ.
func (b *UnitBuilder) AddAssertion(typ string) error {
	if err := b.check(); err != nil {
		return err
	}

	b.unit.Assertions = append(b.unit.Assertions, typ)

	return nil
}

// SetKeys sets the declared keys and the name of the variable listing them.
func (b *UnitBuilder) SetKeys(varName string, keys []string) error {
	if err := b.check(); err != nil {
		return err
	}

	b.unit.KeysVar = varName
	b.unit.Keys = keys

	return nil
}

// AddCarrier declares a carrier type wrapping typ.
func (b *UnitBuilder) AddCarrier(name, typ string) error {
	if err := b.check(); err != nil {
		return err
	}

	b.unit.Carriers = append(b.unit.Carriers, Field{Name: name, Type: typ})

	return nil
}

// AddField adds a struct field to the implementation.
func (b *UnitBuilder) AddField(name, typ string) error {
	if err := b.check(); err != nil {
		return err
	}

	b.unit.Fields = append(b.unit.Fields, Field{Name: name, Type: typ})

	return nil
}

// SetConstructor sets the constructor.
func (b *UnitBuilder) SetConstructor(c Constructor) error {
	if err := b.check(); err != nil {
		return err
	}

	b.unit.Constructor = c

	return nil
}

// AddMethod adds a method. Method names must be unique.
func (b *UnitBuilder) AddMethod(m Method) error {
	if err := b.check(); err != nil {
		return err
	}

	if b.names[m.Name] {
		return fmt.Errorf("method %s added twice", m.Name)
	}

	b.names[m.Name] = true
	b.unit.Methods = append(b.unit.Methods, m)

	return nil
}

// Build finalizes the unit with the imports collected by tracker.
// The builder cannot be changed afterwards.
func (b *UnitBuilder) Build(tracker *importTracker) (*Unit, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	b.built = true
	b.unit.Imports = tracker.specs()
	unit := b.unit

	return &unit, nil
}

// lifecycleMethods renders the prefs.Actions (and prefs.CacheActions) methods.
func lifecycleMethods(ctx *Context) []Method {
	cached := ctx.Cache != nil
	keysVar := ctx.keysVar()

	var methods []Method

	methods = append(methods,
		Method{
			Doc:     "Store returns the underlying store.",
			Name:    "Store",
			Results: "prefs.Store",
			Body:    []string{"return s.store"},
		},
		Method{
			Doc:     "Contains reports whether key is present in the store.",
			Name:    "Contains",
			Params:  "key string",
			Results: "bool",
			Body:    []string{"return s.store.Contains(key)"},
		},
	)

	remove := Method{
		Doc:    "Remove deletes key from the store.",
		Name:   "Remove",
		Params: "key string",
		Body:   []string{"s.store.Remove(key)"},
	}
	if cached {
		remove.Doc = "Remove deletes key from the store and the cache."
		remove.Body = append(remove.Body, "s.cache.Remove(key)")
	}

	clearAll := Method{
		Doc:  "Clear deletes every key of the store.",
		Name: "Clear",
		Body: []string{"s.store.Clear()"},
	}
	if cached {
		clearAll.Body = append(clearAll.Body, "s.cache.EvictAll()")
	}

	clearDefined := Method{
		Doc:  "ClearDefined deletes the keys declared by " + ctx.Top.ID.Name + ".",
		Name: "ClearDefined",
		Body: []string{
			"for _, key := range " + keysVar + " {",
			"\ts.store.Remove(key)",
		},
	}
	if cached {
		clearDefined.Body = append(clearDefined.Body, "\ts.cache.Remove(key)")
	}

	clearDefined.Body = append(clearDefined.Body, "}")

	initDefaults := Method{
		Doc:  "InitDefaults writes the current value of every setting back to the store.",
		Name: "InitDefaults",
	}
	for _, pair := range ctx.Keys.Pairs() {
		initDefaults.Body = append(initDefaults.Body,
			fmt.Sprintf("s.%s(s.%s())", pair.Putter.Method, pair.Getter.Method))
	}

	methods = append(methods,
		remove,
		Method{
			Name:   "RegisterOnChangeListener",
			Params: "l prefs.OnChangeListener",
			Body:   []string{"s.store.RegisterOnChangeListener(l)"},
		},
		Method{
			Name:   "UnregisterOnChangeListener",
			Params: "l prefs.OnChangeListener",
			Body:   []string{"s.store.UnregisterOnChangeListener(l)"},
		},
		clearAll,
		clearDefined,
		initDefaults,
	)

	if cached {
		methods = append(methods, Method{
			Doc:  "ResetCache drops every cached value.",
			Name: "ResetCache",
			Body: []string{"s.cache.EvictAll()"},
		})
	}

	return methods
}

// constructor renders New<Impl>.
func constructor(ctx *Context) Constructor {
	c := Constructor{
		Name:   "New" + ctx.Impl,
		Params: "p prefs.Provider",
	}

	store := ctx.Directives.Store
	if store.IsDefault() {
		c.Doc = c.Name + " uses the default store of p."
		c.Inits = append(c.Inits, Field{Name: "store", Type: "p.Default()"})

		return c
	}

	name := strconv.Quote(store.Name)
	c.Doc = fmt.Sprintf("%s opens the %s store of p.", c.Name, name)
	c.Inits = append(c.Inits, Field{Name: "store", Type: fmt.Sprintf("p.Open(%s, prefs.%s)", name, modeConst(store))})

	if ctx.Cache != nil {
		c.Params += ", opts ...prefs.CacheOption"
		c.Inits = append(c.Inits, Field{
			Name: "cache",
			Type: fmt.Sprintf("prefs.NewCache(%s, %d, opts...)", strconv.Quote(ctx.Cache.Name), ctx.Cache.Size),
		})
	}

	return c
}

func modeConst(store directive.Store) string {
	switch store.Mode {
	case prefs.ModeWorldReadable:
		return "ModeWorldReadable"
	case prefs.ModeWorldWriteable:
		return "ModeWorldWriteable"
	default:
		return "ModePrivate"
	}
}
