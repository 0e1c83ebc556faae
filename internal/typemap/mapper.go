package typemap

import (
	"fmt"
	"go/types"
	"strconv"

	"golang.org/x/tools/go/types/typeutil"

	"prefs-generator/internal/common"
)

const mapsetPkgPath = "github.com/deckarep/golang-set/v2"

// ValueType is the resolved store representation of a declared type.
type ValueType struct {
	Kind Kind
	// Type is the declared Go type.
	Type types.Type
	// Carrier is set for KindCarrier.
	Carrier *Carrier
	// Nullable is true when nil is a valid value of Type.
	Nullable bool
}

// IsValid reports whether v was produced by a Mapper.
func (v ValueType) IsValid() bool {
	return v.Kind != 0
}

// ZeroLiteral returns the Go expression used as the default when none is declared.
func (v ValueType) ZeroLiteral() string {
	switch v.Kind {
	case KindString:
		return `""`
	case KindInt, KindInt64, KindFloat32:
		return "0"
	case KindBool:
		return "false"
	case KindStringSet:
		return common.RuntimePkgName + ".NewStringSet()"
	case KindCarrier:
		return v.Carrier.Name + "{}"
	default:
		return ""
	}
}

// Carrier is a generated single-field wrapper around a type the store cannot hold natively.
type Carrier struct {
	// Name is the emitted type name, unique within the generated unit.
	Name string
	// BaseName is the name before disambiguation.
	BaseName string
	Type     types.Type
}

// Disambiguated reports whether Name received a numeric suffix.
func (c *Carrier) Disambiguated() bool {
	return c.Name != c.BaseName
}

// Mapper resolves value types for one generated unit.
// A Mapper must not be shared between top-level interfaces.
type Mapper struct {
	impl     string
	carriers typeutil.Map // types.Type -> *Carrier
	names    map[string]bool
	order    []*Carrier
}

// NewMapper creates a Mapper for the generated type named impl.
func NewMapper(impl string) *Mapper {
	return &Mapper{
		impl:  impl,
		names: make(map[string]bool),
	}
}

// Resolve maps t to its ValueType. When t needs a carrier that did not exist
// yet, the new carrier is returned as the second result.
func (m *Mapper) Resolve(t types.Type) (ValueType, *Carrier) {
	if kind, ok := nativeKind(t); ok {
		return ValueType{
			Kind:     kind,
			Type:     t,
			Nullable: kind == KindStringSet,
		}, nil
	}

	vt := ValueType{
		Kind:     KindCarrier,
		Type:     t,
		Nullable: isNilable(t),
	}

	if existing, ok := m.carriers.At(t).(*Carrier); ok {
		vt.Carrier = existing

		return vt, nil
	}

	c := m.newCarrier(t)
	m.carriers.Set(t, c)
	m.order = append(m.order, c)
	vt.Carrier = c

	return vt, c
}

// Carriers returns the carriers created so far, in creation order.
func (m *Mapper) Carriers() []*Carrier {
	return m.order
}

func (m *Mapper) newCarrier(t types.Type) *Carrier {
	base := common.LowerFirst(m.impl) + baseName(t) + "Carrier"

	name := base
	for i := 2; m.names[name]; i++ {
		name = base + strconv.Itoa(i)
	}

	m.names[name] = true

	return &Carrier{Name: name, BaseName: base, Type: t}
}

// nativeKind reports the store kind for the closed native set.
func nativeKind(t types.Type) (Kind, bool) {
	if isStringSet(t) {
		return KindStringSet, true
	}

	basic, ok := types.Unalias(t).(*types.Basic)
	if !ok {
		return 0, false
	}

	switch basic.Kind() {
	case types.String:
		return KindString, true
	case types.Int:
		return KindInt, true
	case types.Int64:
		return KindInt64, true
	case types.Float32:
		return KindFloat32, true
	case types.Bool:
		return KindBool, true
	default:
		return 0, false
	}
}

// isStringSet matches prefs.StringSet, which is an alias of mapset.Set[string].
func isStringSet(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj.Pkg() == nil || obj.Pkg().Path() != mapsetPkgPath || obj.Name() != "Set" {
		return false
	}

	args := named.TypeArgs()
	if args == nil || args.Len() != 1 {
		return false
	}

	elem, ok := types.Unalias(args.At(0)).(*types.Basic)

	return ok && elem.Kind() == types.String
}

func isNilable(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map, *types.Interface, *types.Chan, *types.Signature:
		return true
	default:
		return false
	}
}

// baseName builds the type part of a carrier name, e.g. "Duration", "PtrUser", "StringSlice".
func baseName(t types.Type) string {
	switch tt := types.Unalias(t).(type) {
	case *types.Named:
		return common.UpperFirst(tt.Obj().Name())
	case *types.Basic:
		return common.UpperFirst(tt.Name())
	case *types.Pointer:
		return "Ptr" + baseName(tt.Elem())
	case *types.Slice:
		return baseName(tt.Elem()) + "Slice"
	case *types.Array:
		return baseName(tt.Elem()) + "Array"
	case *types.Map:
		return baseName(tt.Key()) + baseName(tt.Elem()) + "Map"
	default:
		return "Value"
	}
}

// String returns a short description used in diagnostics.
func (v ValueType) String() string {
	if v.Kind == KindCarrier && v.Carrier != nil {
		return fmt.Sprintf("%s(%s)", v.Kind, v.Carrier.Name)
	}

	return v.Kind.String()
}
