package setting

import (
	"go/token"
	"go/types"

	"prefs-generator/internal/common"
	"prefs-generator/internal/typemap"
)

// Role is the accessor role of a method.
type Role int

const (
	RoleUnknown Role = iota
	Getter
	Putter
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case Getter:
		return "getter"
	case Putter:
		return "putter"
	default:
		return common.UnknownStr
	}
}

// Opposite returns the role a method must have to pair with r.
func (r Role) Opposite() Role {
	switch r {
	case Getter:
		return Putter
	case Putter:
		return Getter
	default:
		return RoleUnknown
	}
}

// OnPut selects how a cached putter treats the cache after writing.
type OnPut int

const (
	// OnPutInherit defers to the interface level setting.
	OnPutInherit OnPut = iota
	// OnPutEvict removes the key from the cache after the write.
	OnPutEvict
	// OnPutUpdate overwrites the cached value after the write.
	OnPutUpdate
)

// String returns the directive spelling of the mode.
func (o OnPut) String() string {
	switch o {
	case OnPutInherit:
		return "inherit"
	case OnPutEvict:
		return "evict"
	case OnPutUpdate:
		return "update"
	default:
		return common.UnknownStr
	}
}

// Resolve returns o, or fallback when o is OnPutInherit.
func (o OnPut) Resolve(fallback OnPut) OnPut {
	if o == OnPutInherit {
		return fallback
	}

	return o
}

// Descriptor describes one classified accessor method.
type Descriptor struct {
	Key    Key
	Role   Role
	Method string
	// Owner is the qualified name of the interface declaring the method.
	Owner string

	// Type is the getter result type or the putter parameter type.
	Type  types.Type
	Value typemap.ValueType

	// Default is the validated Go expression for the getter default;
	// empty means the zero value of Value.
	Default string
	// RawDefault is the literal as written in the directive.
	RawDefault string

	// Fluent putters return the receiver as Result, the declaring or
	// top-level interface.
	Fluent bool
	Result types.Type
	// ParamName is the putter parameter name as declared, or "value".
	ParamName string

	OnPut OnPut
	Pos   token.Position
}

// HasDefault reports whether a default literal was declared.
func (d *Descriptor) HasDefault() bool {
	return d.RawDefault != ""
}

// UsesCarrier reports whether the value goes through the object path of the store.
func (d *Descriptor) UsesCarrier() bool {
	return d.Value.Kind == typemap.KindCarrier
}
