package typemap

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind is the store representation of a value type.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindString
	KindInt
	KindInt64
	KindFloat32
	KindBool
	KindStringSet
	KindCarrier
)

// IsNative reports whether the store has a dedicated accessor for k.
func (k Kind) IsNative() bool {
	return k >= KindString && k <= KindStringSet
}

// Suffix returns the accessor suffix used with Get/Put on prefs.Store.
func (k Kind) Suffix() string {
	if k == KindCarrier {
		return "Object"
	}

	return k.String()
}
