package setting

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"prefs-generator/internal/common"
)

// Key is the persistence key of a setting.
// The zero Key is invalid; use KeyFromMethodName.
type Key struct {
	name string
}

// KeyFromMethodName derives the key for an accessor method.
// Getters use their name verbatim ("CachedValue" -> "cachedValue"); putters drop
// a leading "Set"/"set" when it is followed by an upper-case rune
// ("SetCachedValue" -> "cachedValue"). The first rune is always lower-cased.
func KeyFromMethodName(method string, role Role) Key {
	name := method
	if role == Putter {
		name = trimSetPrefix(name)
	}

	return Key{name: common.LowerFirst(name)}
}

func trimSetPrefix(name string) string {
	for _, prefix := range []string{"Set", "set"} {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}

		r, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsUpper(r) {
			return rest
		}
	}

	return name
}

// String returns the canonical key used in maps and emitted code.
func (k Key) String() string {
	return k.name
}

// IsZero reports whether k was never derived.
func (k Key) IsZero() bool {
	return k.name == ""
}

// Compare orders keys lexically.
func (k Key) Compare(other Key) int {
	return strings.Compare(k.name, other.name)
}
