package prefs

import (
	"fmt"
	"os"
)

// Store is a typed key-value persistence capability.
// Implementations must be safe for concurrent use.
//
// Typed getters return def when the key is absent or holds a value of another
// kind. Puts commit immediately. Putting a nil StringSet or a nil object
// removes the key.
type Store interface {
	GetString(key, def string) string
	PutString(key, value string)
	GetInt(key string, def int) int
	PutInt(key string, value int)
	GetInt64(key string, def int64) int64
	PutInt64(key string, value int64)
	GetFloat32(key string, def float32) float32
	PutFloat32(key string, value float32)
	GetBool(key string, def bool) bool
	PutBool(key string, value bool)
	GetStringSet(key string, def StringSet) StringSet
	PutStringSet(key string, value StringSet)

	// GetObject decodes the value stored at key into dst and reports whether
	// the key was present. dst is left untouched when it was not.
	GetObject(key string, dst any) bool
	// PutObject serializes value and stores it at key.
	PutObject(key string, value any)

	Contains(key string) bool
	Remove(key string)
	Clear()
	Keys() []string

	RegisterOnChangeListener(l OnChangeListener)
	UnregisterOnChangeListener(l OnChangeListener)
}

// Mode controls who may access a persistent store.
type Mode int

const (
	ModePrivate Mode = iota
	ModeWorldReadable
	ModeWorldWriteable
)

// String returns the directive spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModePrivate:
		return "private"
	case ModeWorldReadable:
		return "readable"
	case ModeWorldWriteable:
		return "writeable"
	default:
		return "unknown"
	}
}

// Perm returns the directory permission used for persistent stores opened in this mode.
func (m Mode) Perm() os.FileMode {
	switch m {
	case ModeWorldReadable:
		return 0o755
	case ModeWorldWriteable:
		return 0o777
	default:
		return 0o700
	}
}

// ParseMode parses the directive spelling of a mode. The empty string is ModePrivate.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "private":
		return ModePrivate, nil
	case "readable", "world_readable":
		return ModeWorldReadable, nil
	case "writeable", "writable", "world_writeable":
		return ModeWorldWriteable, nil
	default:
		return ModePrivate, fmt.Errorf("unknown store mode %q", s)
	}
}
