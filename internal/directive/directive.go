package directive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"prefs-generator/internal/setting"
	"prefs-generator/prefs"
)

const (
	prefix = "//prefs:"

	verbStore   = "store"
	verbCache   = "cache"
	verbDefault = "default"
)

// ErrInvalid is returned for malformed directives.
var ErrInvalid = errors.New("invalid directive")

// Store selects the store the generated constructor opens.
type Store struct {
	// Name is empty for the default store.
	Name string
	Mode prefs.Mode
}

// IsDefault reports whether the default store is used.
func (s Store) IsDefault() bool {
	return s.Name == ""
}

// Cache configures the LRU cache of a generated type.
type Cache struct {
	Size  Size
	OnPut setting.OnPut
}

// Interface holds the directives of an interface declaration.
type Interface struct {
	// Annotated is true when a //prefs:store directive is present.
	Annotated bool
	Store     Store
	// Cache is nil when caching was not requested.
	Cache *Cache
}

// Method holds the directives of one interface method.
type Method struct {
	Default string
	OnPut   setting.OnPut
}

// IsDirective reports whether a raw comment line is a //prefs: directive.
func IsDirective(line string) bool {
	return strings.HasPrefix(line, prefix)
}

// Annotated reports whether the comment lines carry a //prefs:store directive.
func Annotated(lines []string) bool {
	for _, line := range lines {
		if verb, _, ok := split(line); ok && verb == verbStore {
			return true
		}
	}

	return false
}

// ParseInterface reads interface directives from raw comment lines ("//..." form).
func ParseInterface(lines []string) (Interface, error) {
	var out Interface

	for _, line := range lines {
		verb, args, ok := split(line)
		if !ok {
			continue
		}

		switch verb {
		case verbStore:
			store, err := parseStore(args)
			if err != nil {
				return out, err
			}

			out.Annotated = true
			out.Store = store

		case verbCache:
			cache, err := parseCache(args, true)
			if err != nil {
				return out, err
			}

			out.Cache = &cache

		default:
			return out, fmt.Errorf("%w: unknown interface directive %q", ErrInvalid, prefix+verb)
		}
	}

	return out, nil
}

// ParseMethod reads method directives from raw comment lines.
func ParseMethod(lines []string) (Method, error) {
	var out Method

	for _, line := range lines {
		verb, args, ok := split(line)
		if !ok {
			continue
		}

		switch verb {
		case verbDefault:
			if args == "" {
				return out, fmt.Errorf("%w: %s needs a value", ErrInvalid, prefix+verbDefault)
			}

			out.Default = args

		case verbCache:
			cache, err := parseCache(args, false)
			if err != nil {
				return out, err
			}

			out.OnPut = cache.OnPut

		default:
			return out, fmt.Errorf("%w: unknown method directive %q", ErrInvalid, prefix+verb)
		}
	}

	return out, nil
}

// split returns the verb and the raw argument text of a directive line.
func split(line string) (verb, args string, ok bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), prefix)
	if !ok {
		return "", "", false
	}

	verb, args, _ = strings.Cut(rest, " ")

	return verb, strings.TrimSpace(args), true
}

// pairs parses "k=v k2=v2" arguments.
func pairs(args string) (map[string]string, error) {
	out := make(map[string]string)

	for field := range strings.FieldsSeq(args) {
		k, v, ok := strings.Cut(field, "=")
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", ErrInvalid, field)
		}

		if _, dup := out[k]; dup {
			return nil, fmt.Errorf("%w: %s given twice", ErrInvalid, k)
		}

		out[k] = v
	}

	return out, nil
}

func parseStore(args string) (Store, error) {
	kv, err := pairs(args)
	if err != nil {
		return Store{}, err
	}

	var store Store

	for k, v := range kv {
		switch k {
		case "name":
			store.Name = v
		case "mode":
			mode, err := prefs.ParseMode(v)
			if err != nil {
				return Store{}, fmt.Errorf("%w: %w", ErrInvalid, err)
			}

			store.Mode = mode
		default:
			return Store{}, fmt.Errorf("%w: unknown store option %q", ErrInvalid, k)
		}
	}

	return store, nil
}

func parseCache(args string, allowSize bool) (Cache, error) {
	kv, err := pairs(args)
	if err != nil {
		return Cache{}, err
	}

	cache := Cache{Size: AutoSize()}

	for k, v := range kv {
		switch {
		case k == "size" && allowSize:
			size, err := ParseSize(v)
			if err != nil {
				return Cache{}, err
			}

			cache.Size = size
		case k == "onput":
			onPut, err := ParseOnPut(v)
			if err != nil {
				return Cache{}, err
			}

			cache.OnPut = onPut
		default:
			return Cache{}, fmt.Errorf("%w: unknown cache option %q", ErrInvalid, k)
		}
	}

	return cache, nil
}

// ParseOnPut parses "evict" or "update".
func ParseOnPut(s string) (setting.OnPut, error) {
	switch strings.ToLower(s) {
	case "evict":
		return setting.OnPutEvict, nil
	case "update":
		return setting.OnPutUpdate, nil
	default:
		return setting.OnPutInherit, fmt.Errorf("%w: onput must be evict or update, got %q", ErrInvalid, s)
	}
}

// Size is a cache size: either auto or a fixed positive count.
type Size struct {
	Auto bool
	N    int
}

// AutoSize returns the auto size.
func AutoSize() Size {
	return Size{Auto: true}
}

// FixedSize returns a fixed size of n entries.
func FixedSize(n int) Size {
	return Size{N: n}
}

// ParseSize parses "auto" or a positive integer.
func ParseSize(s string) (Size, error) {
	if strings.EqualFold(s, "auto") {
		return AutoSize(), nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return Size{}, fmt.Errorf("%w: size must be auto or a number, got %q", ErrInvalid, s)
	}

	if n < 1 {
		return Size{}, fmt.Errorf("%w: size must be at least 1, got %d", ErrInvalid, n)
	}

	return FixedSize(n), nil
}

// Resolve returns the entry count for a unit with getterKeys distinct getter keys.
func (s Size) Resolve(getterKeys int) int {
	if s.Auto {
		return max(getterKeys, 1)
	}

	return s.N
}

// String returns "auto" or the count.
func (s Size) String() string {
	if s.Auto {
		return "auto"
	}

	return strconv.Itoa(s.N)
}
