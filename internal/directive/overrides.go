package directive

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"prefs-generator/prefs"
)

// File is the YAML overrides document. Interfaces are keyed by
// "import/path.Interface"; an entry both annotates the interface and wins
// over its comment directives.
//
//	version: "1"
//	interfaces:
//	  example.com/app/settings.Example:
//	    store: {name: app, mode: private}
//	    cache: {size: 30, onput: update}
//	    defaults:
//	      Theme: dark
type File struct {
	Version    string                        `yaml:"version,omitempty"`
	Interfaces map[string]*InterfaceOverride `yaml:"interfaces"`
}

// InterfaceOverride replaces the directives of one interface.
type InterfaceOverride struct {
	Store *StoreOverride `yaml:"store,omitempty"`
	Cache *CacheOverride `yaml:"cache,omitempty"`
	// Defaults maps getter method names to default literals.
	Defaults map[string]string `yaml:"defaults,omitempty"`
}

// StoreOverride selects the store.
type StoreOverride struct {
	Name string `yaml:"name,omitempty"`
	Mode string `yaml:"mode,omitempty"`
}

// CacheOverride configures or disables the cache.
type CacheOverride struct {
	Disabled bool   `yaml:"disabled,omitempty"`
	Size     Size   `yaml:"size,omitempty"`
	OnPut    string `yaml:"onput,omitempty"`
}

// LoadFile loads and parses a YAML overrides file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File and validates it.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse overrides YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&f)

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for name, o := range f.Interfaces {
		if o == nil {
			o = &InterfaceOverride{}
			f.Interfaces[name] = o
		}

		if o.Cache != nil && !o.Cache.Size.Auto && o.Cache.Size.N == 0 {
			o.Cache.Size = AutoSize()
		}
	}
}

// Validate checks every override, reporting all problems at once.
func (f *File) Validate() error {
	var merr *multierror.Error

	for _, name := range f.Names() {
		o := f.Interfaces[name]

		if i := strings.LastIndex(name, "."); i <= 0 || i == len(name)-1 {
			merr = multierror.Append(merr, fmt.Errorf("%w: %q is not of the form import/path.Interface", ErrInvalid, name))
		}

		if o.Store != nil {
			if _, err := prefs.ParseMode(o.Store.Mode); err != nil {
				merr = multierror.Append(merr, fmt.Errorf("%s: %w: %w", name, ErrInvalid, err))
			}
		}

		if o.Cache != nil && o.Cache.OnPut != "" {
			if _, err := ParseOnPut(o.Cache.OnPut); err != nil {
				merr = multierror.Append(merr, fmt.Errorf("%s: %w", name, err))
			}
		}
	}

	return merr.ErrorOrNil()
}

// Names returns the overridden interface names in sorted order.
func (f *File) Names() []string {
	if f == nil {
		return nil
	}

	names := make([]string, 0, len(f.Interfaces))
	for name := range f.Interfaces {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Lookup returns the override for a qualified interface name.
func (f *File) Lookup(qualified string) (*InterfaceOverride, bool) {
	if f == nil {
		return nil, false
	}

	o, ok := f.Interfaces[qualified]

	return o, ok
}

// Apply merges the override for qualified (if any) over the comment directives.
func (f *File) Apply(qualified string, iface Interface) Interface {
	o, ok := f.Lookup(qualified)
	if !ok {
		return iface
	}

	iface.Annotated = true

	if o.Store != nil {
		// Validate already rejected bad modes.
		mode, _ := prefs.ParseMode(o.Store.Mode)
		iface.Store = Store{Name: o.Store.Name, Mode: mode}
	}

	if o.Cache != nil {
		if o.Cache.Disabled {
			iface.Cache = nil

			return iface
		}

		cache := Cache{Size: o.Cache.Size}
		if o.Cache.OnPut != "" {
			cache.OnPut, _ = ParseOnPut(o.Cache.OnPut)
		}

		iface.Cache = &cache
	}

	return iface
}

// Default returns the overridden default literal of a getter.
func (f *File) Default(qualified, method string) (string, bool) {
	o, ok := f.Lookup(qualified)
	if !ok {
		return "", false
	}

	v, ok := o.Defaults[method]

	return v, ok
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// --- Size YAML methods ---

// UnmarshalYAML accepts "auto" or a positive integer.
func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected auto or a number, got %v", node.Kind)
	}

	size, err := ParseSize(node.Value)
	if err != nil {
		return err
	}

	*s = size

	return nil
}

// MarshalYAML outputs "auto" or the count.
func (s Size) MarshalYAML() (any, error) {
	if s.Auto {
		return "auto", nil
	}

	return s.N, nil
}

// IsZero lets yaml omit an unset size.
func (s Size) IsZero() bool {
	return !s.Auto && s.N == 0
}
