package prefs

import mapset "github.com/deckarep/golang-set/v2"

// StringSet is the native set-of-strings setting type.
type StringSet = mapset.Set[string]

// NewStringSet returns a thread-safe set holding items.
func NewStringSet(items ...string) StringSet {
	return mapset.NewSet(items...)
}

// copySet returns an independent copy so stores never alias caller-owned sets.
func copySet(s StringSet) StringSet {
	if s == nil {
		return nil
	}

	return NewStringSet(s.ToSlice()...)
}
