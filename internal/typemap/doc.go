// Package typemap maps declared Go value types onto the native accessors of
// prefs.Store, and generates carrier types for everything else.
//
// The native set is closed: string, int, int64, float32, bool and
// prefs.StringSet. Identity is exact, so a named type such as
// "type Theme string" goes through a carrier.
package typemap
