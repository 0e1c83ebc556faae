// Package check verifies the key consistency of one generated unit.
package check

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"prefs-generator/internal/diagnostic"
	"prefs-generator/internal/match"
	"prefs-generator/internal/setting"
)

// reserved are the identifiers the generated type declares itself.
var reserved = mapset.NewThreadUnsafeSet(
	"Store",
	"Contains",
	"Remove",
	"RegisterOnChangeListener",
	"UnregisterOnChangeListener",
	"Clear",
	"ClearDefined",
	"InitDefaults",
	"ResetCache",
	"store",
	"cache",
)

// Reserved reports whether an accessor named name would collide with a
// generated lifecycle method or field.
func Reserved(name string) bool {
	return reserved.Contains(name)
}

// Pair is a key with both a getter and a putter of identical type.
type Pair struct {
	Getter *setting.Descriptor
	Putter *setting.Descriptor
}

// Keys indexes the accessors of one unit by key and role.
type Keys struct {
	getters     map[string]*setting.Descriptor
	putters     map[string]*setting.Descriptor
	getterOrder []string
	putterOrder []string
	mismatched  mapset.Set[string]
}

// Index builds the key index of descs in declaration order. A second
// accessor with the key and role of an earlier one raises W004 and is not
// indexed.
func Index(descs []*setting.Descriptor, iface string, sink diagnostic.Sink) *Keys {
	k := &Keys{
		getters:    make(map[string]*setting.Descriptor),
		putters:    make(map[string]*setting.Descriptor),
		mismatched: mapset.NewThreadUnsafeSet[string](),
	}

	for _, d := range descs {
		byKey, order := k.getters, &k.getterOrder
		if d.Role == setting.Putter {
			byKey, order = k.putters, &k.putterOrder
		}

		key := d.Key.String()
		if first, dup := byKey[key]; dup {
			diagnostic.Warnf(sink, diagnostic.CodeDuplicateAccessor,
				diagnostic.Location{Interface: iface, Method: d.Method, Pos: d.Pos},
				"%s %s maps to key %q already used by %s", d.Role, d.Method, key, first.Method)

			continue
		}

		byKey[key] = d
		*order = append(*order, key)
	}

	return k
}

// Check raises W001 and W002 for unpaired keys and E004 for pairs whose
// types differ.
func (k *Keys) Check(iface string, sink diagnostic.Sink) {
	getterSet := mapset.NewThreadUnsafeSet(k.getterOrder...)
	putterSet := mapset.NewThreadUnsafeSet(k.putterOrder...)

	lonePutters := sortedSlice(putterSet.Difference(getterSet))
	loneGetters := sortedSlice(getterSet.Difference(putterSet))

	for _, key := range k.getterOrder {
		if putterSet.Contains(key) {
			k.checkTypes(key, iface, sink)

			continue
		}

		g := k.getters[key]
		sink.Emit(diagnostic.Diagnostic{
			Location:    diagnostic.Location{Interface: iface, Method: g.Method, Pos: g.Pos},
			Severity:    diagnostic.DiagnosticWarning,
			Code:        diagnostic.CodeGetterWithoutPutter,
			Message:     fmt.Sprintf("getter %s has no putter for key %q", g.Method, key),
			Suggestions: match.Suggest(key, lonePutters, match.DefaultMaxDistance),
		})
	}

	for _, key := range k.putterOrder {
		if getterSet.Contains(key) {
			continue
		}

		p := k.putters[key]
		sink.Emit(diagnostic.Diagnostic{
			Location:    diagnostic.Location{Interface: iface, Method: p.Method, Pos: p.Pos},
			Severity:    diagnostic.DiagnosticWarning,
			Code:        diagnostic.CodePutterWithoutGetter,
			Message:     fmt.Sprintf("putter %s has no getter for key %q", p.Method, key),
			Suggestions: match.Suggest(key, loneGetters, match.DefaultMaxDistance),
		})
	}
}

func (k *Keys) checkTypes(key, iface string, sink diagnostic.Sink) {
	g, p := k.getters[key], k.putters[key]

	result := match.ScoreTypeCompatibility(p.Type, g.Type)
	if result.Compatibility == match.TypeIdentical {
		return
	}

	k.mismatched.Add(key)

	diagnostic.Errorf(sink, diagnostic.CodeTypeMismatch,
		diagnostic.Location{Interface: iface, Method: p.Method, Pos: p.Pos},
		"putter %s takes %s but getter %s returns %s (%s: %s)",
		p.Method, result.SourceType, g.Method, result.TargetType, result.Compatibility, result.Reason)
}

// GetterKeys returns the distinct getter keys in declaration order.
func (k *Keys) GetterKeys() []string {
	return k.getterOrder
}

// PutterKeys returns the distinct putter keys in declaration order.
func (k *Keys) PutterKeys() []string {
	return k.putterOrder
}

// Declared returns every key of the unit: putter keys first, then getter
// keys not already listed.
func (k *Keys) Declared() []string {
	out := slices.Clone(k.putterOrder)
	for _, key := range k.getterOrder {
		if _, ok := k.putters[key]; !ok {
			out = append(out, key)
		}
	}

	return out
}

// Pairs returns the keys with a getter and a putter of identical type,
// in getter order.
func (k *Keys) Pairs() []Pair {
	var out []Pair

	for _, key := range k.getterOrder {
		p, ok := k.putters[key]
		if !ok || k.mismatched.Contains(key) {
			continue
		}

		out = append(out, Pair{Getter: k.getters[key], Putter: p})
	}

	return out
}

// Mismatched reports whether key raised E004.
func (k *Keys) Mismatched(key string) bool {
	return k.mismatched.Contains(key)
}

func sortedSlice(s mapset.Set[string]) []string {
	out := s.ToSlice()
	slices.Sort(out)

	return out
}
