package check

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prefs-generator/internal/diagnostic"
	"prefs-generator/internal/setting"
)

const iface = "example.com/settings.Settings"

func getter(name string, typ types.Type, line int) *setting.Descriptor {
	return &setting.Descriptor{
		Key:    setting.KeyFromMethodName(name, setting.Getter),
		Role:   setting.Getter,
		Method: name,
		Type:   typ,
		Pos:    token.Position{Filename: "settings.go", Line: line},
	}
}

func putter(name string, typ types.Type, line int) *setting.Descriptor {
	return &setting.Descriptor{
		Key:    setting.KeyFromMethodName(name, setting.Putter),
		Role:   setting.Putter,
		Method: name,
		Type:   typ,
		Pos:    token.Position{Filename: "settings.go", Line: line},
	}
}

var (
	tString = types.Typ[types.String]
	tInt    = types.Typ[types.Int]
	tInt64  = types.Typ[types.Int64]
)

func TestReserved(t *testing.T) {
	for _, name := range []string{"Store", "Clear", "ClearDefined", "InitDefaults", "ResetCache", "cache"} {
		assert.True(t, Reserved(name), name)
	}

	for _, name := range []string{"Stored", "Cache", "Theme"} {
		assert.False(t, Reserved(name), name)
	}
}

func TestKeys_BalancedPairs(t *testing.T) {
	var diags diagnostic.Diagnostics

	keys := Index([]*setting.Descriptor{
		getter("Name", tString, 1),
		putter("SetName", tString, 2),
		putter("SetRetries", tInt, 3),
		getter("Retries", tInt, 4),
	}, iface, &diags)
	keys.Check(iface, &diags)

	assert.Empty(t, diags.All())
	assert.Equal(t, []string{"name", "retries"}, keys.GetterKeys())
	assert.Equal(t, []string{"name", "retries"}, keys.PutterKeys())

	pairs := keys.Pairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, "Name", pairs[0].Getter.Method)
	assert.Equal(t, "SetName", pairs[0].Putter.Method)
	assert.Equal(t, "Retries", pairs[1].Getter.Method)
}

func TestKeys_UnpairedWithSuggestions(t *testing.T) {
	var diags diagnostic.Diagnostics

	keys := Index([]*setting.Descriptor{
		getter("CachedValue", tString, 1),
		putter("SetCachedValu", tString, 2),
		getter("Orphan", tInt, 3),
	}, iface, &diags)
	keys.Check(iface, &diags)

	require.Len(t, diags.Warnings, 3)
	assert.False(t, diags.HasErrors())

	w := diags.Warnings[0]
	assert.Equal(t, diagnostic.CodeGetterWithoutPutter, w.Code)
	assert.Equal(t, "CachedValue", w.Method)
	assert.Equal(t, []string{"cachedValu"}, w.Suggestions)

	w = diags.Warnings[1]
	assert.Equal(t, diagnostic.CodeGetterWithoutPutter, w.Code)
	assert.Equal(t, "Orphan", w.Method)
	assert.Empty(t, w.Suggestions)

	w = diags.Warnings[2]
	assert.Equal(t, diagnostic.CodePutterWithoutGetter, w.Code)
	assert.Equal(t, "SetCachedValu", w.Method)
	assert.Equal(t, 2, w.Pos.Line)
	assert.Equal(t, []string{"cachedValue"}, w.Suggestions)

	assert.Empty(t, keys.Pairs())
	assert.Equal(t, []string{"cachedValu", "cachedValue", "orphan"}, keys.Declared())
}

func TestKeys_TypeMismatch(t *testing.T) {
	var diags diagnostic.Diagnostics

	keys := Index([]*setting.Descriptor{
		getter("LastSync", tInt64, 1),
		putter("SetLastSync", tInt, 2),
		getter("Name", tString, 3),
		putter("SetName", tString, 4),
	}, iface, &diags)
	keys.Check(iface, &diags)

	require.Len(t, diags.Errors, 1)
	e := diags.Errors[0]
	assert.Equal(t, diagnostic.CodeTypeMismatch, e.Code)
	assert.Equal(t, "SetLastSync", e.Method)
	assert.Contains(t, e.Message, "putter SetLastSync takes int but getter LastSync returns int64")
	assert.Contains(t, e.Message, "convertible")

	assert.True(t, keys.Mismatched("lastSync"))
	assert.False(t, keys.Mismatched("name"))

	pairs := keys.Pairs()
	require.Len(t, pairs, 1)
	assert.Equal(t, "Name", pairs[0].Getter.Method)
}

func TestKeys_DuplicateAccessor(t *testing.T) {
	var diags diagnostic.Diagnostics

	keys := Index([]*setting.Descriptor{
		getter("Name", tString, 1),
		getter("name", tString, 2),
		putter("SetName", tString, 3),
	}, iface, &diags)
	keys.Check(iface, &diags)

	require.Len(t, diags.Warnings, 1)
	w := diags.Warnings[0]
	assert.Equal(t, diagnostic.CodeDuplicateAccessor, w.Code)
	assert.Equal(t, "name", w.Method)
	assert.Contains(t, w.Message, `already used by Name`)

	assert.Equal(t, []string{"name"}, keys.GetterKeys())
	assert.Len(t, keys.Pairs(), 1)
}
