package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prefs-generator/internal/analyze"
	"prefs-generator/internal/analyze/analyzetest"
	"prefs-generator/internal/diagnostic"
	"prefs-generator/internal/directive"
)

const inlinePkg = "example.com/inline"

const inlineSrc = `package inline

// Inline is cached with update semantics.
//
//prefs:store name=inline mode=readable
//prefs:cache size=2 onput=update
type Inline interface {
	Base

	//prefs:default 7
	Count() int
	SetCount(v int) Inline

	Tags() []string
	SetTags(v []string)
}

// Base is embedded by Inline.
type Base interface {
	//prefs:default dark
	Theme() string
	//prefs:cache onput=evict
	SetTheme(v string)
}

// Plain uses the default store and asks for a cache it cannot have.
//
//prefs:store
//prefs:cache size=auto
type Plain interface {
	Name() string
	SetName(v string)
}
`

func generateInline(t *testing.T, config GeneratorConfig, resolver analyze.Resolver, name string) (*Context, string) {
	t.Helper()

	table := analyzetest.Load(t, inlinePkg, inlineSrc)
	if resolver == nil {
		resolver = analyze.NewLocalResolver(table)
	}

	g := NewGenerator(config, resolver)
	top := analyzetest.Interface(t, table, inlinePkg, name)

	gctx, unit, err := g.GenerateUnit(context.Background(), top)
	require.NoError(t, err)

	content, err := render(unit)
	require.NoError(t, err, "unit:\n%s\nsource:\n%s", spew.Sdump(unit), content)

	return gctx, string(content)
}

func TestGenerator_CachedUnit(t *testing.T) {
	gctx, content := generateInline(t, DefaultGeneratorConfig(), nil, "Inline")

	assert.Empty(t, gctx.Diagnostics.Errors)
	require.NotNil(t, gctx.Cache)
	assert.Equal(t, 2, gctx.Cache.Size)

	for _, want := range []string{
		header,
		"//go:build !prefsgen",
		"package inline",
		`"prefs-generator/prefs"`,
		"_ prefs.CacheActions = (*InlinePrefs)(nil)",
		"func NewInlinePrefs(p prefs.Provider, opts ...prefs.CacheOption) *InlinePrefs {",
		`store: p.Open("inline", prefs.ModeWorldReadable),`,
		`cache: prefs.NewCache("inline", 2, opts...),`,
		`if v, ok := prefs.Cached[int](s.cache, "count"); ok {`,
		`v := s.store.GetInt("count", 7)`,
		`s.cache.Put("count", v)`,
		"func (s *InlinePrefs) SetCount(value int) Inline {",
		`s.cache.Put("count", value)`,
		"return s",
		"type inlinePrefsStringSliceCarrier struct {",
		`c := inlinePrefsStringSliceCarrier{}`,
		`s.store.PutObject("tags", inlinePrefsStringSliceCarrier{Value: value})`,
		`v := s.store.GetString("theme", "dark")`,
		`s.cache.Remove("theme")`,
		"func (s *InlinePrefs) ResetCache() {",
		"s.SetCount(s.Count())",
		"s.SetTheme(s.Theme())",
	} {
		assert.Contains(t, content, want)
	}

	// Update mode never caches nil slices; they are evicted instead.
	assert.Contains(t, content, "if value == nil {")
	assert.NotContains(t, content, `s.cache.Put("theme", value)`)
}

func TestGenerator_KeysPutterFirst(t *testing.T) {
	gctx, content := generateInline(t, DefaultGeneratorConfig(), nil, "Inline")

	assert.Equal(t, []string{"count", "tags", "theme"}, gctx.Keys.Declared())
	assert.Contains(t, content, "var inlinePrefsKeys = []string{")
}

func TestGenerator_CacheOnDefaultStore(t *testing.T) {
	gctx, content := generateInline(t, DefaultGeneratorConfig(), nil, "Plain")

	assert.Nil(t, gctx.Cache)
	assert.Equal(t, []string{diagnostic.CodeCacheOnDefaultStore}, gctx.Diagnostics.Codes())

	assert.Contains(t, content, "store: p.Default(),")
	assert.NotContains(t, content, "prefs.Cache")
	assert.NotContains(t, content, "ResetCache")
}

func TestGenerator_UnresolvedAncestor(t *testing.T) {
	failing := analyze.ResolverFunc(func(context.Context, analyze.TypeID) (*analyze.InterfaceInfo, error) {
		return nil, analyze.ErrNotFound
	})

	gctx, content := generateInline(t, DefaultGeneratorConfig(), failing, "Inline")

	require.Len(t, gctx.Diagnostics.Errors, 1)
	e := gctx.Diagnostics.Errors[0]
	assert.Equal(t, diagnostic.CodeUnresolvedAncestor, e.Code)
	assert.Equal(t, inlinePkg+".Inline", e.Interface)
	assert.Contains(t, e.Message, inlinePkg+".Base")

	// Siblings of the missing branch are still generated.
	assert.Contains(t, content, "func (s *InlinePrefs) Count() int {")
	assert.NotContains(t, content, "Theme")
}

func TestGenerator_Overrides(t *testing.T) {
	overrides, err := directive.Parse([]byte(`
interfaces:
  example.com/inline.Inline:
    store: {name: renamed}
    cache: {disabled: true}
    defaults:
      Count: "11"
`))
	require.NoError(t, err)

	config := DefaultGeneratorConfig()
	config.Overrides = overrides

	gctx, content := generateInline(t, config, nil, "Inline")

	assert.Nil(t, gctx.Cache)
	assert.Contains(t, content, `store: p.Open("renamed", prefs.ModePrivate),`)
	assert.Contains(t, content, `return s.store.GetInt("count", 11)`)
	assert.NotContains(t, content, "prefs.Cached")
}

func TestGenerator_ConfigNaming(t *testing.T) {
	config := DefaultGeneratorConfig()
	config.Suffix = "Store"
	config.FileSuffix = ".gen.go"
	config.GenerateComments = false

	gctx, content := generateInline(t, config, nil, "Inline")

	assert.Equal(t, "InlineStore", gctx.Impl)
	assert.Contains(t, content, "type InlineStore struct {")
	assert.Contains(t, content, "type inlineStoreStringSliceCarrier struct {")
	assert.NotContains(t, content, "// NewInlineStore")
}

func loadBroken(t *testing.T) *analyze.SymbolTable {
	t.Helper()

	table, err := analyze.NewAnalyzer(analyze.DefaultConfig()).
		LoadPackages(context.Background(), "prefs-generator/examples/broken")
	require.NoError(t, err)

	return table
}

func TestGenerator_Diagnostics(t *testing.T) {
	table := loadBroken(t)
	g := NewGenerator(DefaultGeneratorConfig(), analyze.NewLocalResolver(table))

	targets := g.Targets(table)

	var names []string
	for _, top := range targets {
		names = append(names, top.ID.Name)
	}

	assert.Equal(t, []string{
		"Shapes", "DefaultCache", "Mismatch", "BadDefault", "BadDirective", "Unpaired", "Collisions",
	}, names)

	tests := []struct {
		iface string
		codes []string
	}{
		{"Shapes", []string{diagnostic.CodeUnrecognizedMethod, diagnostic.CodeReservedName}},
		{"DefaultCache", []string{diagnostic.CodeCacheOnDefaultStore}},
		{"Mismatch", []string{diagnostic.CodeTypeMismatch}},
		{"BadDefault", []string{diagnostic.CodeInvalidDefault, diagnostic.CodeInvalidDefault}},
		{"BadDirective", []string{diagnostic.CodeInvalidDirective}},
		{"Unpaired", []string{
			diagnostic.CodeGetterWithoutPutter, diagnostic.CodePutterWithoutGetter, diagnostic.CodeGetterWithoutPutter,
		}},
		{"Collisions", []string{diagnostic.CodeCarrierRenamed, diagnostic.CodeDuplicateAccessor}},
	}

	for _, tt := range tests {
		t.Run(tt.iface, func(t *testing.T) {
			top := table.Lookup(analyze.TypeID{PkgPath: "prefs-generator/examples/broken", Name: tt.iface})
			require.NotNil(t, top)

			gctx, unit, err := g.GenerateUnit(context.Background(), top)
			require.NoError(t, err)

			assert.Equal(t, tt.codes, gctx.Diagnostics.Codes(), spew.Sdump(gctx.Diagnostics))

			_, err = render(unit)
			require.NoError(t, err)
		})
	}
}

func TestGenerator_DiagnosticDetails(t *testing.T) {
	table := loadBroken(t)
	g := NewGenerator(DefaultGeneratorConfig(), analyze.NewLocalResolver(table))

	result, err := g.Generate(context.Background(), table)
	require.NoError(t, err)
	assert.Len(t, result.Files, 7, "units with errors are still generated")

	byCode := make(map[string][]diagnostic.Diagnostic)
	for _, d := range result.Diagnostics.All() {
		byCode[d.Code] = append(byCode[d.Code], d)
	}

	require.Len(t, byCode[diagnostic.CodeUnrecognizedMethod], 1)
	assert.Equal(t, "Resize", byCode[diagnostic.CodeUnrecognizedMethod][0].Method)

	require.Len(t, byCode[diagnostic.CodeReservedName], 1)
	assert.Equal(t, "Clear", byCode[diagnostic.CodeReservedName][0].Method)

	require.Len(t, byCode[diagnostic.CodeTypeMismatch], 1)
	assert.Equal(t, "SetLastSync", byCode[diagnostic.CodeTypeMismatch][0].Method)

	require.Len(t, byCode[diagnostic.CodeCarrierRenamed], 1)
	assert.Contains(t, byCode[diagnostic.CodeCarrierRenamed][0].Message, "collisionsPrefsDurationCarrier2")

	w001 := byCode[diagnostic.CodeGetterWithoutPutter]
	require.Len(t, w001, 2)
	assert.Equal(t, "CachedValue", w001[0].Method)
	assert.Equal(t, []string{"cachedValu"}, w001[0].Suggestions)

	w002 := byCode[diagnostic.CodePutterWithoutGetter]
	require.Len(t, w002, 1)
	assert.Equal(t, []string{"cachedValue"}, w002[0].Suggestions)

	for _, d := range result.Diagnostics.All() {
		assert.True(t, d.Pos.IsValid(), "diagnostic without position: %s", d)
	}

	var mismatch string
	for _, f := range result.Files {
		if f.Filename == "mismatch_prefs.go" {
			mismatch = string(f.Content)
		}
	}

	assert.Contains(t, mismatch, "s.SetName(s.Name())")
	assert.NotContains(t, mismatch, "s.SetLastSync(s.LastSync())")
}

func TestGenerator_SettingsExample(t *testing.T) {
	table, err := analyze.NewAnalyzer(analyze.DefaultConfig()).
		LoadPackages(context.Background(), "prefs-generator/examples/settings")
	require.NoError(t, err)

	resolver := analyze.ChainResolver{
		analyze.NewLocalResolver(table),
		analyze.NewExternalResolver(analyze.DefaultConfig()),
	}

	result, err := NewGenerator(DefaultGeneratorConfig(), resolver).Generate(context.Background(), table)
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics.All())

	files := make(map[string]string)
	for _, f := range result.Files {
		files[f.Filename] = string(f.Content)
	}

	require.Contains(t, files, "example_prefs.go")
	require.Contains(t, files, "cache_example_prefs.go")
	require.Contains(t, files, "cache_on_put_example_prefs.go")
	require.Contains(t, files, "session_prefs.go")

	example := files["example_prefs.go"]
	for _, want := range []string{
		`"prefs-generator/examples/settings/base"`,
		`"time"`,
		"c := examplePrefsDurationCarrier{Value: 5 * time.Second}",
		`return s.store.GetStringSet("topics", prefs.NewStringSet("news", "sports"))`,
		`return s.store.GetFloat32("volume", 0.5)`,
		"func (s *ExamplePrefs) SetTheme(value base.Theme) {",
		"type examplePrefsThemeCarrier struct {",
	} {
		assert.Contains(t, example, want)
	}

	// The checked-in file is what the generator produces.
	onDisk, err := os.ReadFile(filepath.Join("..", "..", "examples", "settings", "session_prefs.go"))
	require.NoError(t, err)
	assert.Equal(t, string(onDisk), files["session_prefs.go"])
}

func TestGenerator_AncestorDefaultsAcrossPackages(t *testing.T) {
	table, err := analyze.NewAnalyzer(analyze.DefaultConfig()).
		LoadPackages(context.Background(), "prefs-generator/examples/layered/...")
	require.NoError(t, err)

	g := NewGenerator(DefaultGeneratorConfig(), analyze.NewLocalResolver(table))

	generate := func(name string) (*Context, string) {
		top := table.Lookup(analyze.TypeID{PkgPath: "prefs-generator/examples/layered", Name: name})
		require.NotNil(t, top)

		gctx, unit, err := g.GenerateUnit(context.Background(), top)
		require.NoError(t, err)

		content, err := render(unit)
		require.NoError(t, err)

		return gctx, string(content)
	}

	t.Run("exported identifiers are qualified", func(t *testing.T) {
		gctx, content := generate("Layered")

		assert.Empty(t, gctx.Diagnostics.All(), spew.Sdump(gctx.Diagnostics))
		assert.Contains(t, content, `"prefs-generator/examples/layered/core"`)
		assert.Contains(t, content, "c := layeredPrefsSizeCarrier{Value: core.Size{W: 3, H: core.DefaultHeight}}")
		assert.NotContains(t, content, "{Value: Size{")
	})

	t.Run("unexported identifiers are rejected", func(t *testing.T) {
		gctx, content := generate("Leaky")

		assert.Equal(t, []string{diagnostic.CodeInvalidDefault}, gctx.Diagnostics.Codes())
		require.Len(t, gctx.Diagnostics.Errors, 1)
		assert.Contains(t, gctx.Diagnostics.Errors[0].Message, "minWidth is not exported")
		assert.NotContains(t, content, "minWidth")
	})
}
