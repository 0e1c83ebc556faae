package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prefs-generator/internal/setting"
	"prefs-generator/prefs"
)

func TestParse(t *testing.T) {
	yaml := `
interfaces:
  example.com/app/settings.Example:
    store:
      name: app
      mode: writeable
    cache:
      size: 30
      onput: update
    defaults:
      Theme: dark
  example.com/app/settings.Auto:
    cache:
      onput: evict
  example.com/app/settings.Bare:
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, []string{
		"example.com/app/settings.Auto",
		"example.com/app/settings.Bare",
		"example.com/app/settings.Example",
	}, f.Names())

	ex, ok := f.Lookup("example.com/app/settings.Example")
	require.True(t, ok)
	assert.Equal(t, FixedSize(30), ex.Cache.Size)

	auto, ok := f.Lookup("example.com/app/settings.Auto")
	require.True(t, ok)
	assert.True(t, auto.Cache.Size.Auto)

	bare, ok := f.Lookup("example.com/app/settings.Bare")
	require.True(t, ok)
	assert.NotNil(t, bare)

	def, ok := f.Default("example.com/app/settings.Example", "Theme")
	assert.True(t, ok)
	assert.Equal(t, "dark", def)

	_, ok = f.Default("example.com/app/settings.Example", "Volume")
	assert.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	yaml := `
interfaces:
  NoPackage:
    store: {mode: public}
  example.com/x.Y:
    cache: {onput: sometimes}
`

	_, err := Parse([]byte(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoPackage")
	assert.Contains(t, err.Error(), "public")
	assert.Contains(t, err.Error(), "sometimes")

	_, err = Parse([]byte("interfaces:\n  a.B:\n    cache: {size: -1}\n"))
	require.Error(t, err)

	_, err = Parse([]byte("interfaces: [oops"))
	require.Error(t, err)
}

func TestFile_Apply(t *testing.T) {
	f, err := Parse([]byte(`
interfaces:
  example.com/app/settings.Example:
    store: {name: app}
    cache: {size: 5, onput: update}
  example.com/app/settings.NoCache:
    cache: {disabled: true}
`))
	require.NoError(t, err)

	got := f.Apply("example.com/app/settings.Example", Interface{})
	assert.True(t, got.Annotated)
	assert.Equal(t, Store{Name: "app", Mode: prefs.ModePrivate}, got.Store)
	require.NotNil(t, got.Cache)
	assert.Equal(t, 5, got.Cache.Size.Resolve(10))
	assert.Equal(t, setting.OnPutUpdate, got.Cache.OnPut)

	got = f.Apply("example.com/app/settings.NoCache", Interface{
		Annotated: true,
		Cache:     &Cache{Size: AutoSize()},
	})
	assert.Nil(t, got.Cache)

	untouched := Interface{Store: Store{Name: "x"}}
	assert.Equal(t, untouched, f.Apply("example.com/app/settings.Other", untouched))

	var nilFile *File
	assert.Equal(t, untouched, nilFile.Apply("anything.X", untouched))
	assert.Nil(t, nilFile.Names())
}

func TestMarshal_SizeRoundTrip(t *testing.T) {
	f := &File{
		Version: "1",
		Interfaces: map[string]*InterfaceOverride{
			"example.com/x.Y": {Cache: &CacheOverride{Size: AutoSize()}},
		},
	}

	data, err := Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), "size: auto")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, back.Interfaces["example.com/x.Y"].Cache.Size.Auto)
}
