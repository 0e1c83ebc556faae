package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prefs-generator/internal/analyze"
	"prefs-generator/internal/analyze/analyzetest"
	"prefs-generator/internal/directive"
	"prefs-generator/internal/setting"
)

const pkgPath = "example.com/settings"

const src = `package settings

type Base interface {
	Name() string
	SetName(v string) Base
}

type Settings interface {
	Base

	//prefs:default 3
	Retries() int
	SetRetries(v int) Settings

	//prefs:cache onput=update
	SetVolume(v float32)
	Volume() float32

	Setup(a, b int)
	Reset()
	Other(v int) Base
	Pair() (int, error)
	Items(v ...string)

	//prefs:default 1
	SetBroken(v int)

	//prefs:cache onput=update
	Broken() int

	//prefs:bogus
	Unknown() bool
}
`

func loadSettings(t *testing.T) (*analyze.InterfaceInfo, *analyze.InterfaceInfo) {
	t.Helper()

	table := analyzetest.Load(t, pkgPath, src)

	return analyzetest.Interface(t, table, pkgPath, "Settings"), analyzetest.Interface(t, table, pkgPath, "Base")
}

func method(t *testing.T, info *analyze.InterfaceInfo, name string) analyze.MethodInfo {
	t.Helper()

	m, ok := info.Method(name)
	require.True(t, ok, "method %s", name)

	return *m
}

func TestClassify_Getter(t *testing.T) {
	top, _ := loadSettings(t)

	desc, err := Classify(method(t, top, "Retries"), top, top)
	require.NoError(t, err)

	assert.Equal(t, setting.Getter, desc.Role)
	assert.Equal(t, "retries", desc.Key.String())
	assert.Equal(t, "3", desc.RawDefault)
	assert.Equal(t, "int", desc.Type.String())
	assert.Equal(t, pkgPath+".Settings", desc.Owner)
	assert.False(t, desc.Fluent)
	assert.Empty(t, desc.ParamName)
}

func TestClassify_Putter(t *testing.T) {
	top, _ := loadSettings(t)

	desc, err := Classify(method(t, top, "SetVolume"), top, top)
	require.NoError(t, err)

	assert.Equal(t, setting.Putter, desc.Role)
	assert.Equal(t, "volume", desc.Key.String())
	assert.Equal(t, setting.OnPutUpdate, desc.OnPut)
	assert.Equal(t, ParamName, desc.ParamName)
	assert.False(t, desc.Fluent)
}

func TestClassify_FluentPutter(t *testing.T) {
	top, base := loadSettings(t)

	t.Run("returns top", func(t *testing.T) {
		desc, err := Classify(method(t, top, "SetRetries"), top, top)
		require.NoError(t, err)
		assert.True(t, desc.Fluent)
		assert.Equal(t, "retries", desc.Key.String())
	})

	t.Run("returns owner", func(t *testing.T) {
		desc, err := Classify(method(t, base, "SetName"), base, top)
		require.NoError(t, err)
		assert.True(t, desc.Fluent)
		assert.Equal(t, pkgPath+".Base", desc.Owner)
	})

	t.Run("returns unrelated interface", func(t *testing.T) {
		_, err := Classify(method(t, top, "Other"), top, top)
		require.ErrorIs(t, err, ErrUnrecognized)
	})
}

func TestClassify_Unrecognized(t *testing.T) {
	top, _ := loadSettings(t)

	for _, name := range []string{"Setup", "Reset", "Pair", "Items"} {
		t.Run(name, func(t *testing.T) {
			_, err := Classify(method(t, top, name), top, top)
			require.ErrorIs(t, err, ErrUnrecognized)
		})
	}
}

func TestClassify_InvalidDirectives(t *testing.T) {
	top, _ := loadSettings(t)

	tests := []struct {
		method string
		want   string
	}{
		{"SetBroken", "default is only allowed on getters"},
		{"Broken", "onput is only allowed on putters"},
		{"Unknown", "unknown method directive"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			_, err := Classify(method(t, top, tt.method), top, top)
			require.ErrorIs(t, err, directive.ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
