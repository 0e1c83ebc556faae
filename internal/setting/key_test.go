package setting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFromMethodName(t *testing.T) {
	tests := []struct {
		method string
		role   Role
		want   string
	}{
		{"CachedValue", Getter, "cachedValue"},
		{"SetCachedValue", Putter, "cachedValue"},
		{"setCachedValue", Putter, "cachedValue"},
		{"cachedValue", Getter, "cachedValue"},
		{"Setup", Putter, "setup"},
		{"SetupMode", Getter, "setupMode"},
		{"Set", Putter, "set"},
		{"Theme", Putter, "theme"},
		{"URL", Getter, "uRL"},
	}

	for _, tt := range tests {
		t.Run(tt.method+"/"+tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, KeyFromMethodName(tt.method, tt.role).String())
		})
	}
}

func TestKey_PairsGetterAndPutter(t *testing.T) {
	g := KeyFromMethodName("UserName", Getter)
	p := KeyFromMethodName("SetUserName", Putter)

	assert.Equal(t, g, p)
	assert.Zero(t, g.Compare(p))
	assert.False(t, g.IsZero())
	assert.True(t, Key{}.IsZero())
}

func TestRole(t *testing.T) {
	assert.Equal(t, Putter, Getter.Opposite())
	assert.Equal(t, Getter, Putter.Opposite())
	assert.Equal(t, "unknown", RoleUnknown.String())
}

func TestOnPut_Resolve(t *testing.T) {
	assert.Equal(t, OnPutUpdate, OnPutInherit.Resolve(OnPutUpdate))
	assert.Equal(t, OnPutEvict, OnPutEvict.Resolve(OnPutUpdate))
	assert.Equal(t, "evict", OnPutEvict.String())
}
