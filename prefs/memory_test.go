package prefs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type durationCarrier struct {
	Value time.Duration
}

// valueListener has a func field, so its values cannot be compared.
type valueListener struct {
	fn func(key string)
}

func (l valueListener) OnStoreChanged(_ Store, key string) {
	l.fn(key)
}

// storeContract runs the behaviour every Store implementation must share.
func storeContract(t *testing.T, s Store) {
	t.Helper()

	t.Run("defaults when absent", func(t *testing.T) {
		assert.Equal(t, "def", s.GetString("missingString", "def"))
		assert.Equal(t, 7, s.GetInt("missingInt", 7))
		assert.Equal(t, int64(8), s.GetInt64("missingInt64", 8))
		assert.InDelta(t, float32(1.5), s.GetFloat32("missingFloat", 1.5), 0.0001)
		assert.True(t, s.GetBool("missingBool", true))
		assert.Nil(t, s.GetStringSet("missingSet", nil))
		assert.False(t, s.Contains("missingString"))
	})

	t.Run("typed round trip", func(t *testing.T) {
		s.PutString("str", "value")
		s.PutInt("int", 42)
		s.PutInt64("int64", 1<<40)
		s.PutFloat32("float", 2.25)
		s.PutBool("bool", true)
		s.PutStringSet("set", NewStringSet("a", "b"))

		assert.Equal(t, "value", s.GetString("str", ""))
		assert.Equal(t, 42, s.GetInt("int", 0))
		assert.Equal(t, int64(1<<40), s.GetInt64("int64", 0))
		assert.InDelta(t, float32(2.25), s.GetFloat32("float", 0), 0.0001)
		assert.True(t, s.GetBool("bool", false))

		set := s.GetStringSet("set", nil)
		require.NotNil(t, set)
		assert.True(t, set.Equal(NewStringSet("a", "b")))
	})

	t.Run("kind mismatch returns default", func(t *testing.T) {
		s.PutString("mismatch", "text")
		assert.Equal(t, 3, s.GetInt("mismatch", 3))
	})

	t.Run("object round trip", func(t *testing.T) {
		s.PutObject("obj", durationCarrier{Value: 5 * time.Second})

		var got durationCarrier
		require.True(t, s.GetObject("obj", &got))
		assert.Equal(t, 5*time.Second, got.Value)

		var absent durationCarrier
		assert.False(t, s.GetObject("nope", &absent))
	})

	t.Run("nil puts remove", func(t *testing.T) {
		s.PutStringSet("nilSet", NewStringSet("x"))
		s.PutStringSet("nilSet", nil)
		assert.False(t, s.Contains("nilSet"))

		s.PutObject("nilObj", durationCarrier{})
		s.PutObject("nilObj", nil)
		assert.False(t, s.Contains("nilObj"))
	})

	t.Run("remove and clear", func(t *testing.T) {
		s.PutString("gone", "x")
		s.Remove("gone")
		assert.False(t, s.Contains("gone"))

		s.Remove("neverSet")

		s.Clear()
		assert.Empty(t, s.Keys())
	})

	t.Run("listeners", func(t *testing.T) {
		var keys []string
		l := Listen(func(_ Store, key string) {
			keys = append(keys, key)
		})

		s.RegisterOnChangeListener(l)
		s.PutString("watched", "1")
		s.Clear()
		s.UnregisterOnChangeListener(l)
		s.PutString("watched", "2")

		assert.Equal(t, []string{"watched", ""}, keys)
	})

	t.Run("remove notifies only present keys", func(t *testing.T) {
		var keys []string
		l := Listen(func(_ Store, key string) {
			keys = append(keys, key)
		})

		s.PutString("present", "x")
		s.RegisterOnChangeListener(l)
		s.Remove("absent")
		s.Remove("present")
		s.Remove("present")
		s.UnregisterOnChangeListener(l)

		assert.Equal(t, []string{"present"}, keys)
	})

	t.Run("non-comparable listeners are rejected", func(t *testing.T) {
		called := false
		l := valueListener{fn: func(string) { called = true }}

		require.NotPanics(t, func() {
			s.RegisterOnChangeListener(l)
			s.RegisterOnChangeListener(l)
			s.UnregisterOnChangeListener(l)
		})

		s.PutString("unwatched", "1")
		assert.False(t, called)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContract(t, NewMemoryStore(nil))
}

func TestMemoryStore_SetIsCopied(t *testing.T) {
	s := NewMemoryStore(nil)
	set := NewStringSet("a")
	s.PutStringSet("set", set)
	set.Add("b")

	assert.False(t, s.GetStringSet("set", nil).Contains("b"))
}

func TestMemoryStore_Keys(t *testing.T) {
	s := NewMemoryStore(nil)
	s.PutBool("b", true)
	s.PutInt("a", 1)

	assert.Equal(t, []string{"a", "b"}, s.Keys())
}
