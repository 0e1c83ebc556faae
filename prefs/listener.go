package prefs

import (
	"reflect"
	"sync"
)

// OnChangeListener is notified after a key changes. key is empty after Clear.
//
// Listeners are compared by identity, so implementations should be pointers.
// A listener whose dynamic type is not comparable is never registered.
type OnChangeListener interface {
	OnStoreChanged(store Store, key string)
}

// Listen adapts fn to an OnChangeListener that can later be unregistered.
func Listen(fn func(store Store, key string)) OnChangeListener {
	return &funcListener{fn: fn}
}

type funcListener struct {
	fn func(store Store, key string)
}

func (l *funcListener) OnStoreChanged(store Store, key string) {
	l.fn(store, key)
}

// listeners is the registry shared by the store implementations.
type listeners struct {
	mu   sync.Mutex
	list []OnChangeListener
}

func identifiable(l OnChangeListener) bool {
	return l != nil && reflect.TypeOf(l).Comparable()
}

func (ls *listeners) register(l OnChangeListener) {
	if !identifiable(l) {
		return
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	for _, existing := range ls.list {
		if existing == l {
			return
		}
	}

	ls.list = append(ls.list, l)
}

func (ls *listeners) unregister(l OnChangeListener) {
	if !identifiable(l) {
		return
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	for i, existing := range ls.list {
		if existing == l {
			ls.list = append(ls.list[:i], ls.list[i+1:]...)
			return
		}
	}
}

// notify calls every listener outside the registry lock.
func (ls *listeners) notify(store Store, key string) {
	ls.mu.Lock()
	snapshot := make([]OnChangeListener, len(ls.list))
	copy(snapshot, ls.list)
	ls.mu.Unlock()

	for _, l := range snapshot {
		l.OnStoreChanged(store, key)
	}
}
