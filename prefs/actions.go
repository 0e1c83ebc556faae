package prefs

// Actions is implemented by every generated settings type.
//
// Embedding Actions in a declared interface exposes these methods to callers;
// the generator never treats them as settings.
type Actions interface {
	// Store returns the underlying store.
	Store() Store
	// Contains reports whether key is present in the store.
	Contains(key string) bool
	// Remove deletes key from the store (and the cache, if any).
	Remove(key string)
	RegisterOnChangeListener(l OnChangeListener)
	UnregisterOnChangeListener(l OnChangeListener)
	// Clear deletes every key of the store, including keys this type does not declare.
	Clear()
	// ClearDefined deletes exactly the keys declared by this type.
	ClearDefined()
	// InitDefaults writes the current value of every readable and writable
	// setting back, materializing defaults in the store.
	InitDefaults()
}

// CacheActions is implemented by generated types that cache values.
type CacheActions interface {
	// ResetCache drops every cached value without touching the store.
	ResetCache()
}
