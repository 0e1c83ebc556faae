// Package prefs is the runtime used by code emitted by prefs-generator.
//
// Generated types read and write typed settings through a Store and
// optionally keep a bounded LRU Cache in front of it.
//
// Key types:
//   - Store: typed key-value persistence (MemoryStore, BadgerStore)
//   - Provider: opens named stores or the default store
//   - Cache: bounded LRU used for read-through/write-through caching
//   - Actions, CacheActions: lifecycle methods every generated type exposes
package prefs
