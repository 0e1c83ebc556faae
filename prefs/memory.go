package prefs

import (
	"log/slog"
	"slices"
	"sync"
)

type memValue struct {
	kind valueKind
	v    any
}

// MemoryStore is a Store held entirely in memory.
type MemoryStore struct {
	mu        sync.RWMutex
	values    map[string]memValue
	listeners listeners
	logger    *slog.Logger
}

// NewMemoryStore creates an empty MemoryStore. logger may be nil.
func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryStore{
		values: make(map[string]memValue),
		logger: logger,
	}
}

func (s *MemoryStore) get(key string, kind valueKind) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mv, ok := s.values[key]
	if !ok || mv.kind != kind {
		return nil, false
	}

	return mv.v, true
}

func (s *MemoryStore) put(key string, kind valueKind, v any) {
	s.mu.Lock()
	s.values[key] = memValue{kind: kind, v: v}
	s.mu.Unlock()

	s.listeners.notify(s, key)
}

func (s *MemoryStore) GetString(key, def string) string {
	if v, ok := s.get(key, kindString); ok {
		return v.(string)
	}

	return def
}

func (s *MemoryStore) PutString(key, value string) {
	s.put(key, kindString, value)
}

func (s *MemoryStore) GetInt(key string, def int) int {
	if v, ok := s.get(key, kindInt); ok {
		return v.(int)
	}

	return def
}

func (s *MemoryStore) PutInt(key string, value int) {
	s.put(key, kindInt, value)
}

func (s *MemoryStore) GetInt64(key string, def int64) int64 {
	if v, ok := s.get(key, kindInt64); ok {
		return v.(int64)
	}

	return def
}

func (s *MemoryStore) PutInt64(key string, value int64) {
	s.put(key, kindInt64, value)
}

func (s *MemoryStore) GetFloat32(key string, def float32) float32 {
	if v, ok := s.get(key, kindFloat32); ok {
		return v.(float32)
	}

	return def
}

func (s *MemoryStore) PutFloat32(key string, value float32) {
	s.put(key, kindFloat32, value)
}

func (s *MemoryStore) GetBool(key string, def bool) bool {
	if v, ok := s.get(key, kindBool); ok {
		return v.(bool)
	}

	return def
}

func (s *MemoryStore) PutBool(key string, value bool) {
	s.put(key, kindBool, value)
}

func (s *MemoryStore) GetStringSet(key string, def StringSet) StringSet {
	if v, ok := s.get(key, kindStringSet); ok {
		return copySet(v.(StringSet))
	}

	return def
}

func (s *MemoryStore) PutStringSet(key string, value StringSet) {
	if value == nil {
		s.Remove(key)
		return
	}

	s.put(key, kindStringSet, copySet(value))
}

func (s *MemoryStore) GetObject(key string, dst any) bool {
	v, ok := s.get(key, kindObject)
	if !ok {
		return false
	}

	if err := DecodeObject(v.([]byte), dst); err != nil {
		s.logger.Error("Failed to decode stored object", slog.String("key", key), slog.Any("error", err))
		return false
	}

	return true
}

func (s *MemoryStore) PutObject(key string, value any) {
	if value == nil {
		s.Remove(key)
		return
	}

	data, err := EncodeObject(value)
	if err != nil {
		s.logger.Error("Failed to encode object", slog.String("key", key), slog.Any("error", err))
		return
	}

	s.put(key, kindObject, data)
}

func (s *MemoryStore) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.values[key]

	return ok
}

func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	_, existed := s.values[key]
	delete(s.values, key)
	s.mu.Unlock()

	if existed {
		s.listeners.notify(s, key)
	}
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	clear(s.values)
	s.mu.Unlock()

	s.listeners.notify(s, "")
}

func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	slices.Sort(keys)

	return keys
}

func (s *MemoryStore) RegisterOnChangeListener(l OnChangeListener) {
	s.listeners.register(l)
}

func (s *MemoryStore) UnregisterOnChangeListener(l OnChangeListener) {
	s.listeners.unregister(l)
}
