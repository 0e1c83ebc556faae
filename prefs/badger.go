package prefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// BadgerConfig holds configuration for a badger-backed store.
type BadgerConfig struct {
	// Path is the directory for the database files. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM. Useful for tests.
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// Mode sets the permission of the database directory.
	Mode Mode

	// Logger receives badger's own log output. Nil disables it.
	Logger *slog.Logger
}

// DefaultBadgerConfig returns a durable configuration rooted at path.
func DefaultBadgerConfig(path string) BadgerConfig {
	return BadgerConfig{
		Path:       path,
		SyncWrites: true,
	}
}

// InMemoryBadgerConfig returns a configuration for tests.
func InMemoryBadgerConfig() BadgerConfig {
	return BadgerConfig{InMemory: true}
}

// badgerLogger adapts slog.Logger to badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// OpenBadger opens a badger database with cfg.
func OpenBadger(cfg BadgerConfig) (*badger.DB, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, cfg.Mode.Perm()); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	return db, nil
}

// BadgerStore is a persistent Store backed by badger.
type BadgerStore struct {
	db        *badger.DB
	listeners listeners
	logger    *slog.Logger
}

// NewBadgerStore wraps an open database. The caller keeps ownership of db.
func NewBadgerStore(db *badger.DB, logger *slog.Logger) *BadgerStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &BadgerStore{db: db, logger: logger}
}

// DB returns the underlying database.
func (s *BadgerStore) DB() *badger.DB {
	return s.db
}

// load returns the envelope at key, or false when absent or unreadable.
func (s *BadgerStore) load(key string) (envelope, bool) {
	var data []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		data, err = item.ValueCopy(nil)

		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return envelope{}, false
	}

	if err != nil {
		s.logger.Error("Failed to read key", slog.String("key", key), slog.Any("error", err))
		return envelope{}, false
	}

	env, err := decodeEnvelope(data)
	if err != nil {
		s.logger.Error("Failed to decode stored value", slog.String("key", key), slog.Any("error", err))
		return envelope{}, false
	}

	return env, true
}

// read decodes the payload at key into dst when the stored kind matches.
func (s *BadgerStore) read(key string, kind valueKind, dst any) bool {
	env, ok := s.load(key)
	if !ok || env.Kind != kind {
		return false
	}

	if err := DecodeObject(env.Payload, dst); err != nil {
		s.logger.Error("Failed to decode stored value", slog.String("key", key), slog.Any("error", err))
		return false
	}

	return true
}

func (s *BadgerStore) write(key string, kind valueKind, v any) {
	data, err := encodeEnvelope(kind, v)
	if err != nil {
		s.logger.Error("Failed to encode value", slog.String("key", key), slog.Any("error", err))
		return
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		s.logger.Error("Failed to write key", slog.String("key", key), slog.Any("error", err))
		return
	}

	s.listeners.notify(s, key)
}

func (s *BadgerStore) GetString(key, def string) string {
	v := def
	s.read(key, kindString, &v)

	return v
}

func (s *BadgerStore) PutString(key, value string) {
	s.write(key, kindString, value)
}

func (s *BadgerStore) GetInt(key string, def int) int {
	v := def
	s.read(key, kindInt, &v)

	return v
}

func (s *BadgerStore) PutInt(key string, value int) {
	s.write(key, kindInt, value)
}

func (s *BadgerStore) GetInt64(key string, def int64) int64 {
	v := def
	s.read(key, kindInt64, &v)

	return v
}

func (s *BadgerStore) PutInt64(key string, value int64) {
	s.write(key, kindInt64, value)
}

func (s *BadgerStore) GetFloat32(key string, def float32) float32 {
	v := def
	s.read(key, kindFloat32, &v)

	return v
}

func (s *BadgerStore) PutFloat32(key string, value float32) {
	s.write(key, kindFloat32, value)
}

func (s *BadgerStore) GetBool(key string, def bool) bool {
	v := def
	s.read(key, kindBool, &v)

	return v
}

func (s *BadgerStore) PutBool(key string, value bool) {
	s.write(key, kindBool, value)
}

func (s *BadgerStore) GetStringSet(key string, def StringSet) StringSet {
	var items []string
	if !s.read(key, kindStringSet, &items) {
		return def
	}

	return NewStringSet(items...)
}

func (s *BadgerStore) PutStringSet(key string, value StringSet) {
	if value == nil {
		s.Remove(key)
		return
	}

	s.write(key, kindStringSet, value.ToSlice())
}

func (s *BadgerStore) GetObject(key string, dst any) bool {
	var raw []byte
	if !s.read(key, kindObject, &raw) {
		return false
	}

	if err := DecodeObject(raw, dst); err != nil {
		s.logger.Error("Failed to decode stored object", slog.String("key", key), slog.Any("error", err))
		return false
	}

	return true
}

func (s *BadgerStore) PutObject(key string, value any) {
	if value == nil {
		s.Remove(key)
		return
	}

	raw, err := EncodeObject(value)
	if err != nil {
		s.logger.Error("Failed to encode object", slog.String("key", key), slog.Any("error", err))
		return
	}

	s.write(key, kindObject, raw)
}

func (s *BadgerStore) Contains(key string) bool {
	_, ok := s.load(key)
	return ok
}

func (s *BadgerStore) Remove(key string) {
	existed := false

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		existed = true

		return txn.Delete([]byte(key))
	})
	if err != nil {
		s.logger.Error("Failed to remove key", slog.String("key", key), slog.Any("error", err))
		return
	}

	if existed {
		s.listeners.notify(s, key)
	}
}

func (s *BadgerStore) Clear() {
	if err := s.db.DropAll(); err != nil {
		s.logger.Error("Failed to clear store", slog.Any("error", err))
		return
	}

	s.listeners.notify(s, "")
}

func (s *BadgerStore) Keys() []string {
	var keys []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to list keys", slog.Any("error", err))
	}

	return keys
}

func (s *BadgerStore) RegisterOnChangeListener(l OnChangeListener) {
	s.listeners.register(l)
}

func (s *BadgerStore) UnregisterOnChangeListener(l OnChangeListener) {
	s.listeners.unregister(l)
}
