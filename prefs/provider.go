package prefs

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/hashicorp/go-multierror"
)

// DefaultStoreName is the name under which providers keep the default store.
const DefaultStoreName = "default"

// Provider hands out stores to generated types.
type Provider interface {
	// Open returns the store called name, creating it on first use.
	Open(name string, mode Mode) Store
	// Default returns the application's default store.
	Default() Store
}

// MemoryProvider keeps one MemoryStore per name.
type MemoryProvider struct {
	mu     sync.Mutex
	stores map[string]*MemoryStore
	logger *slog.Logger
}

// NewMemoryProvider creates a MemoryProvider. logger may be nil.
func NewMemoryProvider(logger *slog.Logger) *MemoryProvider {
	return &MemoryProvider{
		stores: make(map[string]*MemoryStore),
		logger: logger,
	}
}

// Open returns the named store. Mode has no effect on memory stores.
func (p *MemoryProvider) Open(name string, _ Mode) Store {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.stores[name]
	if !ok {
		s = NewMemoryStore(p.logger)
		p.stores[name] = s
	}

	return s
}

// Default returns the store named DefaultStoreName.
func (p *MemoryProvider) Default() Store {
	return p.Open(DefaultStoreName, ModePrivate)
}

// BadgerProvider keeps one badger database per store name below a root directory.
type BadgerProvider struct {
	root     string
	inMemory bool
	logger   *slog.Logger

	mu     sync.Mutex
	dbs    map[string]*badger.DB
	stores map[string]*BadgerStore
}

// NewBadgerProvider creates a provider rooted at dir. An empty dir keeps every
// store in memory.
func NewBadgerProvider(dir string, logger *slog.Logger) *BadgerProvider {
	if logger == nil {
		logger = slog.Default()
	}

	return &BadgerProvider{
		root:     dir,
		inMemory: dir == "",
		logger:   logger,
		dbs:      make(map[string]*badger.DB),
		stores:   make(map[string]*BadgerStore),
	}
}

// Open returns the named store. A store that cannot be opened falls back to an
// in-memory store so generated accessors keep working; the failure is logged.
func (p *BadgerProvider) Open(name string, mode Mode) Store {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s, ok := p.stores[name]; ok {
		return s
	}

	cfg := DefaultBadgerConfig(filepath.Join(p.root, name))
	cfg.Mode = mode
	cfg.InMemory = p.inMemory

	db, err := OpenBadger(cfg)
	if err != nil {
		p.logger.Error("Failed to open store, using in-memory fallback",
			slog.String("store", name), slog.Any("error", err))

		db, err = OpenBadger(InMemoryBadgerConfig())
		if err != nil {
			panic(fmt.Sprintf("prefs: in-memory badger store: %v", err))
		}
	}

	s := NewBadgerStore(db, p.logger.With(slog.String("store", name)))
	p.dbs[name] = db
	p.stores[name] = s

	return s
}

// Default returns the store named DefaultStoreName.
func (p *BadgerProvider) Default() Store {
	return p.Open(DefaultStoreName, ModePrivate)
}

// Close closes every database opened by the provider.
func (p *BadgerProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs *multierror.Error

	for name, db := range p.dbs {
		if err := db.Close(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("closing store %s: %w", name, err))
		}
	}

	clear(p.dbs)
	clear(p.stores)

	return errs.ErrorOrNil()
}
