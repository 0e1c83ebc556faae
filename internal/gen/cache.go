package gen

import (
	"fmt"
	"strconv"

	"prefs-generator/internal/diagnostic"
	"prefs-generator/internal/setting"
)

// CacheBinding is the cache configuration of one unit.
type CacheBinding struct {
	// Name labels the cache metrics; it is the store name.
	Name string
	Size int
	// OnPut is the interface-level mode, already resolved.
	OnPut setting.OnPut
}

// CacheBinder decides whether a unit is cached and decorates its methods.
type CacheBinder struct {
	ctx *Context
}

// NewCacheBinder creates a CacheBinder for ctx.
func NewCacheBinder(ctx *Context) *CacheBinder {
	return &CacheBinder{ctx: ctx}
}

// Bind sets ctx.Cache when caching was requested and is allowed.
// Caching on the default store raises E003 and is dropped.
func (b *CacheBinder) Bind() *CacheBinding {
	requested := b.ctx.Directives.Cache
	if requested == nil {
		return nil
	}

	if b.ctx.Directives.Store.IsDefault() {
		diagnostic.Errorf(b.ctx.Diagnostics, diagnostic.CodeCacheOnDefaultStore, b.ctx.topLocation(),
			"caching cannot be used on the default store; add name= to //prefs:store")

		return nil
	}

	b.ctx.Cache = &CacheBinding{
		Name:  b.ctx.Directives.Store.Name,
		Size:  requested.Size.Resolve(len(b.ctx.Keys.GetterKeys())),
		OnPut: requested.OnPut.Resolve(setting.OnPutEvict),
	}

	return b.ctx.Cache
}

// decorateGetter wraps read, which must assign the loaded value to v, with
// a cache lookup and a cache fill.
func (c *CacheBinding) decorateGetter(d *setting.Descriptor, typ string, read []string) []string {
	key := strconv.Quote(d.Key.String())

	body := []string{
		fmt.Sprintf("if v, ok := prefs.Cached[%s](s.cache, %s); ok {", typ, key),
		"\treturn v",
		"}",
		"",
	}
	body = append(body, read...)
	body = append(body, fmt.Sprintf("s.cache.Put(%s, v)", key), "", "return v")

	return body
}

func evictLine(key string) string {
	return fmt.Sprintf("s.cache.Remove(%s)", key)
}

func updateLine(key, value string) string {
	return fmt.Sprintf("s.cache.Put(%s, %s)", key, value)
}
