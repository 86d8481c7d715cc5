// Package guard wraps a cache.Cache with the external mutual exclusion the
// core deliberately omits: one mutex serializes every operation, making the
// wrapper safe for concurrent use by multiple goroutines. It also adds
// GetOrLoad, which fetches missing values through a Loader and coalesces
// concurrent loads for the same key (singleflight).
package guard

import (
	"context"
	"errors"
	"sync"

	"github.com/IvanBrykalov/boundcache/cache"
	"github.com/IvanBrykalov/boundcache/internal/singleflight"
)

// ErrNoLoader is returned by GetOrLoad when no Loader was configured.
var ErrNoLoader = errors.New("guard: no Loader provided")

// Loader fetches a value on cache miss. It runs outside the cache lock,
// so it may block on I/O without stalling other cache operations.
type Loader[K comparable, V any] func(ctx context.Context, k K) (V, error)

// Cache is a goroutine-safe front over a single-owner cache.Cache.
// All methods may be called concurrently.
type Cache[K comparable, V any] struct {
	mu     sync.Mutex
	inner  cache.Cache[K, V]
	loader Loader[K, V]

	// singleflight group for coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]
}

// New wraps inner with a mutex. loader may be nil; GetOrLoad then returns
// ErrNoLoader on every miss. The caller must not use inner directly after
// handing it over.
func New[K comparable, V any](inner cache.Cache[K, V], loader Loader[K, V]) *Cache[K, V] {
	return &Cache[K, V]{inner: inner, loader: loader}
}

// Put inserts or updates k→v. See cache.Cache.Put for eviction semantics.
func (g *Cache[K, V]) Put(k K, v V) (cache.Entry[K, V], bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inner.Put(k, v)
}

// Get returns the value for k, promoting it to most recently used.
func (g *Cache[K, V]) Get(k K) (V, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inner.Get(k)
}

// Peek returns the value for k without touching recency order.
func (g *Cache[K, V]) Peek(k K) (V, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inner.Peek(k)
}

// Remove deletes k if present and returns the removed value.
func (g *Cache[K, V]) Remove(k K) (V, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inner.Remove(k)
}

// Clear resets the cache to the empty state.
func (g *Cache[K, V]) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inner.Clear()
}

// Len returns the number of resident entries.
func (g *Cache[K, V]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inner.Len()
}

// Cap returns the capacity fixed at construction.
func (g *Cache[K, V]) Cap() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inner.Cap()
}

// Snapshot copies the resident entries, least to most recently used.
// Unlike the core's lazy Entries iterator, the copy is taken in one
// critical section so concurrent mutation cannot tear the walk.
func (g *Cache[K, V]) Snapshot() []cache.Entry[K, V] {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]cache.Entry[K, V], 0, g.inner.Len())
	for k, v := range g.inner.Entries() {
		out = append(out, cache.Entry[K, V]{Key: k, Value: v})
	}
	return out
}

// String renders the entries as "k1:v1 < k2:v2 < … < kn:vn", LRU first.
func (g *Cache[K, V]) String() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inner.String()
}

// GetOrLoad returns the value for k; on miss it loads via the Loader,
// coalescing concurrent loads for the same key (singleflight).
// If no Loader is configured, returns ErrNoLoader.
func (g *Cache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	// fast path
	if v, ok := g.Get(k); ok {
		return v, nil
	}
	if g.loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	// singleflight: exactly one real load for the key
	return g.sf.Do(ctx, k, func() (V, error) {
		// double-check after flight join
		if v, ok := g.Get(k); ok {
			return v, nil
		}
		v, err := g.loader(ctx, k)
		if err == nil {
			g.Put(k, v)
		}
		return v, err
	})
}
