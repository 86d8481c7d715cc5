package cache

import (
	"fmt"
	"iter"
)

// Cache is a fixed-capacity in-memory key/value cache with LRU eviction.
//
// Typical complexity for operations is O(1): a map lookup plus
// constant-time adjustments of the recency chain.
//
// A Cache is NOT safe for concurrent use by multiple goroutines.
// Callers that share one across goroutines must serialize access
// externally; package guard provides a ready-made locked wrapper.
type Cache[K comparable, V any] interface {
	// Put inserts or updates k→v and marks k most recently used.
	// If k was absent and the cache was full, the least recently used
	// entry is evicted first and returned with true. Otherwise the
	// second return is false and the Entry is the zero value.
	Put(k K, v V) (evicted Entry[K, V], ok bool)

	// Get returns the value for k and a boolean flag indicating presence.
	// On hit, the entry is promoted to most recently used.
	Get(k K) (V, bool)

	// Peek returns the value for k without touching recency order.
	Peek(k K) (V, bool)

	// Remove deletes k if present and returns the removed value with true.
	Remove(k K) (V, bool)

	// Clear resets the cache to the empty state.
	Clear()

	// Len returns the number of resident entries.
	Len() int

	// Cap returns the capacity fixed at construction.
	Cap() int

	// Entries returns a restartable iterator over resident entries,
	// least to most recently used. Iteration does not touch recency
	// order. The cache must not be mutated while a walk is in progress.
	Entries() iter.Seq2[K, V]

	// String renders entries as "k1:v1 < k2:v2 < … < kn:vn",
	// least to most recently used.
	fmt.Stringer
}

// Entry is a key/value pair handed out on eviction or returned by Put.
// Once returned, it has no further relationship to the cache.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}
