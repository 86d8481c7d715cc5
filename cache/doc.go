// Package cache provides a fast, generic, fixed-capacity in-memory cache
// with LRU eviction, an eviction callback, lightweight metrics hooks, and
// an ordered snapshot/rendering of its contents.
//
// Design
//
//   - Storage: one arena (a slice of slots sized to Capacity) holds every
//     entry; a map[K]handle gives O(1) lookups and a doubly linked recency
//     chain threaded through slot handles gives O(1) reordering. Handles
//     are int32 indexes into the arena, so entries cost no per-item heap
//     allocation after construction and freed slots are recycled through
//     a free list.
//
//   - Eviction: strict LRU. Put of a new key into a full cache unlinks the
//     head (least recently used) entry, returns it to the caller, and
//     invokes Options.OnEvict exactly once with its key and value.
//     Updating an existing key replaces the value in place and promotes
//     the entry; it never duplicates the key or changes Len.
//
//   - Not-found: Get/Peek/Remove return (value, ok) pairs. A stored zero
//     value is never conflated with absence.
//
//   - Capacity: fixed at construction and must be >= 1; New panics on an
//     invalid value. There is no runtime resizing.
//
//   - Concurrency: a Cache is confined to one goroutine at a time. It
//     holds no locks of its own; package guard wraps a Cache with a mutex
//     (and singleflight loading) for shared use.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals.
//     By default NoopMetrics is used; plug the Prometheus adapter from
//     metrics/prom to export metrics.
//
// Basic usage
//
//	c := cache.New[string, int](cache.Options[string, int]{Capacity: 4})
//	c.Put("a", 29)
//	c.Put("b", 26)
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value; "a" is now most recently used
//	}
//	fmt.Println(c) // "b:26 < a:29"
//
// With an eviction hook
//
//	c := cache.New[string, *os.File](cache.Options[string, *os.File]{
//	    Capacity: 128,
//	    OnEvict:  func(k string, f *os.File) { _ = f.Close() },
//	})
//
// Iterating oldest to newest
//
//	for k, v := range c.Entries() {
//	    fmt.Println(k, v)
//	}
//
// Complexity
//
// Put, Get, Peek and Remove run in O(1) expected time: one map access and
// a constant amount of handle fixes. Entries and String are O(n).
package cache
