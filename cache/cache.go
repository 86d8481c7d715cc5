package cache

import (
	"fmt"
	"iter"
	"strings"
)

// cache is the arena-backed LRU implementation behind the Cache interface.
// It composes two structures: the recency chain (doubly linked through
// slot handles, head=LRU, tail=MRU) and the key index (map from key to
// the handle of the slot holding it). The chain decides eviction order;
// the index makes every lookup O(1).
type cache[K comparable, V any] struct {
	slots []slot[K, V] // arena, length fixed at Capacity
	free  handle       // head of the free-slot list, threaded via newer
	index map[K]handle
	head  handle // least recently used
	tail  handle // most recently used
	size  int

	opt Options[K, V]
}

// New constructs a cache with the provided Options.
// Capacity must be >= 1; New panics otherwise rather than letting an
// unusable instance corrupt its invariants later.
// Defaults: nil Metrics -> NoopMetrics, nil OnEvict -> no-op.
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	if opt.Capacity < 1 {
		panic("cache: Capacity must be >= 1")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}

	c := &cache[K, V]{
		slots: make([]slot[K, V], opt.Capacity),
		index: make(map[K]handle, opt.Capacity),
		head:  none,
		tail:  none,
		opt:   opt,
	}
	c.threadFreeList()

	// return pointer-to-impl as the interface (avoids unexported-return lint)
	return c
}

// ---- Cache[K,V] implementation ----

// Put inserts or updates k→v and marks it most recently used.
// Updating an existing key never duplicates an entry and never changes
// size. Inserting into a full cache first evicts the LRU entry, which is
// returned with ok=true and also passed to the OnEvict hook.
func (c *cache[K, V]) Put(k K, v V) (evicted Entry[K, V], ok bool) {
	if h, exists := c.index[k]; exists {
		c.slots[h].val = v
		c.moveToTail(h)
		return Entry[K, V]{}, false
	}

	if c.size == len(c.slots) {
		evicted, ok = c.evictOldest(), true
	}

	h := c.alloc(k, v)
	c.index[k] = h
	c.pushTail(h)
	c.size++
	c.opt.Metrics.Size(c.size)
	return evicted, ok
}

// Get returns the value for k and promotes the entry to MRU on hit.
func (c *cache[K, V]) Get(k K) (V, bool) {
	h, exists := c.index[k]
	if !exists {
		c.opt.Metrics.Miss()
		var zero V
		return zero, false
	}
	c.moveToTail(h)
	c.opt.Metrics.Hit()
	return c.slots[h].val, true
}

// Peek returns the value for k without promoting it.
func (c *cache[K, V]) Peek(k K) (V, bool) {
	h, exists := c.index[k]
	if !exists {
		c.opt.Metrics.Miss()
		var zero V
		return zero, false
	}
	c.opt.Metrics.Hit()
	return c.slots[h].val, true
}

// Remove deletes k if present and returns the removed value.
// Explicit removal is not an eviction: OnEvict is not called.
func (c *cache[K, V]) Remove(k K) (V, bool) {
	h, exists := c.index[k]
	if !exists {
		var zero V
		return zero, false
	}
	v := c.slots[h].val
	c.unlink(h)
	delete(c.index, k)
	c.release(h)
	c.size--
	c.opt.Metrics.Size(c.size)
	return v, true
}

// Clear resets the cache to the empty state. Both chain endpoints are
// dropped together and every slot returns to the free list.
func (c *cache[K, V]) Clear() {
	clear(c.index)
	c.head, c.tail = none, none
	c.size = 0
	c.threadFreeList()
	c.opt.Metrics.Size(0)
}

// Len returns the number of resident entries.
func (c *cache[K, V]) Len() int { return c.size }

// Cap returns the capacity fixed at construction.
func (c *cache[K, V]) Cap() int { return len(c.slots) }

// Entries walks the chain from LRU to MRU. The returned iterator is
// restartable: each range over it starts a fresh walk.
func (c *cache[K, V]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for h := c.head; h != none; h = c.slots[h].newer {
			if !yield(c.slots[h].key, c.slots[h].val) {
				return
			}
		}
	}
}

// String renders the chain as "k1:v1 < k2:v2 < … < kn:vn", LRU first.
func (c *cache[K, V]) String() string {
	var b strings.Builder
	for h := c.head; h != none; h = c.slots[h].newer {
		if h != c.head {
			b.WriteString(" < ")
		}
		fmt.Fprintf(&b, "%v:%v", c.slots[h].key, c.slots[h].val)
	}
	return b.String()
}

// -------------------- chain internals --------------------

// pushTail links a detached slot at MRU in O(1).
func (c *cache[K, V]) pushTail(h handle) {
	s := &c.slots[h]
	s.older = c.tail
	s.newer = none
	if c.tail != none {
		c.slots[c.tail].newer = h
	}
	c.tail = h
	if c.head == none {
		c.head = h
	}
}

// unlink detaches a slot from the chain, repairing neighbor links and
// both endpoints in O(1). Detaching the sole entry leaves head and tail
// cleared together.
func (c *cache[K, V]) unlink(h handle) {
	s := &c.slots[h]
	if s.older != none {
		c.slots[s.older].newer = s.newer
	} else {
		c.head = s.newer
	}
	if s.newer != none {
		c.slots[s.newer].older = s.older
	} else {
		c.tail = s.older
	}
	s.older, s.newer = none, none
}

// moveToTail promotes a resident slot to MRU in O(1).
// Already-MRU slots are left untouched (no relinking).
func (c *cache[K, V]) moveToTail(h handle) {
	if h == c.tail {
		return
	}
	c.unlink(h)
	c.pushTail(h)
}

// evictOldest unlinks the LRU entry, updates metrics, and fires the
// OnEvict hook after the entry is fully detached from chain and index.
func (c *cache[K, V]) evictOldest() Entry[K, V] {
	h := c.head
	e := Entry[K, V]{Key: c.slots[h].key, Value: c.slots[h].val}
	c.unlink(h)
	delete(c.index, e.Key)
	c.release(h)
	c.size--
	c.opt.Metrics.Evict()
	if cb := c.opt.OnEvict; cb != nil {
		cb(e.Key, e.Value)
	}
	return e
}

// -------------------- arena internals --------------------

// threadFreeList marks every slot free, chained in index order.
func (c *cache[K, V]) threadFreeList() {
	for i := range c.slots {
		c.slots[i] = slot[K, V]{older: none, newer: handle(i + 1)}
	}
	c.slots[len(c.slots)-1].newer = none
	c.free = 0
}

// alloc pops a free slot and stores k/v in it. Capacity bookkeeping in
// Put guarantees the free list is never empty here.
func (c *cache[K, V]) alloc(k K, v V) handle {
	h := c.free
	c.free = c.slots[h].newer
	c.slots[h] = slot[K, V]{key: k, val: v, older: none, newer: none}
	return h
}

// release zeroes a slot (so the GC can reclaim key/value referents) and
// pushes it onto the free list.
func (c *cache[K, V]) release(h handle) {
	c.slots[h] = slot[K, V]{older: none, newer: c.free}
	c.free = h
}
