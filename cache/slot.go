package cache

// handle addresses a slot in the cache's arena. Chain links are handles
// rather than pointers, so the whole working set lives in one slice and
// no per-entry allocation happens after construction.
type handle int32

// none is the null handle (empty chain end, exhausted free list).
const none handle = -1

// slot is one arena cell. A resident slot stores the key/value alongside
// its position in the recency chain; a free slot reuses the newer link to
// thread the free list.
type slot[K comparable, V any] struct {
	key K
	val V

	// Chain links: head is LRU, tail is MRU.
	older handle
	newer handle
}
