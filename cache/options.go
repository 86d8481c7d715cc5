package cache

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict()
	Size(entries int)
}

// Options configures the cache behavior. Zero values are safe except for
// Capacity; sane defaults are applied in New():
//   - nil Metrics -> NoopMetrics
//   - nil OnEvict -> no-op
type Options[K comparable, V any] struct {
	// Capacity is the entry count limit, fixed for the cache lifetime.
	// Must be >= 1; New panics otherwise.
	Capacity int

	// OnEvict is called exactly once per eviction, after the entry has
	// been fully unlinked from chain and index. Intended for releasing
	// resources held by the value. Keep callbacks lightweight: they run
	// inline inside Put.
	OnEvict func(k K, v V)

	// Metrics receives Hit/Miss/Evict/Size signals.
	// By default NoopMetrics is used; plug the Prometheus adapter from
	// metrics/prom to export them.
	Metrics Metrics
}
