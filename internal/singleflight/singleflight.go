// Package singleflight coalesces concurrent function calls per key so the
// underlying work runs at most once while every caller shares the result.
package singleflight

import (
	"context"
	"sync"
)

// Group deduplicates in-flight calls by key K. The first caller for a key
// becomes the leader and runs fn; followers block until the leader
// publishes the shared (value, error) pair.
//
// Concurrency notes:
//   - Publishing happens-before close(ready), so followers reading after
//     <-ready observe the final values.
//   - A follower whose ctx is cancelled unblocks alone; the leader keeps
//     running fn. To cancel the work itself, thread ctx into fn.
type Group[K comparable, V any] struct {
	mu       sync.Mutex
	inFlight map[K]*flight[V]
}

type flight[V any] struct {
	ready chan struct{} // closed once val/err are published
	val   V
	err   error
}

// Do runs fn once for key, sharing the result with concurrent callers.
// If ctx is cancelled while waiting as a follower, Do returns ctx.Err().
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (V, error) {
	g.mu.Lock()
	if g.inFlight == nil {
		g.inFlight = make(map[K]*flight[V])
	}
	if fl, ok := g.inFlight[key]; ok {
		// Join the in-flight call and wait, respecting ctx.
		ready := fl.ready
		g.mu.Unlock()

		select {
		case <-ready:
			return fl.val, fl.err
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}

	fl := &flight[V]{ready: make(chan struct{})}
	g.inFlight[key] = fl
	g.mu.Unlock()

	// Leader path: run fn outside the lock, publish, wake followers.
	fl.val, fl.err = fn()
	close(fl.ready)

	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()

	return fl.val, fl.err
}
