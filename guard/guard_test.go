package guard

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/boundcache/cache"
)

func newGuarded(capacity int, loader Loader[string, string]) *Cache[string, string] {
	return New(cache.New[string, string](cache.Options[string, string]{Capacity: capacity}), loader)
}

// The wrapper must preserve the core semantics: dedup on update, LRU
// eviction, explicit not-found results.
func TestGuard_BasicOps(t *testing.T) {
	t.Parallel()

	g := newGuarded(2, nil)

	g.Put("a", "1")
	g.Put("b", "2")
	g.Put("a", "1*") // update, not insert

	if g.Len() != 2 {
		t.Fatalf("Len want 2, got %d", g.Len())
	}
	if ev, ok := g.Put("c", "3"); !ok || ev.Key != "b" {
		t.Fatalf("want eviction of b, got %+v ok=%v", ev, ok)
	}
	if v, ok := g.Get("a"); !ok || v != "1*" {
		t.Fatalf("Get a want 1*, got %q ok=%v", v, ok)
	}
	if _, ok := g.Peek("b"); ok {
		t.Fatal("b must be evicted")
	}
	if v, ok := g.Remove("c"); !ok || v != "3" {
		t.Fatalf("Remove c want 3, got %q ok=%v", v, ok)
	}

	g.Clear()
	if g.Len() != 0 || g.String() != "" {
		t.Fatal("cache must be empty after Clear")
	}
}

// Snapshot captures entries LRU-first in one critical section.
func TestGuard_Snapshot(t *testing.T) {
	t.Parallel()

	g := newGuarded(4, nil)
	g.Put("a", "1")
	g.Put("b", "2")
	g.Get("a") // promote

	snap := g.Snapshot()
	if len(snap) != 2 || snap[0].Key != "b" || snap[1].Key != "a" {
		t.Fatalf("snapshot order wrong: %+v", snap)
	}
}

// GetOrLoad without a Loader must fail explicitly on a miss.
func TestGuard_GetOrLoad_NoLoader(t *testing.T) {
	t.Parallel()

	g := newGuarded(4, nil)
	g.Put("hit", "v")

	if v, err := g.GetOrLoad(context.Background(), "hit"); err != nil || v != "v" {
		t.Fatalf("hit path: v=%q err=%v", v, err)
	}
	if _, err := g.GetOrLoad(context.Background(), "miss"); !errors.Is(err, ErrNoLoader) {
		t.Fatalf("want ErrNoLoader, got %v", err)
	}
}

// Loader errors are returned to the caller and nothing is cached, so the
// next call loads again.
func TestGuard_GetOrLoad_ErrorNotCached(t *testing.T) {
	t.Parallel()

	var calls int64
	boom := errors.New("boom")
	g := newGuarded(4, func(_ context.Context, k string) (string, error) {
		if atomic.AddInt64(&calls, 1) == 1 {
			return "", boom
		}
		return "v:" + k, nil
	})

	if _, err := g.GetOrLoad(context.Background(), "k"); !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if v, err := g.GetOrLoad(context.Background(), "k"); err != nil || v != "v:k" {
		t.Fatalf("retry: v=%q err=%v", v, err)
	}
	if got := atomic.LoadInt64(&calls); got != 2 {
		t.Fatalf("loader calls want 2, got %d", got)
	}
}

// Singleflight test: concurrent GetOrLoad calls for the same key
// should trigger the Loader at most once; subsequent calls are cache hits.
func TestGuard_GetOrLoad_Singleflight(t *testing.T) {
	var calls int64

	g := newGuarded(64, func(_ context.Context, k string) (string, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(5 * time.Millisecond) // simulate I/O
		return "v:" + k, nil
	})

	const N = 64
	var eg errgroup.Group
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < N; i++ {
		eg.Go(func() error {
			v, err := g.GetOrLoad(ctx, "k")
			if err != nil {
				return err
			}
			if v != "v:k" {
				return fmt.Errorf("got %q", v)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatal(err)
	}

	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Fatalf("loader must run exactly once, got %d", got)
	}

	if v, err := g.GetOrLoad(context.Background(), "k"); err != nil || v != "v:k" {
		t.Fatalf("second GetOrLoad failed: v=%q err=%v", v, err)
	}
}
