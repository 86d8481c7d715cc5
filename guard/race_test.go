package guard

import (
	"context"
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IvanBrykalov/boundcache/cache"
)

// A mixed workload of concurrent Put/Get/Peek/Remove on random keys.
// Should pass under `-race` without detector reports.
func TestRace_Basic(t *testing.T) {
	g := New(cache.New[string, []byte](cache.Options[string, []byte]{
		Capacity: 8_192,
	}), nil)

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 50_000
	deadline := time.Now().Add(2 * time.Second)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				switch r.Intn(100) {
				case 0, 1, 2, 3, 4: // ~5% — Remove
					g.Remove(k)
				case 5, 6, 7, 8, 9: // ~5% — Peek
					g.Peek(k)
				case 10, 11, 12, 13, 14, 15, 16, 17, 18, 19: // ~10% — Put
					g.Put(k, []byte("x"))
				default: // ~80% — Get
					g.Get(k)
				}
			}
		}(w)
	}
	wg.Wait()

	if g.Len() > g.Cap() {
		t.Fatalf("Len %d exceeds Cap %d", g.Len(), g.Cap())
	}
}

// One hundred goroutines call GetOrLoad on the same key concurrently.
// The Loader should run at most once (singleflight coalescing).
func TestRace_GetOrLoad(t *testing.T) {
	var calls int64

	g := New(cache.New[string, string](cache.Options[string, string]{
		Capacity: 1024,
	}), func(_ context.Context, k string) (string, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(2 * time.Millisecond) // simulate I/O
		return "v:" + k, nil
	})

	const goroutines = 100
	key := "same-key"

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := g.GetOrLoad(context.Background(), key)
			if err != nil {
				t.Errorf("GetOrLoad error: %v", err)
				return
			}
			if v != "v:"+key {
				t.Errorf("unexpected value: %q", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt64(&calls); got > 1 {
		t.Fatalf("loader should run at most once, got %d", got)
	}

	// Subsequent call should be a pure cache hit.
	if v, err := g.GetOrLoad(context.Background(), key); err != nil || v != "v:"+key {
		t.Fatalf("second GetOrLoad failed: v=%q err=%v", v, err)
	}
}
