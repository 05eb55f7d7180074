package execution

import (
	"sync"

	"go.trai.ch/zerr"
)

var errAbandoned = zerr.New("memoized computation did not complete")

// entry is one memoized result. ready is closed once value and err are final.
type entry[V any] struct {
	ready chan struct{}
	value V
	err   error
}

// table memoizes results per key for the lifetime of a Context.
//
// The mutex guards only the map. Computations for distinct keys run
// concurrently; callers asking for a key that is already being computed wait
// for the first caller's result.
type table[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[V]
}

func newTable[K comparable, V any]() *table[K, V] {
	return &table[K, V]{entries: make(map[K]*entry[V])}
}

// Do returns the stored result for key, computing it with fn on the first
// request. hit is true when the result was produced by an earlier call.
// Errors are stored and replayed like values.
func (t *table[K, V]) Do(key K, fn func() (V, error)) (value V, hit bool, err error) {
	t.mu.Lock()
	if e, ok := t.entries[key]; ok {
		t.mu.Unlock()
		<-e.ready
		return e.value, true, e.err
	}
	e := &entry[V]{ready: make(chan struct{})}
	t.entries[key] = e
	t.mu.Unlock()

	completed := false
	defer func() {
		if !completed {
			// fn panicked or exited the goroutine. Waiters get an error and the
			// key is forgotten so nothing replays a partial result.
			e.err = errAbandoned
			t.mu.Lock()
			delete(t.entries, key)
			t.mu.Unlock()
		}
		close(e.ready)
	}()

	e.value, e.err = fn()
	completed = true
	return e.value, false, e.err
}

// Len returns the number of stored keys.
func (t *table[K, V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
