// Package assets keeps loaded GPU resources in explicit, owner-scoped tables.
package assets

import (
	"errors"
	"sync"
)

// ErrClosed is returned by GetOrLoad after the table has been closed.
var ErrClosed = errors.New("assets: table closed")

// Table caches resources by key. The owner creates it, shares it with
// whatever needs the resources, and closes it once, which releases every
// resource in reverse load order.
type Table[K comparable, V any] struct {
	mu      sync.Mutex
	items   map[K]V
	order   []K
	release func(V)
	closed  bool

	// Stats
	hits   int
	misses int
}

// NewTable creates a table. release may be nil when resources need no
// cleanup.
func NewTable[K comparable, V any](release func(V)) *Table[K, V] {
	return &Table[K, V]{
		items:   make(map[K]V),
		release: release,
	}
}

// GetOrLoad returns the resource for key, calling load on the first request.
// Failed loads are not cached.
func (t *Table[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero V
	if t.closed {
		return zero, ErrClosed
	}
	if v, ok := t.items[key]; ok {
		t.hits++
		return v, nil
	}
	t.misses++

	v, err := load()
	if err != nil {
		return zero, err
	}
	t.items[key] = v
	t.order = append(t.order, key)
	return v, nil
}

// Get returns a resource that has already been loaded.
func (t *Table[K, V]) Get(key K) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.items[key]
	return v, ok
}

// Len returns the number of loaded resources.
func (t *Table[K, V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}

// Stats returns cache statistics.
func (t *Table[K, V]) Stats() (hits, misses int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hits, t.misses
}

// Close releases every resource, newest first. Closing twice is a no-op.
func (t *Table[K, V]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true

	for i := len(t.order) - 1; i >= 0; i-- {
		if t.release != nil {
			t.release(t.items[t.order[i]])
		}
	}
	t.items = nil
	t.order = nil
}
