// Package singleflight suppresses duplicate concurrent loads of the same key.
package singleflight

import "sync"

// call is an in-flight or completed Do call.
type call[T any] struct {
	wg  sync.WaitGroup
	val T
	err error
}

// Group runs at most one fn per key at a time. The zero value is ready to use.
type Group[T any] struct {
	mu sync.Mutex
	m  map[string]*call[T]
}

// Do executes fn for key unless a call for key is already running, in which
// case it waits for that call and returns its result. shared reports whether
// the result came from another caller's fn.
func (g *Group[T]) Do(key string, fn func() (T, error)) (v T, err error, shared bool) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[string]*call[T])
	}
	if c, ok := g.m[key]; ok {
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}
	c := new(call[T])
	c.wg.Add(1)
	g.m[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()
	c.wg.Done()

	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()

	return c.val, c.err, false
}

// Forget drops key so the next Do runs fn again even if a call is in flight.
func (g *Group[T]) Forget(key string) {
	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()
}
