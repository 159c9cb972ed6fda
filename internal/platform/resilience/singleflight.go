package resilience

import "sync"

// Flight deduplicates concurrent calls for the same key. The zero value is
// ready to use.
type Flight[T any] struct {
	mu    sync.Mutex
	calls map[string]*flightCall[T]
}

type flightCall[T any] struct {
	wg      sync.WaitGroup
	val     T
	err     error
	waiters int
}

// Do runs fn once per key among overlapping callers. The boolean reports
// whether the result was shared with another caller.
func (g *Flight[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flightCall[T])
	}

	if c, ok := g.calls[key]; ok {
		c.waiters++
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}

	c := &flightCall[T]{}
	c.wg.Add(1)
	g.calls[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()
	c.wg.Done()

	g.mu.Lock()
	shared := c.waiters > 0
	delete(g.calls, key)
	g.mu.Unlock()

	return c.val, c.err, shared
}

// InFlight reports whether a call for key is currently running.
func (g *Flight[T]) InFlight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.calls[key]
	return ok
}
