package cache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/robo-companion/internal/platform/logging"
)

// State is the population state of one cache entry.
type State int

const (
	StateEmpty State = iota
	StatePopulating
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StatePopulating:
		return "populating"
	case StatePopulated:
		return "populated"
	default:
		return "empty"
	}
}

// FetchFunc loads the list stored under key from upstream.
type FetchFunc[T any] func(ctx context.Context, key Key) ([]T, error)

// Observer receives cache outcomes, typically for metrics.
type Observer interface {
	CacheLookup(cache, outcome string)
	CacheFetch(cache string, elapsed time.Duration, err error)
}

const (
	OutcomeHit    = "hit"
	OutcomeMiss   = "miss"
	OutcomeShared = "shared"
	OutcomeForced = "forced"
)

type nopObserver struct{}

func (nopObserver) CacheLookup(string, string)             {}
func (nopObserver) CacheFetch(string, time.Duration, error) {}

type Option func(*options)

type options struct {
	logger   *logging.Logger
	observer Observer
	now      func() time.Time
}

func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

// MultiKey caches lists of T under composite keys. Population is lazy and
// single-flight per key: concurrent Preload calls for the same key share one
// fetch, while unrelated keys populate in parallel.
type MultiKey[T any] struct {
	name     string
	fetch    FetchFunc[T]
	logger   *logging.Logger
	observer Observer
	now      func() time.Time

	mu      sync.Mutex
	entries map[Key]*entry[T]
	seq     uint64
}

type entry[T any] struct {
	state     State
	value     []T
	pending   *pending[T]
	writeSeq  uint64
	updatedAt time.Time
}

type pending[T any] struct {
	done  chan struct{}
	value []T
	err   error
}

// EntryInfo describes one entry without exposing its value.
type EntryInfo struct {
	Key       Key
	State     State
	Items     int
	UpdatedAt time.Time
}

func NewMultiKey[T any](name string, fetch FetchFunc[T], opts ...Option) *MultiKey[T] {
	if fetch == nil {
		panic(fmt.Sprintf("cache %q: fetch func is required", name))
	}

	o := options{
		logger:   logging.Default(),
		observer: nopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &MultiKey[T]{
		name:     name,
		fetch:    fetch,
		logger:   o.logger.With("cache", name),
		observer: o.observer,
		now:      o.now,
		entries:  make(map[Key]*entry[T]),
	}
}

func (c *MultiKey[T]) Name() string {
	return c.name
}

// Get returns the stored value for key or an empty list. It never fetches
// and never waits on an in-flight population.
func (c *MultiKey[T]) Get(key Key) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.value == nil {
		return []T{}
	}
	return cloneList(e.value)
}

// State reports the state of key.
func (c *MultiKey[T]) State(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return StateEmpty
	}
	return e.state
}

// Preload populates key once. A populated entry is returned as is, a
// populating entry is awaited, an empty entry triggers exactly one fetch. A
// failed fetch leaves the entry empty so the next Preload retries.
func (c *MultiKey[T]) Preload(ctx context.Context, key Key) ([]T, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry[T]{}
		c.entries[key] = e
	}

	switch e.state {
	case StatePopulated:
		value := cloneList(e.value)
		c.mu.Unlock()
		c.observer.CacheLookup(c.name, OutcomeHit)
		return value, nil
	case StatePopulating:
		p := e.pending
		c.mu.Unlock()
		c.observer.CacheLookup(c.name, OutcomeShared)
		return c.await(ctx, p)
	}

	p := &pending[T]{done: make(chan struct{})}
	e.state = StatePopulating
	e.pending = p
	c.seq++
	startSeq := c.seq
	c.mu.Unlock()

	c.observer.CacheLookup(c.name, OutcomeMiss)
	go c.runPopulate(context.WithoutCancel(ctx), key, e, p, startSeq)

	return c.await(ctx, p)
}

// ForceRefresh always fetches, even while a population is in flight, and
// stores the result on success.
func (c *MultiKey[T]) ForceRefresh(ctx context.Context, key Key) ([]T, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry[T]{}
		c.entries[key] = e
	}
	c.seq++
	startSeq := c.seq
	c.mu.Unlock()

	c.observer.CacheLookup(c.name, OutcomeForced)
	value, err := c.invokeFetch(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "cache refresh failed", "key", key.String(), "error", err)
		return nil, err
	}

	c.mu.Lock()
	c.store(key, e, value, startSeq)
	c.mu.Unlock()

	return cloneList(value), nil
}

// Clear resets every entry to empty. Fetches still in flight complete for
// their waiters but their results are discarded.
func (c *MultiKey[T]) Clear() {
	c.mu.Lock()
	count := len(c.entries)
	c.entries = make(map[Key]*entry[T])
	c.mu.Unlock()

	c.logger.Info("cache cleared", "entries", count)
}

// Entries returns a snapshot of all non-empty entries ordered by key.
func (c *MultiKey[T]) Entries() []EntryInfo {
	c.mu.Lock()
	out := make([]EntryInfo, 0, len(c.entries))
	for key, e := range c.entries {
		if e.state == StateEmpty && e.value == nil {
			continue
		}
		out = append(out, EntryInfo{
			Key:       key,
			State:     e.state,
			Items:     len(e.value),
			UpdatedAt: e.updatedAt,
		})
	}
	c.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key.Compare(out[j].Key) < 0 })
	return out
}

func (c *MultiKey[T]) runPopulate(ctx context.Context, key Key, e *entry[T], p *pending[T], startSeq uint64) {
	value, err := c.invokeFetch(ctx, key)

	c.mu.Lock()
	current := c.entries[key] == e
	if e.pending == p {
		e.pending = nil
	}
	switch {
	case err != nil:
		if current && e.state == StatePopulating {
			if e.value != nil {
				e.state = StatePopulated
			} else {
				e.state = StateEmpty
			}
		}
	case current:
		c.store(key, e, value, startSeq)
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.WarnContext(ctx, "cache populate failed", "key", key.String(), "error", err)
	}

	p.value = value
	p.err = err
	close(p.done)
}

// store must be called with c.mu held. A result from a fetch that started
// before the last stored one is dropped.
func (c *MultiKey[T]) store(key Key, e *entry[T], value []T, startSeq uint64) {
	if c.entries[key] != e {
		return
	}
	if startSeq < e.writeSeq {
		c.logger.Debug("cache dropped stale fetch result", "key", key.String(), "seq", startSeq, "stored_seq", e.writeSeq)
		if e.pending == nil && e.state == StatePopulating {
			e.state = StatePopulated
		}
		return
	}
	if value == nil {
		value = []T{}
	}
	e.value = value
	e.writeSeq = startSeq
	e.updatedAt = c.now()
	if e.pending == nil {
		e.state = StatePopulated
	}
}

func (c *MultiKey[T]) invokeFetch(ctx context.Context, key Key) ([]T, error) {
	started := c.now()
	value, err := c.fetch(ctx, key)
	c.observer.CacheFetch(c.name, c.now().Sub(started), err)
	if err != nil {
		return nil, fmt.Errorf("fetch %s[%s]: %w", c.name, key.String(), err)
	}
	return value, nil
}

func (c *MultiKey[T]) await(ctx context.Context, p *pending[T]) ([]T, error) {
	select {
	case <-p.done:
		if p.err != nil {
			return nil, p.err
		}
		return cloneList(p.value), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func cloneList[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return append(make([]T, 0, len(items)), items...)
}
