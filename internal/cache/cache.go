package cache

import (
	"math"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2/simplelru"
	"golang.org/x/sync/singleflight"
)

const (
	// initialKeyLengthLimit is the starting admissible-key length.
	initialKeyLengthLimit = 10

	// bytesPerEntry is the empirical per-(item,score)-pair cost used
	// to turn a byte budget into an entry budget.
	bytesPerEntry = 60

	// unboundedCapacity is the simplelru.LRU capacity used when the
	// byte budget is effectively unlimited, or as the backing
	// capacity in all cases (this package's own entries accounting
	// drives real eviction, never simplelru's).
	unboundedCapacity = 1 << 30
)

// Result is the value type stored per fragment: a walk's per-item
// score map.
type Result[T comparable] map[T]float64

// Stats is a best-effort, non-linearisable snapshot of cache counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	Uncacheable int64
	Size        int
	Enabled     bool
}

// AdaptiveCache memoises walk results keyed by fragment, degrading its
// admission threshold and evicting entries under memory pressure. The
// zero value is not ready for use; construct with New.
type AdaptiveCache[T comparable] struct {
	mu             sync.Mutex
	lru            *lru.LRU[string, Result[T]]
	group          singleflight.Group
	keyLengthLimit int
	maxEntries     int
	currentEntries int
	enabled        bool

	// permanentlyDisabled records a construction-time byte budget of
	// 0, which disables caching for the cache's entire lifetime:
	// Clear never re-enables it.
	permanentlyDisabled bool

	hits        atomic.Int64
	misses      atomic.Int64
	evictions   atomic.Int64
	uncacheable atomic.Int64
}

// New constructs an AdaptiveCache sized from byteBudget. A budget of 0
// disables caching permanently; a negative budget (or math.MaxInt)
// is treated as effectively unlimited.
func New[T comparable](byteBudget int) *AdaptiveCache[T] {
	c := &AdaptiveCache[T]{
		keyLengthLimit: initialKeyLengthLimit,
	}

	switch {
	case byteBudget == 0:
		c.permanentlyDisabled = true
		c.enabled = false
		c.maxEntries = 0
	case byteBudget < 0 || byteBudget == math.MaxInt:
		c.enabled = true
		c.maxEntries = unboundedCapacity
	default:
		c.enabled = true
		c.maxEntries = byteBudget / bytesPerEntry
	}

	backing, err := lru.NewLRU[string, Result[T]](unboundedCapacity, nil)
	if err != nil {
		// unboundedCapacity is a positive constant; NewLRU only
		// errors on a non-positive size.
		panic(err)
	}
	c.lru = backing

	return c
}

// GetOrWalk returns the cached result for fragment if present and
// admissible, otherwise calls compute (coalescing concurrent misses
// for the same fragment into a single call) and, if the cache is
// enabled and fragment is admissible, stores the result before
// returning it.
func (c *AdaptiveCache[T]) GetOrWalk(fragment string, compute func() Result[T]) Result[T] {
	c.mu.Lock()
	enabled := c.enabled
	limit := c.keyLengthLimit
	c.mu.Unlock()

	if !enabled {
		return compute()
	}
	if len(fragment) > limit {
		c.uncacheable.Add(1)
		return compute()
	}

	c.mu.Lock()
	if v, ok := c.lru.Get(fragment); ok {
		c.mu.Unlock()
		c.hits.Add(1)
		return v
	}
	c.mu.Unlock()
	c.misses.Add(1)

	v, _, _ := c.group.Do(fragment, func() (any, error) {
		result := compute()
		c.store(fragment, result)
		return result, nil
	})
	return v.(Result[T])
}

// store admits result under key if the cache is still enabled and key
// is still admissible (both may have changed concurrently since the
// caller last checked), then runs the eviction protocol if the write
// pushed entries over budget.
func (c *AdaptiveCache[T]) store(key string, result Result[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || len(key) > c.keyLengthLimit {
		return
	}

	c.lru.Add(key, result)
	c.currentEntries += len(result)

	if c.currentEntries > c.maxEntries {
		c.evictLocked()
	}
}

// evictLocked runs the eviction protocol. Caller must hold mu.
func (c *AdaptiveCache[T]) evictLocked() {
	c.keyLengthLimit--
	if c.keyLengthLimit < 1 {
		c.disableLocked()
		return
	}

	for c.currentEntries > c.maxEntries {
		_, v, ok := c.lru.RemoveOldest()
		if !ok {
			break
		}
		c.currentEntries -= len(v)
		c.evictions.Add(1)
	}

	for _, key := range c.lru.Keys() {
		if len(key) <= c.keyLengthLimit {
			continue
		}
		if v, ok := c.lru.Peek(key); ok {
			c.lru.Remove(key)
			c.currentEntries -= len(v)
			c.evictions.Add(1)
		}
	}
}

// disableLocked disables the cache and clears it. Caller must hold mu.
func (c *AdaptiveCache[T]) disableLocked() {
	c.enabled = false
	c.lru.Purge()
	c.currentEntries = 0
}

// Clear purges the cache and, unless it was constructed with a byte
// budget of 0, re-enables it with a fresh admission threshold. The
// coordinator calls this inside every mutating operation's write
// lock, so no reader can observe a cached result for a graph state
// that has since changed.
func (c *AdaptiveCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Purge()
	c.currentEntries = 0
	if !c.permanentlyDisabled {
		c.enabled = true
		c.keyLengthLimit = initialKeyLengthLimit
	}
}

// Stats returns a best-effort snapshot of cache counters.
func (c *AdaptiveCache[T]) Stats() Stats {
	c.mu.Lock()
	size := c.currentEntries
	enabled := c.enabled
	c.mu.Unlock()

	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		Uncacheable: c.uncacheable.Load(),
		Size:        size,
		Enabled:     enabled,
	}
}
