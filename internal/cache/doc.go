// Package cache implements the adaptive, heap-bounded memoisation
// layer that sits between the query planner and the walk engine.
//
// # Overview
//
// Only top-level per-token walks are cacheable; merged multi-token
// results never are. A cache key is admissible only while its length
// is at or below a shrinking limit that starts at 10 characters.
// Capacity is tracked in "entries" (one entry per (item, score) pair
// inside a stored walk result), budgeted from a caller-supplied byte
// hint at roughly 60 bytes per entry.
//
// # Architecture
//
//	┌───────────────────────────────────────────────┐
//	│              AdaptiveCache[T]                   │
//	│                                                 │
//	│   admission: len(key) <= keyLengthLimit          │
//	│                                                 │
//	│   ┌─────────────────────────────────────────┐   │
//	│   │ simplelru.LRU[string, Result[T]]          │   │
//	│   │   (access-ordered; Get promotes to MRU)   │   │
//	│   └─────────────────────────────────────────┘   │
//	│                                                 │
//	│   currentEntries int  (sum of len(Result) live) │
//	│   maxEntries     int  (byteBudget / 60)         │
//	│                                                 │
//	│   singleflight.Group  (coalesces concurrent      │
//	│                        misses on the same key)  │
//	└───────────────────────────────────────────────┘
//	          miss ──────────────────────────► compute (walk)
//	          hit  ◄────────────────────────── stored Result[T]
//
// # Core Components
//
// GetOrWalk: the single entry point
//   - Bypasses the cache entirely (no lookup, no store) when disabled
//     or when the key exceeds the current admissible length
//   - On a hit, promotes the key to most-recently-used and returns a
//     copy-free reference to the stored Result
//   - On a miss, coalesces concurrent callers for the same key into one
//     compute call via singleflight, then stores the result and runs
//     the eviction protocol if the write pushed entries over budget
//
// Degradation state machine (evictLocked / disableLocked)
//   - Tightens keyLengthLimit by one character before evicting anything
//   - Evicts least-recently-used entries until back under budget
//   - Sweeps the remainder for keys that no longer meet the tightened
//     limit, even if they were not the least-recently-used
//   - Disables the cache outright once the limit would drop below 1
//
// Stats: a best-effort, non-linearisable snapshot
//   - Hits, Misses, Evictions, Uncacheable are atomic counters read
//     outside the main mutex (Hits, Misses and Uncacheable are also
//     updated outside it) and may be momentarily inconsistent with
//     Size/Enabled, which are read under the mutex
//
// # Degradation Under Pressure
//
// When a write pushes current entries over budget, the cache first
// tightens its admissible key length by one character, then evicts
// least-recently-used entries until back under budget, then sweeps
// the remainder for anything that no longer meets the tightened
// length limit. If the limit is driven below 1, the cache disables
// itself and stays disabled until the coordinator calls Clear (which
// happens on every graph mutation) — so a burst of long-key pressure
// degrades the cache gracefully instead of thrashing, and a
// subsequent write gives it a fresh chance rather than wedging it off
// forever.
//
// # Concurrency and Thread Safety
//
// AdaptiveCache is safe for concurrent use by multiple goroutines.
//
// Locking strategy:
//   - A single sync.Mutex guards the LRU backing store, the entry
//     counters, and the enabled/keyLengthLimit state.
//   - The admissibility pre-check in GetOrWalk reads enabled and
//     keyLengthLimit under the mutex, then releases it before calling
//     the (potentially slow) compute function, so a long-running walk
//     never holds the cache's own lock.
//   - Concurrent misses for the same fragment are coalesced by
//     singleflight.Group.Do, which guarantees compute runs once per
//     key per in-flight window regardless of how many goroutines ask
//     for it simultaneously.
//
// Consistency guarantees:
//   - Clear() is always called by the coordinator inside the same
//     write critical section as the graph mutation that requires it,
//     so no reader can observe a cached value for a graph state that
//     has since changed.
//   - Counters are atomic and may be read mid-update by Stats(); they
//     are documented as best-effort, not linearisable.
//
// # Performance
//
//   - GetOrWalk hit: O(1) LRU lookup and promotion.
//   - GetOrWalk miss: O(1) cache bookkeeping plus whatever compute
//     costs (a graph Walk), not attributable to this package.
//   - evictLocked: O(evicted) for the least-recently-used pass, plus
//     O(remaining keys) for the sweep that drops keys no longer
//     admissible under the tightened limit.
//
// # Domain-Stack Notes
//
// The access-ordered storage map is
// github.com/hashicorp/golang-lru/v2/simplelru.LRU, which gives O(1)
// hit-promotion and an oldest-to-newest Keys() ordering for free;
// capacity enforcement itself is layered on top by this package
// (simplelru's own size-based eviction is never triggered — it is
// constructed with a capacity large enough never to evict on its
// own, since its eviction unit is key count, not entry count).
// Concurrent misses for the same fragment are coalesced with
// golang.org/x/sync/singleflight so that N simultaneous queries for
// an uncached fragment trigger one walk, not N.
//
// # Future Enhancements
//
// Not pursued here, but a natural next step for a cache under this
// pressure model: track per-key entry counts directly (rather than
// len(Result) at store time) so a very skewed workload with wildly
// different per-fragment result sizes degrades the length limit less
// aggressively than this package's uniform all-keys-equal assumption.
package cache
