// Package qsearch implements an in-memory incremental search index: a
// population of caller-supplied items, each tagged with a bag of
// keywords, answering free-form partial-prefix queries with the
// top-scoring items in microseconds.
//
// # Overview
//
// The index is built around a substring fragment graph that
// de-duplicates shared prefixes and suffixes across every registered
// keyword, a concurrent multi-keyword walk that accumulates per-item
// scores, and a heap-bounded adaptive cache that memoises per-fragment
// walks and degrades gracefully under memory pressure. The target
// working set is tens of thousands of items held entirely in memory on
// a single process; there is no persistence, no network surface, and
// no sharding.
//
// # Architecture
//
// The package follows a layered design, leaves first:
//
//	┌───────────────────────────────────────────────┐
//	│                    Index (G)                   │
//	│        owns the graph, the cache, the lock      │
//	│  AddItem · RemoveItem · FindItem(s) · Clear     │
//	└───────────────────────────────────────────────┘
//	                 │               ▲
//	        write lock│               │read lock
//	                 ▼               │
//	┌───────────────────────────────────────────────┐
//	│            internal/query  (planner, E)        │
//	│  tokenize → per-token resolve → merge → top-k   │
//	└───────────────────────────────────────────────┘
//	          │                              │
//	          ▼                              ▼
//	┌──────────────────────┐      ┌──────────────────────┐
//	│ internal/cache   (F)  │◄────►│ internal/fragment     │
//	│ adaptive memoisation  │ miss │ graph + walk (C, D)   │
//	└──────────────────────┘      └──────────────────────┘
//	          │                              │
//	          └──────────────┬───────────────┘
//	                         ▼
//	              ┌──────────────────────┐
//	              │ internal/keyset (A)   │
//	              │ internal/topk   (B)   │
//	              │ splittable sets,       │
//	              │ partial top-k select   │
//	              └──────────────────────┘
//
// # Core Components
//
// Index: the coordinator
//   - Owns the fragment graph, the item-keyword index, and the cache
//   - Single sync.RWMutex serializes writers against readers
//   - Public surface: AddItem, RemoveItem, FindItem(s)(WithDetail),
//     Clear, Stats, CacheStats
//
// internal/fragment: substring graph and walk engine
//   - Arena of nodes addressed by slice index, not pointers
//   - Register/Unregister build and prune the prefix/suffix DAG
//   - Walk traverses parent edges upward, scoring with max-aggregation
//
// internal/query: the planner
//   - Extracts and normalises tokens from a raw query string
//   - Resolves each token (EXACT or BACKTRACKING) against a Resolver
//   - Combines per-token maps with a fork-join UNION/INTERSECTION reduce
//
// internal/cache: the adaptive memoisation layer
//   - Keyed by fragment, admissible only under a shrinking length limit
//   - Evicts least-recently-used entries and tightens its own threshold
//     under sustained pressure, disabling itself as a last resort
//
// internal/keyset, internal/topk: shared primitives
//   - Set[T]: immutable, copy-on-write, splittable for fork-join work
//   - Select: partial top-k without sorting the full result set
//
// # Data Flow
//
// A write (AddItem, RemoveItem, Clear) takes the exclusive lock,
// mutates the fragment graph, invalidates the cache, and releases the
// lock. A read (the Find family) takes the shared lock, asks the
// planner, which asks the cache (hit returns immediately) or invokes
// the walk engine per token, combines the per-token maps under the
// configured merge policy, runs the partial top-k selector, and
// releases the lock.
//
// # Concurrency and Thread Safety
//
// All exported Index methods are safe for concurrent use:
//
// Locking strategy:
//   - Read operations (FindItem, FindItems, Stats, the WithDetail
//     variants) take a shared RLock and may run concurrently with one
//     another.
//   - Write operations (AddItem, RemoveItem, Clear) take the exclusive
//     Lock; they block until any in-flight reads complete and block
//     subsequent reads until they finish.
//   - AddItem runs the extractor and normaliser before it takes the
//     exclusive lock; the Find family runs the extractor, normaliser
//     and scorer synchronously while holding the shared lock.
//
// Consistency guarantees:
//   - A reader observes either the full pre-write state or the full
//     post-write state; partial graph mutations are never visible.
//   - Cache invalidation happens inside the same write critical section
//     as the graph mutation that requires it, so no reader can observe
//     a cached result for a graph state that has since changed.
//   - Fragment nodes are mutated only under the exclusive lock; advisory
//     size hints on nodes are updated during reads and are allowed to
//     race by design (see DESIGN.md) since they are never consulted for
//     correctness.
//
// # Performance Characteristics
//
//   - AddItem/RemoveItem: O(sum of squared keyword lengths) worst case
//     to build or prune the fragment DAG (one node per distinct
//     substring), less where sub-fragments are already shared.
//   - FindItem(s): O(number of live nodes reachable upward from each
//     query token) per token, parallelized across tokens via fork-join
//     when more than one token is present; a cache hit short-circuits a
//     token's walk entirely.
//   - Memory: one fragment node per distinct prefix/suffix ever
//     materialised, each holding a small map of direct item membership;
//     the cache additionally holds up to maxEntries (item, score) pairs
//     before it starts evicting.
//
// # Error Handling
//
// The package defines a single sentinel, ErrInvalidArgument, returned
// only by NewIndex, when a configuration value is invalid or a supplied
// extractor, normaliser or scorer fails its construction-time probe. No
// other method returns an error (a negative limit is clamped to zero,
// not rejected). There are no other recoverable failure modes: a caller-supplied Scorer that panics during a live query
// propagates the panic unchanged; every other miss (absent item, empty
// query, zero-limit request) is modeled as an empty result, not an
// error.
//
// # Usage Examples
//
//	idx, err := qsearch.NewIndex[string]()
//	if err != nil {
//	    log.Fatalf("invalid configuration: %v", err)
//	}
//
//	idx.AddItem("doc-1", "gopher burrow excavation")
//	idx.AddItem("doc-2", "gopher snake habitat")
//
//	items := idx.FindItems("goph", 10)
//	for _, id := range items {
//	    fmt.Println(id)
//	}
//
//	detail, found := idx.FindItemWithDetail("burrow")
//	if found {
//	    fmt.Printf("%s scored %.2f on keywords %v\n",
//	        detail.Items[0].Item, detail.Items[0].Score, detail.Items[0].Keywords)
//	}
//
//	idx.RemoveItem("doc-1")
//	stats := idx.Stats()
//	fmt.Printf("%d items, %d live fragments\n", stats.ItemCount, stats.FragmentCount)
//
// # Testing
//
// Run the package and subpackage suites together:
//
//	go test ./...
//	go test -race ./...
//	go test -bench=. ./...
//
// index_scenarios_test.go carries a scenario/invariant suite exercising
// ranking, union and intersection merge, backtracking, removal, and
// cache degradation end-to-end; each internal package carries its own
// unit tests and, for the hot paths, benchmarks.
//
// # See Also
//
// Related packages:
//   - internal/fragment: the substring graph and walk engine
//   - internal/cache: the adaptive walk-result cache
//   - internal/query: the tokenizer, resolver and fork-join combiner
//   - internal/keyset, internal/topk: the splittable set and partial
//     top-k selector those packages share
package qsearch
