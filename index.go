package qsearch

import (
	"context"
	"iter"
	"sync"

	"github.com/nullstate/qsearch/internal/cache"
	"github.com/nullstate/qsearch/internal/fragment"
	"github.com/nullstate/qsearch/internal/keyset"
	"github.com/nullstate/qsearch/internal/query"
	"github.com/nullstate/qsearch/internal/topk"
)

// ItemDetail carries one matched item alongside the keyword set it was
// registered with and its final score for a particular query.
type ItemDetail[T comparable] struct {
	Item     T
	Keywords []string
	Score    float64
}

// DetailedResult echoes the query string and its parsed token set
// alongside the matched items.
type DetailedResult[T comparable] struct {
	Query  string
	Tokens []string
	Items  []ItemDetail[T]
}

// Stats is a non-blocking snapshot of index-wide counters.
type Stats struct {
	ItemCount     int
	FragmentCount int
}

// Index is the coordinator: it owns the fragment graph, the adaptive
// cache and the item-keyword index behind a single sync.RWMutex.
// Writes (AddItem, RemoveItem, Clear) take the exclusive lock; reads
// (the Find family, Stats) take the shared lock. Construct with
// NewIndex; the zero value is not ready for use.
type Index[T comparable] struct {
	mu sync.RWMutex

	graph        *fragment.Graph[T]
	cacheLayer   *cache.AdaptiveCache[T]
	itemKeywords map[T]keyset.Set[string]

	cfg config
}

// NewIndex constructs an Index, applying opts over the defaults
// (extractor splitting on non-word runs, lower-casing normaliser,
// length-ratio-plus-prefix-boost scorer, minKeywordLength 2,
// Backtracking, Union, unlimited cache). Returns ErrInvalidArgument if
// any supplied extractor, normaliser or scorer fails its
// construction-time probe.
//
// Behavior:
//   - Every supplied Extractor, Normalizer and Scorer is probed once
//     with sentinel inputs before the Index is returned; a panic or an
//     unexpected empty result during that probe aborts construction
//   - Options are applied in order, so a later WithX silently overrides
//     an earlier one for the same setting
//
// Thread-safety:
//   - Not called concurrently with anything else on the returned
//     Index, by construction; the returned *Index itself is safe for
//     concurrent use once constructed
//
// Performance:
//   - O(1) beyond the fixed cost of probing the configured callbacks
//
// Parameters:
//   - opts: zero or more Option values layered over defaultConfig()
//
// Returns:
//   - a ready-to-use *Index and a nil error on success
//   - a nil *Index and an ErrInvalidArgument-wrapped error if
//     validation fails
func NewIndex[T comparable](opts ...Option) (*Index[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Index[T]{
		graph:        fragment.New[T](),
		cacheLayer:   cache.New[T](cfg.cacheByteBudget),
		itemKeywords: make(map[T]keyset.Set[string]),
		cfg:          cfg,
	}, nil
}

// AddItem extracts, normalises and length-filters rawKeywords; if no
// keyword survives, the item is not registered and AddItem returns
// false. Otherwise every surviving keyword is registered in the
// fragment graph, the item-keyword index is updated (merging with any
// previously registered keywords for this item), and the cache is
// invalidated.
//
// Behavior:
//   - Re-adding an item already registered merges the new keyword set
//     with its existing one rather than replacing it
//   - A rawKeywords that yields no surviving keyword (everything
//     extracted is too short or normalises to empty) is a no-op: the
//     item is not registered and false is returned
//   - Always invalidates the cache, even when nothing new is
//     registered because every keyword already existed
//
// Thread-safety:
//   - Takes the exclusive lock; blocks until any in-flight reads and
//     writes complete, and blocks subsequent reads and writes until it
//     returns
//
// Performance:
//   - O(sum of squared surviving keyword lengths) worst case to extend
//     the fragment graph (one node per distinct substring), less by
//     however much those fragments are already shared with previously
//     registered keywords
//
// Parameters:
//   - item: the caller's opaque value; used as a map key, so its type's
//     equality and hash must be stable for as long as it remains
//     registered
//   - rawKeywords: a free-form string run through the configured
//     extractor and normaliser
//
// Returns:
//   - true if at least one keyword survived and item is now registered
//   - false if rawKeywords yielded no viable keyword
func (idx *Index[T]) AddItem(item T, rawKeywords string) bool {
	tokens := idx.prepareKeywords(rawKeywords)
	if tokens.IsEmpty() {
		return false
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	tokens.ForEach(func(kw string) { idx.graph.Register(item, kw) })

	if existing, ok := idx.itemKeywords[item]; ok {
		idx.itemKeywords[item] = keyset.FromUnion(existing, tokens)
	} else {
		idx.itemKeywords[item] = tokens
	}
	idx.cacheLayer.Clear()
	return true
}

// RemoveItem unregisters item from every keyword it was registered
// under and drops its item-keyword entry. Returns false if item is not
// currently registered.
//
// Behavior:
//   - Idempotent: removing an item not currently registered is a safe
//     no-op that returns false, not an error
//   - Prunes every fragment node left with neither items nor parents as
//     a result, so a fully-removed item leaves no trace in the graph
//   - Always invalidates the cache on success
//
// Thread-safety:
//   - Takes the exclusive lock; same blocking behavior as AddItem
//
// Performance:
//   - O(sum of squared registered keyword lengths) worst case, to prune
//     every orphaned shorter fragment beneath each keyword's node
//
// Parameters:
//   - item: the item to unregister; compared by value equality against
//     previously-added items
//
// Returns:
//   - true if item was registered and has now been removed
//   - false if item was not registered
func (idx *Index[T]) RemoveItem(item T) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	kws, ok := idx.itemKeywords[item]
	if !ok {
		return false
	}
	kws.ForEach(func(kw string) { idx.graph.Unregister(item, kw) })
	delete(idx.itemKeywords, item)
	idx.cacheLayer.Clear()
	return true
}

// Clear drops all graph state and item-keyword entries and
// invalidates the cache.
//
// Behavior:
//   - Leaves zero items and zero fragments, and an emptied cache that
//     is re-enabled with its initial admission threshold (unless it was
//     built with a byte budget of 0); the cache's hit, miss, eviction
//     and uncacheable counters are not reset
//   - Safe to call on an already-empty Index
//
// Thread-safety:
//   - Takes the exclusive lock; same blocking behavior as AddItem
//
// Performance:
//   - O(1): replaces the graph and item-keyword map with fresh empty
//     instances rather than walking the old ones to tear them down
func (idx *Index[T]) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.graph = fragment.New[T]()
	idx.itemKeywords = make(map[T]keyset.Set[string])
	idx.cacheLayer.Clear()
}

// FindItem returns the single highest-scoring item for query, or false
// if nothing matched.
//
// Behavior:
//   - Equivalent to taking the first element of FindItems(query, 1)
//   - An empty or entirely-too-short query yields no match, not an
//     error
//
// Thread-safety:
//   - Takes the shared lock; runs concurrently with other readers and
//     blocks only for an in-flight writer
//
// Performance:
//   - One walk per query token (or a cache hit), fork-joined across
//     tokens when the query has more than one
//
// Parameters:
//   - rawQuery: a free-form string run through the same extractor and
//     normaliser configured for keywords
//
// Returns:
//   - the highest-scoring item and true if anything matched
//   - the zero value of T and false otherwise
func (idx *Index[T]) FindItem(rawQuery string) (T, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	top := idx.findItemsLocked(rawQuery, 1)
	if len(top) == 0 {
		var zero T
		return zero, false
	}
	return top[0], true
}

// FindItems returns at most k items matching query, ordered
// best-to-worst by score.
//
// Behavior:
//   - Never returns more than k items, and never sorts the full result
//     set to get there: ranking uses the partial top-k selector
//   - k <= 0 and an unmatched query both yield an empty, non-nil slice
//   - A negative k is silently clamped to 0 rather than rejected
//
// Thread-safety:
//   - Takes the shared lock; runs concurrently with other readers and
//     blocks only for an in-flight writer
//
// Performance:
//   - One walk per query token (or a cache hit), fork-joined across
//     tokens when the query has more than one, followed by an O(n) or
//     O(n log k) partial top-k selection depending on k
//
// Parameters:
//   - rawQuery: a free-form string run through the same extractor and
//     normaliser configured for keywords
//   - k: the maximum number of items to return; negative values are
//     treated as 0
//
// Returns:
//   - up to k items ordered best-to-worst by score; empty, never nil
func (idx *Index[T]) FindItems(rawQuery string, k int) []T {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.findItemsLocked(rawQuery, k)
}

func (idx *Index[T]) findItemsLocked(rawQuery string, k int) []T {
	scored := idx.scoredResultsLocked(rawQuery)
	top := topk.Select(mapSeq(scored), k)
	out := make([]T, len(top))
	for i, s := range top {
		out[i] = s.Item
	}
	return out
}

// FindItemWithDetail returns the single highest-scoring item for
// query, with its registered keywords and score, alongside the echoed
// query and its parsed token set. The bool reports whether anything
// matched.
//
// Behavior:
//   - The returned DetailedResult always echoes Query and Tokens, even
//     when nothing matched and Items is empty
//   - Items holds at most one entry, for the single best match
//
// Thread-safety:
//   - Takes the shared lock; same concurrency profile as FindItem
//
// Performance:
//   - Same cost as FindItem, plus an extra token-preparation pass to
//     populate the echoed token set
//
// Parameters:
//   - rawQuery: a free-form string run through the same extractor and
//     normaliser configured for keywords
//
// Returns:
//   - a DetailedResult with at most one ItemDetail, and true, if
//     anything matched
//   - a DetailedResult with no Items, and false, otherwise
func (idx *Index[T]) FindItemWithDetail(rawQuery string) (DetailedResult[T], bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	tokens := query.PrepareTokens(rawQuery, idx.queryConfig())
	scored := idx.scoredResultsLocked(rawQuery)
	top := topk.Select(mapSeq(scored), 1)

	result := DetailedResult[T]{Query: rawQuery, Tokens: tokens.Slice()}
	if len(top) == 0 {
		return result, false
	}
	result.Items = []ItemDetail[T]{idx.detailFor(top[0])}
	return result, true
}

// FindItemsWithDetail returns at most k items matching query, each
// with its registered keywords and score, alongside the echoed query
// and its parsed token set.
//
// Behavior:
//   - The returned DetailedResult always echoes Query and Tokens, even
//     when Items is empty
//   - Items holds at most k entries, ordered best-to-worst by score,
//     same bound and clamping rules as FindItems
//
// Thread-safety:
//   - Takes the shared lock; same concurrency profile as FindItems
//
// Performance:
//   - Same cost as FindItems, plus an extra token-preparation pass to
//     populate the echoed token set
//
// Parameters:
//   - rawQuery: a free-form string run through the same extractor and
//     normaliser configured for keywords
//   - k: the maximum number of items to return; negative values are
//     treated as 0
//
// Returns:
//   - a DetailedResult with up to k ItemDetail entries, ordered
//     best-to-worst by score
func (idx *Index[T]) FindItemsWithDetail(rawQuery string, k int) DetailedResult[T] {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	tokens := query.PrepareTokens(rawQuery, idx.queryConfig())
	scored := idx.scoredResultsLocked(rawQuery)
	top := topk.Select(mapSeq(scored), k)

	items := make([]ItemDetail[T], len(top))
	for i, s := range top {
		items[i] = idx.detailFor(s)
	}
	return DetailedResult[T]{Query: rawQuery, Tokens: tokens.Slice(), Items: items}
}

func (idx *Index[T]) detailFor(s topk.Scored[T]) ItemDetail[T] {
	return ItemDetail[T]{
		Item:     s.Item,
		Keywords: idx.itemKeywords[s.Item].Slice(),
		Score:    s.Score,
	}
}

// Stats returns a non-blocking snapshot of index-wide counters.
//
// Behavior:
//   - Point-in-time snapshot; values may be stale the instant a
//     concurrent writer commits
//
// Thread-safety:
//   - Takes the shared lock briefly; does not block on cache internals
//
// Performance:
//   - O(1): both counters are maintained incrementally, not computed by
//     scanning the graph or item index
//
// Returns:
//   - a Stats value with the current item and live-fragment counts
func (idx *Index[T]) Stats() Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return Stats{
		ItemCount:     len(idx.itemKeywords),
		FragmentCount: idx.graph.FragmentCount(),
	}
}

// CacheStats returns a non-blocking snapshot of the walk-result
// cache's counters.
//
// Behavior:
//   - Best-effort and not linearisable with concurrent cache activity;
//     see internal/cache's own documentation of this tradeoff
//
// Thread-safety:
//   - Does not take the Index's own lock: the cache guards its own
//     counters independently, so this is safe to call while a read or
//     write is in flight
//
// Performance:
//   - O(1)
//
// Returns:
//   - a cache.Stats value with hit/miss/eviction/uncacheable counts,
//     current size, and whether the cache is currently enabled
func (idx *Index[T]) CacheStats() cache.Stats {
	return idx.cacheLayer.Stats()
}

func (idx *Index[T]) prepareKeywords(raw string) keyset.Set[string] {
	extracted := idx.cfg.extractor(raw)
	kept := make([]string, 0, len(extracted))
	for _, tok := range extracted {
		norm := idx.cfg.normalizer(tok)
		if len(norm) < idx.cfg.minKeywordLength {
			continue
		}
		kept = append(kept, norm)
	}
	return keyset.FromCollection(kept)
}

func (idx *Index[T]) queryConfig() query.Config {
	return query.Config{
		Extractor:        idx.cfg.extractor,
		Normalizer:       idx.cfg.normalizer,
		MinKeywordLength: idx.cfg.minKeywordLength,
		Unmatched:        idx.cfg.unmatched,
		Merge:            idx.cfg.merge,
	}
}

// scoredResultsLocked runs the query planner. Caller must hold mu (for
// either read or write).
func (idx *Index[T]) scoredResultsLocked(rawQuery string) map[T]float64 {
	scorer := fragment.Scorer(idx.cfg.scorer)
	resolve := func(frag string) map[T]float64 {
		return idx.cacheLayer.GetOrWalk(frag, func() cache.Result[T] {
			return idx.graph.Walk(frag, scorer)
		})
	}
	return query.Plan(context.Background(), rawQuery, idx.queryConfig(), resolve)
}

func mapSeq[T comparable](m map[T]float64) iter.Seq2[T, float64] {
	return func(yield func(T, float64) bool) {
		for k, v := range m {
			if !yield(k, v) {
				return
			}
		}
	}
}
