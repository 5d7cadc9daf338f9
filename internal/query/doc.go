// Package query implements the planner that turns a raw query string
// into a ranked item list: tokenization and normalisation, per-token
// resolution against the fragment graph (with optional backtracking
// for tokens that miss outright), and a fork-join combination of the
// resulting per-token score maps under a union or intersection merge
// policy.
//
// # Architecture
//
//	raw query
//	    │  PrepareTokens (extract, normalise, length-filter, dedupe)
//	    ▼
//	keyset.Set[string] of tokens
//	    │  Combine: fork-join split over the token set
//	    ▼
//	┌─────────────────┐   ┌─────────────────┐
//	│ ResolveToken(t1)  │   │ ResolveToken(t2)  │   ... one per token,
//	│ EXACT or          │   │ EXACT or          │   halves run on a
//	│ BACKTRACKING       │   │ BACKTRACKING       │   spawned goroutine
//	└─────────────────┘   └─────────────────┘
//	            │                   │
//	            └─────── merge ─────┘
//	                (UNION sum / INTERSECTION sum-with-short-circuit)
//	                         │
//	                         ▼
//	                 map[item]score
//
// # Core Components
//
// PrepareTokens: tokenize once per query
//   - Runs the configured extractor, then the normaliser, over the raw
//     query string, dropping anything shorter than MinKeywordLength
//   - Deduplicates via keyset.Set[string] so a repeated token is
//     resolved and merged only once
//
// ResolveToken: per-token miss recovery
//   - EXACT asks the graph for exactly the prepared token and accepts
//     an empty result
//   - BACKTRACKING, on a miss, retries with the token shortened by one
//     character from either end, recursing until a hit or the token is
//     exhausted, and unions the two shortened branches' results by
//     summing scores — a forgiveness mechanism for trailing typos that
//     never touches edit distance
//
// Combine: the fork-join reduction
//   - UNION sums per-item scores across every token's result map
//   - INTERSECTION keeps only items present in every map, summing their
//     scores, and short-circuits the moment any intermediate result is
//     empty — propagated upward by canceling the context.WithCancel
//     context that Combine shares across the whole fork-join tree, so
//     sibling branches still in flight can stop early (best-effort: already-started work may
//     still complete)
//
// Combination over more than one token is a fork-join reduction over
// the query's token set (internal/keyset), splittable so each
// recursive half can be handed to a spawned goroutine while the other
// is computed in hand.
//
// # Concurrency and Thread Safety
//
// Plan and Combine are safe to call concurrently from multiple
// goroutines: each call builds its own combiner and its own
// context.WithCancel pair, sharing nothing across calls. Within a
// single call, the fork-join tree forks one half per split onto a
// spawned goroutine (via errgroup.Group) and computes the other half
// on the calling goroutine; the two halves' result maps are only ever
// merged after both have returned, so neither half's map is written by
// more than one goroutine.
//
// # Performance
//
//   - PrepareTokens: O(|raw query|) for extraction and normalisation,
//     plus O(n log n) to dedupe n tokens into a keyset.Set.
//   - ResolveToken under EXACT: one Resolver call.
//   - ResolveToken under BACKTRACKING: up to 2^|token| - 1 Resolver
//     calls worst case, since every miss on a token longer than one
//     character recurses into both one-shorter tokens without
//     memoisation.
//   - Combine: O(log n) fork depth over n tokens, each leaf doing one
//     Resolver call; INTERSECTION's short-circuit can terminate
//     sibling branches before they complete their own Resolver calls.
package query
