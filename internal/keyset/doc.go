// Package keyset implements an immutable, copy-on-write collection of
// unique string-like elements.
//
// # Overview
//
// Set is the building block the rest of this module uses wherever it
// needs a small collection of unique keywords or fragments that can be
// handed to a fork-join reduction: the item-keywords index keyed off a
// registered item, and the query planner's halveable token set both use
// it. Reads are O(n) over a contiguous backing slice; writes never
// mutate the receiver and instead return a new Set sharing no state
// with callers that still hold the old one.
//
// # Architecture
//
//	┌─────────────────────────────┐
//	│           Set[T]             │
//	│  elems: []T   (sorted, deduped) │
//	│  hash, hashKnown: cached Hash()  │
//	└─────────────────────────────┘
//	        │                │
//	   Add/Remove         Split
//	   (new Set,          (two independent
//	    old untouched)     halves, no shared backing array)
//
// # Core Components
//
//   - Empty, Singleton, FromCollection, FromUnion: constructors
//   - Add, Remove: copy-on-write mutation, returning the receiver
//     unchanged when the operation is a no-op (element already
//     present / already absent)
//   - Contains, Size, IsEmpty, ForEach, Slice: read-only access
//   - Split: divides into zero, one, or two independent halves for a
//     fork-join reduction
//   - Equal, Hash: order-independent set equality and a cached,
//     order-independent hash
//
// # Representation
//
// A Set wraps a sorted, deduplicated []T. Sorting is not required by
// set semantics, but it makes Equal, Split, and construction from a
// union deterministic and cheap, and it keeps Contains a binary search
// instead of a linear scan. nil or missing-value elements are rejected
// at construction.
//
// # Concurrency and Thread Safety
//
// A Set's elements never change after construction, so a Set is safe
// to share across goroutines without synchronization: Split divides a
// Set into independent halves precisely so a fork-join reduction can
// hand one half to a spawned goroutine and keep the other without any
// locking. The one exception is Hash, which stores its result in the
// receiver on first call; concurrent calls to Hash on the same *Set
// are not synchronized.
//
// # Performance
//
//   - Contains: O(log n) via binary search over the sorted backing
//     slice.
//   - Add, Remove: O(n) to build the new backing slice; returns the
//     receiver unchanged (no allocation) on a no-op.
//   - Split: O(n) to copy into two independent halves.
//   - Hash: O(n) on first call, O(1) thereafter (cached).
package keyset
