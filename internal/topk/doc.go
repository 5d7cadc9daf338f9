// Package topk implements a partial top-k selector: given a stream of
// scored elements and a limit k, it returns the k highest-scoring
// elements without sorting the full set.
//
// # Architecture
//
//	            k < smallKThreshold              k >= smallKThreshold
//	    ┌───────────────────────────┐      ┌───────────────────────────┐
//	    │ insertion-sorted []candidate │      │  bounded min-heap          │
//	    │ capacity k, best-to-worst     │      │  (container/heap),         │
//	    │ binary-searched insert point  │      │  worst tenant at the root  │
//	    └───────────────────────────┘      └───────────────────────────┘
//	               both swap the current worst tenant for a strictly
//	               better incoming candidate once the buffer is full
//
// # Policy
//
// Two representations are used depending on k, mirroring the
// small-array-vs-tree switch spec'd for the original implementation:
//
//   - Below smallKThreshold, a capacity-k insertion-sorted slice: each
//     incoming element is inserted in order if there is room, or
//     compared against the current worst tenant and swapped in when
//     strictly better. Cheap for small k, where the O(k) shift cost
//     per insertion is negligible.
//   - At or above smallKThreshold, a bounded min-heap on
//     container/heap, keyed on score with the current minimum at the
//     root. Go's standard library has no balanced tree container, and
//     none of this module's dependencies supply one either, so the
//     heap is the idiomatic stdlib stand-in for "large-k ordered
//     structure" (see DESIGN.md).
//
// Ties preserve first-seen order: every candidate carries the sequence
// number it was observed at, and that sequence number breaks ties in
// both representations.
//
// # Concurrency and Thread Safety
//
// Select is a pure function over its input sequence: it allocates and
// mutates only its own local buffer or heap, never shared state, so
// concurrent calls to Select never interfere with one another. The
// input iter.Seq2 itself is consumed single-threaded by Select — it is
// the caller's responsibility to avoid mutating whatever backs that
// sequence while Select is iterating it.
//
// # Performance
//
//   - Below smallKThreshold: O(log k) to find the insertion point plus
//     O(k) to shift, per candidate that survives; O(1) to reject a
//     candidate that does not beat the current worst tenant.
//   - At or above smallKThreshold: O(log k) per admitted or evicted
//     candidate via container/heap.
//   - Overall, for an input sequence of length n: O(n·k) below
//     smallKThreshold (O(n) since k < 100) and O(n log k) at or above
//     it; every element is compared against the worst tenant at least
//     once.
package topk
