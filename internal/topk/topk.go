package topk

import (
	"container/heap"
	"iter"
)

// smallKThreshold is the k below which the insertion-sorted slice
// representation is used instead of the heap.
const smallKThreshold = 100

// Scored pairs an arbitrary item with its score.
type Scored[T any] struct {
	Item T
	Score float64
}

// candidate wraps a Scored value with the sequence number it was
// observed at, so ties can preserve first-seen order.
type candidate[T any] struct {
	Scored[T]
	seq int
}

// better reports whether a ranks strictly ahead of b: higher score
// wins, and on an exact tie the one observed first wins.
func better[T any](a, b candidate[T]) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.seq < b.seq
}

// Select returns at most the k highest-scoring elements of seq,
// ordered best-to-worst, without fully sorting the input. k <= 0
// yields nil; an empty seq with k > 0 yields an empty, non-nil slice.
// Negative k is treated as 0.
func Select[T any](seq iter.Seq2[T, float64], k int) []Scored[T] {
	if k < 0 {
		k = 0
	}
	if k == 0 {
		return nil
	}
	if k < smallKThreshold {
		return selectSmall(seq, k)
	}
	return selectHeap(seq, k)
}

// selectSmall maintains a capacity-k buffer kept sorted best-to-worst
// via insertion. O(k) per insertion, which is cheap for small k.
func selectSmall[T any](seq iter.Seq2[T, float64], k int) []Scored[T] {
	buf := make([]candidate[T], 0, k)
	seq_ := 0
	for item, score := range seq {
		c := candidate[T]{Scored: Scored[T]{Item: item, Score: score}, seq: seq_}
		seq_++

		if len(buf) < k {
			pos := insertPos(buf, c)
			buf = append(buf, candidate[T]{})
			copy(buf[pos+1:], buf[pos:len(buf)-1])
			buf[pos] = c
			continue
		}

		worst := buf[len(buf)-1]
		if !better(c, worst) {
			continue
		}
		pos := insertPos(buf[:len(buf)-1], c)
		copy(buf[pos+1:], buf[pos:len(buf)-1])
		buf[pos] = c
	}

	out := make([]Scored[T], len(buf))
	for i, c := range buf {
		out[i] = c.Scored
	}
	return out
}

// insertPos finds the index at which c should be inserted into buf to
// keep it sorted best-to-worst.
func insertPos[T any](buf []candidate[T], c candidate[T]) int {
	lo, hi := 0, len(buf)
	for lo < hi {
		mid := (lo + hi) / 2
		if better(buf[mid], c) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// minHeap is a bounded min-heap of candidates, ordered so the current
// worst tenant sits at the root and can be evicted in O(log k).
type minHeap[T any] []candidate[T]

func (h minHeap[T]) Len() int { return len(h) }
func (h minHeap[T]) Less(i, j int) bool {
	// Root should be the worst candidate, i.e. the one that loses to
	// the other under better().
	return better(h[j], h[i])
}
func (h minHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *minHeap[T]) Push(x any)   { *h = append(*h, x.(candidate[T])) }
func (h *minHeap[T]) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// selectHeap maintains a bounded min-heap of size k: once full, a new
// candidate is admitted only if it beats the current root (worst
// tenant), which is then evicted.
func selectHeap[T any](seq iter.Seq2[T, float64], k int) []Scored[T] {
	h := make(minHeap[T], 0, k)
	seq_ := 0
	for item, score := range seq {
		c := candidate[T]{Scored: Scored[T]{Item: item, Score: score}, seq: seq_}
		seq_++

		if len(h) < k {
			heap.Push(&h, c)
			continue
		}
		if better(c, h[0]) {
			heap.Pop(&h)
			heap.Push(&h, c)
		}
	}

	out := make([]candidate[T], len(h))
	copy(out, h)
	// Sort the <= k survivors best-to-worst; cheap since it never
	// touches the full input stream.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && better(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}

	result := make([]Scored[T], len(out))
	for i, c := range out {
		result[i] = c.Scored
	}
	return result
}
