package keyset

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/slices"
)

func compareT[T ~string](a, b T) int {
	return strings.Compare(string(a), string(b))
}

// Set is an immutable, copy-on-write collection of unique elements of
// type T. The zero value is not a valid Set; use Empty.
type Set[T ~string] struct {
	elems []T

	// hash caches Hash's result. Computed lazily on first call and
	// reused for the lifetime of the Set, since the backing slice
	// never changes after construction.
	hash      uint64
	hashKnown bool
}

// Empty returns the empty Set.
func Empty[T ~string]() Set[T] {
	return Set[T]{}
}

// Singleton returns a Set containing only x. An empty x yields Empty.
func Singleton[T ~string](x T) Set[T] {
	if x == "" {
		return Empty[T]()
	}
	return Set[T]{elems: []T{x}}
}

// FromCollection builds a Set from xs, discarding duplicates. Empty
// string elements are dropped: spec treats "null"/missing-value
// elements as forbidden.
func FromCollection[T ~string](xs []T) Set[T] {
	if len(xs) == 0 {
		return Empty[T]()
	}

	filtered := make([]T, 0, len(xs))
	for _, x := range xs {
		if x == "" {
			continue
		}
		filtered = append(filtered, x)
	}
	if len(filtered) == 0 {
		return Empty[T]()
	}

	slices.SortFunc(filtered, compareT[T])

	out := filtered[:1]
	for _, x := range filtered[1:] {
		if out[len(out)-1] != x {
			out = append(out, x)
		}
	}
	return Set[T]{elems: out}
}

// FromUnion builds the union of xs and ys as a single Set.
func FromUnion[T ~string](xs, ys Set[T]) Set[T] {
	merged := make([]T, 0, xs.Size()+ys.Size())
	merged = append(merged, xs.elems...)
	merged = append(merged, ys.elems...)
	return FromCollection(merged)
}

// Size returns the number of elements in s.
func (s Set[T]) Size() int { return len(s.elems) }

// IsEmpty reports whether s has no elements.
func (s Set[T]) IsEmpty() bool { return len(s.elems) == 0 }

// Contains reports whether x is a member of s.
func (s Set[T]) Contains(x T) bool {
	_, found := slices.BinarySearchFunc(s.elems, x, compareT[T])
	return found
}

// Add returns a new Set with x inserted. If x is already present, s is
// returned unchanged (no new allocation).
func (s Set[T]) Add(x T) Set[T] {
	if x == "" || s.Contains(x) {
		return s
	}
	out := make([]T, 0, len(s.elems)+1)
	inserted := false
	for _, e := range s.elems {
		if !inserted && x < e {
			out = append(out, x)
			inserted = true
		}
		out = append(out, e)
	}
	if !inserted {
		out = append(out, x)
	}
	return Set[T]{elems: out}
}

// Remove returns a new Set with x removed. If x is absent, s is
// returned unchanged. Removing the last element yields Empty.
func (s Set[T]) Remove(x T) Set[T] {
	if !s.Contains(x) {
		return s
	}
	if len(s.elems) == 1 {
		return Empty[T]()
	}
	out := make([]T, 0, len(s.elems)-1)
	for _, e := range s.elems {
		if e != x {
			out = append(out, e)
		}
	}
	return Set[T]{elems: out}
}

// ForEach calls fn for every element of s in sorted order.
func (s Set[T]) ForEach(fn func(T)) {
	for _, e := range s.elems {
		fn(e)
	}
}

// Slice returns a copy of s's elements in sorted order. Callers must
// not rely on the returned slice being the same backing array as any
// other Set derived from s.
func (s Set[T]) Slice() []T {
	out := make([]T, len(s.elems))
	copy(out, s.elems)
	return out
}

// Split divides s into zero, one, or two roughly equal halves, usable
// as independent work units for a fork-join reduction. The halves
// never share a backing array with s or with each other.
func (s Set[T]) Split() []Set[T] {
	switch n := len(s.elems); {
	case n == 0:
		return nil
	case n == 1:
		return []Set[T]{{elems: []T{s.elems[0]}}}
	default:
		mid := n / 2
		left := make([]T, mid)
		right := make([]T, n-mid)
		copy(left, s.elems[:mid])
		copy(right, s.elems[mid:])
		return []Set[T]{{elems: left}, {elems: right}}
	}
}

// Equal reports whether s and o contain exactly the same elements,
// independent of insertion order.
func (s Set[T]) Equal(o Set[T]) bool {
	if len(s.elems) != len(o.elems) {
		return false
	}
	for i, e := range s.elems {
		if o.elems[i] != e {
			return false
		}
	}
	return true
}

// Hash returns an order-independent hash of s's elements, computed once
// and cached for the lifetime of the Set.
func (s *Set[T]) Hash() uint64 {
	if s.hashKnown {
		return s.hash
	}
	var h uint64
	for _, e := range s.elems {
		h ^= xxhash.Sum64String(string(e))
	}
	s.hash = h
	s.hashKnown = true
	return h
}
