package topk

import (
	"iter"
	"math/rand"
	"testing"
)

func randSeq(n int) iter.Seq2[int, float64] {
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = rand.Float64()
	}
	return func(yield func(int, float64) bool) {
		for i, s := range scores {
			if !yield(i, s) {
				return
			}
		}
	}
}

func BenchmarkSelectSmallK(b *testing.B) {
	seq := randSeq(100000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Select(seq, 10)
	}
}

func BenchmarkSelectAtSmallKThreshold(b *testing.B) {
	seq := randSeq(100000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Select(seq, smallKThreshold)
	}
}

func BenchmarkSelectLargeK(b *testing.B) {
	seq := randSeq(100000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Select(seq, 5000)
	}
}
