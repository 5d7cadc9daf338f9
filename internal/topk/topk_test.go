package topk

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seqOf(pairs [][2]any) iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		for _, p := range pairs {
			if !yield(p[0].(string), p[1].(float64)) {
				return
			}
		}
	}
}

func TestSelectZeroAndNegativeK(t *testing.T) {
	seq := seqOf([][2]any{{"a", 1.0}})
	assert.Nil(t, Select(seq, 0))
	assert.Nil(t, Select(seq, -5))
}

func TestSelectEmptyInput(t *testing.T) {
	seq := seqOf(nil)
	assert.Empty(t, Select(seq, 10))
}

func TestSelectSmallOrdersDescending(t *testing.T) {
	seq := seqOf([][2]any{
		{"a", 3.0}, {"b", 5.0}, {"c", 1.0}, {"d", 4.0},
	})
	got := Select(seq, 10)
	want := []string{"b", "d", "a", "c"}
	var names []string
	for _, s := range got {
		names = append(names, s.Item)
	}
	assert.Equal(t, want, names)
}

func TestSelectSmallTruncatesToK(t *testing.T) {
	seq := seqOf([][2]any{
		{"a", 3.0}, {"b", 5.0}, {"c", 1.0}, {"d", 4.0},
	})
	got := Select(seq, 2)
	assert.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Item)
	assert.Equal(t, "d", got[1].Item)
}

func TestSelectTiesPreserveFirstSeenOrder(t *testing.T) {
	seq := seqOf([][2]any{
		{"first", 2.0}, {"second", 2.0}, {"third", 2.0},
	})
	got := Select(seq, 10)
	var names []string
	for _, s := range got {
		names = append(names, s.Item)
	}
	assert.Equal(t, []string{"first", "second", "third"}, names)
}

func TestSelectHeapPathMatchesSmallPath(t *testing.T) {
	const n = 250
	pairs := make([][2]any, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, [2]any{string(rune('A' + i%26)) + string(rune(i)), float64(n - i)})
	}

	gotHeap := Select(seqOf(pairs), 150)
	gotSmall := Select(seqOf(pairs), 99)

	assert.Len(t, gotHeap, 150)
	assert.Len(t, gotSmall, 99)
	assert.Equal(t, gotSmall, gotHeap[:len(gotSmall)])
	// Heap-path result must still be sorted best-to-worst.
	for i := 1; i < len(gotHeap); i++ {
		assert.GreaterOrEqual(t, gotHeap[i-1].Score, gotHeap[i].Score)
	}
}
