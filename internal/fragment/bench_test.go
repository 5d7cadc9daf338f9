package fragment

import (
	"fmt"
	"math/rand"
	"testing"
)

// corpusWords is a small fixed vocabulary registered repeatedly under
// distinct items, giving the graph realistic fan-in at shared
// fragments (cf. geche's bench_test.go keyCardinality approach).
var corpusWords = []string{
	"keyword", "keyboard", "substring", "fragment", "incremental",
	"adaptive", "coordinator", "resolver", "partition", "walker",
}

func buildGraph(itemCount int) *Graph[int] {
	g := New[int]()
	for i := 0; i < itemCount; i++ {
		g.Register(i, corpusWords[i%len(corpusWords)])
	}
	return g
}

func BenchmarkWalkShallow(b *testing.B) {
	g := buildGraph(10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Walk("key", prefixScorer)
	}
}

func BenchmarkWalkDeep(b *testing.B) {
	g := buildGraph(10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Walk("k", prefixScorer)
	}
}

func BenchmarkRegister(b *testing.B) {
	g := New[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Register(i, corpusWords[i%len(corpusWords)]+fmt.Sprint(rand.Intn(1<<20)))
	}
}
