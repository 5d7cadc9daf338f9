package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prefixScorer(queryFragment, storedKeyword string) float64 {
	score := float64(len(queryFragment)) / float64(len(storedKeyword))
	if len(storedKeyword) >= len(queryFragment) && storedKeyword[:len(queryFragment)] == queryFragment {
		score += 1.0
	}
	return score
}

func TestRegisterMaterializesAllPrefixesAndSuffixes(t *testing.T) {
	g := New[string]()
	g.Register("item1", "house")

	for _, frag := range []string{"house", "hous", "ouse", "hou", "ous", "use", "ho", "ou", "us", "se", "h", "o", "u", "s", "e"} {
		assert.Truef(t, g.NodeExists(frag), "expected fragment %q to exist", frag)
	}
}

func TestSubstringReachableByTrimmingFromEitherEnd(t *testing.T) {
	// "bcd" is a substring of "abcde" occurring in the middle, not at
	// either edge. It must still be reachable as a node because both
	// prefixes and suffixes are materialised at every step: "abcd"
	// (drop last char of "abcde") drops its last char to "abc", and
	// drops its first char to "bcd"; "bcde" (drop first char of
	// "abcde") drops its last char to the same "bcd".
	g := New[string]()
	g.Register("x", "abcde")
	assert.True(t, g.NodeExists("abcd"))
	assert.True(t, g.NodeExists("bcde"))
	assert.True(t, g.NodeExists("bcd"))
}

func TestWalkMaxAggregatesAcrossSharedFragment(t *testing.T) {
	g := New[string]()
	g.Register("A", "onex")
	g.Register("B", "one")

	result := g.Walk("on", prefixScorer)
	require.Contains(t, result, "A")
	require.Contains(t, result, "B")
	// "one" is a closer match to "on" than "onex" is.
	assert.Greater(t, result["B"], result["A"])
}

func TestWalkUnknownFragmentReturnsEmpty(t *testing.T) {
	g := New[string]()
	g.Register("A", "hello")
	result := g.Walk("zzz", prefixScorer)
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestUnregisterRemovesOrphanedNodesOnly(t *testing.T) {
	g := New[string]()
	g.Register("A", "cat")
	g.Register("B", "car")
	// "ca" is shared by both "cat" and "car".
	require.True(t, g.NodeExists("ca"))

	g.Unregister("A", "cat")
	assert.False(t, g.NodeExists("cat"))
	assert.False(t, g.NodeExists("at"))
	// "ca" survives: "car" still references it via "car" -> "ca".
	assert.True(t, g.NodeExists("ca"))
	assert.True(t, g.NodeExists("car"))

	g.Unregister("B", "car")
	assert.False(t, g.NodeExists("car"))
	assert.False(t, g.NodeExists("ca"))
	assert.Equal(t, 0, g.FragmentCount())
}

func TestRegisterTwiceIsIdempotent(t *testing.T) {
	g := New[string]()
	g.Register("A", "keyword")
	before := g.FragmentCount()
	g.Register("A", "keyword")
	assert.Equal(t, before, g.FragmentCount())

	result := g.Walk("keyword", prefixScorer)
	assert.Len(t, result, 1)
}

func TestRoundTripAddRemoveRestoresEmptyGraph(t *testing.T) {
	g := New[string]()
	g.Register("A", "onex")
	g.Register("A", "two")
	g.Register("A", "three")

	g.Unregister("A", "onex")
	g.Unregister("A", "two")
	g.Unregister("A", "three")

	assert.Equal(t, 0, g.FragmentCount())
}

func TestWalkSideEffectUpdatesSizeHints(t *testing.T) {
	g := New[string]()
	g.Register("A", "one")
	g.Register("B", "onex")

	_ = g.Walk("on", prefixScorer)
	// The walk from "on" visits "on", "one" and "onex" and scores A and B.
	start := g.nodes[g.index["on"]]
	assert.Equal(t, 2, start.resultHint)
	assert.Equal(t, 3, start.visitedHint)

	// Second walk from the same root should not panic or misbehave
	// now that hints are populated; re-run and check stability.
	result := g.Walk("on", prefixScorer)
	assert.Len(t, result, 2)
}

func TestSingleCharacterKeywordHasNoChildren(t *testing.T) {
	g := New[string]()
	g.Register("A", "x")
	assert.True(t, g.NodeExists("x"))
	assert.Equal(t, 1, g.FragmentCount())
	result := g.Walk("x", prefixScorer)
	assert.Contains(t, result, "A")
}
