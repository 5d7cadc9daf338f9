package query

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig(unmatched UnmatchedPolicy, merge MergePolicy) Config {
	return Config{
		Extractor:        func(s string) []string { return strings.Fields(s) },
		Normalizer:       strings.ToLower,
		MinKeywordLength: 2,
		Unmatched:        unmatched,
		Merge:            merge,
	}
}

func mapResolver(table map[string]map[string]float64) Resolver[string] {
	return func(fragment string) map[string]float64 {
		if m, ok := table[fragment]; ok {
			return m
		}
		return map[string]float64{}
	}
}

func TestPrepareTokensFiltersAndDedupes(t *testing.T) {
	cfg := testConfig(Exact, Union)
	tokens := PrepareTokens("Go go a GO", cfg)

	assert.Equal(t, 1, tokens.Size(), "'a' is dropped by min length, duplicates collapse")
	assert.True(t, tokens.Contains("go"))
}

func TestResolveTokenExactMissIsFinal(t *testing.T) {
	resolve := mapResolver(map[string]map[string]float64{})
	result := ResolveToken("zzzz", resolve, Exact)
	assert.Empty(t, result)
}

func TestResolveTokenBacktrackingShortensFromBothEnds(t *testing.T) {
	// "keyw" only resolves via dropping the trailing rune of "keywz".
	resolve := mapResolver(map[string]map[string]float64{
		"keyw": {"kw": 2.0},
	})
	result := ResolveToken("keywz", resolve, Backtracking)
	assert.Equal(t, map[string]float64{"kw": 2.0}, result)
}

func TestResolveTokenBacktrackingUnionsBothBranches(t *testing.T) {
	resolve := mapResolver(map[string]map[string]float64{
		"ab": {"left": 1.0},
		"bc": {"right": 3.0, "left": 1.0},
	})
	result := ResolveToken("abc", resolve, Backtracking)
	assert.Equal(t, map[string]float64{"left": 2.0, "right": 3.0}, result)
}

func TestResolveTokenBacktrackingExhaustsToEmpty(t *testing.T) {
	resolve := mapResolver(map[string]map[string]float64{})
	result := ResolveToken("abc", resolve, Backtracking)
	assert.Empty(t, result)
}

func TestCombineUnionSumsAcrossTokens(t *testing.T) {
	resolve := mapResolver(map[string]map[string]float64{
		"red":  {"apple": 1.0, "fire": 2.0},
		"ripe": {"apple": 3.0},
	})
	perToken := func(tok string) map[string]float64 { return ResolveToken(tok, resolve, Exact) }

	tokens := PrepareTokens("red ripe", testConfig(Exact, Union))
	result := Combine(context.Background(), tokens, perToken, Union)

	assert.Equal(t, map[string]float64{"apple": 4.0, "fire": 2.0}, result)
}

func TestCombineIntersectionKeepsOnlySharedItems(t *testing.T) {
	resolve := mapResolver(map[string]map[string]float64{
		"red":  {"apple": 1.0, "fire": 2.0},
		"ripe": {"apple": 3.0},
	})
	perToken := func(tok string) map[string]float64 { return ResolveToken(tok, resolve, Exact) }

	tokens := PrepareTokens("red ripe", testConfig(Exact, Intersection))
	result := Combine(context.Background(), tokens, perToken, Intersection)

	assert.Equal(t, map[string]float64{"apple": 4.0}, result)
}

func TestCombineIntersectionShortCircuitsToEmpty(t *testing.T) {
	resolve := mapResolver(map[string]map[string]float64{
		"red": {"apple": 1.0},
		// "blue" has no entries at all.
	})
	perToken := func(tok string) map[string]float64 { return ResolveToken(tok, resolve, Exact) }

	tokens := PrepareTokens("red blue", testConfig(Exact, Intersection))
	result := Combine(context.Background(), tokens, perToken, Intersection)

	assert.Empty(t, result)
}

func TestCombineEmptyTokenSetYieldsEmpty(t *testing.T) {
	perToken := func(tok string) map[string]float64 { return map[string]float64{} }
	tokens := PrepareTokens("a", testConfig(Exact, Union))
	result := Combine(context.Background(), tokens, perToken, Union)
	assert.Empty(t, result)
}

func TestPlanWiresPrepareAndCombineTogether(t *testing.T) {
	resolve := mapResolver(map[string]map[string]float64{
		"red":  {"apple": 1.0},
		"ripe": {"apple": 3.0},
	})

	result := Plan[string](context.Background(), "red ripe", testConfig(Exact, Union), resolve)
	assert.Equal(t, map[string]float64{"apple": 4.0}, result)
}

func TestCombineManyTokensSplitsRecursively(t *testing.T) {
	table := map[string]map[string]float64{
		"a": {"x": 1},
		"b": {"x": 1},
		"c": {"x": 1},
		"d": {"x": 1},
		"e": {"x": 1},
	}
	resolve := mapResolver(table)
	perToken := func(tok string) map[string]float64 { return ResolveToken(tok, resolve, Exact) }

	cfg := testConfig(Exact, Union)
	cfg.MinKeywordLength = 1
	tokens := PrepareTokens("a b c d e", cfg)

	result := Combine(context.Background(), tokens, perToken, Union)
	assert.Equal(t, map[string]float64{"x": 5}, result)
}
