package query

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nullstate/qsearch/internal/keyset"
)

// Resolver answers a single prepared token (or backtracked fragment of
// one) with a per-item score map. The coordinator supplies this,
// typically closing over an AdaptiveCache in front of a fragment Graph.
type Resolver[T comparable] func(fragment string) map[T]float64

// Config carries the planner's tunables. All fields are required; the
// coordinator fills them from its own options before calling Plan.
type Config struct {
	Extractor        func(string) []string
	Normalizer       func(string) string
	MinKeywordLength int
	Unmatched        UnmatchedPolicy
	Merge            MergePolicy
}

// PrepareTokens extracts, normalises, length-filters and deduplicates
// the tokens of a raw query string.
func PrepareTokens(raw string, cfg Config) keyset.Set[string] {
	extracted := cfg.Extractor(raw)
	kept := make([]string, 0, len(extracted))
	for _, tok := range extracted {
		norm := cfg.Normalizer(tok)
		if len(norm) < cfg.MinKeywordLength {
			continue
		}
		kept = append(kept, norm)
	}
	return keyset.FromCollection(kept)
}

// Plan prepares raw, resolves every token through resolve and combines
// the per-token results under cfg's merge policy. An empty token set
// (raw held nothing admissible) yields an empty result.
func Plan[T comparable](ctx context.Context, raw string, cfg Config, resolve Resolver[T]) map[T]float64 {
	tokens := PrepareTokens(raw, cfg)
	if tokens.IsEmpty() {
		return map[T]float64{}
	}

	perToken := func(token string) map[T]float64 {
		return ResolveToken(token, resolve, cfg.Unmatched)
	}
	return Combine(ctx, tokens, perToken, cfg.Merge)
}

// ResolveToken resolves a single token. Under Exact, a miss is final.
// Under Backtracking, a miss on a token longer than one character
// retries with the token shortened by one character from either end,
// recursively, and unions the two shortened branches' results by
// summing scores.
func ResolveToken[T comparable](token string, resolve Resolver[T], policy UnmatchedPolicy) map[T]float64 {
	if result := resolve(token); len(result) > 0 {
		return copyScores(result)
	}
	if policy == Exact || len(token) <= 1 {
		return map[T]float64{}
	}

	left := ResolveToken(token[:len(token)-1], resolve, policy)
	right := ResolveToken(token[1:], resolve, policy)
	if len(left) == 0 && len(right) == 0 {
		return map[T]float64{}
	}
	return unionSum(left, right)
}

// Combine reduces tokens' per-token results into one score map under
// merge, forking half the work to a goroutine at every split. Under
// Intersection, discovering an empty intermediate result cancels the
// shared context so sibling branches still in flight can stop early;
// cancellation is best-effort, not a correctness requirement, since an
// already-canceled branch simply returns empty.
func Combine[T comparable](parent context.Context, tokens keyset.Set[string], resolve func(string) map[T]float64, merge MergePolicy) map[T]float64 {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	c := &combiner[T]{resolve: resolve, merge: merge, cancel: cancel}
	return c.combine(ctx, tokens)
}

type combiner[T comparable] struct {
	resolve func(string) map[T]float64
	merge   MergePolicy
	cancel  context.CancelFunc
}

func (c *combiner[T]) combine(ctx context.Context, tokens keyset.Set[string]) map[T]float64 {
	if ctx.Err() != nil {
		return map[T]float64{}
	}

	switch tokens.Size() {
	case 0:
		return map[T]float64{}
	case 1:
		result := c.resolve(tokens.Slice()[0])
		if c.merge == Intersection && len(result) == 0 {
			c.cancel()
		}
		return result
	}

	halves := tokens.Split()

	var g errgroup.Group
	var left map[T]float64
	g.Go(func() error {
		left = c.combine(ctx, halves[0])
		return nil
	})
	right := c.combine(ctx, halves[1])
	_ = g.Wait()

	if c.merge == Intersection {
		if len(left) == 0 || len(right) == 0 {
			c.cancel()
			return map[T]float64{}
		}
		return intersectSum(left, right)
	}
	return unionSum(left, right)
}

func copyScores[T comparable](m map[T]float64) map[T]float64 {
	out := make(map[T]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func unionSum[T comparable](a, b map[T]float64) map[T]float64 {
	out := make(map[T]float64, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] += v
	}
	return out
}

func intersectSum[T comparable](a, b map[T]float64) map[T]float64 {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	out := make(map[T]float64, len(small))
	for k, v := range small {
		if lv, ok := large[k]; ok {
			out[k] = v + lv
		}
	}
	return out
}
