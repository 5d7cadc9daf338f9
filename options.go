package qsearch

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nullstate/qsearch/internal/query"
)

// Extractor turns a raw query or keyword string into a set of tokens.
type Extractor func(string) []string

// Normalizer canonicalises a single token. Returning "" drops the
// token from consideration.
type Normalizer func(string) string

// Scorer assigns a numeric score to a (query-fragment, stored-keyword)
// pair. A panicking Scorer propagates unchanged to the caller of the
// find that triggered it.
type Scorer func(queryFragment, storedKeyword string) float64

// config holds the resolved, validated tunables for an Index.
type config struct {
	extractor        Extractor
	normalizer       Normalizer
	scorer           Scorer
	minKeywordLength int
	unmatched        query.UnmatchedPolicy
	merge            query.MergePolicy
	cacheByteBudget  int
}

// Option configures an Index at construction time.
type Option func(*config)

// WithExtractor overrides the default token extractor (which splits on
// runs of non-word characters).
func WithExtractor(fn Extractor) Option {
	return func(c *config) { c.extractor = fn }
}

// WithNormalizer overrides the default normaliser (lower-casing).
func WithNormalizer(fn Normalizer) Option {
	return func(c *config) { c.normalizer = fn }
}

// WithScorer overrides the default match scorer.
func WithScorer(fn Scorer) Option {
	return func(c *config) { c.scorer = fn }
}

// WithMinKeywordLength sets the minimum accepted keyword length
// (default 2); shorter tokens are silently dropped.
func WithMinKeywordLength(n int) Option {
	return func(c *config) { c.minKeywordLength = n }
}

// WithUnmatchedPolicy sets the per-token miss-recovery policy (default
// Backtracking).
func WithUnmatchedPolicy(p query.UnmatchedPolicy) Option {
	return func(c *config) { c.unmatched = p }
}

// WithMergePolicy sets the cross-token combination policy (default
// Union).
func WithMergePolicy(p query.MergePolicy) Option {
	return func(c *config) { c.merge = p }
}

// WithCacheByteBudget sets the walk-result cache's byte budget. 0
// disables caching permanently; a negative value (or math.MaxInt) is
// effectively unlimited.
func WithCacheByteBudget(n int) Option {
	return func(c *config) { c.cacheByteBudget = n }
}

func defaultExtractor(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func defaultNormalizer(s string) string {
	return strings.ToLower(s)
}

// defaultScorer rewards exact-prefix matches with a flat +1.0 boost on
// top of a length-ratio base score.
func defaultScorer(queryFragment, storedKeyword string) float64 {
	score := float64(len(queryFragment)) / float64(len(storedKeyword))
	if strings.HasPrefix(storedKeyword, queryFragment) {
		score += 1.0
	}
	return score
}

func defaultConfig() config {
	return config{
		extractor:        defaultExtractor,
		normalizer:       defaultNormalizer,
		scorer:           defaultScorer,
		minKeywordLength: 2,
		unmatched:        query.Backtracking,
		merge:            query.Union,
		cacheByteBudget:  -1,
	}
}

// validate probes the extractor, normaliser and scorer with sentinel
// inputs, the way the teacher's constructors sanity-check their
// arguments before committing to them. A panic from any probed
// function, or an extractor/normaliser returning nil/empty where the
// caller plainly handed it real input, aborts construction.
func (c config) validate() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: probe panicked: %v", ErrInvalidArgument, r)
		}
	}()

	if c.minKeywordLength < 1 {
		return fmt.Errorf("%w: minKeywordLength must be >= 1, got %d", ErrInvalidArgument, c.minKeywordLength)
	}

	if c.extractor == nil {
		return fmt.Errorf("%w: extractor must not be nil", ErrInvalidArgument)
	}
	_ = c.extractor("")
	if toks := c.extractor("ab"); len(toks) == 0 {
		return fmt.Errorf("%w: extractor rejected sentinel input \"ab\"", ErrInvalidArgument)
	}

	if c.normalizer == nil {
		return fmt.Errorf("%w: normalizer must not be nil", ErrInvalidArgument)
	}
	_ = c.normalizer("")
	if norm := c.normalizer("ab"); norm == "" {
		return fmt.Errorf("%w: normalizer dropped sentinel input \"ab\"", ErrInvalidArgument)
	}

	if c.scorer == nil {
		return fmt.Errorf("%w: scorer must not be nil", ErrInvalidArgument)
	}
	_ = c.scorer("ab", "abc")

	return nil
}
