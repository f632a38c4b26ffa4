// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

/*
Package forkchoice picks the best of several candidate chains.

A Rule compares two header chains that need not be related: they may have
different genesis blocks, or be only the divergent tails of sibling chains
back to their last common ancestor. Chains are assumed already valid; callers
unsure of validity must verify first.

BestChain folds the rule's pairwise comparison over any number of candidates.
A rule may provide its own single-pass BestChain when the fold would repeat
work; BestChain picks it up automatically.
*/
package forkchoice

import (
	"github.com/luxfi/chainkit/chain"
	"github.com/luxfi/chainkit/hashing"
)

// Rule compares two candidate chains and reports whether the first is at
// least as good as the second. Tie semantics are rule-specific.
type Rule[D chain.Digest] interface {
	FirstIsBetter(first, second []chain.Header[D]) bool
}

// BestChain returns the best of the candidate chains under the rule,
// folding pairwise comparisons left to right: the incumbent is kept unless a
// later candidate beats it. Returns nil for no candidates.
//
// Rules implementing their own BestChain method with this same signature are
// dispatched to directly.
func BestChain[D chain.Digest](rule Rule[D], candidates [][]chain.Header[D]) []chain.Header[D] {
	if len(candidates) == 0 {
		return nil
	}
	if sp, ok := rule.(interface {
		BestChain(candidates [][]chain.Header[D]) []chain.Header[D]
	}); ok {
		return sp.BestChain(candidates)
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if !rule.FirstIsBetter(best, c) {
			best = c
		}
	}
	return best
}

// LongestChain prefers the chain with strictly more headers. Ties favor the
// first argument.
type LongestChain[D chain.Digest] struct{}

// FirstIsBetter implements Rule.
func (LongestChain[D]) FirstIsBetter(first, second []chain.Header[D]) bool {
	return len(first) >= len(second)
}

// BestChain is the single-pass form: one length check per candidate instead
// of a pairwise fold.
func (LongestChain[D]) BestChain(candidates [][]chain.Header[D]) []chain.Header[D] {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}

// HeaviestChain prefers the chain with the most accumulated work. A header's
// work is Threshold minus its commitment hash: the lower the hash, the more
// nonces were tried on average to find it. Headers hashing at or above the
// threshold carry no work. Ties favor the first argument.
type HeaviestChain[D chain.Digest] struct {
	Threshold hashing.Hash
}

// FirstIsBetter implements Rule.
func (r HeaviestChain[D]) FirstIsBetter(first, second []chain.Header[D]) bool {
	return r.weight(first) >= r.weight(second)
}

// BestChain is the single-pass form: each candidate's weight is computed
// once.
func (r HeaviestChain[D]) BestChain(candidates [][]chain.Header[D]) []chain.Header[D] {
	if len(candidates) == 0 {
		return nil
	}
	best, bestWeight := candidates[0], r.weight(candidates[0])
	for _, c := range candidates[1:] {
		if w := r.weight(c); w > bestWeight {
			best, bestWeight = c, w
		}
	}
	return best
}

func (r HeaviestChain[D]) weight(headers []chain.Header[D]) uint64 {
	var total uint64
	for _, h := range headers {
		if hash := chain.HashHeader(h); hash < r.Threshold {
			total += r.Threshold - hash
		}
	}
	return total
}

// MostEvenHashes prefers the chain with more headers whose commitment hash
// is even. Unlike the other rules, ties do not favor the first argument: the
// first chain must be strictly better.
type MostEvenHashes[D chain.Digest] struct{}

// FirstIsBetter implements Rule.
func (MostEvenHashes[D]) FirstIsBetter(first, second []chain.Header[D]) bool {
	return countEven(first) > countEven(second)
}

func countEven[D chain.Digest](headers []chain.Header[D]) int {
	n := 0
	for _, h := range headers {
		if chain.HashHeader(h)&1 == 0 {
			n++
		}
	}
	return n
}

var (
	_ Rule[chain.Empty] = LongestChain[chain.Empty]{}
	_ Rule[chain.Empty] = HeaviestChain[chain.Empty]{}
	_ Rule[chain.Empty] = MostEvenHashes[chain.Empty]{}
)
