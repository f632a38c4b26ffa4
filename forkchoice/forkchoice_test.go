// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package forkchoice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/chainkit/chain"
	"github.com/luxfi/chainkit/consensus"
	"github.com/luxfi/chainkit/hashing"
)

const threshold = uint64(math.MaxUint64 / 100)

type headerChain = []chain.Header[consensus.Nonce]

// buildChain extends parent with n linked headers, fixing each header's
// nonce with fix before linking the next one.
func buildChain(parent chain.Header[consensus.Nonce], n int, fix func(*chain.Header[consensus.Nonce])) headerChain {
	out := make(headerChain, 0, n)
	for i := 0; i < n; i++ {
		h := chain.Header[consensus.Nonce]{
			Parent:    chain.HashHeader(parent),
			Height:    parent.Height + 1,
			StateRoot: parent.StateRoot + 1,
		}
		if fix != nil {
			fix(&h)
		}
		out = append(out, h)
		parent = h
	}
	return out
}

// mineBelow finds the first nonce bringing the header's hash under the
// threshold.
func mineBelow(h *chain.Header[consensus.Nonce]) {
	for chain.HashHeader(*h) >= threshold {
		h.ConsensusDigest++
	}
}

// mineParity finds the first nonce giving the header's hash the requested
// parity.
func mineParity(even bool) func(*chain.Header[consensus.Nonce]) {
	want := hashing.Hash(1)
	if even {
		want = 0
	}
	return func(h *chain.Header[consensus.Nonce]) {
		for chain.HashHeader(*h)&1 != want {
			h.ConsensusDigest++
		}
	}
}

func TestLongestChainPrefersMoreHeaders(t *testing.T) {
	require := require.New(t)

	// Two disjoint histories: different genesis blocks, no shared ancestry.
	longer := buildChain(chain.Genesis[consensus.Nonce](), 3, nil)
	other := chain.Header[consensus.Nonce]{StateRoot: 99}
	shorter := buildChain(other, 2, nil)

	rule := LongestChain[consensus.Nonce]{}
	require.True(rule.FirstIsBetter(longer, shorter))
	require.False(rule.FirstIsBetter(shorter, longer))
	// Ties favor the first argument.
	require.True(rule.FirstIsBetter(shorter, shorter))

	best := BestChain[consensus.Nonce](rule, []headerChain{shorter, longer})
	require.Equal(longer, best)
}

func TestLongestChainSinglePassKeepsIncumbentOnTie(t *testing.T) {
	require := require.New(t)

	a := buildChain(chain.Genesis[consensus.Nonce](), 2, nil)
	b := buildChain(chain.Header[consensus.Nonce]{StateRoot: 7}, 2, nil)

	rule := LongestChain[consensus.Nonce]{}
	require.Equal(a, BestChain[consensus.Nonce](rule, []headerChain{a, b}))
	require.Equal(b, BestChain[consensus.Nonce](rule, []headerChain{b, a}))
}

func TestHeaviestChainPrefersMoreWork(t *testing.T) {
	require := require.New(t)

	genesis := chain.Genesis[consensus.Nonce]()

	// Two one-header extensions of the same genesis: one mined below the
	// threshold, one deliberately left above it.
	mined := buildChain(genesis, 1, mineBelow)
	unmined := buildChain(genesis, 1, func(h *chain.Header[consensus.Nonce]) {
		for chain.HashHeader(*h) < threshold {
			h.ConsensusDigest++
		}
	})

	rule := HeaviestChain[consensus.Nonce]{Threshold: threshold}
	require.True(rule.FirstIsBetter(mined, unmined))
	require.False(rule.FirstIsBetter(unmined, mined))

	require.Equal(mined, BestChain[consensus.Nonce](rule, []headerChain{unmined, mined}))
}

func TestHeaviestChainAccumulatesAcrossHeaders(t *testing.T) {
	require := require.New(t)

	genesis := chain.Genesis[consensus.Nonce]()
	heavy := buildChain(genesis, 3, func(h *chain.Header[consensus.Nonce]) {
		// Mine an order of magnitude harder than required.
		for chain.HashHeader(*h) >= threshold/10 {
			h.ConsensusDigest++
		}
	})
	light := buildChain(genesis, 3, mineBelow)

	rule := HeaviestChain[consensus.Nonce]{Threshold: threshold}
	require.True(rule.FirstIsBetter(heavy, light))
	require.Equal(heavy, BestChain[consensus.Nonce](rule, []headerChain{light, heavy}))
}

func TestMostEvenHashes(t *testing.T) {
	require := require.New(t)

	genesis := chain.Genesis[consensus.Nonce]()
	allEven := buildChain(genesis, 3, mineParity(true))
	i := 0
	oneEven := buildChain(genesis, 3, func(h *chain.Header[consensus.Nonce]) {
		mineParity(i == 0)(h)
		i++
	})

	rule := MostEvenHashes[consensus.Nonce]{}
	require.True(rule.FirstIsBetter(allEven, oneEven))
	require.False(rule.FirstIsBetter(oneEven, allEven))
	// Strict comparison: a chain is never better than itself.
	require.False(rule.FirstIsBetter(allEven, allEven))

	require.Equal(allEven, BestChain[consensus.Nonce](rule, []headerChain{oneEven, allEven}))
}

func TestBestChainNoCandidates(t *testing.T) {
	require := require.New(t)

	require.Nil(BestChain[consensus.Nonce](LongestChain[consensus.Nonce]{}, nil))
	require.Nil(BestChain[consensus.Nonce](MostEvenHashes[consensus.Nonce]{}, nil))
}

func TestBestChainFoldKeepsIncumbentOnEvenTie(t *testing.T) {
	require := require.New(t)

	genesis := chain.Genesis[consensus.Nonce]()
	a := buildChain(genesis, 2, mineParity(true))
	b := buildChain(chain.Header[consensus.Nonce]{StateRoot: 55}, 2, mineParity(true))

	// Equal even-hash counts: the strict rule reports neither as better, so
	// the fold moves off the incumbent.
	rule := MostEvenHashes[consensus.Nonce]{}
	require.Equal(b, BestChain[consensus.Nonce](rule, []headerChain{a, b}))
}
