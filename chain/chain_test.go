// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/chainkit/hashing"
)

// childBlock extends b without a consensus seal. The chain package is
// engine-agnostic, so linkage and execution tests run entirely on unsealed
// headers.
func childBlock(b Block[Empty], extrinsics []uint64) Block[Empty] {
	return Block[Empty]{
		Header: b.Child(AdditiveTransition, extrinsics),
		Body:   extrinsics,
	}
}

func TestGenesisHeader(t *testing.T) {
	require := require.New(t)

	g := Genesis[Empty]()
	require.Zero(g.Height)
	require.Zero(g.Parent)
	require.Zero(g.StateRoot)
	require.Zero(g.ExtrinsicsRoot)
}

func TestGenesisBlock(t *testing.T) {
	require := require.New(t)

	gb := GenesisBlock[Empty]()
	require.Equal(Genesis[Empty](), gb.Header)
	require.Empty(gb.Body)
}

func TestChildHeader(t *testing.T) {
	require := require.New(t)

	g := GenesisBlock[Empty]()
	h1 := g.Child(AdditiveTransition, []uint64{1, 2, 3})

	require.Equal(uint64(1), h1.Height)
	require.Equal(HashHeader(g.Header), h1.Parent)
	require.Equal(hashing.Sum64Uints([]uint64{1, 2, 3}), h1.ExtrinsicsRoot)
	require.Equal(hashing.Hash(6), h1.StateRoot)

	b1 := Block[Empty]{Header: h1, Body: []uint64{1, 2, 3}}
	h2 := b1.Child(AdditiveTransition, []uint64{10, 20})

	require.Equal(uint64(2), h2.Height)
	require.Equal(HashHeader(h1), h2.Parent)
	require.Equal(hashing.Hash(36), h2.StateRoot)
}

func TestChildBlockEmptyBody(t *testing.T) {
	require := require.New(t)

	g := GenesisBlock[Empty]()
	b1 := childBlock(g, nil)

	require.Equal(uint64(1), b1.Header.Height)
	require.Equal(HashHeader(g.Header), b1.Header.Parent)
	require.Zero(b1.Header.StateRoot)
	require.True(g.VerifyChild(AdditiveTransition, b1))
}

func TestVerifyThreeBlocks(t *testing.T) {
	require := require.New(t)

	g := GenesisBlock[Empty]()
	b1 := childBlock(g, []uint64{1})
	b2 := childBlock(b1, []uint64{2})

	require.True(g.VerifySubChain(AdditiveTransition, []Block[Empty]{b1, b2}))
	require.True(g.Header.VerifySubChain([]Header[Empty]{b1.Header, b2.Header}))
}

func TestVerifySubChainEmpty(t *testing.T) {
	require := require.New(t)

	g := GenesisBlock[Empty]()
	require.True(g.VerifySubChain(AdditiveTransition, nil))
	require.True(g.Header.VerifySubChain(nil))
}

func TestInvalidHeaderDoesNotCheck(t *testing.T) {
	require := require.New(t)

	g := Genesis[Empty]()
	h := Header[Empty]{Height: 100, StateRoot: 100}

	require.False(g.VerifyChild(h))
}

func TestInvalidBlockStateDoesNotCheck(t *testing.T) {
	require := require.New(t)

	g := GenesisBlock[Empty]()
	b1 := childBlock(g, []uint64{1, 2, 3})
	b1.Body = nil

	require.False(g.VerifySubChain(AdditiveTransition, []Block[Empty]{b1}))
}

func TestBlockWithInvalidHeaderDoesNotCheck(t *testing.T) {
	require := require.New(t)

	g := GenesisBlock[Empty]()
	b1 := childBlock(g, []uint64{1, 2, 3})
	b1.Header = Genesis[Empty]()

	require.False(g.VerifySubChain(AdditiveTransition, []Block[Empty]{b1}))
}

// A header can be valid under linkage rules while the block carrying it is
// invalid: header checks never execute the body.
func TestValidHeaderInvalidBlock(t *testing.T) {
	require := require.New(t)

	g := GenesisBlock[Empty]()
	invalid := Block[Empty]{
		Header: Header[Empty]{
			Parent:    HashHeader(g.Header),
			Height:    1,
			StateRoot: ^hashing.Hash(0),
		},
	}

	require.True(g.Header.VerifyChild(invalid.Header))
	require.False(g.VerifySubChain(AdditiveTransition, []Block[Empty]{invalid}))
}

func TestVerifyFailsMidChain(t *testing.T) {
	require := require.New(t)

	g := GenesisBlock[Empty]()
	b1 := childBlock(g, []uint64{1})
	b2 := childBlock(b1, []uint64{2})
	b3 := childBlock(b2, []uint64{3})
	b2.Body = []uint64{7}

	require.False(g.VerifySubChain(AdditiveTransition, []Block[Empty]{b1, b2, b3}))
}

func TestWithDigestPreservesFields(t *testing.T) {
	require := require.New(t)

	g := GenesisBlock[Empty]()
	u := g.Child(AdditiveTransition, []uint64{5})
	h := WithDigest(u, Empty{})

	require.Equal(u.Parent, h.Parent)
	require.Equal(u.Height, h.Height)
	require.Equal(u.StateRoot, h.StateRoot)
	require.Equal(u.ExtrinsicsRoot, h.ExtrinsicsRoot)
}

func TestHeaderBytesDeterministic(t *testing.T) {
	require := require.New(t)

	h := Header[Empty]{Parent: 1, Height: 2, StateRoot: 3, ExtrinsicsRoot: 4}
	require.Equal(h.Bytes(), h.Bytes())

	h2 := h
	h2.Height = 5
	require.NotEqual(HashHeader(h), HashHeader(h2))
}
