// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package forked

import (
	"github.com/luxfi/log"

	"github.com/luxfi/chainkit/chain"
	"github.com/luxfi/chainkit/consensus"
	"github.com/luxfi/chainkit/consensus/evenonly"
	"github.com/luxfi/chainkit/consensus/poa"
	"github.com/luxfi/chainkit/consensus/pow"
	"github.com/luxfi/chainkit/hashing"
)

// ChangeAuthorities returns a proof-of-authority engine whose authority set
// changes at the fork height. Each era seals as the first authority of its
// set.
func ChangeAuthorities(
	forkHeight uint64,
	initial []consensus.Authority,
	final []consensus.Authority,
) consensus.Engine[consensus.Authority] {
	return mustNew(
		forkHeight,
		poa.New(initial, initial[0], log.NoLog{}),
		Identity[consensus.Authority](),
		poa.New(final, final[0], log.NoLog{}),
		Identity[consensus.Authority](),
	)
}

// ChangeDifficulty returns a proof-of-work engine whose difficulty threshold
// changes at the fork height.
func ChangeDifficulty(
	forkHeight uint64,
	initialThreshold hashing.Hash,
	finalThreshold hashing.Hash,
) consensus.Engine[consensus.Nonce] {
	return mustNew(
		forkHeight,
		pow.New(initialThreshold, log.NoLog{}),
		Identity[consensus.Nonce](),
		pow.New(finalThreshold, log.NoLog{}),
		Identity[consensus.Nonce](),
	)
}

// EvenAfterHeight keeps the original engine's rules but additionally
// requires even state roots from the fork height onward.
func EvenAfterHeight[D chain.Digest](forkHeight uint64, original consensus.Engine[D]) consensus.Engine[D] {
	return mustNew(
		forkHeight,
		original,
		Identity[D](),
		evenonly.New(original),
		Identity[D](),
	)
}

// PowToPoa models a chain that launches under proof of work and hands off to
// proof of authority at the fork height. The digest shape changes at the
// fork, so headers carry the NonceOrAuthority union.
func PowToPoa(
	forkHeight uint64,
	threshold hashing.Hash,
	authorities []consensus.Authority,
) consensus.Engine[NonceOrAuthority] {
	return mustNew(
		forkHeight,
		pow.New(threshold, log.NoLog{}),
		NonceConversion(),
		poa.New(authorities, authorities[0], log.NoLog{}),
		AuthorityConversion(),
	)
}

// mustNew is New for presets whose conversions are total by construction.
func mustNew[B, A, Outer chain.Digest](
	forkHeight uint64,
	before consensus.Engine[B],
	beforeConv Conversion[B, Outer],
	after consensus.Engine[A],
	afterConv Conversion[A, Outer],
) *Engine[B, A, Outer] {
	e, err := New(forkHeight, before, beforeConv, after, afterConv)
	if err != nil {
		panic(err)
	}
	return e
}

var _ consensus.Engine[NonceOrAuthority] = (*Engine[consensus.Nonce, consensus.Authority, NonceOrAuthority])(nil)
