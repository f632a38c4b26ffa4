// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metered

import (
	"testing"

	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/chainkit/chain"
	"github.com/luxfi/chainkit/consensus"
	"github.com/luxfi/chainkit/consensus/poa"
	"github.com/luxfi/chainkit/consensus/pow"
)

func TestVerdictsPassThrough(t *testing.T) {
	require := require.New(t)

	inner := poa.New([]consensus.Authority{consensus.Bob}, consensus.Bob, log.NoLog{})
	eng := New[consensus.Authority]("test_poa", inner, log.NoLog{})

	partial := chain.Unsealed{Parent: 1, Height: 1}

	sealed, ok := eng.Seal(consensus.Alice, partial)
	innerSealed, innerOK := inner.Seal(consensus.Alice, partial)
	require.Equal(innerOK, ok)
	require.Equal(innerSealed, sealed)

	require.Equal(
		inner.Validate(consensus.Alice, sealed),
		eng.Validate(consensus.Alice, sealed),
	)

	rejected := chain.WithDigest(partial, consensus.Eve)
	require.False(eng.Validate(consensus.Alice, rejected))
	require.Equal(
		inner.Validate(consensus.Alice, rejected),
		eng.Validate(consensus.Alice, rejected),
	)
}

func TestDeclinedSealPassesThrough(t *testing.T) {
	require := require.New(t)

	eng := New[consensus.Nonce]("test_pow", pow.New(0, log.NoLog{}), log.NoLog{})
	_, ok := eng.Seal(0, chain.Unsealed{Height: 1})
	require.False(ok)
}

// The wrapper satisfies the same seal/validate consistency law as any other
// engine.
func TestSealValidateRoundTrip(t *testing.T) {
	require := require.New(t)

	eng := New[consensus.Nonce]("test_roundtrip", pow.ModerateDifficulty(), log.NoLog{})
	sealed, ok := eng.Seal(0, chain.Unsealed{Parent: 3, Height: 1})
	require.True(ok)
	require.True(eng.Validate(0, sealed))
}
