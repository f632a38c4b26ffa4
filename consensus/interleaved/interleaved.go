// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

/*
Package interleaved implements a higher-order consensus engine that
alternates between two inner engines by block height parity: even heights are
governed by the first engine, odd heights by the second.

The two inner engines keep their own digest types. A header carries a Pair
digest holding both engines' fields; only the field belonging to the engine
whose turn it is carries meaning, the other stays zero-valued. Both
validation and sealing dispatch on parity, so each engine takes its turn for
both operations.
*/
package interleaved

import (
	"errors"

	"github.com/luxfi/chainkit/chain"
	"github.com/luxfi/chainkit/consensus"
)

var errShortPair = errors.New("pair digest too short")

// Pair is the digest of an interleaved chain: both inner engines' digest
// fields side by side. Exactly one side is active for any given header,
// selected by the parity of the header's height.
type Pair[D1, D2 chain.Digest] struct {
	Even D1
	Odd  D2
}

// Bytes implements chain.Digest.
func (p Pair[D1, D2]) Bytes() []byte {
	return append(p.Even.Bytes(), p.Odd.Bytes()...)
}

// PairDecoder builds a decoder for Pair digests from the two sides'
// decoders. evenLen is the byte length of the even side's encoding, which
// must be fixed-width.
func PairDecoder[D1, D2 chain.Digest](
	evenLen int,
	even func([]byte) (D1, error),
	odd func([]byte) (D2, error),
) func([]byte) (Pair[D1, D2], error) {
	return func(b []byte) (Pair[D1, D2], error) {
		if len(b) < evenLen {
			return Pair[D1, D2]{}, errShortPair
		}
		d1, err := even(b[:evenLen])
		if err != nil {
			return Pair[D1, D2]{}, err
		}
		d2, err := odd(b[evenLen:])
		if err != nil {
			return Pair[D1, D2]{}, err
		}
		return Pair[D1, D2]{Even: d1, Odd: d2}, nil
	}
}

// Engine alternates between two inner engines by height parity.
type Engine[D1, D2 chain.Digest] struct {
	even consensus.Engine[D1]
	odd  consensus.Engine[D2]
}

// New returns an interleaving engine: even governs even heights, odd governs
// odd heights.
func New[D1, D2 chain.Digest](even consensus.Engine[D1], odd consensus.Engine[D2]) *Engine[D1, D2] {
	return &Engine[D1, D2]{even: even, odd: odd}
}

// Validate dispatches to the engine whose turn it is and checks only the
// relevant side of the pair, projecting the header down to that engine's
// digest type.
func (e *Engine[D1, D2]) Validate(parentDigest Pair[D1, D2], header chain.Header[Pair[D1, D2]]) bool {
	if header.Height%2 == 0 {
		return e.even.Validate(parentDigest.Even, chain.WithDigest(header, header.ConsensusDigest.Even))
	}
	return e.odd.Validate(parentDigest.Odd, chain.WithDigest(header, header.ConsensusDigest.Odd))
}

// Seal seals with the engine whose turn it is at the partial header's
// height, leaving the inactive side of the pair zero-valued.
func (e *Engine[D1, D2]) Seal(parentDigest Pair[D1, D2], partial chain.Unsealed) (chain.Header[Pair[D1, D2]], bool) {
	if partial.Height%2 == 0 {
		sealed, ok := e.even.Seal(parentDigest.Even, partial)
		if !ok {
			return chain.Header[Pair[D1, D2]]{}, false
		}
		return chain.WithDigest(sealed, Pair[D1, D2]{Even: sealed.ConsensusDigest}), true
	}
	sealed, ok := e.odd.Seal(parentDigest.Odd, partial)
	if !ok {
		return chain.Header[Pair[D1, D2]]{}, false
	}
	return chain.WithDigest(sealed, Pair[D1, D2]{Odd: sealed.ConsensusDigest}), true
}

var _ consensus.Engine[Pair[consensus.Nonce, consensus.Authority]] = (*Engine[consensus.Nonce, consensus.Authority])(nil)
