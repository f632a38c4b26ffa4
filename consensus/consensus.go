// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus

import "github.com/luxfi/chainkit/chain"

// Engine validates and seals headers carrying digest type D.
//
// Validate must depend only on the header and the parent digest, never on
// chain-external mutable state, and must be deterministic and
// side-effect-free.
//
// Seal attempts to produce a digest that makes the unsealed header valid
// under this same engine. The false return means no valid digest could be
// produced under current rules; the caller may retry with different inputs or
// treat it as "this author cannot produce a block now".
type Engine[D chain.Digest] interface {
	Validate(parentDigest D, header chain.Header[D]) bool
	Seal(parentDigest D, partial chain.Unsealed) (chain.Header[D], bool)
}

// NextBlock extends parent with the given extrinsics: it executes the batch,
// seals the resulting header with the engine, and pairs header and body into
// the child block. Returns false iff the engine declines to seal.
func NextBlock[D chain.Digest](
	eng Engine[D],
	parent chain.Block[D],
	apply chain.StateTransition,
	extrinsics []uint64,
) (chain.Block[D], bool) {
	sealed, ok := eng.Seal(parent.Header.ConsensusDigest, parent.Child(apply, extrinsics))
	if !ok {
		return chain.Block[D]{}, false
	}
	return chain.Block[D]{Header: sealed, Body: extrinsics}, true
}
