// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "github.com/luxfi/chainkit/hashing"

// StateTransition folds an ordered batch of extrinsics into a new state
// value. Implementations must be deterministic: called twice with identical
// inputs, they must produce identical outputs. The framework supplies
// AdditiveTransition; anything satisfying the determinism contract works.
type StateTransition func(state hashing.Hash, extrinsics []uint64) hashing.Hash

// AdditiveTransition is the default state transition: the new state is the
// prior state plus the sum of the extrinsics.
func AdditiveTransition(state hashing.Hash, extrinsics []uint64) hashing.Hash {
	for _, e := range extrinsics {
		state += e
	}
	return state
}

// Block is a header together with the ordered body of extrinsics it commits
// to.
type Block[D Digest] struct {
	Header Header[D]
	Body   []uint64
}

// GenesisBlock returns the canonical genesis block. By convention it has no
// extrinsics.
func GenesisBlock[D Digest]() Block[D] {
	return Block[D]{Header: Genesis[D]()}
}

// Child builds the unsealed child header for the given batch of extrinsics:
// it executes the batch against b's state and commits to the batch and the
// resulting state. The caller seals the returned header with whichever
// consensus engine is in play and pairs it with the body to form the child
// block.
func (b Block[D]) Child(apply StateTransition, extrinsics []uint64) Unsealed {
	return Unsealed{
		Parent:         HashHeader(b.Header),
		Height:         b.Header.Height + 1,
		StateRoot:      apply(b.Header.StateRoot, extrinsics),
		ExtrinsicsRoot: hashing.Sum64Uints(extrinsics),
	}
}

// VerifyChild reports whether child correctly extends b. On top of the
// header linkage checks, the child's body must hash to its extrinsics root
// and must reproduce the child's claimed state when executed against b's
// state.
func (b Block[D]) VerifyChild(apply StateTransition, child Block[D]) bool {
	if !b.Header.VerifyChild(child.Header) {
		return false
	}
	if child.Header.ExtrinsicsRoot != hashing.Sum64Uints(child.Body) {
		return false
	}
	return child.Header.StateRoot == apply(b.Header.StateRoot, child.Body)
}

// VerifySubChain reports whether the given blocks form a valid chain
// extending b, re-executing every body along the way. It returns false on
// the first failing pair. An empty continuation is trivially valid.
func (b Block[D]) VerifySubChain(apply StateTransition, sub []Block[D]) bool {
	prev := b
	for _, next := range sub {
		if !prev.VerifyChild(apply, next) {
			return false
		}
		prev = next
	}
	return true
}
