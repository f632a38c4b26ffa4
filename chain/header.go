// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"encoding/binary"

	"github.com/luxfi/chainkit/hashing"
)

// Digest is the constraint satisfied by every consensus digest type. A digest
// must be comparable, so engines can match it exactly, and must have a
// deterministic byte encoding, so it can be committed to as part of its
// header.
type Digest interface {
	comparable
	Bytes() []byte
}

// Empty is the digest of an unsealed header. Sealing replaces it with the
// engine's digest type.
type Empty struct{}

// Bytes implements Digest.
func (Empty) Bytes() []byte { return nil }

// Header links a block into the chain and commits to its body and resulting
// state.
type Header[D Digest] struct {
	// Parent is the commitment hash of the parent header. Zero for genesis.
	Parent hashing.Hash
	// Height is one greater than the parent's height. Zero for genesis.
	Height uint64
	// StateRoot commits to the state after executing this block's body.
	StateRoot hashing.Hash
	// ExtrinsicsRoot commits to the ordered body of extrinsics.
	ExtrinsicsRoot hashing.Hash
	// ConsensusDigest is the engine-specific seal.
	ConsensusDigest D
}

// Unsealed is a header whose consensus digest has not been produced yet.
type Unsealed = Header[Empty]

// Genesis returns the canonical zero-valued header. It is valid by
// construction and never requires sealing.
func Genesis[D Digest]() Header[D] {
	return Header[D]{}
}

// WithDigest re-types a header, replacing its consensus digest. This is how
// unsealed headers receive their seal and how higher-order engines move a
// header across a digest representation boundary.
func WithDigest[D1, D2 Digest](h Header[D1], digest D2) Header[D2] {
	return Header[D2]{
		Parent:          h.Parent,
		Height:          h.Height,
		StateRoot:       h.StateRoot,
		ExtrinsicsRoot:  h.ExtrinsicsRoot,
		ConsensusDigest: digest,
	}
}

// Bytes returns the canonical encoding of the header: the four fixed-width
// fields big-endian, followed by the digest encoding.
func (h Header[D]) Bytes() []byte {
	b := make([]byte, 0, 4*hashing.HashLen+len(h.ConsensusDigest.Bytes()))
	b = binary.BigEndian.AppendUint64(b, h.Parent)
	b = binary.BigEndian.AppendUint64(b, h.Height)
	b = binary.BigEndian.AppendUint64(b, h.StateRoot)
	b = binary.BigEndian.AppendUint64(b, h.ExtrinsicsRoot)
	return append(b, h.ConsensusDigest.Bytes()...)
}

// HashHeader returns the commitment hash of a header. Child headers link to
// their parent through this hash, and proof-of-work compares it against the
// difficulty threshold.
func HashHeader[D Digest](h Header[D]) hashing.Hash {
	return hashing.Sum64(h.Bytes())
}

// VerifyChild reports whether child correctly extends h: the child must
// commit to h's hash and sit exactly one height above it. Extrinsics are not
// inspected.
func (h Header[D]) VerifyChild(child Header[D]) bool {
	return child.Parent == HashHeader(h) && child.Height == h.Height+1
}

// VerifySubChain reports whether the given headers form a valid chain
// extending h. An empty continuation is trivially valid.
func (h Header[D]) VerifySubChain(sub []Header[D]) bool {
	prev := h
	for _, next := range sub {
		if !prev.VerifyChild(next) {
			return false
		}
		prev = next
	}
	return true
}
