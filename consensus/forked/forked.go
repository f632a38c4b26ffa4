// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

/*
Package forked implements a higher-order consensus engine that switches from
one rule set to another at a fixed block height.

The engine delegates to a "before" engine below the fork height and an
"after" engine at and above it. The two inner engines may use entirely
different digest types; the forked engine carries one shared outer digest
representation and converts at the boundary on every call. Conversions must
be total in both directions. When the inner digest shapes are incompatible,
the outer representation must be a tagged union capable of holding either,
such as NonceOrAuthority.
*/
package forked

import (
	"errors"

	"github.com/luxfi/chainkit/chain"
	"github.com/luxfi/chainkit/consensus"
)

var errNilConversion = errors.New("digest conversion must be total: nil mapping")

// Conversion maps an inner engine's digest type to and from the shared outer
// representation. Both mappings must be total: a conversion that cannot
// represent a value must not exist.
type Conversion[D, Outer chain.Digest] struct {
	Wrap   func(D) Outer
	Unwrap func(Outer) D
}

// Identity is the conversion for forks that keep the digest type unchanged.
func Identity[D chain.Digest]() Conversion[D, D] {
	id := func(d D) D { return d }
	return Conversion[D, D]{Wrap: id, Unwrap: id}
}

// Engine dispatches between a before- and an after-fork engine, with digest
// types B and A, over the shared outer digest type Outer.
type Engine[B, A, Outer chain.Digest] struct {
	forkHeight uint64
	before     consensus.Engine[B]
	after      consensus.Engine[A]
	beforeConv Conversion[B, Outer]
	afterConv  Conversion[A, Outer]
}

// New builds a forked engine. forkHeight is the first height at which the
// after engine's rules apply. Conversion totality is checked here, at
// construction, so that dispatch can never hit a missing mapping.
func New[B, A, Outer chain.Digest](
	forkHeight uint64,
	before consensus.Engine[B],
	beforeConv Conversion[B, Outer],
	after consensus.Engine[A],
	afterConv Conversion[A, Outer],
) (*Engine[B, A, Outer], error) {
	if beforeConv.Wrap == nil || beforeConv.Unwrap == nil ||
		afterConv.Wrap == nil || afterConv.Unwrap == nil {
		return nil, errNilConversion
	}
	return &Engine[B, A, Outer]{
		forkHeight: forkHeight,
		before:     before,
		after:      after,
		beforeConv: beforeConv,
		afterConv:  afterConv,
	}, nil
}

// Validate dispatches on the header's height, transporting the parent digest
// and the header across the representation boundary.
func (e *Engine[B, A, Outer]) Validate(parentDigest Outer, header chain.Header[Outer]) bool {
	if header.Height < e.forkHeight {
		return e.before.Validate(
			e.beforeConv.Unwrap(parentDigest),
			chain.WithDigest(header, e.beforeConv.Unwrap(header.ConsensusDigest)),
		)
	}
	return e.after.Validate(
		e.afterConv.Unwrap(parentDigest),
		chain.WithDigest(header, e.afterConv.Unwrap(header.ConsensusDigest)),
	)
}

// Seal dispatches on the partial header's height and wraps the produced
// digest back into the outer representation.
func (e *Engine[B, A, Outer]) Seal(parentDigest Outer, partial chain.Unsealed) (chain.Header[Outer], bool) {
	if partial.Height < e.forkHeight {
		sealed, ok := e.before.Seal(e.beforeConv.Unwrap(parentDigest), partial)
		if !ok {
			return chain.Header[Outer]{}, false
		}
		return chain.WithDigest(sealed, e.beforeConv.Wrap(sealed.ConsensusDigest)), true
	}
	sealed, ok := e.after.Seal(e.afterConv.Unwrap(parentDigest), partial)
	if !ok {
		return chain.Header[Outer]{}, false
	}
	return chain.WithDigest(sealed, e.afterConv.Wrap(sealed.ConsensusDigest)), true
}
