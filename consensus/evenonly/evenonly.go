// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package evenonly wraps an inner consensus engine with the additional
// requirement that a header's state root be even. The inner engine's rules
// are enforced unchanged; the wrapper only tightens them.
package evenonly

import (
	"github.com/luxfi/chainkit/chain"
	"github.com/luxfi/chainkit/consensus"
)

var _ consensus.Engine[chain.Empty] = (*Engine[chain.Empty])(nil)

// Engine enforces inner validity plus an even state root.
type Engine[D chain.Digest] struct {
	inner consensus.Engine[D]
}

// New wraps inner with the even-state-root requirement.
func New[D chain.Digest](inner consensus.Engine[D]) *Engine[D] {
	return &Engine[D]{inner: inner}
}

// Validate accepts iff the inner engine accepts and the state root is even.
func (e *Engine[D]) Validate(parentDigest D, header chain.Header[D]) bool {
	return e.inner.Validate(parentDigest, header) && header.StateRoot&1 == 0
}

// Seal delegates to the inner engine, then re-checks the result against the
// combined predicate. The sealed header is returned whenever it passes; an
// odd state root cannot be fixed by sealing, so those attempts decline.
func (e *Engine[D]) Seal(parentDigest D, partial chain.Unsealed) (chain.Header[D], bool) {
	sealed, ok := e.inner.Seal(parentDigest, partial)
	if !ok || !e.Validate(parentDigest, sealed) {
		return chain.Header[D]{}, false
	}
	return sealed, true
}
