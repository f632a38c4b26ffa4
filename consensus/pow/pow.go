// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pow implements proof-of-work consensus: a header is valid when its
// commitment hash is below the configured difficulty threshold.
package pow

import (
	"math"

	"github.com/luxfi/log"

	"github.com/luxfi/chainkit/chain"
	"github.com/luxfi/chainkit/consensus"
	"github.com/luxfi/chainkit/hashing"
)

var _ consensus.Engine[consensus.Nonce] = (*Engine)(nil)

// Engine is a proof-of-work consensus engine.
type Engine struct {
	threshold hashing.Hash
	log       log.Logger
}

// New returns a proof-of-work engine with the given difficulty threshold.
// Lower thresholds are harder to seal.
func New(threshold hashing.Hash, logger log.Logger) *Engine {
	return &Engine{
		threshold: threshold,
		log:       logger,
	}
}

// ModerateDifficulty returns an engine tuned so that roughly 1 in 100
// randomly drawn nonces seals successfully.
func ModerateDifficulty() *Engine {
	return New(math.MaxUint64/100, log.NoLog{})
}

// Validate checks that the header's commitment hash is below the threshold.
// The parent digest is not consulted. Genesis headers require no seal.
func (e *Engine) Validate(_ consensus.Nonce, header chain.Header[consensus.Nonce]) bool {
	if header.Height == 0 {
		return true
	}
	return chain.HashHeader(header) < e.threshold
}

// Seal mines the partial header: starting from a zero nonce, it recomputes
// the commitment for successive nonces until one falls below the threshold.
// The search is an unbounded busy loop with expected length around
// MaxUint64/threshold iterations; callers needing bounded latency must
// impose an external cap.
func (e *Engine) Seal(_ consensus.Nonce, partial chain.Unsealed) (chain.Header[consensus.Nonce], bool) {
	if e.threshold == 0 {
		// No hash is below zero. Refusing up front beats spinning forever.
		return chain.Header[consensus.Nonce]{}, false
	}
	header := chain.WithDigest(partial, consensus.Nonce(0))
	for chain.HashHeader(header) >= e.threshold {
		header.ConsensusDigest++
	}
	e.log.Debug("sealed header",
		log.Uint64("height", header.Height),
		log.Uint64("nonce", uint64(header.ConsensusDigest)),
	)
	return header, true
}

// MineExtraHard re-mines an already-built header against a stricter
// threshold, discarding its current nonce. Useful for constructing chains
// that carry more work than the bare difficulty requires.
func MineExtraHard(header *chain.Header[consensus.Nonce], threshold hashing.Hash) {
	header.ConsensusDigest = 0
	for chain.HashHeader(*header) >= threshold {
		header.ConsensusDigest++
	}
}
