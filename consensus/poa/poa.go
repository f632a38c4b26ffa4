// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

/*
Package poa implements the proof-of-authority consensus variants.

All three variants draw their signers from the closed authority set. They
differ in who may sign when:

  - Engine accepts a block signed by any member of its authority set.
  - HeightRoundRobin requires the authority indexed by the block height.
  - SlotRoundRobin divides time into slots and requires the authority indexed
    by the slot, with slots strictly increasing along the chain.
*/
package poa

import (
	"github.com/luxfi/log"
	"github.com/luxfi/math/set"

	"github.com/luxfi/chainkit/chain"
	"github.com/luxfi/chainkit/consensus"
)

var (
	_ consensus.Engine[consensus.Authority]  = (*Engine)(nil)
	_ consensus.Engine[consensus.Authority]  = (*HeightRoundRobin)(nil)
	_ consensus.Engine[consensus.SlotDigest] = (*SlotRoundRobin)(nil)
)

// Engine is open-set proof of authority: any member of the authority set may
// sign any block.
type Engine struct {
	authorities set.Set[consensus.Authority]
	signer      consensus.Authority
	log         log.Logger
}

// New returns an open-set engine over the given authorities. The engine
// always seals as the designated signer.
func New(authorities []consensus.Authority, signer consensus.Authority, logger log.Logger) *Engine {
	s := set.NewSet[consensus.Authority](len(authorities))
	for _, a := range authorities {
		s.Add(a)
	}
	return &Engine{
		authorities: s,
		signer:      signer,
		log:         logger,
	}
}

// Validate checks that the recorded signer is a member of the authority set.
func (e *Engine) Validate(_ consensus.Authority, header chain.Header[consensus.Authority]) bool {
	if header.Height == 0 {
		return true
	}
	return e.authorities.Contains(header.ConsensusDigest)
}

// Seal signs as the designated signer. It declines when the signer is not a
// member of the authority set, since the result could never validate.
func (e *Engine) Seal(_ consensus.Authority, partial chain.Unsealed) (chain.Header[consensus.Authority], bool) {
	if !e.authorities.Contains(e.signer) {
		e.log.Debug("declining to seal, signer is not an authority",
			log.String("signer", e.signer.String()),
		)
		return chain.Header[consensus.Authority]{}, false
	}
	return chain.WithDigest(partial, e.signer), true
}

// HeightRoundRobin is proof of authority where the authorities take strict
// turns by block height. A single non-participating authority halts the
// chain outright at its height; this weakness is intentional.
type HeightRoundRobin struct{}

// Validate requires the digest to be exactly the authority indexed by the
// header's height.
func (HeightRoundRobin) Validate(_ consensus.Authority, header chain.Header[consensus.Authority]) bool {
	if header.Height == 0 {
		return true
	}
	return header.ConsensusDigest == consensus.AuthorityFromIndex(header.Height)
}

// Seal signs as the authority whose turn it is at the partial header's
// height.
func (HeightRoundRobin) Seal(_ consensus.Authority, partial chain.Unsealed) (chain.Header[consensus.Authority], bool) {
	return chain.WithDigest(partial, consensus.AuthorityFromIndex(partial.Height)), true
}

// SlotRoundRobin is proof of authority where the authorities take turns by
// slot number rather than height. Slots may be skipped; the chain only
// requires each header's slot to be strictly greater than its parent's.
type SlotRoundRobin struct{}

// Validate requires a strictly increasing slot and the signer indexed by
// that slot. Any strictly greater slot is acceptable, not just parent+1.
func (SlotRoundRobin) Validate(parentDigest consensus.SlotDigest, header chain.Header[consensus.SlotDigest]) bool {
	if header.Height == 0 {
		return true
	}
	d := header.ConsensusDigest
	return d.Slot > parentDigest.Slot && d.Signer == consensus.AuthorityFromIndex(d.Slot)
}

// Seal claims the slot immediately after the parent's and signs as the
// authority owning it.
func (SlotRoundRobin) Seal(parentDigest consensus.SlotDigest, partial chain.Unsealed) (chain.Header[consensus.SlotDigest], bool) {
	slot := parentDigest.Slot + 1
	return chain.WithDigest(partial, consensus.SlotDigest{
		Slot:   slot,
		Signer: consensus.AuthorityFromIndex(slot),
	}), true
}
