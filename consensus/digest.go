// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus

import (
	"encoding/binary"
	"fmt"

	"github.com/luxfi/chainkit/chain"
)

// Nonce is the proof-of-work digest: a counter incremented until the header
// commitment falls below the difficulty threshold.
type Nonce uint64

// Bytes implements chain.Digest.
func (n Nonce) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(n))
}

// DecodeNonce parses the encoding produced by Nonce.Bytes.
func DecodeNonce(b []byte) (Nonce, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("nonce must be 8 bytes, got %d", len(b))
	}
	return Nonce(binary.BigEndian.Uint64(b)), nil
}

// Authority identifies a block signer. The set is closed: there is no public
// key behind an authority, the identity itself is the signature.
type Authority uint8

const (
	Alice Authority = iota
	Bob
	Charlie
	Dave
	Eve

	// NumAuthorities is the size of the closed authority set.
	NumAuthorities = 5
)

// AuthorityFromIndex returns the authority responsible for index n,
// round-robin by position. Total over all inputs.
func AuthorityFromIndex(n uint64) Authority {
	return Authority(n % NumAuthorities)
}

// Authorities returns the full closed authority set in index order.
func Authorities() []Authority {
	return []Authority{Alice, Bob, Charlie, Dave, Eve}
}

func (a Authority) String() string {
	switch a {
	case Alice:
		return "alice"
	case Bob:
		return "bob"
	case Charlie:
		return "charlie"
	case Dave:
		return "dave"
	case Eve:
		return "eve"
	default:
		return fmt.Sprintf("authority(%d)", uint8(a))
	}
}

// Bytes implements chain.Digest.
func (a Authority) Bytes() []byte {
	return []byte{byte(a)}
}

// DecodeAuthority parses the encoding produced by Authority.Bytes.
func DecodeAuthority(b []byte) (Authority, error) {
	if len(b) != 1 {
		return 0, fmt.Errorf("authority must be 1 byte, got %d", len(b))
	}
	if b[0] >= NumAuthorities {
		return 0, fmt.Errorf("unknown authority %d", b[0])
	}
	return Authority(b[0]), nil
}

// SlotDigest is the digest of slot-based round robin: the slot being claimed
// and the authority signing for it.
type SlotDigest struct {
	Slot   uint64
	Signer Authority
}

// Bytes implements chain.Digest.
func (d SlotDigest) Bytes() []byte {
	b := binary.BigEndian.AppendUint64(nil, d.Slot)
	return append(b, byte(d.Signer))
}

// DecodeSlotDigest parses the encoding produced by SlotDigest.Bytes.
func DecodeSlotDigest(b []byte) (SlotDigest, error) {
	if len(b) != 9 {
		return SlotDigest{}, fmt.Errorf("slot digest must be 9 bytes, got %d", len(b))
	}
	signer, err := DecodeAuthority(b[8:])
	if err != nil {
		return SlotDigest{}, err
	}
	return SlotDigest{
		Slot:   binary.BigEndian.Uint64(b[:8]),
		Signer: signer,
	}, nil
}

func assertDigest[D chain.Digest]() {}

var (
	_ = assertDigest[Nonce]
	_ = assertDigest[Authority]
	_ = assertDigest[SlotDigest]
)
