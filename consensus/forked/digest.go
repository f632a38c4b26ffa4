// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package forked

import (
	"fmt"

	"github.com/luxfi/chainkit/chain"
	"github.com/luxfi/chainkit/consensus"
)

// Kind selects the active variant of a NonceOrAuthority digest.
type Kind uint8

const (
	KindNonce Kind = iota
	KindAuthority
)

// NonceOrAuthority is a tagged union digest: either a proof-of-work nonce or
// an authority identity. Exactly one variant is active, selected by Kind;
// the inactive variant's field stays zero-valued. It serves as the shared
// outer representation when forking between engines whose digest shapes are
// incompatible.
type NonceOrAuthority struct {
	Kind      Kind
	Nonce     consensus.Nonce
	Authority consensus.Authority
}

// FromNonce wraps a proof-of-work nonce.
func FromNonce(n consensus.Nonce) NonceOrAuthority {
	return NonceOrAuthority{Kind: KindNonce, Nonce: n}
}

// FromAuthority wraps an authority identity.
func FromAuthority(a consensus.Authority) NonceOrAuthority {
	return NonceOrAuthority{Kind: KindAuthority, Authority: a}
}

// Bytes implements chain.Digest: a variant tag followed by the active
// variant's encoding.
func (d NonceOrAuthority) Bytes() []byte {
	switch d.Kind {
	case KindNonce:
		return append([]byte{byte(KindNonce)}, d.Nonce.Bytes()...)
	case KindAuthority:
		return append([]byte{byte(KindAuthority)}, d.Authority.Bytes()...)
	default:
		// Unreachable for digests built through FromNonce/FromAuthority.
		return []byte{byte(d.Kind)}
	}
}

// DecodeNonceOrAuthority parses the encoding produced by
// NonceOrAuthority.Bytes.
func DecodeNonceOrAuthority(b []byte) (NonceOrAuthority, error) {
	if len(b) == 0 {
		return NonceOrAuthority{}, fmt.Errorf("empty digest")
	}
	switch Kind(b[0]) {
	case KindNonce:
		n, err := consensus.DecodeNonce(b[1:])
		if err != nil {
			return NonceOrAuthority{}, err
		}
		return FromNonce(n), nil
	case KindAuthority:
		a, err := consensus.DecodeAuthority(b[1:])
		if err != nil {
			return NonceOrAuthority{}, err
		}
		return FromAuthority(a), nil
	default:
		return NonceOrAuthority{}, fmt.Errorf("unknown digest variant %d", b[0])
	}
}

// NonceConversion maps proof-of-work digests into the union. Unwrapping the
// authority variant yields the zero nonce; the mapping stays total.
func NonceConversion() Conversion[consensus.Nonce, NonceOrAuthority] {
	return Conversion[consensus.Nonce, NonceOrAuthority]{
		Wrap: FromNonce,
		Unwrap: func(d NonceOrAuthority) consensus.Nonce {
			if d.Kind == KindNonce {
				return d.Nonce
			}
			return 0
		},
	}
}

// AuthorityConversion maps authority digests into the union. Unwrapping the
// nonce variant yields the zero authority; the mapping stays total.
func AuthorityConversion() Conversion[consensus.Authority, NonceOrAuthority] {
	return Conversion[consensus.Authority, NonceOrAuthority]{
		Wrap: FromAuthority,
		Unwrap: func(d NonceOrAuthority) consensus.Authority {
			if d.Kind == KindAuthority {
				return d.Authority
			}
			var zero consensus.Authority
			return zero
		},
	}
}

func assertDigest[D chain.Digest]() {}

var _ = assertDigest[NonceOrAuthority]
