// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hashing provides the commitment function used for chain linkage and
// data commitments throughout the framework.
//
// The commitment is a 64-bit murmur3 hash. It is deterministic and good
// enough at collision resistance for in-process chain experiments; it is not
// a cryptographic hash and must not be used where an adversary controls the
// preimage search budget.
package hashing

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

// Hash is a fixed-width 64-bit commitment.
type Hash = uint64

// HashLen is the byte length of an encoded Hash.
const HashLen = 8

// Sum64 commits to an arbitrary byte string.
func Sum64(b []byte) Hash {
	return murmur3.Sum64(b)
}

// Sum64Uints commits to an ordered sequence of 64-bit values, such as a block
// body of extrinsics.
func Sum64Uints(vals []uint64) Hash {
	b := make([]byte, 0, len(vals)*8)
	for _, v := range vals {
		b = binary.BigEndian.AppendUint64(b, v)
	}
	return Sum64(b)
}
