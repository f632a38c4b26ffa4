// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

/*
Package chain defines the header/block data model that every consensus engine
operates on.

A Header is generic over its consensus digest type. The digest is the only
engine-specific part of a header: a proof-of-work nonce, an authority
identity, a slot+signer pair, or a composite of several of these. The
remaining fields (parent linkage, height, state root, extrinsics root) are
uniform across engines.

Headers and blocks are immutable value types. A chain is an ordered slice of
them with no back-references; verification walks it left to right. Header
verification checks linkage only. Block verification additionally re-executes
the body through the state transition function and checks that it reproduces
the claimed state, so a header can be individually valid while the block
carrying it is not.
*/
package chain
