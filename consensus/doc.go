// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

/*
Package consensus defines the contract every consensus engine implements and
the digest types shared across engines.

An engine exposes exactly two operations. Validate is a pure predicate over a
header (and optionally the parent's digest). Seal attempts to produce a
digest that makes an unsealed header valid under the same engine. The two are
bound by a consistency law: any header returned by Seal must be accepted by
Validate with the same parent digest. Every engine in this module, concrete
or higher-order, upholds that law.

Engines hold no mutable state beyond configuration, so a single engine value
is safe to share across goroutines.
*/
package consensus
