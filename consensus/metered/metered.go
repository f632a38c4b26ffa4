// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metered wraps a consensus engine with counters and logging. The
// wrapper is transparent: verdicts pass through bit-for-bit, only the
// bookkeeping is added.
package metered

import (
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/luxfi/chainkit/chain"
	"github.com/luxfi/chainkit/consensus"
)

var _ consensus.Engine[chain.Empty] = (*Engine[chain.Empty])(nil)

// Engine counts validations and seals performed by the inner engine.
type Engine[D chain.Digest] struct {
	inner consensus.Engine[D]
	log   log.Logger

	headersAccepted metric.Counter
	headersRejected metric.Counter
	sealsProduced   metric.Counter
	sealsDeclined   metric.Counter
}

// New wraps inner. The namespace prefixes every metric name so that several
// metered engines can coexist in one process.
func New[D chain.Digest](namespace string, inner consensus.Engine[D], logger log.Logger) *Engine[D] {
	return &Engine[D]{
		inner: inner,
		log:   logger,
		headersAccepted: metric.NewCounter(metric.CounterOpts{
			Name: namespace + "_headers_accepted",
			Help: "Number of headers accepted by validation",
		}),
		headersRejected: metric.NewCounter(metric.CounterOpts{
			Name: namespace + "_headers_rejected",
			Help: "Number of headers rejected by validation",
		}),
		sealsProduced: metric.NewCounter(metric.CounterOpts{
			Name: namespace + "_seals_produced",
			Help: "Number of headers successfully sealed",
		}),
		sealsDeclined: metric.NewCounter(metric.CounterOpts{
			Name: namespace + "_seals_declined",
			Help: "Number of sealing attempts the engine declined",
		}),
	}
}

// Validate delegates to the inner engine and records the verdict.
func (e *Engine[D]) Validate(parentDigest D, header chain.Header[D]) bool {
	ok := e.inner.Validate(parentDigest, header)
	if ok {
		e.headersAccepted.Inc()
	} else {
		e.headersRejected.Inc()
		e.log.Debug("header rejected",
			log.Uint64("height", header.Height),
			log.Uint64("parent", header.Parent),
		)
	}
	return ok
}

// Seal delegates to the inner engine and records the outcome.
func (e *Engine[D]) Seal(parentDigest D, partial chain.Unsealed) (chain.Header[D], bool) {
	sealed, ok := e.inner.Seal(parentDigest, partial)
	if ok {
		e.sealsProduced.Inc()
	} else {
		e.sealsDeclined.Inc()
		e.log.Debug("seal declined",
			log.Uint64("height", partial.Height),
		)
	}
	return sealed, ok
}
